// Package theme owns the process-wide light/dark preference.
//
// There is exactly one Store per process. It is constructed once at startup
// and handed by reference to every consumer; Toggle is the only writer.
package theme

import (
	"sync"

	"github.com/anmolrajas/portfolio/internal/logger"
)

// StorageKey is the durable storage key holding the preference.
const StorageKey = "theme"

// Stored values for StorageKey.
const (
	ValueDark  = "dark"
	ValueLight = "light"
)

// Storage is the durable key-value store the preference lives in.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Preference is the user's light/dark choice.
type Preference struct {
	IsDark bool
}

// String returns the stored encoding of p.
func (p Preference) String() string {
	if p.IsDark {
		return ValueDark
	}
	return ValueLight
}

// Init reads the preference from storage. Only the value "dark" selects the
// dark theme; absence, any other value, or a read failure yields light.
func Init(s Storage) Preference {
	if s == nil {
		return Preference{}
	}
	v, ok, err := s.Get(StorageKey)
	if err != nil {
		logger.WithComponent("theme").Warn("failed to read preference, using light", "error", err)
		return Preference{}
	}
	return Preference{IsDark: ok && v == ValueDark}
}

// Toggle returns the negation of current and persists it. A persistence
// failure is logged and otherwise ignored.
func Toggle(s Storage, current Preference) Preference {
	next := Preference{IsDark: !current.IsDark}
	if s == nil {
		return next
	}
	if err := s.Set(StorageKey, next.String()); err != nil {
		logger.WithComponent("theme").Warn("failed to persist preference", "value", next.String(), "error", err)
	}
	return next
}

// Store holds the live preference and fans changes out to subscribers.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	pref    Preference
	nextID  int
	subs    map[int]func(Preference)
}

// NewStore rehydrates the preference from storage.
func NewStore(s Storage) *Store {
	return &Store{
		storage: s,
		pref:    Init(s),
		subs:    make(map[int]func(Preference)),
	}
}

// Preference returns the current preference.
func (s *Store) Preference() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref
}

// IsDark reports whether the dark theme is selected.
func (s *Store) IsDark() bool {
	return s.Preference().IsDark
}

// Toggle flips the preference, persists it, and notifies subscribers.
// It returns the new preference.
func (s *Store) Toggle() Preference {
	s.mu.Lock()
	s.pref = Toggle(s.storage, s.pref)
	pref := s.pref
	subs := make([]func(Preference), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	logger.WithComponent("theme").Debug("theme toggled", "value", pref.String())
	for _, fn := range subs {
		fn(pref)
	}
	return pref
}

// Subscribe registers fn to be called after every toggle. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Preference)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
