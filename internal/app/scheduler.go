package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/clock"
)

// timerFiredMsg is delivered when a scheduled callback comes due
type timerFiredMsg struct {
	id uint64
}

// workDoneMsg carries the on-loop half of a Go call
type workDoneMsg struct {
	id    uint64
	apply func()
}

// Scheduler runs clock callbacks on the Bubble Tea event loop. Timers and
// off-loop work are turned into commands; their results come back as
// messages that Handle applies from Update, so callbacks never race the
// model.
//
// Every method must be called from the event loop.
type Scheduler struct {
	next    uint64
	timers  map[uint64]func()
	work    map[uint64]struct{}
	pending []tea.Cmd
	now     func() time.Time
}

// NewScheduler returns an empty scheduler using the wall clock
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[uint64]func()),
		work:   make(map[uint64]struct{}),
		now:    time.Now,
	}
}

var _ clock.Scheduler = (*Scheduler)(nil)

// AfterFunc queues a tick that runs fn once d has elapsed
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) clock.Handle {
	if d < 0 {
		d = 0
	}
	id := s.nextID()
	s.timers[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return &schedHandle{s: s, id: id}
}

// Go queues work as a command; the closure it returns is applied when the
// result message reaches Handle
func (s *Scheduler) Go(work func() func()) clock.Handle {
	id := s.nextID()
	s.work[id] = struct{}{}
	s.pending = append(s.pending, func() tea.Msg {
		return workDoneMsg{id: id, apply: work()}
	})
	return &schedHandle{s: s, id: id}
}

// Now returns the current time
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// Handle applies a scheduler message. It reports whether msg belonged to
// the scheduler; messages for cancelled callbacks are swallowed.
func (s *Scheduler) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case timerFiredMsg:
		fn, ok := s.timers[msg.id]
		if !ok {
			return true
		}
		delete(s.timers, msg.id)
		fn()
		return true

	case workDoneMsg:
		if _, ok := s.work[msg.id]; !ok {
			return true
		}
		delete(s.work, msg.id)
		if msg.apply != nil {
			msg.apply()
		}
		return true
	}
	return false
}

// Drain returns the commands queued since the last call, batched
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of callbacks that may still run
func (s *Scheduler) Pending() int {
	return len(s.timers) + len(s.work)
}

func (s *Scheduler) nextID() uint64 {
	s.next++
	return s.next
}

func (s *Scheduler) cancel(id uint64) bool {
	if _, ok := s.timers[id]; ok {
		delete(s.timers, id)
		return true
	}
	if _, ok := s.work[id]; ok {
		delete(s.work, id)
		return true
	}
	return false
}

type schedHandle struct {
	s  *Scheduler
	id uint64
}

func (h *schedHandle) Cancel() bool {
	return h.s.cancel(h.id)
}
