package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake is a deterministic Scheduler. Callbacks only run inside Advance,
// in deadline order with ties broken by scheduling order.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	f         *Fake
	at        time.Time
	seq       uint64
	fn        func()
	done      bool
	cancelled bool
}

// NewFake returns a Fake whose clock starts at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the fake time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// AfterFunc arms fn to run once the fake clock has advanced by d.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Handle {
	f.mu.Lock()
	defer f.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &fakeTimer{f: f, at: f.now.Add(d), seq: f.seq, fn: fn}
	f.seq++
	f.timers = append(f.timers, t)
	return t
}

// Go defers work to the next Advance; work and its closure both run there.
func (f *Fake) Go(work func() func()) Handle {
	return f.AfterFunc(0, func() {
		if apply := work(); apply != nil {
			apply()
		}
	})
}

// Advance moves the clock forward by d, running every callback that becomes
// due, including callbacks scheduled by callbacks within the window.
// It returns the number of callbacks run.
func (f *Fake) Advance(d time.Duration) int {
	f.mu.Lock()
	deadline := f.now.Add(d)
	f.mu.Unlock()

	ran := 0
	for {
		t := f.popDue(deadline)
		if t == nil {
			break
		}
		t.fn()
		ran++
	}

	f.mu.Lock()
	f.now = deadline
	f.mu.Unlock()
	return ran
}

// Flush runs callbacks that are already due without moving the clock.
func (f *Fake) Flush() int {
	return f.Advance(0)
}

// Pending returns the number of armed, uncancelled callbacks.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.timers {
		if !t.done && !t.cancelled {
			n++
		}
	}
	return n
}

// popDue removes and returns the earliest callback due at or before
// deadline, moving the clock to its deadline.
func (f *Fake) popDue(deadline time.Time) *fakeTimer {
	f.mu.Lock()
	defer f.mu.Unlock()

	live := f.timers[:0]
	for _, t := range f.timers {
		if !t.done && !t.cancelled {
			live = append(live, t)
		}
	}
	f.timers = live
	if len(f.timers) == 0 {
		return nil
	}

	sort.SliceStable(f.timers, func(i, j int) bool {
		if f.timers[i].at.Equal(f.timers[j].at) {
			return f.timers[i].seq < f.timers[j].seq
		}
		return f.timers[i].at.Before(f.timers[j].at)
	})
	t := f.timers[0]
	if t.at.After(deadline) {
		return nil
	}
	t.done = true
	f.timers = f.timers[1:]
	if t.at.After(f.now) {
		f.now = t.at
	}
	return t
}

func (t *fakeTimer) Cancel() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}
