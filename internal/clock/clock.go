package clock

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Handle cancels a scheduled callback.
type Handle interface {
	// Cancel prevents the callback from running. It reports whether the
	// call stopped the callback; false means it already ran or was cancelled.
	Cancel() bool
}

// Scheduler runs callbacks on a single event loop after a delay.
type Scheduler interface {
	// AfterFunc runs fn on the loop once d has elapsed.
	AfterFunc(d time.Duration, fn func()) Handle

	// Go runs work off the loop and applies the closure it returns on the
	// loop. A nil closure is ignored. Cancelling the handle before the
	// closure is applied discards it.
	Go(work func() func()) Handle

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// Picker is the random source used for delay jitter and response selection.
type Picker interface {
	// Pick returns a value in [0, n). n is always > 0.
	Pick(n int) int
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) int

// Pick calls f(n).
func (f PickerFunc) Pick(n int) int { return f(n) }

// randPicker draws from math/rand/v2.
type randPicker struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandPicker returns a Picker seeded with seed.
func NewRandPicker(seed uint64) Picker {
	return &randPicker{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *randPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r.IntN(n)
}

// DefaultPicker draws from the global math/rand/v2 source.
var DefaultPicker Picker = PickerFunc(rand.IntN)

// Range is an inclusive delay range sampled uniformly at millisecond
// granularity.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Fixed returns a Range that always samples d.
func Fixed(d time.Duration) Range {
	return Range{Min: d, Max: d}
}

// Between returns the Range [lo, hi].
func Between(lo, hi time.Duration) Range {
	if hi < lo {
		lo, hi = hi, lo
	}
	return Range{Min: lo, Max: hi}
}

// Sample draws a delay from the range.
func (r Range) Sample(p Picker) time.Duration {
	span := (r.Max - r.Min) / time.Millisecond
	if span <= 0 {
		return r.Min
	}
	return r.Min + time.Duration(p.Pick(int(span)+1))*time.Millisecond
}

// noopHandle is returned when scheduling is refused.
type noopHandle struct{}

func (noopHandle) Cancel() bool { return false }

// Stopped is a Handle for a callback that will never run.
var Stopped Handle = noopHandle{}
