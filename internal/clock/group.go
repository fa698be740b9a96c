package clock

import "time"

// Group ties scheduled callbacks to one owner's lifetime. Close cancels
// everything still pending and refuses further scheduling, so no callback
// can fire against a torn-down owner.
//
// A Group is confined to the scheduler's loop.
type Group struct {
	s      Scheduler
	next   uint64
	live   map[uint64]Handle
	closed bool
}

// NewGroup returns an empty Group scheduling on s.
func NewGroup(s Scheduler) *Group {
	return &Group{s: s, live: make(map[uint64]Handle)}
}

// Schedule samples r with p and runs fn after that delay.
func (g *Group) Schedule(r Range, p Picker, fn func()) Handle {
	return g.After(r.Sample(p), fn)
}

// After schedules fn after d. After Close it returns Stopped.
func (g *Group) After(d time.Duration, fn func()) Handle {
	if g.closed {
		return Stopped
	}
	id := g.next
	g.next++
	h := g.s.AfterFunc(d, func() {
		delete(g.live, id)
		fn()
	})
	g.live[id] = h
	return &groupHandle{g: g, id: id, h: h}
}

// Go runs work off-loop and applies its result on-loop, unless the group is
// closed first.
func (g *Group) Go(work func() func()) Handle {
	if g.closed {
		return Stopped
	}
	id := g.next
	g.next++
	h := g.s.Go(func() func() {
		apply := work()
		return func() {
			delete(g.live, id)
			if apply != nil {
				apply()
			}
		}
	})
	g.live[id] = h
	return &groupHandle{g: g, id: id, h: h}
}

// Pending returns the number of callbacks that may still run.
func (g *Group) Pending() int {
	return len(g.live)
}

// Closed reports whether Close has been called.
func (g *Group) Closed() bool {
	return g.closed
}

// Close cancels all pending callbacks. It is idempotent.
func (g *Group) Close() {
	if g.closed {
		return
	}
	g.closed = true
	for id, h := range g.live {
		h.Cancel()
		delete(g.live, id)
	}
}

type groupHandle struct {
	g  *Group
	id uint64
	h  Handle
}

func (h *groupHandle) Cancel() bool {
	delete(h.g.live, h.id)
	return h.h.Cancel()
}
