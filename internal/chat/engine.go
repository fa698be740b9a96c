// Package chat implements the simulated assistant widget: an open/closed
// session with a growing transcript and delayed bot replies behind a typing
// indicator.
//
// Replies are served from a FIFO queue with exactly one in flight. A reply's
// lead delay starts only once the previous reply has been appended, so the
// transcript always reads in send order and at most one typing indicator is
// ever shown.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/anmolrajas/portfolio/internal/clock"
	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/logger"
)

const (
	// DefaultLeadDelay elapses between a trigger and the typing indicator.
	DefaultLeadDelay = 500 * time.Millisecond

	DefaultTypingMin = 1000 * time.Millisecond
	DefaultTypingMax = 2000 * time.Millisecond
)

// Option configures an Engine.
type Option func(*Engine)

// WithResponder sets the reply source. The default is canned responses
// drawn with the engine's picker.
func WithResponder(r Responder) Option {
	return func(e *Engine) { e.responder = r }
}

// WithPicker sets the random source for delays and canned replies.
func WithPicker(p clock.Picker) Option {
	return func(e *Engine) { e.picker = p }
}

// WithDelays overrides the lead and typing delays.
func WithDelays(lead, typing clock.Range) Option {
	return func(e *Engine) {
		e.lead = lead
		e.typing = typing
	}
}

// reply is a queued bot response. upto is the transcript length at the time
// it was triggered; the responder sees exactly that prefix.
type reply struct {
	greeting bool
	upto     int
}

// Engine is one chat session. It is confined to its scheduler's loop.
type Engine struct {
	sched     clock.Scheduler
	timers    *clock.Group
	picker    clock.Picker
	responder Responder
	fallback  Responder
	lead      clock.Range
	typing    clock.Range

	ctx    context.Context
	cancel context.CancelFunc

	open       bool
	isTyping   bool
	transcript []Message

	queue           []reply
	inFlight        bool
	greetingPending bool
	closed          bool

	log *slog.Logger
}

// New returns a closed, empty session scheduling on s.
func New(s clock.Scheduler, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		sched:  s,
		timers: clock.NewGroup(s),
		picker: clock.DefaultPicker,
		lead:   clock.Fixed(DefaultLeadDelay),
		typing: clock.Between(DefaultTypingMin, DefaultTypingMax),
		ctx:    ctx,
		cancel: cancel,
		log:    logger.WithComponent("chat"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fallback = NewCanned(e.picker)
	if e.responder == nil {
		e.responder = e.fallback
	}
	return e
}

// ToggleOpen opens a closed widget or closes an open one. Opening an empty
// session schedules the greeting once; closing keeps the transcript and
// lets pending replies land.
func (e *Engine) ToggleOpen() {
	if e.closed {
		return
	}
	e.open = !e.open
	e.log.Debug("chat toggled", "open", e.open, "messages", len(e.transcript))

	if e.open && len(e.transcript) == 0 && !e.greetingPending {
		e.greetingPending = true
		e.enqueue(reply{greeting: true})
	}
}

// Send appends a user message and queues a bot reply to it. Input that is
// empty after trimming is rejected without any state change.
func (e *Engine) Send(text string) error {
	const op errors.Op = "chat.Send"

	if e.closed {
		return errors.SessionClosed(op)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.ValidationFailed(op, "message is empty")
	}

	e.transcript = append(e.transcript, newMessage(text, AuthorUser, e.sched.Now()))
	e.enqueue(reply{upto: len(e.transcript)})
	return nil
}

func (e *Engine) enqueue(r reply) {
	e.queue = append(e.queue, r)
	e.pump()
}

// pump starts the next queued reply if none is in flight.
func (e *Engine) pump() {
	if e.inFlight || len(e.queue) == 0 || e.closed {
		return
	}
	next := e.queue[0]
	e.queue = e.queue[1:]
	e.inFlight = true

	e.timers.Schedule(e.lead, e.picker, func() {
		e.startTyping(next)
	})
}

// startTyping shows the indicator and waits for both the typing delay and
// the responder. The reply lands when the later of the two completes.
func (e *Engine) startTyping(r reply) {
	e.isTyping = true

	if r.greeting {
		e.timers.Schedule(e.typing, e.picker, func() {
			e.deliver(r, Greeting)
		})
		return
	}

	var (
		text      string
		answered  bool
		delayDone bool
	)
	land := func() {
		if answered && delayDone {
			e.deliver(r, text)
		}
	}

	e.timers.Schedule(e.typing, e.picker, func() {
		delayDone = true
		land()
	})

	history := make([]Message, r.upto)
	copy(history, e.transcript[:r.upto])
	responder, fallback, ctx := e.responder, e.fallback, e.ctx
	e.timers.Go(func() func() {
		out, err := responder.Respond(ctx, history)
		if err != nil || strings.TrimSpace(out) == "" {
			out, _ = fallback.Respond(ctx, history)
		}
		return func() {
			if err != nil {
				e.log.Warn("responder failed, used canned reply", "error", err)
			}
			text = out
			answered = true
			land()
		}
	})
}

func (e *Engine) deliver(r reply, text string) {
	e.transcript = append(e.transcript, newMessage(text, AuthorBot, e.sched.Now()))
	e.isTyping = false
	e.inFlight = false
	if r.greeting {
		e.greetingPending = false
	}
	e.log.Debug("bot replied", "messages", len(e.transcript), "queued", len(e.queue))
	e.pump()
}

// IsOpen reports whether the widget is open.
func (e *Engine) IsOpen() bool { return e.open }

// IsTyping reports whether a bot reply is being typed.
func (e *Engine) IsTyping() bool { return e.isTyping }

// State returns the derived widget state.
func (e *Engine) State() State { return e.Snapshot().State() }

// Snapshot returns a copy of the session.
func (e *Engine) Snapshot() Snapshot {
	t := make([]Message, len(e.transcript))
	copy(t, e.transcript)
	return Snapshot{
		Open:       e.open,
		Typing:     e.isTyping,
		Transcript: t,
		Queued:     len(e.queue),
	}
}

// Pending reports whether any reply is queued or in flight.
func (e *Engine) Pending() bool {
	return e.inFlight || len(e.queue) > 0
}

// Close tears the session down. Pending replies are cancelled and no state
// changes after Close returns. It is idempotent.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.timers.Close()
	e.cancel()
	e.log.Debug("chat session closed", "messages", len(e.transcript), "dropped", len(e.queue))
}
