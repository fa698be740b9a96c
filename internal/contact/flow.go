// Package contact implements the contact form submission flow: validate the
// draft, hand it to an email-dispatch collaborator, and map the outcome to
// a phase the form renders.
package contact

import (
	"context"
	"log/slog"
	"time"

	"github.com/anmolrajas/portfolio/internal/clock"
	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/logger"
)

// Phase is the submission state of the form.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

const (
	// SuccessWindow is how long the success banner stays up.
	SuccessWindow = 5 * time.Second

	// DefaultDispatchTimeout bounds one dispatch attempt.
	DefaultDispatchTimeout = 10 * time.Second
)

// Transient notices raised on completion.
const (
	SuccessNotice = "Your message has been sent successfully!"
	FailureNotice = "Failed to send your message. Please try again later."
)

// Outcome describes a finished submission.
type Outcome struct {
	Phase   Phase
	Payload Payload
	Err     error
}

// Notice returns the user-facing notification text for o.
func (o Outcome) Notice() string {
	if o.Phase == PhaseSucceeded {
		return SuccessNotice
	}
	return FailureNotice
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithTimeout bounds each dispatch.
func WithTimeout(d time.Duration) FlowOption {
	return func(f *Flow) { f.timeout = d }
}

// WithOutcome registers a callback run on the loop when a submission
// finishes.
func WithOutcome(fn func(Outcome)) FlowOption {
	return func(f *Flow) { f.onOutcome = fn }
}

// Flow owns the draft and its submission phase. It is confined to its
// scheduler's loop.
type Flow struct {
	sched      clock.Scheduler
	timers     *clock.Group
	dispatcher Dispatcher
	timeout    time.Duration
	onOutcome  func(Outcome)

	ctx    context.Context
	cancel context.CancelFunc

	draft   Draft
	phase   Phase
	lastErr error
	revert  clock.Handle
	closed  bool

	log *slog.Logger
}

// NewFlow returns an idle flow with an empty draft.
func NewFlow(s clock.Scheduler, d Dispatcher, opts ...FlowOption) *Flow {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Flow{
		sched:      s,
		timers:     clock.NewGroup(s),
		dispatcher: d,
		timeout:    DefaultDispatchTimeout,
		ctx:        ctx,
		cancel:     cancel,
		log:        logger.WithComponent("contact"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Draft returns the current draft.
func (f *Flow) Draft() Draft { return f.draft }

// Phase returns the submission phase.
func (f *Flow) Phase() Phase { return f.phase }

// LastError returns the error of the most recent failed submission.
func (f *Flow) LastError() error { return f.lastErr }

// Edit sets one field. An edit clears a failed phase.
func (f *Flow) Edit(field Field, value string) {
	if f.closed {
		return
	}
	f.draft = f.draft.With(field, value)
	if f.phase == PhaseFailed {
		f.phase = PhaseIdle
	}
}

// SetDraft replaces the whole draft. Like Edit, it clears a failed phase.
func (f *Flow) SetDraft(d Draft) {
	if f.closed {
		return
	}
	f.draft = d
	if f.phase == PhaseFailed {
		f.phase = PhaseIdle
	}
}

// Submit validates the draft and starts dispatching it. The outcome is
// applied on the loop once the dispatcher returns. Submit fails without any
// other state change while a submission is already in flight, and on an
// invalid draft.
func (f *Flow) Submit() error {
	const op errors.Op = "contact.Submit"

	if f.closed {
		return errors.SessionClosed(op)
	}
	if f.phase == PhaseSubmitting {
		return errors.SubmissionInFlight()
	}
	if f.phase == PhaseFailed {
		f.phase = PhaseIdle
	}
	if err := f.draft.Validate(); err != nil {
		return err
	}

	if f.revert != nil {
		f.revert.Cancel()
		f.revert = nil
	}

	payload := NewPayload(f.draft, f.sched.Now())
	f.phase = PhaseSubmitting
	f.lastErr = nil
	f.log.Info("submitting contact form", "id", payload.ID, "sender", payload.SenderEmail)

	dispatcher, parent, timeout := f.dispatcher, f.ctx, f.timeout
	f.timers.Go(func() func() {
		ctx, cancel := context.WithTimeout(parent, timeout)
		err := dispatcher.Dispatch(ctx, payload)
		cancel()
		return func() { f.finish(payload, err) }
	})
	return nil
}

func (f *Flow) finish(p Payload, err error) {
	out := Outcome{Payload: p, Err: err}
	if err != nil {
		f.phase = PhaseFailed
		f.lastErr = err
		f.log.Warn("contact submission failed", "id", p.ID, "error", err)
	} else {
		f.draft = Draft{}
		f.phase = PhaseSucceeded
		f.revert = f.timers.After(SuccessWindow, func() {
			f.revert = nil
			if f.phase == PhaseSucceeded {
				f.phase = PhaseIdle
			}
		})
		f.log.Info("contact submission sent", "id", p.ID)
	}
	out.Phase = f.phase

	if f.onOutcome != nil {
		f.onOutcome(out)
	}
}

// Dismiss clears the success banner early, cancelling its revert timer.
// It is called when the user leaves the form.
func (f *Flow) Dismiss() {
	if f.revert != nil {
		f.revert.Cancel()
		f.revert = nil
	}
	if f.phase == PhaseSucceeded {
		f.phase = PhaseIdle
	}
}

// Close tears the flow down: an in-flight dispatch is cancelled and its
// outcome discarded, and the success revert never fires.
func (f *Flow) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.timers.Close()
	f.cancel()
}
