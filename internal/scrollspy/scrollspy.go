// Package scrollspy maps a scroll offset to the section currently in view.
package scrollspy

import (
	"time"

	"github.com/anmolrajas/portfolio/internal/clock"
	"github.com/anmolrajas/portfolio/internal/logger"
)

const (
	// LookAhead is how far below the scroll position a section top may sit
	// and still count as active.
	LookAhead = 100

	// ScrolledThreshold is the offset past which the page counts as scrolled.
	ScrolledThreshold = 50

	// FrameInterval is the coalescing window for scroll samples.
	FrameInterval = 16 * time.Millisecond
)

// Section is a named region of the page and the offset of its top edge.
// Offsets come from the presentation layer's layout.
type Section struct {
	ID     string
	Offset int
}

// Active returns the id of the last section whose top is at or above
// offset+LookAhead, or the first section when none qualifies.
// sections must be non-empty and in document order.
func Active(offset int, sections []Section) string {
	probe := offset + LookAhead
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].Offset <= probe {
			return sections[i].ID
		}
	}
	return sections[0].ID
}

// Tracker holds the active section for a mounted page. Scroll samples are
// coalesced so at most one evaluation runs per frame; the last sample in a
// frame wins.
//
// A Tracker is confined to its scheduler's loop.
type Tracker struct {
	sections []Section
	active   string
	offset   int
	scrolled bool

	frames   *clock.Group
	frame    clock.Handle
	onChange func(active string)
}

// NewTracker returns a Tracker over sections. Evaluations are scheduled on
// s; onChange, if non-nil, is called whenever the active section changes.
func NewTracker(s clock.Scheduler, sections []Section, onChange func(string)) *Tracker {
	t := &Tracker{
		frames:   clock.NewGroup(s),
		onChange: onChange,
	}
	t.SetSections(sections)
	return t
}

// SetSections replaces the section geometry, e.g. after a relayout, and
// re-evaluates against the last known offset.
func (t *Tracker) SetSections(sections []Section) {
	t.sections = append(t.sections[:0], sections...)
	if len(t.sections) == 0 {
		return
	}
	t.evaluate()
}

// Sections returns a copy of the current geometry.
func (t *Tracker) Sections() []Section {
	out := make([]Section, len(t.sections))
	copy(out, t.sections)
	return out
}

// OnScroll records a scroll sample. The evaluation runs on the next frame;
// samples arriving before it only update the offset.
func (t *Tracker) OnScroll(offset int) {
	t.offset = offset
	if t.frame != nil || t.frames.Closed() {
		return
	}
	t.frame = t.frames.After(FrameInterval, func() {
		t.frame = nil
		t.evaluate()
	})
}

// Evaluate computes the active section for offset immediately, bypassing
// frame coalescing.
func (t *Tracker) Evaluate(offset int) string {
	t.offset = offset
	if t.frame != nil {
		t.frame.Cancel()
		t.frame = nil
	}
	t.evaluate()
	return t.active
}

func (t *Tracker) evaluate() {
	if len(t.sections) == 0 {
		return
	}
	t.scrolled = t.offset > ScrolledThreshold
	next := Active(t.offset, t.sections)
	if next == t.active {
		return
	}
	logger.WithComponent("scrollspy").Debug("active section changed",
		"from", t.active, "to", next, "offset", t.offset)
	t.active = next
	if t.onChange != nil {
		t.onChange(next)
	}
}

// ActiveID returns the active section id.
func (t *Tracker) ActiveID() string {
	return t.active
}

// Offset returns the last recorded scroll offset.
func (t *Tracker) Offset() int {
	return t.offset
}

// Scrolled reports whether the last evaluated offset is past
// ScrolledThreshold.
func (t *Tracker) Scrolled() bool {
	return t.scrolled
}

// SectionOffset returns the top offset of the section with the given id.
func (t *Tracker) SectionOffset(id string) (int, bool) {
	for _, s := range t.sections {
		if s.ID == id {
			return s.Offset, true
		}
	}
	return 0, false
}

// Close releases the pending frame. Samples after Close are recorded but
// never evaluated.
func (t *Tracker) Close() {
	t.frames.Close()
	t.frame = nil
}
