package scrollspy

import (
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/anmolrajas/portfolio/internal/clock"
)

var page = []Section{
	{ID: "home", Offset: 0},
	{ID: "about", Offset: 800},
	{ID: "skills", Offset: 1600},
	{ID: "projects", Offset: 2400},
	{ID: "experience", Offset: 3600},
	{ID: "education", Offset: 4400},
	{ID: "contact", Offset: 5000},
}

func TestActive(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		sections []Section
		want     string
	}{
		{"top of page", 0, page, "home"},
		{"look-ahead reaches next section", 700, page, "about"},
		{"just short of look-ahead", 699, page, "home"},
		{"deep in a section", 2000, page, "skills"},
		{"bottom of page", 100000, page, "contact"},
		{"negative overscroll falls back to first", -500, page, "home"},
		{"first section below look-ahead falls back to first",
			0, []Section{{ID: "intro", Offset: 400}, {ID: "body", Offset: 900}}, "intro"},
		{"later section wins a tie",
			0, []Section{{ID: "a", Offset: 50}, {ID: "b", Offset: 50}}, "b"},
		{"single section", 12345, []Section{{ID: "only", Offset: 0}}, "only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Active(tt.offset, tt.sections); got != tt.want {
				t.Errorf("Active(%d) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}

func randomLayout(r *rand.Rand) []Section {
	n := 1 + r.IntN(10)
	offsets := make([]int, n)
	for i := range offsets {
		offsets[i] = r.IntN(5000)
	}
	sort.Ints(offsets)
	sections := make([]Section, n)
	for i, off := range offsets {
		sections[i] = Section{ID: string(rune('a' + i)), Offset: off}
	}
	return sections
}

func TestActive_ResultIsAlwaysASection(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		sections := randomLayout(r)
		offset := r.IntN(7000) - 1000
		got := Active(offset, sections)

		found := false
		for _, s := range sections {
			if s.ID == got {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Active(%d, %v) = %q, not in list", offset, sections, got)
		}
	}
}

func TestActive_MonotonicForForwardScroll(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		sections := randomLayout(r)
		offsetOf := make(map[string]int, len(sections))
		for _, s := range sections {
			offsetOf[s.ID] = s.Offset
		}

		s1 := r.IntN(6000)
		s2 := s1 + 1 + r.IntN(2000)
		a, b := Active(s1, sections), Active(s2, sections)
		if offsetOf[a] > offsetOf[b] {
			t.Fatalf("scrolling %d -> %d moved active %q(%d) back to %q(%d)",
				s1, s2, a, offsetOf[a], b, offsetOf[b])
		}
	}
}

func TestTracker_CoalescesSamplesPerFrame(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	var changes []string
	tr := NewTracker(f, page, func(id string) { changes = append(changes, id) })

	if tr.ActiveID() != "home" {
		t.Fatalf("initial ActiveID() = %q, want home", tr.ActiveID())
	}
	changes = nil

	tr.OnScroll(900)
	tr.OnScroll(1700)
	tr.OnScroll(2500)

	if tr.ActiveID() != "home" {
		t.Error("evaluation must wait for the frame")
	}
	if f.Pending() != 1 {
		t.Errorf("Pending() = %d, want exactly one frame", f.Pending())
	}

	f.Advance(FrameInterval)

	if tr.ActiveID() != "projects" {
		t.Errorf("ActiveID() = %q, want projects (last sample wins)", tr.ActiveID())
	}
	if len(changes) != 1 || changes[0] != "projects" {
		t.Errorf("changes = %v, want [projects]", changes)
	}
	if !tr.Scrolled() {
		t.Error("Scrolled() should be true past the threshold")
	}
}

func TestTracker_NoChangeNoCallback(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	calls := 0
	tr := NewTracker(f, page, func(string) { calls++ })
	calls = 0

	tr.OnScroll(10)
	f.Advance(FrameInterval)
	tr.OnScroll(20)
	f.Advance(FrameInterval)

	if calls != 0 {
		t.Errorf("onChange called %d times without a change", calls)
	}
	if tr.Scrolled() {
		t.Error("Scrolled() should be false below the threshold")
	}
	if tr.Offset() != 20 {
		t.Errorf("Offset() = %d", tr.Offset())
	}
}

func TestTracker_Evaluate(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	tr := NewTracker(f, page, nil)

	tr.OnScroll(100)
	if got := tr.Evaluate(4400); got != "education" {
		t.Errorf("Evaluate() = %q, want education", got)
	}
	if f.Pending() != 0 {
		t.Error("Evaluate should cancel the pending frame")
	}
}

func TestTracker_SetSectionsReevaluates(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	tr := NewTracker(f, page, nil)
	tr.Evaluate(1000)
	if tr.ActiveID() != "about" {
		t.Fatalf("ActiveID() = %q", tr.ActiveID())
	}

	// Relayout pushes everything further down
	shifted := make([]Section, len(page))
	for i, s := range page {
		shifted[i] = Section{ID: s.ID, Offset: s.Offset * 2}
	}
	tr.SetSections(shifted)

	if tr.ActiveID() != "home" {
		t.Errorf("ActiveID() = %q after relayout, want home", tr.ActiveID())
	}
	if off, ok := tr.SectionOffset("about"); !ok || off != 1600 {
		t.Errorf("SectionOffset(about) = %d, %v", off, ok)
	}
	if _, ok := tr.SectionOffset("missing"); ok {
		t.Error("SectionOffset should miss unknown ids")
	}
	if len(tr.Sections()) != len(page) {
		t.Error("Sections() length mismatch")
	}
}

func TestTracker_CloseStopsFrames(t *testing.T) {
	f := clock.NewFake(time.Unix(0, 0))
	calls := 0
	tr := NewTracker(f, page, func(string) { calls++ })
	calls = 0

	tr.OnScroll(3000)
	tr.Close()
	f.Advance(time.Second)
	tr.OnScroll(4000)
	f.Advance(time.Second)

	if calls != 0 {
		t.Errorf("onChange fired %d times after Close", calls)
	}
	if f.Pending() != 0 {
		t.Errorf("Pending() = %d after Close", f.Pending())
	}
}
