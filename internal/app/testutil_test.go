package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/clock"
	"github.com/anmolrajas/portfolio/internal/config"
	"github.com/anmolrajas/portfolio/internal/contact"
	"github.com/anmolrajas/portfolio/internal/content"
	"github.com/anmolrajas/portfolio/internal/keys"
	"github.com/anmolrajas/portfolio/internal/storage"
	"github.com/anmolrajas/portfolio/internal/theme"
	"github.com/anmolrajas/portfolio/internal/ui"
)

var testEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// testPortfolio returns four sections, each tall enough that neighbouring
// tops are more than a look-ahead apart.
func testPortfolio() *content.Portfolio {
	para := strings.Repeat("Sentences about the work that fill a few rows of text. ", 12)
	return &content.Portfolio{
		Owner: content.Owner{
			Name:  "Ada Lovelace",
			Title: "Engineer",
			Email: "ada@example.com",
		},
		Sections: []content.Section{
			{ID: "home", Nav: "Home", Title: "Hello", Body: para},
			{ID: "about", Nav: "About", Title: "About", Body: para},
			{ID: "projects", Nav: "Projects", Title: "Projects", Body: para, Items: []content.Item{
				{Heading: "Analytical Engine", Period: "1837", Text: "A mechanical computer."},
			}},
			{ID: "contact", Nav: "Contact", Title: "Contact", Body: para},
		},
	}
}

// recordingDispatcher records payloads and fails with err when set.
type recordingDispatcher struct {
	payloads []contact.Payload
	err      error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, p contact.Payload) error {
	d.payloads = append(d.payloads, p)
	return d.err
}

// testHarness bundles a model with the fake clock driving it.
type testHarness struct {
	m          *Model
	clock      *clock.Fake
	dispatcher *recordingDispatcher
	prefs      storage.KV
}

// newHarness creates a sized model on a fake clock.
func newHarness(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		clock:      clock.NewFake(testEpoch),
		dispatcher: &recordingDispatcher{},
		prefs:      storage.NewMemory(),
	}
	h.m = New(Options{
		Config:     config.DefaultConfig(),
		Portfolio:  testPortfolio(),
		Theme:      theme.NewStore(h.prefs),
		Dispatcher: h.dispatcher,
		Scheduler:  h.clock,
		Picker:     clock.PickerFunc(func(int) int { return 0 }),
	})
	h.m = setSize(h.m, 100, 30)
	t.Cleanup(func() {
		h.m.Close()
		ui.SetTheme(ui.DefaultTheme)
	})
	return h
}

// refreshMsg is an otherwise ignored message that makes the model sync.
type refreshMsg struct{}

// advance moves the fake clock and lets the model pick up engine changes.
func (h *testHarness) advance(d time.Duration) {
	h.clock.Advance(d)
	result, _ := h.m.Update(refreshMsg{})
	h.m = result.(*Model)
}

func (h *testHarness) send(key string) tea.Cmd {
	result, cmd := h.m.Update(keyPress(key))
	h.m = result.(*Model)
	return cmd
}

func (h *testHarness) typeText(text string) {
	h.m = typeText(h.m, text)
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case keys.CtrlD:
		return tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}
	case keys.CtrlU:
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// collectMsgs runs cmd and any batched commands, returning their messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
