package app

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/chat"
	"github.com/anmolrajas/portfolio/internal/contact"
	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/keys"
	"github.com/anmolrajas/portfolio/internal/logger"
	"github.com/anmolrajas/portfolio/internal/scrollspy"
	"github.com/anmolrajas/portfolio/internal/theme"
	"github.com/anmolrajas/portfolio/internal/ui"
)

func TestNew_InitialState(t *testing.T) {
	h := newHarness(t)

	if h.m.Focus() != FocusPage {
		t.Errorf("Expected page focus, got %v", h.m.Focus())
	}
	if h.m.Panel() != PanelNone {
		t.Errorf("Expected no side panel, got %v", h.m.Panel())
	}
	if h.m.ActiveSection() != "home" {
		t.Errorf("Expected home active, got %q", h.m.ActiveSection())
	}
	if h.m.header.Scrolled() {
		t.Error("Header should not be scrolled at the top")
	}
}

func TestSectionJump_ActivatesAfterFrame(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"2", "about"},
		{"3", "projects"},
		{"4", "contact"},
		{"1", "home"},
	}

	h := newHarness(t)
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h.send(tt.key)
			h.advance(scrollspy.FrameInterval)

			if h.m.ActiveSection() != tt.want {
				t.Errorf("Expected %q active after pressing %s, got %q", tt.want, tt.key, h.m.ActiveSection())
			}
		})
	}
}

func TestSectionJump_WaitsForFrame(t *testing.T) {
	h := newHarness(t)

	h.send("3")
	if h.m.ActiveSection() != "home" {
		t.Errorf("Active section should not change before the frame, got %q", h.m.ActiveSection())
	}

	h.advance(scrollspy.FrameInterval)
	if h.m.ActiveSection() != "projects" {
		t.Errorf("Expected projects after the frame, got %q", h.m.ActiveSection())
	}
	if !h.m.header.Scrolled() {
		t.Error("Header should be scrolled away from the top")
	}
}

func TestSectionJump_OutOfRangeIgnored(t *testing.T) {
	h := newHarness(t)

	h.send("9")
	if h.m.page.Offset() != 0 {
		t.Errorf("Expected no scroll for a missing section, got offset %d", h.m.page.Offset())
	}
}

func TestSectionJump_Relative(t *testing.T) {
	h := newHarness(t)

	h.send("]")
	h.advance(scrollspy.FrameInterval)
	if h.m.ActiveSection() != "about" {
		t.Fatalf("Expected about after ], got %q", h.m.ActiveSection())
	}

	h.send("[")
	h.advance(scrollspy.FrameInterval)
	if h.m.ActiveSection() != "home" {
		t.Errorf("Expected home after [, got %q", h.m.ActiveSection())
	}

	h.send("[")
	h.advance(scrollspy.FrameInterval)
	if h.m.ActiveSection() != "home" {
		t.Errorf("[ at the first section should stay put, got %q", h.m.ActiveSection())
	}
}

func TestScroll_CoalescedPerFrame(t *testing.T) {
	h := newHarness(t)

	h.send("j")
	h.send(keys.Down)
	h.send("j")

	if got := h.clock.Pending(); got != 1 {
		t.Errorf("Expected one pending evaluation for a burst of scrolls, got %d", got)
	}
	h.advance(scrollspy.FrameInterval)
	if got := h.clock.Pending(); got != 0 {
		t.Errorf("Expected the frame to be consumed, got %d pending", got)
	}
	if h.m.page.Offset() != 3*ui.RowUnits {
		t.Errorf("Expected offset %d, got %d", 3*ui.RowUnits, h.m.page.Offset())
	}
	if !h.m.header.Scrolled() {
		t.Error("Three rows down should count as scrolled")
	}
}

func TestScroll_KeysMoveThePage(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		moves bool
	}{
		{"page down", keys.PgDown, true},
		{"half page down", keys.CtrlD, true},
		{"space", keys.Space, true},
		{"end", keys.End, true},
		{"up at top", keys.Up, false},
		{"home at top", keys.Home, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.send(tt.key)
			if moved := h.m.page.Offset() > 0; moved != tt.moves {
				t.Errorf("Expected moved=%v, got offset %d", tt.moves, h.m.page.Offset())
			}
		})
	}
}

func TestMouseWheel_ScrollsPage(t *testing.T) {
	h := newHarness(t)

	result, _ := h.m.Update(tea.MouseWheelMsg{X: 5, Y: 5, Button: tea.MouseWheelDown})
	h.m = result.(*Model)

	if h.m.page.Offset() != ui.WheelRows*ui.RowUnits {
		t.Errorf("Expected one notch to scroll %d rows, got offset %d", ui.WheelRows, h.m.page.Offset())
	}
	if h.clock.Pending() != 1 {
		t.Errorf("Expected a pending frame, got %d", h.clock.Pending())
	}
}

func TestThemeToggle(t *testing.T) {
	h := newHarness(t)

	h.send("t")
	if !ui.IsDark() {
		t.Error("Expected the dark palette after t")
	}
	if v, _, _ := h.prefs.Get(theme.StorageKey); v != theme.ValueDark {
		t.Errorf("Expected %q persisted, got %q", theme.ValueDark, v)
	}
	if !h.m.footer.HasFlash() {
		t.Error("Expected a flash confirming the switch")
	}
	if !strings.Contains(h.m.View().Content, "dark") {
		t.Error("Expected the header to show the dark indicator")
	}

	// ctrl+t works from inside the chat input
	h.send("c")
	h.send(keys.CtrlT)
	if ui.IsDark() {
		t.Error("Expected the light palette after ctrl+t")
	}
	if h.m.chatPanel.Value() != "" {
		t.Errorf("ctrl+t should not reach the input, got %q", h.m.chatPanel.Value())
	}
}

func TestThemeRestoredFromStorage(t *testing.T) {
	h := newHarness(t)
	h.send("t")

	m := New(Options{Portfolio: testPortfolio(), Theme: theme.NewStore(h.prefs), Scheduler: h.clock})
	defer m.Close()
	if !ui.IsDark() {
		t.Error("A new model should apply the stored dark preference")
	}
}

func TestChat_OpenShowsGreeting(t *testing.T) {
	h := newHarness(t)

	h.send("c")
	if h.m.Panel() != PanelChat || h.m.Focus() != FocusChat {
		t.Fatalf("Expected chat panel focused, got panel %v focus %v", h.m.Panel(), h.m.Focus())
	}
	if !h.m.chat.IsOpen() {
		t.Error("Expected the chat widget open")
	}

	h.advance(chat.DefaultLeadDelay)
	if !h.m.chatPanel.Snapshot().Typing {
		t.Error("Expected the typing indicator after the lead delay")
	}
	if !h.m.typingAnimating {
		t.Error("Expected the typing animation to start")
	}

	h.advance(chat.DefaultTypingMin)
	snap := h.m.chatPanel.Snapshot()
	if len(snap.Transcript) != 1 || snap.Transcript[0].Text != chat.Greeting {
		t.Fatalf("Expected the greeting, got %+v", snap.Transcript)
	}
	if snap.Typing {
		t.Error("Typing should stop once the greeting lands")
	}
}

func TestChat_SendAndReply(t *testing.T) {
	h := newHarness(t)
	h.send("c")
	h.advance(5 * time.Second)

	h.typeText("hello")
	h.send(keys.Enter)

	if h.m.chatPanel.Value() != "" {
		t.Errorf("Expected the input cleared after send, got %q", h.m.chatPanel.Value())
	}
	snap := h.m.chatPanel.Snapshot()
	if n := len(snap.Transcript); n != 2 {
		t.Fatalf("Expected greeting plus user message, got %d messages", n)
	}
	if last := snap.Transcript[1]; last.Author != chat.AuthorUser || last.Text != "hello" {
		t.Errorf("Unexpected user message %+v", last)
	}

	h.advance(5 * time.Second)
	snap = h.m.chatPanel.Snapshot()
	if n := len(snap.Transcript); n != 3 {
		t.Fatalf("Expected a bot reply, got %d messages", n)
	}
	if reply := snap.Transcript[2]; reply.Author != chat.AuthorBot || reply.Text != chat.CannedResponses[0] {
		t.Errorf("Unexpected reply %+v", reply)
	}
}

func TestChat_BlankSendIgnored(t *testing.T) {
	h := newHarness(t)
	h.send("c")
	h.advance(5 * time.Second)

	h.send(keys.Enter)
	h.advance(5 * time.Second)

	if n := len(h.m.chatPanel.Snapshot().Transcript); n != 1 {
		t.Errorf("Blank input should not add messages, got %d", n)
	}
	if h.m.footer.HasFlash() {
		t.Error("Blank input should not raise a flash")
	}
}

func TestChat_CloseKeepsConversation(t *testing.T) {
	h := newHarness(t)
	h.send("c")
	h.typeText("hi")
	h.send(keys.Enter)

	h.send(keys.Escape)
	if h.m.Panel() != PanelNone || h.m.Focus() != FocusPage {
		t.Fatalf("Expected the panel closed, got panel %v focus %v", h.m.Panel(), h.m.Focus())
	}
	if h.m.chat.IsOpen() {
		t.Error("Expected the widget closed")
	}

	// Replies keep landing while the widget is closed
	h.advance(10 * time.Second)
	h.send("c")
	if n := len(h.m.chatPanel.Snapshot().Transcript); n != 3 {
		t.Errorf("Expected greeting, message and reply after reopening, got %d", n)
	}
}

func TestChat_TabReturnsToPage(t *testing.T) {
	h := newHarness(t)
	h.send("c")

	h.send(keys.Tab)
	if h.m.Focus() != FocusPage || h.m.Panel() != PanelChat {
		t.Fatalf("Expected page focus with chat still shown, got focus %v panel %v", h.m.Focus(), h.m.Panel())
	}

	h.send("j")
	if h.m.page.Offset() == 0 {
		t.Error("Page keys should scroll once focus is back on the page")
	}

	h.send(keys.Tab)
	if h.m.Focus() != FocusChat {
		t.Errorf("Tab from the page should refocus chat, got %v", h.m.Focus())
	}
}

// fillContactForm types a complete draft into the open form.
func fillContactForm(h *testHarness, email string) {
	h.typeText("Ada")
	h.send(keys.Tab)
	h.typeText(email)
	h.send(keys.Tab)
	h.typeText("Hi")
	h.send(keys.Tab)
	h.typeText("Hello there")
}

func TestContact_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		fill      func(h *testHarness)
		wantText  string
		wantField contact.Field
	}{
		{
			name:      "empty form",
			fill:      func(h *testHarness) {},
			wantText:  "name, email, subject, message",
			wantField: contact.FieldName,
		},
		{
			name: "missing email",
			fill: func(h *testHarness) {
				h.typeText("Ada")
			},
			wantText:  "email, subject, message",
			wantField: contact.FieldEmail,
		},
		{
			name:      "bad email",
			fill:      func(h *testHarness) { fillContactForm(h, "nope") },
			wantText:  "valid email",
			wantField: contact.FieldEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.send("f")
			tt.fill(h)
			h.send(keys.CtrlS)

			if !strings.Contains(h.m.contactPanel.Error(), tt.wantText) {
				t.Errorf("Expected error containing %q, got %q", tt.wantText, h.m.contactPanel.Error())
			}
			if f, ok := h.m.contactPanel.FocusedField(); !ok || f != tt.wantField {
				t.Errorf("Expected %v focused, got %v", tt.wantField, f)
			}
			if h.m.contact.Phase() != contact.PhaseIdle {
				t.Errorf("Expected idle phase, got %v", h.m.contact.Phase())
			}
			h.advance(time.Minute)
			if len(h.dispatcher.payloads) != 0 {
				t.Error("Invalid drafts must not be dispatched")
			}
		})
	}
}

func TestContact_SubmitSuccess(t *testing.T) {
	h := newHarness(t)
	h.send("f")
	if h.m.Panel() != PanelContact || h.m.Focus() != FocusContact {
		t.Fatalf("Expected contact panel focused, got panel %v focus %v", h.m.Panel(), h.m.Focus())
	}

	fillContactForm(h, "ada@example.com")
	h.send(keys.CtrlS)

	if h.m.contactPanel.Phase() != contact.PhaseSubmitting {
		t.Fatalf("Expected submitting, got %v", h.m.contactPanel.Phase())
	}
	if !strings.Contains(h.m.View().Content, "Sending...") {
		t.Error("Expected the busy button while submitting")
	}

	// Keys are ignored while the form is read-only
	h.typeText("zzz")
	if h.m.contactPanel.Draft().Message != "Hello there" {
		t.Errorf("Form should be read-only while submitting, got %q", h.m.contactPanel.Draft().Message)
	}

	h.advance(0)
	if len(h.dispatcher.payloads) != 1 {
		t.Fatalf("Expected one dispatch, got %d", len(h.dispatcher.payloads))
	}
	p := h.dispatcher.payloads[0]
	if p.SenderName != "Ada" || p.SenderEmail != "ada@example.com" || p.Subject != "Hi" || p.Message != "Hello there" {
		t.Errorf("Unexpected payload %+v", p)
	}

	if h.m.contactPanel.Phase() != contact.PhaseSucceeded {
		t.Errorf("Expected succeeded, got %v", h.m.contactPanel.Phase())
	}
	if !h.m.contactPanel.Draft().IsEmpty() {
		t.Errorf("Expected the form cleared, got %+v", h.m.contactPanel.Draft())
	}
	if !strings.Contains(h.m.View().Content, ui.SuccessBanner) {
		t.Error("Expected the success banner")
	}
	if !h.m.footer.HasFlash() {
		t.Error("Expected a success flash")
	}

	h.advance(contact.SuccessWindow)
	if h.m.contactPanel.Phase() != contact.PhaseIdle {
		t.Errorf("Expected the banner to revert, got %v", h.m.contactPanel.Phase())
	}
}

func TestContact_EnterOnButtonSubmits(t *testing.T) {
	h := newHarness(t)
	h.send("f")
	fillContactForm(h, "ada@example.com")

	h.send(keys.Tab)
	if !h.m.contactPanel.OnButton() {
		t.Fatal("Expected the submit button focused")
	}
	h.send(keys.Enter)
	if h.m.contact.Phase() != contact.PhaseSubmitting {
		t.Errorf("Expected submitting after enter on the button, got %v", h.m.contact.Phase())
	}
}

func TestContact_SubmitWhileInFlight(t *testing.T) {
	h := newHarness(t)
	h.send("f")
	fillContactForm(h, "ada@example.com")

	h.send(keys.CtrlS)
	h.send(keys.CtrlS)
	h.advance(0)

	if len(h.dispatcher.payloads) != 1 {
		t.Errorf("Expected a single dispatch, got %d", len(h.dispatcher.payloads))
	}
}

func TestContact_SubmitFailure(t *testing.T) {
	h := newHarness(t)
	h.dispatcher.err = stderrors.New("smtp down")
	h.send("f")
	fillContactForm(h, "ada@example.com")

	h.send(keys.CtrlS)
	h.advance(0)

	if h.m.contactPanel.Phase() != contact.PhaseFailed {
		t.Fatalf("Expected failed, got %v", h.m.contactPanel.Phase())
	}
	if h.m.contactPanel.Error() != contact.FailureNotice {
		t.Errorf("Expected %q, got %q", contact.FailureNotice, h.m.contactPanel.Error())
	}
	if h.m.contactPanel.Draft().Name != "Ada" {
		t.Errorf("Expected the draft kept for a retry, got %+v", h.m.contactPanel.Draft())
	}

	// Editing clears the failure
	h.typeText("!")
	if h.m.contact.Phase() != contact.PhaseIdle {
		t.Errorf("Expected an edit to clear the failure, got %v", h.m.contact.Phase())
	}
	if h.m.contactPanel.Error() != "" {
		t.Errorf("Expected the error text cleared, got %q", h.m.contactPanel.Error())
	}
}

func TestContact_LeavingDismissesBanner(t *testing.T) {
	h := newHarness(t)
	h.send("f")
	fillContactForm(h, "ada@example.com")
	h.send(keys.CtrlS)
	h.advance(0)

	h.send(keys.Escape)
	if h.m.Panel() != PanelNone || h.m.Focus() != FocusPage {
		t.Fatalf("Expected the form closed, got panel %v focus %v", h.m.Panel(), h.m.Focus())
	}
	if h.m.contact.Phase() != contact.PhaseIdle {
		t.Errorf("Leaving the form should dismiss the banner, got %v", h.m.contact.Phase())
	}
}

func TestContact_EnterOnContactSectionOpensForm(t *testing.T) {
	h := newHarness(t)
	h.send("4")
	h.advance(scrollspy.FrameInterval)

	h.send(keys.Enter)
	if h.m.Panel() != PanelContact {
		t.Errorf("Expected enter on the contact section to open the form, got %v", h.m.Panel())
	}
}

func TestPanels_OnlyOneAtATime(t *testing.T) {
	h := newHarness(t)

	h.send("c")
	h.send(keys.Tab)
	h.send("f")
	if h.m.Panel() != PanelContact {
		t.Fatalf("Expected the contact form, got %v", h.m.Panel())
	}
	if h.m.chat.IsOpen() {
		t.Error("Opening the form should close chat")
	}

	h.send(keys.Escape)
	h.send("c")
	if h.m.Panel() != PanelChat {
		t.Errorf("Expected chat, got %v", h.m.Panel())
	}
}

func TestPanels_ResizePage(t *testing.T) {
	h := newHarness(t)
	full := h.m.page.Width()

	h.send("c")
	if h.m.page.Width() >= full {
		t.Errorf("Expected the page to narrow beside the panel: %d >= %d", h.m.page.Width(), full)
	}
	if !strings.Contains(h.m.View().Content, "Chat") {
		t.Error("Expected the chat panel in the view")
	}

	h.send(keys.Escape)
	if h.m.page.Width() != full {
		t.Errorf("Expected the page to regain width %d, got %d", full, h.m.page.Width())
	}
}

func TestNotificationsToggle(t *testing.T) {
	h := newHarness(t)
	before := h.m.config.GetNotificationsEnabled()

	h.send("n")
	if h.m.config.GetNotificationsEnabled() == before {
		t.Error("Expected n to flip desktop notifications")
	}
	if !h.m.footer.HasFlash() {
		t.Error("Expected a flash")
	}
	h.send("n")
	if h.m.config.GetNotificationsEnabled() != before {
		t.Error("Expected a second n to restore the setting")
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		key   string
	}{
		{"q on page", nil, "q"},
		{"ctrl+c on page", nil, keys.CtrlC},
		{"ctrl+c in chat", []string{"c"}, keys.CtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			for _, k := range tt.setup {
				h.send(k)
			}

			cmd := h.send(tt.key)
			quit := false
			for _, msg := range collectMsgs(cmd) {
				if _, ok := msg.(tea.QuitMsg); ok {
					quit = true
				}
			}
			if !quit {
				t.Error("Expected a quit command")
			}
			if err := h.m.chat.Send("late"); !errors.Is(err, errors.KindClosed) {
				t.Errorf("Expected the chat session torn down, got %v", err)
			}
			if h.clock.Pending() != 0 {
				t.Errorf("Expected no timers after quit, got %d", h.clock.Pending())
			}
		})
	}
}

func TestQuit_QTypesInChat(t *testing.T) {
	h := newHarness(t)
	h.send("c")

	h.send("q")
	if h.m.chatPanel.Value() != "q" {
		t.Errorf("Expected q typed into the chat input, got %q", h.m.chatPanel.Value())
	}
}

func TestView_Loading(t *testing.T) {
	m := New(Options{Portfolio: testPortfolio()})
	defer m.Close()

	if v := m.View(); v.Content != "Loading..." {
		t.Errorf("Expected loading view before the first size, got %q", v.Content)
	}
}

func TestView_Layout(t *testing.T) {
	h := newHarness(t)

	v := h.m.View()
	if !v.AltScreen {
		t.Error("Expected the alt screen")
	}
	if v.MouseMode != tea.MouseModeCellMotion {
		t.Error("Expected cell motion mouse mode")
	}
	if v.WindowTitle != "Ada Lovelace" {
		t.Errorf("Expected the owner as window title, got %q", v.WindowTitle)
	}

	for _, want := range []string{"Ada Lovelace", "1 Home", "quit"} {
		if !strings.Contains(v.Content, want) {
			t.Errorf("Expected %q in the view", want)
		}
	}
}

func TestFlashTick_ClearsExpired(t *testing.T) {
	h := newHarness(t)
	h.m.footer.SetFlashWithDuration("gone soon", ui.FlashInfo, 0)

	result, cmd := h.m.Update(ui.FlashTickMsg(time.Now()))
	h.m = result.(*Model)
	if h.m.footer.HasFlash() {
		t.Error("Expected the expired flash cleared")
	}
	if cmd != nil {
		t.Error("Expected no further ticks once the flash is gone")
	}
}

func TestFlash_SingleTickChain(t *testing.T) {
	h := newHarness(t)

	if cmd := h.send("t"); cmd == nil {
		t.Fatal("Expected the first flash to start the expiry tick")
	}
	if cmd := h.send("t"); cmd != nil {
		t.Error("Expected no second tick while one is running")
	}

	h.m.footer.SetFlashWithDuration("gone soon", ui.FlashInfo, 0)
	result, _ := h.m.Update(ui.FlashTickMsg(time.Now()))
	h.m = result.(*Model)

	if cmd := h.send("t"); cmd == nil {
		t.Error("Expected a new tick once the previous one stopped")
	}
}

func TestContactOutcome_NotificationFailureLogged(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	logger.Reset()
	if err := logger.Init(logPath); err != nil {
		t.Fatalf("logger.Init: %v", err)
	}
	t.Cleanup(logger.Reset)

	h := newHarness(t)
	var notices []string
	h.m.notify = func(notice string) error {
		notices = append(notices, notice)
		return stderrors.New("no notification daemon")
	}
	h.m.config.SetNotificationsEnabled(true)
	h.m.flashTicking = true // keep the expiry tick out of the returned command

	h.m.onContactOutcome(contact.Outcome{Phase: contact.PhaseSucceeded})
	cmd := h.m.drain()
	if cmd == nil {
		t.Fatal("Expected a notification command")
	}
	if msg := cmd(); msg != nil {
		t.Errorf("Expected no message from the notification command, got %T", msg)
	}

	if len(notices) != 1 || notices[0] != contact.SuccessNotice {
		t.Errorf("Expected one success notice, got %v", notices)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "desktop notification failed") || !strings.Contains(string(data), "no notification daemon") {
		t.Errorf("Expected the failure logged, got %q", data)
	}
}

func TestContactOutcome_NotificationsOff(t *testing.T) {
	h := newHarness(t)
	called := false
	h.m.notify = func(string) error {
		called = true
		return nil
	}
	h.m.flashTicking = true

	h.m.onContactOutcome(contact.Outcome{Phase: contact.PhaseFailed})
	if cmd := h.m.drain(); cmd != nil {
		cmd()
	}
	if called {
		t.Error("Expected no desktop notification while notifications are off")
	}
}
