package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterMode selects which bindings the footer shows
type FooterMode int

const (
	FooterPage FooterMode = iota
	FooterChat
	FooterContact
	FooterSubmitting
)

// FlashType is the severity of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays up
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient notice shown in place of the key bindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg is sent to check whether the flash message has expired
type FlashTickMsg time.Time

// FlashTick returns a command that sends a FlashTickMsg once per second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	mode         FooterMode
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "↑/↓", Desc: "scroll"},
			{Key: "1-7", Desc: "jump"},
			{Key: "t", Desc: "theme"},
			{Key: "c", Desc: "chat"},
			{Key: "f", Desc: "contact"},
			{Key: "y", Desc: "copy email"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetMode selects the binding set for the focused component
func (f *Footer) SetMode(mode FooterMode) {
	f.mode = mode
}

// SetBindings allows custom page keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) modeBindings() []KeyBinding {
	switch f.mode {
	case FooterChat:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "esc", Desc: "close"},
		}
	case FooterContact:
		return []KeyBinding{
			{Key: "tab", Desc: "next field"},
			{Key: "ctrl+s", Desc: "send"},
			{Key: "esc", Desc: "close"},
		}
	case FooterSubmitting:
		return []KeyBinding{
			{Key: "esc", Desc: "close"},
		}
	default:
		return f.bindings
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.render(renderFlash(f.flashMessage))
	}

	var parts []string
	for _, b := range f.modeBindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	content := strings.Join(parts, "  "+FooterSepStyle.Render("|")+"  ")

	return f.render(content)
}

// render keeps the footer to a single line
func (f *Footer) render(content string) string {
	if inner := f.width - FooterStyle.GetHorizontalFrameSize(); inner > 0 {
		content = ansi.Truncate(content, inner, "…")
	}
	return FooterStyle.Width(f.width).Render(content)
}

func renderFlash(m *FlashMessage) string {
	var icon string
	var c = ColorInfo
	switch m.Type {
	case FlashError:
		icon, c = "✕", ColorError
	case FlashWarning:
		icon, c = "⚠", ColorWarning
	case FlashSuccess:
		icon, c = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	return lipgloss.NewStyle().Foreground(c).Render(icon + " " + m.Text)
}
