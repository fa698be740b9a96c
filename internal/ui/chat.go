package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize/english"

	"github.com/anmolrajas/portfolio/internal/chat"
)

// TypingTickMsg advances the typing indicator animation
type TypingTickMsg time.Time

// TypingTick returns a command that sends a TypingTickMsg after one frame
func TypingTick() tea.Cmd {
	return tea.Tick(TypingDotInterval, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// ChatPanel renders the chat widget: transcript, typing indicator and input
type ChatPanel struct {
	width    int
	height   int
	viewport viewport.Model
	input    textarea.Model
	snapshot chat.Snapshot
	frame    int
	focused  bool
}

// NewChatPanel creates a new chat panel
func NewChatPanel() *ChatPanel {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter sends; the app intercepts it before the textarea sees it
	ti.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = WheelRows

	c := &ChatPanel{viewport: vp, input: ti}
	c.RefreshStyles()
	return c
}

// SetSize sets the chat panel dimensions
func (c *ChatPanel) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(width)
	// Title, blank line above the input, then the input itself
	vpHeight := ctx.InnerHeight(height) - TitleHeight - 1 - TextareaHeight
	if vpHeight < 1 {
		vpHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(vpHeight)
	c.input.SetWidth(innerWidth)
	c.render()
}

// RefreshStyles re-applies the palette to the input and transcript
func (c *ChatPanel) RefreshStyles() {
	c.input.SetStyles(textarea.DefaultStyles(IsDark()))
	c.render()
}

// SetFocused sets the focus state
func (c *ChatPanel) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused reports whether the input has focus
func (c *ChatPanel) IsFocused() bool {
	return c.focused
}

// SetSnapshot replaces the rendered session state. The transcript follows
// new messages to the bottom.
func (c *ChatPanel) SetSnapshot(s chat.Snapshot) {
	grew := len(s.Transcript) != len(c.snapshot.Transcript) || s.Typing != c.snapshot.Typing
	c.snapshot = s
	c.render()
	if grew {
		c.viewport.GotoBottom()
	}
}

// Snapshot returns the last rendered session state
func (c *ChatPanel) Snapshot() chat.Snapshot {
	return c.snapshot
}

// AdvanceTyping moves the typing indicator one frame. It reports whether
// the indicator is still animating.
func (c *ChatPanel) AdvanceTyping() bool {
	if !c.snapshot.Typing {
		c.frame = 0
		return false
	}
	c.frame = (c.frame + 1) % 3
	c.render()
	return true
}

// Value returns the text in the input
func (c *ChatPanel) Value() string {
	return c.input.Value()
}

// ClearInput empties the input
func (c *ChatPanel) ClearInput() {
	c.input.Reset()
}

// ScrollUp scrolls the transcript back by one page
func (c *ChatPanel) ScrollUp() { c.viewport.PageUp() }

// ScrollDown scrolls the transcript forward by one page
func (c *ChatPanel) ScrollDown() { c.viewport.PageDown() }

// Update forwards input events to the textarea and wheel events to the
// transcript
func (c *ChatPanel) Update(msg tea.Msg) (*ChatPanel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.(type) {
	case tea.MouseWheelMsg:
		c.viewport, cmd = c.viewport.Update(msg)
	default:
		if c.focused {
			c.input, cmd = c.input.Update(msg)
		}
	}
	return c, cmd
}

func (c *ChatPanel) render() {
	width := c.viewport.Width()
	if width <= 0 {
		width = DefaultWrapWidth
	}

	if len(c.snapshot.Transcript) == 0 && !c.snapshot.Typing {
		c.viewport.SetContent(ChatEmptyStyle.Width(width).Render("Ask me anything about my work."))
		return
	}

	var b strings.Builder
	for i, m := range c.snapshot.Transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderChatMessage(m, width))
	}
	if c.snapshot.Typing {
		if len(c.snapshot.Transcript) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(ChatTypingStyle.Render("Assistant is typing" + strings.Repeat(".", c.frame+1)))
	}
	c.viewport.SetContent(b.String())
}

func renderChatMessage(m chat.Message, width int) string {
	label := ChatBotLabelStyle.Render("Assistant")
	if m.Author == chat.AuthorUser {
		label = ChatUserLabelStyle.Render("You")
	}
	header := label + " " + ChatTimeStyle.Render(m.At.Local().Format("15:04"))
	return header + "\n" + ChatTextStyle.Width(width).Render(m.Text)
}

// View renders the chat panel
func (c *ChatPanel) View() string {
	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}

	title := PanelTitleStyle.Render("Chat")
	if c.snapshot.Queued > 0 {
		title += HintStyle.Render("(" + english.Plural(c.snapshot.Queued, "reply", "replies") + " pending)")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		c.viewport.View(),
		"",
		c.input.View(),
	)
	return style.Width(c.width).Height(c.height).MaxHeight(c.height).Render(body)
}
