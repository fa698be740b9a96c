package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/clipboard"
	"github.com/anmolrajas/portfolio/internal/contact"
	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/keys"
	"github.com/anmolrajas/portfolio/internal/ui"
)

// handleKeyPress dispatches a key press. Global shortcuts win; everything
// else goes to the focused component.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.CtrlC:
		return m.quit()
	case keys.CtrlT:
		return m.toggleTheme()
	}

	switch m.focus {
	case FocusChat:
		return m.handleChatKey(msg)
	case FocusContact:
		return m.handleContactKey(msg)
	default:
		return m.handlePageKey(msg)
	}
}

func (m *Model) handlePageKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if m.scrollPage(key) {
		m.onScroll()
		return nil
	}

	switch key {
	case "q":
		return m.quit()
	case "t":
		return m.toggleTheme()
	case "c":
		return m.toggleChat()
	case "f":
		return m.openContact()
	case "y":
		return m.copyEmail()
	case "n":
		return m.toggleNotifications()
	case "]":
		return m.jumpRelative(1)
	case "[":
		return m.jumpRelative(-1)
	case keys.Enter:
		if m.ActiveSection() == contactSectionID {
			return m.openContact()
		}
	case keys.Tab:
		switch m.panel {
		case PanelChat:
			return m.setFocus(FocusChat)
		case PanelContact:
			return m.setFocus(FocusContact)
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			return m.jumpToIndex(int(key[0] - '1'))
		}
	}
	return nil
}

// scrollPage applies a scroll key to the page and reports whether key was
// one
func (m *Model) scrollPage(key string) bool {
	switch key {
	case keys.Down, "j":
		m.page.ScrollDown(1)
	case keys.Up, "k":
		m.page.ScrollUp(1)
	case keys.PgDown, keys.Space:
		m.page.PageDown()
	case keys.PgUp:
		m.page.PageUp()
	case keys.CtrlD:
		m.page.HalfPageDown()
	case keys.CtrlU:
		m.page.HalfPageUp()
	case keys.Home, "g":
		m.page.GotoTop()
	case keys.End, "G":
		m.page.GotoBottom()
	default:
		return false
	}
	return true
}

func (m *Model) handleChatKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Escape:
		return m.closePanel()
	case keys.Tab:
		return m.setFocus(FocusPage)
	case keys.Enter:
		return m.sendChat()
	case keys.PgUp:
		m.chatPanel.ScrollUp()
		return nil
	case keys.PgDown:
		m.chatPanel.ScrollDown()
		return nil
	}

	panel, cmd := m.chatPanel.Update(msg)
	m.chatPanel = panel
	return cmd
}

func (m *Model) handleContactKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Escape:
		return m.closePanel()
	case keys.Tab:
		return m.contactPanel.NextField()
	case keys.ShiftTab:
		return m.contactPanel.PrevField()
	case keys.CtrlS:
		return m.submitContact()
	case keys.Enter:
		if m.contactPanel.OnButton() {
			return m.submitContact()
		}
		if f, ok := m.contactPanel.FocusedField(); ok && f != contact.FieldMessage {
			return m.contactPanel.NextField()
		}
	}

	// The form is read-only while a submission is in flight
	if m.contact.Phase() == contact.PhaseSubmitting {
		return nil
	}

	panel, cmd := m.contactPanel.Update(msg)
	m.contactPanel = panel
	if d := m.contactPanel.Draft(); d != m.contact.Draft() {
		m.contact.SetDraft(d)
		m.contactPanel.SetError("")
	}
	return cmd
}

// handleMouseWheel scrolls whichever column the pointer is over
func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.panel != PanelNone && msg.X >= ui.GetViewContext().PageWidth {
		if m.panel == PanelChat {
			m.chatPanel, cmd = m.chatPanel.Update(msg)
		}
		return cmd
	}
	m.page, cmd = m.page.Update(msg)
	m.onScroll()
	return cmd
}

// onScroll feeds the current page offset to the section tracker
func (m *Model) onScroll() {
	m.tracker.OnScroll(m.page.Offset())
}

func (m *Model) jumpTo(id string) tea.Cmd {
	if !m.page.ScrollTo(id) {
		return nil
	}
	m.log.Debug("jumped to section", "id", id)
	m.onScroll()
	return nil
}

func (m *Model) jumpToIndex(i int) tea.Cmd {
	sections := m.portfolio.Sections
	if i < 0 || i >= len(sections) {
		return nil
	}
	return m.jumpTo(sections[i].ID)
}

func (m *Model) jumpRelative(delta int) tea.Cmd {
	i := m.portfolio.SectionIndex(m.ActiveSection()) + delta
	if i < 0 {
		i = 0
	}
	if n := len(m.portfolio.Sections); i >= n {
		i = n - 1
	}
	return m.jumpToIndex(i)
}

// setFocus moves key focus and updates the components' focus styling
func (m *Model) setFocus(f Focus) tea.Cmd {
	if m.focus != f {
		m.log.Debug("focus changed", "from", m.focus, "to", f)
	}
	m.focus = f
	return tea.Batch(
		m.chatPanel.SetFocused(f == FocusChat),
		m.contactPanel.SetFocused(f == FocusContact),
	)
}

// toggleChat opens or closes the chat widget. Only one side panel is shown
// at a time, so opening chat leaves the contact form.
func (m *Model) toggleChat() tea.Cmd {
	if m.panel == PanelContact {
		m.closePanel()
	}
	m.chat.ToggleOpen()
	if !m.chat.IsOpen() {
		m.panel = PanelNone
		m.updateSizes()
		return m.setFocus(FocusPage)
	}
	m.panel = PanelChat
	m.updateSizes()
	return m.setFocus(FocusChat)
}

// openContact shows the contact form, closing the chat widget if open
func (m *Model) openContact() tea.Cmd {
	if m.panel == PanelChat {
		m.closePanel()
	}
	if m.panel != PanelContact {
		m.panel = PanelContact
		m.updateSizes()
	}
	return m.setFocus(FocusContact)
}

// closePanel hides the side panel. Leaving the contact form dismisses a
// success banner; closing chat keeps the conversation.
func (m *Model) closePanel() tea.Cmd {
	switch m.panel {
	case PanelChat:
		if m.chat.IsOpen() {
			m.chat.ToggleOpen()
		}
	case PanelContact:
		m.contact.Dismiss()
		m.contactPanel.SetError("")
		m.syncContact()
	}
	m.panel = PanelNone
	m.updateSizes()
	return m.setFocus(FocusPage)
}

func (m *Model) sendChat() tea.Cmd {
	if err := m.chat.Send(m.chatPanel.Value()); err != nil {
		if errors.Is(err, errors.KindInvalid) {
			return nil
		}
		m.log.Warn("chat send failed", "error", err)
		return m.ShowFlashError("Chat is unavailable")
	}
	m.chatPanel.ClearInput()
	return nil
}

func (m *Model) submitContact() tea.Cmd {
	m.contact.SetDraft(m.contactPanel.Draft())

	err := m.contact.Submit()
	switch {
	case err == nil:
		m.contactPanel.SetPhase(contact.PhaseSubmitting)
		return nil
	case errors.Is(err, errors.KindBusy):
		return m.ShowFlashWarning("Your message is already on its way")
	case errors.Is(err, errors.KindInvalid):
		text, field := validationProblem(m.contact.Draft())
		m.contactPanel.SetError(text)
		return tea.Batch(m.contactPanel.FocusField(field), m.ShowFlashWarning(text))
	default:
		m.log.Warn("contact submit refused", "error", err)
		return m.ShowFlashError(contact.FailureNotice)
	}
}

// validationProblem describes why d was rejected and which field to fix
func validationProblem(d contact.Draft) (string, contact.Field) {
	if missing := d.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = f.String()
		}
		return "Please fill in " + strings.Join(names, ", "), missing[0]
	}
	return "Please enter a valid email address", contact.FieldEmail
}

func (m *Model) toggleTheme() tea.Cmd {
	pref := m.themes.Toggle()
	return m.ShowFlashInfo(fmt.Sprintf("Switched to %s theme", pref))
}

func (m *Model) copyEmail() tea.Cmd {
	email := m.portfolio.Owner.Email
	if email == "" {
		return nil
	}
	if err := clipboard.WriteText(email); err != nil {
		m.log.Warn("clipboard write failed", "error", err)
		return m.ShowFlashError("Clipboard is not available")
	}
	return m.ShowFlashSuccess("Copied " + email)
}

func (m *Model) toggleNotifications() tea.Cmd {
	enabled := !m.config.GetNotificationsEnabled()
	m.config.SetNotificationsEnabled(enabled)

	state := "off"
	if enabled {
		state = "on"
	}
	if m.config.Path() != "" {
		if err := m.config.Save(); err != nil {
			m.log.Warn("failed to save config", "error", err)
			return m.ShowFlashWarning(fmt.Sprintf("Notifications %s (not saved)", state))
		}
	}
	return m.ShowFlashInfo("Notifications " + state)
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}
