package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anmolrajas/portfolio/internal/ui"
)

// contactSectionID is the section whose Enter shortcut opens the form
const contactSectionID = "contact"

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height, m.panel != PanelNone)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.page.SetSize(ctx.PageWidth, ctx.ContentHeight)
	if ctx.PanelWidth > 0 {
		m.chatPanel.SetSize(ctx.PanelWidth, ctx.ContentHeight)
		m.contactPanel.SetSize(ctx.PanelWidth, ctx.ContentHeight)
	}

	// A relayout moves section tops; re-derive the active section at once
	m.tracker.SetSections(m.page.Sections())
	m.tracker.Evaluate(m.page.Offset())
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.WindowTitle = m.portfolio.Owner.Name
	v.BackgroundColor = ui.ColorBg
	v.ForegroundColor = ui.ColorText

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	body := m.page.View()
	switch m.panel {
	case PanelChat:
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.chatPanel.View())
	case PanelContact:
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.contactPanel.View())
	}

	v.SetContent(lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		body,
		m.footer.View(),
	))
	return v
}
