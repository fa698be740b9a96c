package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// NavItem is one entry of the nav bar.
type NavItem struct {
	ID    string
	Label string
}

// Header represents the top nav bar
type Header struct {
	width    int
	title    string
	items    []NavItem
	active   string
	scrolled bool
}

// NewHeader creates a new header
func NewHeader(title string, items []NavItem) *Header {
	return &Header{title: title, items: items}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetActive highlights the nav item with the given section id
func (h *Header) SetActive(id string) {
	h.active = id
}

// Active returns the highlighted section id
func (h *Header) Active() string {
	return h.active
}

// SetScrolled switches between the transparent and filled header styles
func (h *Header) SetScrolled(scrolled bool) {
	h.scrolled = scrolled
}

// Scrolled reports whether the filled style is in use
func (h *Header) Scrolled() bool {
	return h.scrolled
}

// Items returns the nav items in display order
func (h *Header) Items() []NavItem {
	return h.items
}

// View renders the header
func (h *Header) View() string {
	style := HeaderStyle
	if h.scrolled {
		style = HeaderScrolledStyle
	}
	inner := h.width - style.GetHorizontalFrameSize()
	if inner <= 0 {
		return ""
	}

	title := HeaderTitleStyle.Render(h.title)

	nav := make([]string, 0, len(h.items))
	for i, item := range h.items {
		label := fmt.Sprintf("%s %s", NavKeyStyle.Render(fmt.Sprint(i+1)), item.Label)
		if item.ID == h.active {
			nav = append(nav, NavActiveStyle.Render(label))
			continue
		}
		nav = append(nav, NavItemStyle.Render(label))
	}
	navBar := strings.Join(nav, "")

	indicator := "☀ light"
	if IsDark() {
		indicator = "☾ dark"
	}
	indicator = HintStyle.Render(indicator)

	// Drop the title first, then the indicator, before truncating the nav
	left := title + "  "
	gap := inner - lipgloss.Width(left) - lipgloss.Width(navBar) - lipgloss.Width(indicator)
	if gap < 1 {
		left = ""
		gap = inner - lipgloss.Width(navBar) - lipgloss.Width(indicator)
	}
	if gap < 1 {
		indicator = ""
		gap = inner - lipgloss.Width(navBar)
	}

	line := left + navBar
	if gap > 0 {
		line += strings.Repeat(" ", gap) + indicator
	} else {
		line = ansi.Truncate(line, inner, "…")
	}

	return style.Width(h.width).Render(line)
}
