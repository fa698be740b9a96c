package ui

import (
	"sync"

	"github.com/anmolrajas/portfolio/internal/logger"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	PageWidth     int
	PanelWidth    int // Zero when no side panel is open

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when the terminal size or
// the side panel visibility changes. It is called from the main event loop.
func (v *ViewContext) UpdateTerminalSize(width, height int, panelOpen bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Validate dimensions to prevent negative layout values
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.PanelWidth = 0
	if panelOpen {
		v.PanelWidth = SidePanelWidth(width)
	}
	v.PageWidth = width - v.PanelWidth

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"pageWidth", v.PageWidth,
		"panelWidth", v.PanelWidth,
	)
}

// SidePanelWidth returns the width of the chat/contact panel for a terminal
// of the given width.
func SidePanelWidth(width int) int {
	w := width * 2 / SidePanelWidthRatio
	if w < SidePanelMinWidth {
		w = SidePanelMinWidth
	}
	if w > width/2 && width/2 >= SidePanelMinWidth {
		w = width / 2
	}
	if w > width {
		w = width
	}
	return w
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
