// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidePanelWidthRatio is the denominator for the side panel width (2/5 of total width)
	SidePanelWidthRatio = 5

	// SidePanelMinWidth keeps the chat and contact panels usable on narrow terminals
	SidePanelMinWidth = 36

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// MessageAreaHeight is the number of lines for the contact message field
	MessageAreaHeight = 5

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp degenerate sizes
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Scroll geometry
const (
	// RowUnits is the number of scroll units one terminal row represents.
	// The section tracker's look-ahead and scrolled threshold are expressed
	// in these units.
	RowUnits = 20

	// WheelRows is how many rows a mouse wheel notch scrolls
	WheelRows = 3
)

// Contact form limits
const (
	NameCharLimit    = 100
	EmailCharLimit   = 254
	SubjectCharLimit = 150
	MessageCharLimit = 2000
)

// Animation
const (
	// TypingDotInterval is the frame time of the typing indicator
	TypingDotInterval = 400 * time.Millisecond
)
