// Package ui provides the presentation components for the portfolio TUI.
//
// # Overview
//
// The ui package renders the single-page portfolio in a terminal using the
// Bubble Tea framework and Lipgloss styling. Components hold only view state;
// the state engines (scrollspy, theme, chat, contact) live elsewhere and are
// wired in by the app package.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: owner, nav items 1-7, theme indicator       │
//	├───────────────────────────────┬─────────────────────┤
//	│                               │                     │
//	│   Page (scrolling sections)   │  Side panel: chat   │
//	│                               │  or contact form    │
//	│                               │  (when open)        │
//	├───────────────────────────────┴─────────────────────┤
//	│ Footer: key bindings or a flash message             │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton holding the layout arithmetic. All size
// calculations go through it.
//
// Header: The nav bar. Highlights the active section and switches to a
// filled style once the page is scrolled.
//
// Footer: Context-aware key bindings, replaced by a flash message while one
// is showing.
//
// Page: A viewport over every section of the portfolio. It records the row
// each section starts on and reports the geometry in scroll units
// (RowUnits per row) so the section tracker can work with it.
//
// ChatPanel: Transcript, typing indicator and message input.
//
// ContactPanel: The contact form with its submit button, success banner and
// error line.
//
// # Styles
//
// Colors come from the active Theme. SetDark swaps the palette and rebuilds
// every style variable in styles.go.
package ui
