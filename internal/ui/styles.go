package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, rebuilt from the active Theme by regenerateStyles
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorBgSelected  color.Color
	ColorBgScrolled  color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Header styles
var (
	HeaderStyle         lipgloss.Style
	HeaderScrolledStyle lipgloss.Style
	HeaderTitleStyle    lipgloss.Style
	NavItemStyle        lipgloss.Style
	NavActiveStyle      lipgloss.Style
	NavKeyStyle         lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
	FooterSepStyle  lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
)

// Page styles
var (
	HeroNameStyle     lipgloss.Style
	HeroTitleStyle    lipgloss.Style
	SectionTitleStyle lipgloss.Style
	SectionBodyStyle  lipgloss.Style
	ItemHeadingStyle  lipgloss.Style
	ItemMetaStyle     lipgloss.Style
	TagStyle          lipgloss.Style
	LinkStyle         lipgloss.Style
	HintStyle         lipgloss.Style
)

// Chat styles
var (
	ChatUserLabelStyle lipgloss.Style
	ChatBotLabelStyle  lipgloss.Style
	ChatTextStyle      lipgloss.Style
	ChatTimeStyle      lipgloss.Style
	ChatTypingStyle    lipgloss.Style
	ChatEmptyStyle     lipgloss.Style
)

// Contact form styles
var (
	FieldLabelStyle        lipgloss.Style
	FieldLabelFocusedStyle lipgloss.Style
	ButtonStyle            lipgloss.Style
	ButtonFocusedStyle     lipgloss.Style
	ButtonBusyStyle        lipgloss.Style
	SuccessBannerStyle     lipgloss.Style
	ErrorTextStyle         lipgloss.Style
	CounterStyle           lipgloss.Style
	CounterFullStyle       lipgloss.Style
)

func init() {
	regenerateStyles()
}

// buildStyles derives every style from the Color* variables
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	HeaderScrolledStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBgScrolled).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	NavItemStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	NavActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorBgSelected).
		Padding(0, 1)

	NavKeyStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterSepStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)

	HeroNameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	HeroTitleStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	SectionTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Underline(true).
		Foreground(ColorPrimary)

	SectionBodyStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ItemHeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	ItemMetaStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted)

	TagStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	LinkStyle = lipgloss.NewStyle().
		Underline(true).
		Foreground(ColorInfo)

	HintStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ChatUserLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorUser)

	ChatBotLabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAssistant)

	ChatTextStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatTimeStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	ChatTypingStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted)

	ChatEmptyStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted)

	FieldLabelStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FieldLabelFocusedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2)

	ButtonFocusedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 2)

	ButtonBusyStyle = lipgloss.NewStyle().
		Faint(true).
		Foreground(ColorTextMuted).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 2)

	SuccessBannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess)

	ErrorTextStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	CounterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	CounterFullStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
}
