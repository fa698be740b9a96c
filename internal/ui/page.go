package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/anmolrajas/portfolio/internal/content"
	"github.com/anmolrajas/portfolio/internal/scrollspy"
)

// Page is the scrolling surface holding every portfolio section. It lays
// the sections out top to bottom and remembers the row each one starts on.
type Page struct {
	viewport  viewport.Model
	portfolio *content.Portfolio
	width     int
	height    int
	starts    []int // First row of each section, in document order
}

// NewPage creates a page over the portfolio
func NewPage(p *content.Portfolio) *Page {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = WheelRows
	return &Page{viewport: vp, portfolio: p}
}

// SetSize resizes the page and re-lays the content out
func (p *Page) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(width)
	p.viewport.SetHeight(height)
	p.Refresh()
}

// Width returns the page width
func (p *Page) Width() int { return p.width }

// Height returns the page height
func (p *Page) Height() int { return p.height }

// Refresh re-renders the content, e.g. after a palette change. The scroll
// position is kept, clamped to the new content.
func (p *Page) Refresh() {
	if p.width <= 0 {
		return
	}
	y := p.viewport.YOffset()
	lines, starts := p.layout()
	p.starts = starts
	p.viewport.SetContentLines(lines)
	p.viewport.SetYOffset(y)
}

// Sections returns the section geometry in scroll units
func (p *Page) Sections() []scrollspy.Section {
	out := make([]scrollspy.Section, len(p.starts))
	for i, row := range p.starts {
		out[i] = scrollspy.Section{
			ID:     p.portfolio.Sections[i].ID,
			Offset: row * RowUnits,
		}
	}
	return out
}

// Offset returns the scroll position in scroll units
func (p *Page) Offset() int {
	return p.viewport.YOffset() * RowUnits
}

// ScrollTo brings the top of the section with the given id to the top of
// the page. It reports whether the section exists.
func (p *Page) ScrollTo(id string) bool {
	i := p.portfolio.SectionIndex(id)
	if i < 0 || i >= len(p.starts) {
		return false
	}
	p.viewport.SetYOffset(p.starts[i])
	return true
}

// ScrollDown scrolls by n rows
func (p *Page) ScrollDown(n int) { p.viewport.ScrollDown(n) }

// ScrollUp scrolls by n rows
func (p *Page) ScrollUp(n int) { p.viewport.ScrollUp(n) }

// PageDown scrolls by one page
func (p *Page) PageDown() { p.viewport.PageDown() }

// PageUp scrolls back by one page
func (p *Page) PageUp() { p.viewport.PageUp() }

// HalfPageDown scrolls by half a page
func (p *Page) HalfPageDown() { p.viewport.HalfPageDown() }

// HalfPageUp scrolls back by half a page
func (p *Page) HalfPageUp() { p.viewport.HalfPageUp() }

// GotoTop scrolls to the first row
func (p *Page) GotoTop() { p.viewport.GotoTop() }

// GotoBottom scrolls to the last row
func (p *Page) GotoBottom() { p.viewport.GotoBottom() }

// Update handles mouse wheel scrolling
func (p *Page) Update(msg tea.Msg) (*Page, tea.Cmd) {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// View renders the visible part of the page
func (p *Page) View() string {
	return p.viewport.View()
}

// layout renders every section and records the row each begins on. The
// tail is padded so the last section can still be scrolled to the top.
func (p *Page) layout() ([]string, []int) {
	inner := p.width - 4
	if inner < 10 {
		inner = p.width
	}
	pad := strings.Repeat(" ", (p.width-inner)/2)

	var lines []string
	starts := make([]int, 0, len(p.portfolio.Sections))
	for i, sec := range p.portfolio.Sections {
		if i > 0 {
			lines = append(lines, "", "")
		}
		starts = append(starts, len(lines))
		for _, l := range strings.Split(p.renderSection(sec, inner), "\n") {
			lines = append(lines, pad+l)
		}
	}

	if n := len(starts); n > 0 {
		lastRows := len(lines) - starts[n-1]
		for i := lastRows; i < p.height; i++ {
			lines = append(lines, "")
		}
	}
	return lines, starts
}

func (p *Page) renderSection(sec content.Section, width int) string {
	var b strings.Builder
	owner := p.portfolio.Owner

	if sec.ID == p.portfolio.Sections[0].ID && owner.Name != "" {
		b.WriteString(HeroNameStyle.Render(owner.Name))
		b.WriteString("\n")
		if owner.Title != "" {
			b.WriteString(HeroTitleStyle.Render(owner.Title))
			b.WriteString("\n")
		}
		if owner.Tagline != "" {
			b.WriteString(wrap(HintStyle, owner.Tagline, width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(SectionTitleStyle.Render(sec.Title))
	b.WriteString("\n")

	if sec.Body != "" {
		b.WriteString("\n")
		b.WriteString(wrap(SectionBodyStyle, reflow(sec.Body), width))
		b.WriteString("\n")
	}

	for _, item := range sec.Items {
		b.WriteString("\n")
		b.WriteString(renderItemHeading(item, width))
		b.WriteString("\n")
		if item.Subheading != "" {
			b.WriteString(wrap(ItemMetaStyle, item.Subheading, width))
			b.WriteString("\n")
		}
		if item.Text != "" {
			b.WriteString(wrap(SectionBodyStyle, reflow(item.Text), width))
			b.WriteString("\n")
		}
		if len(item.Tags) > 0 {
			tags := make([]string, len(item.Tags))
			for i, t := range item.Tags {
				tags[i] = "#" + t
			}
			b.WriteString(wrap(TagStyle, strings.Join(tags, " "), width))
			b.WriteString("\n")
		}
	}

	if sec.ID == "contact" {
		b.WriteString("\n")
		if owner.Email != "" {
			b.WriteString(ItemHeadingStyle.Render("Email  ") + LinkStyle.Render(owner.Email))
			b.WriteString("\n")
		}
		if owner.Location != "" {
			b.WriteString(ItemHeadingStyle.Render("Where  ") + SectionBodyStyle.Render(owner.Location))
			b.WriteString("\n")
		}
		for _, l := range owner.Links {
			b.WriteString(ItemHeadingStyle.Render(l.Label+"  ") + LinkStyle.Render(l.URL))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(HintStyle.Render("Press f to open the contact form, y to copy the address."))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderItemHeading puts the heading on the left and the period flush right,
// truncating the heading when both do not fit.
func renderItemHeading(item content.Item, width int) string {
	heading := item.Heading
	if item.Period == "" {
		return ItemHeadingStyle.Render(runewidth.Truncate(heading, width, "…"))
	}

	period := item.Period
	room := width - runewidth.StringWidth(period) - 2
	if room < 1 {
		return ItemHeadingStyle.Render(runewidth.Truncate(heading, width, "…"))
	}
	heading = runewidth.Truncate(heading, room, "…")
	gap := width - runewidth.StringWidth(heading) - runewidth.StringWidth(period)
	return ItemHeadingStyle.Render(heading) + strings.Repeat(" ", gap) + ItemMetaStyle.Render(period)
}

// reflow joins hard-wrapped lines into paragraphs separated by blank lines
func reflow(text string) string {
	paras := strings.Split(strings.TrimSpace(text), "\n\n")
	for i, para := range paras {
		paras[i] = strings.Join(strings.Fields(para), " ")
	}
	return strings.Join(paras, "\n\n")
}

func wrap(style lipgloss.Style, text string, width int) string {
	return style.Width(width).Render(text)
}
