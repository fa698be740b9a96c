package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/anmolrajas/portfolio/internal/contact"
)

// SuccessBanner is shown while a submission is in the succeeded phase
const SuccessBanner = "Message sent successfully!"

// contactFocusButton is the focus index of the submit button, after the
// four fields
const contactFocusButton = 4

// ContactPanel renders the contact form
type ContactPanel struct {
	width   int
	height  int
	name    textinput.Model
	email   textinput.Model
	subject textinput.Model
	message textarea.Model
	focus   int
	phase   contact.Phase
	errText string
	focused bool
}

// NewContactPanel creates an empty contact form
func NewContactPanel() *ContactPanel {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Prompt = ""
		return ti
	}

	msg := textarea.New()
	msg.Placeholder = "Your message..."
	msg.CharLimit = MessageCharLimit
	msg.SetHeight(MessageAreaHeight)
	msg.ShowLineNumbers = false
	msg.Prompt = ""

	c := &ContactPanel{
		name:    newInput("Your name", NameCharLimit),
		email:   newInput("you@example.com", EmailCharLimit),
		subject: newInput("What is this about?", SubjectCharLimit),
		message: msg,
	}
	c.RefreshStyles()
	return c
}

// SetSize sets the panel dimensions
func (c *ContactPanel) SetSize(width, height int) {
	c.width = width
	c.height = height
	inner := GetViewContext().InnerWidth(width) - 2
	if inner < 1 {
		inner = 1
	}
	c.name.SetWidth(inner)
	c.email.SetWidth(inner)
	c.subject.SetWidth(inner)
	c.message.SetWidth(inner)
}

// RefreshStyles re-applies the palette to the inputs
func (c *ContactPanel) RefreshStyles() {
	dark := IsDark()
	inputStyles := textinput.DefaultStyles(dark)
	c.name.SetStyles(inputStyles)
	c.email.SetStyles(inputStyles)
	c.subject.SetStyles(inputStyles)
	c.message.SetStyles(textarea.DefaultStyles(dark))
}

// SetFocused gives or takes keyboard focus
func (c *ContactPanel) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	return c.applyFocus()
}

// IsFocused reports whether the form has focus
func (c *ContactPanel) IsFocused() bool {
	return c.focused
}

// FocusIndex returns the focused control: 0-3 are the fields in
// contact.Fields order, 4 is the submit button
func (c *ContactPanel) FocusIndex() int {
	return c.focus
}

// OnButton reports whether the submit button has focus
func (c *ContactPanel) OnButton() bool {
	return c.focus == contactFocusButton
}

// FocusedField returns the field with focus, if any
func (c *ContactPanel) FocusedField() (contact.Field, bool) {
	if c.focus >= len(contact.Fields) {
		return 0, false
	}
	return contact.Fields[c.focus], true
}

// NextField moves focus forward, wrapping after the button
func (c *ContactPanel) NextField() tea.Cmd {
	c.focus = (c.focus + 1) % (contactFocusButton + 1)
	return c.applyFocus()
}

// PrevField moves focus backward, wrapping before the first field
func (c *ContactPanel) PrevField() tea.Cmd {
	c.focus = (c.focus + contactFocusButton) % (contactFocusButton + 1)
	return c.applyFocus()
}

// FocusField moves focus to the given field
func (c *ContactPanel) FocusField(f contact.Field) tea.Cmd {
	for i, field := range contact.Fields {
		if field == f {
			c.focus = i
		}
	}
	return c.applyFocus()
}

func (c *ContactPanel) applyFocus() tea.Cmd {
	c.name.Blur()
	c.email.Blur()
	c.subject.Blur()
	c.message.Blur()
	if !c.focused {
		return nil
	}
	switch c.focus {
	case 0:
		return c.name.Focus()
	case 1:
		return c.email.Focus()
	case 2:
		return c.subject.Focus()
	case 3:
		return c.message.Focus()
	}
	return nil
}

// Draft returns the form contents
func (c *ContactPanel) Draft() contact.Draft {
	return contact.Draft{
		Name:    c.name.Value(),
		Email:   c.email.Value(),
		Subject: c.subject.Value(),
		Message: c.message.Value(),
	}
}

// SetDraft replaces the form contents, e.g. after a successful submission
// clears the draft
func (c *ContactPanel) SetDraft(d contact.Draft) {
	if c.name.Value() != d.Name {
		c.name.SetValue(d.Name)
	}
	if c.email.Value() != d.Email {
		c.email.SetValue(d.Email)
	}
	if c.subject.Value() != d.Subject {
		c.subject.SetValue(d.Subject)
	}
	if c.message.Value() != d.Message {
		c.message.SetValue(d.Message)
	}
}

// SetPhase updates the submission state shown by the button and banner
func (c *ContactPanel) SetPhase(p contact.Phase) {
	c.phase = p
	if p == contact.PhaseSubmitting || p == contact.PhaseSucceeded {
		c.errText = ""
	}
}

// Phase returns the rendered submission state
func (c *ContactPanel) Phase() contact.Phase {
	return c.phase
}

// SetError shows an error line under the form; empty clears it
func (c *ContactPanel) SetError(text string) {
	c.errText = text
}

// Error returns the error line
func (c *ContactPanel) Error() string {
	return c.errText
}

// MessageLength returns the message length in user-perceived characters
func (c *ContactPanel) MessageLength() int {
	return uniseg.GraphemeClusterCount(c.message.Value())
}

// Update forwards input to the focused field
func (c *ContactPanel) Update(msg tea.Msg) (*ContactPanel, tea.Cmd) {
	if !c.focused {
		return c, nil
	}
	var cmd tea.Cmd
	switch c.focus {
	case 0:
		c.name, cmd = c.name.Update(msg)
	case 1:
		c.email, cmd = c.email.Update(msg)
	case 2:
		c.subject, cmd = c.subject.Update(msg)
	case 3:
		c.message, cmd = c.message.Update(msg)
	}
	return c, cmd
}

// View renders the contact form
func (c *ContactPanel) View() string {
	style := PanelStyle
	if c.focused {
		style = PanelFocusedStyle
	}

	label := func(i int, text string) string {
		if c.focused && c.focus == i {
			return FieldLabelFocusedStyle.Render("› " + text)
		}
		return FieldLabelStyle.Render("  " + text)
	}
	field := func(view string) string {
		return lipgloss.NewStyle().PaddingLeft(2).Render(view)
	}

	n := c.MessageLength()
	counterStyle := CounterStyle
	if n >= MessageCharLimit {
		counterStyle = CounterFullStyle
	}
	counter := counterStyle.Render(fmt.Sprintf("%d/%d", n, MessageCharLimit))

	parts := []string{
		PanelTitleStyle.Render("Get In Touch"),
		"",
		label(0, "Name"),
		field(c.name.View()),
		label(1, "Email"),
		field(c.email.View()),
		label(2, "Subject"),
		field(c.subject.View()),
		label(3, "Message") + "  " + counter,
		field(c.message.View()),
		"",
		c.buttonView(),
	}

	switch {
	case c.phase == contact.PhaseSucceeded:
		parts = append(parts, "", SuccessBannerStyle.Render("✓ "+SuccessBanner))
	case c.errText != "":
		width := GetViewContext().InnerWidth(c.width)
		if width < 1 {
			width = DefaultWrapWidth
		}
		parts = append(parts, "", ErrorTextStyle.Width(width).Render(c.errText))
	}

	body := strings.Join(parts, "\n")
	return style.Width(c.width).Height(c.height).MaxHeight(c.height).Render(body)
}

func (c *ContactPanel) buttonView() string {
	if c.phase == contact.PhaseSubmitting {
		return ButtonBusyStyle.Render("Sending...")
	}
	if c.focused && c.focus == contactFocusButton {
		return ButtonFocusedStyle.Render("Send Message")
	}
	return ButtonStyle.Render("Send Message")
}
