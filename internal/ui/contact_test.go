package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/contact"
)

func newTestContactPanel() *ContactPanel {
	c := NewContactPanel()
	c.SetSize(70, 30)
	c.SetFocused(true)
	return c
}

func typeInto(c *ContactPanel, s string) *ContactPanel {
	for _, r := range s {
		c, _ = c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return c
}

func TestContactPanel_FieldNavigation(t *testing.T) {
	c := newTestContactPanel()

	if f, ok := c.FocusedField(); !ok || f != contact.FieldName {
		t.Fatalf("Expected name focused initially, got %v %v", f, ok)
	}

	for _, want := range []contact.Field{contact.FieldEmail, contact.FieldSubject, contact.FieldMessage} {
		c.NextField()
		if f, ok := c.FocusedField(); !ok || f != want {
			t.Errorf("Expected %v focused, got %v", want, f)
		}
	}

	c.NextField()
	if !c.OnButton() {
		t.Error("Expected the submit button after the last field")
	}

	c.NextField()
	if c.FocusIndex() != 0 {
		t.Errorf("Expected focus to wrap to the first field, got %d", c.FocusIndex())
	}

	c.PrevField()
	if !c.OnButton() {
		t.Error("PrevField from the first field should wrap to the button")
	}
}

func TestContactPanel_TypingFillsDraft(t *testing.T) {
	c := newTestContactPanel()

	c = typeInto(c, "Ada")
	c.FocusField(contact.FieldEmail)
	c = typeInto(c, "ada@example.com")
	c.FocusField(contact.FieldMessage)
	c = typeInto(c, "Hello")

	d := c.Draft()
	if d.Name != "Ada" || d.Email != "ada@example.com" || d.Message != "Hello" {
		t.Errorf("Unexpected draft %+v", d)
	}
	if d.Subject != "" {
		t.Errorf("Subject should be empty, got %q", d.Subject)
	}
}

func TestContactPanel_SetDraftClears(t *testing.T) {
	c := newTestContactPanel()
	c = typeInto(c, "Ada")

	c.SetDraft(contact.Draft{})
	if !c.Draft().IsEmpty() {
		t.Errorf("Expected empty draft, got %+v", c.Draft())
	}
}

func TestContactPanel_PhaseRendering(t *testing.T) {
	tests := []struct {
		name    string
		phase   contact.Phase
		errText string
		want    string
		notWant string
	}{
		{"idle", contact.PhaseIdle, "", "Send Message", SuccessBanner},
		{"submitting", contact.PhaseSubmitting, "", "Sending...", "Send Message"},
		{"succeeded", contact.PhaseSucceeded, "", SuccessBanner, "Sending..."},
		{"failed", contact.PhaseFailed, contact.FailureNotice, contact.FailureNotice, SuccessBanner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContactPanel()
			c.SetError(tt.errText)
			c.SetPhase(tt.phase)

			view := stripANSI(c.View())
			if !strings.Contains(view, tt.want) {
				t.Errorf("Expected %q in view, got %q", tt.want, view)
			}
			if strings.Contains(view, tt.notWant) {
				t.Errorf("Did not expect %q in view", tt.notWant)
			}
		})
	}
}

func TestContactPanel_SubmittingClearsError(t *testing.T) {
	c := newTestContactPanel()
	c.SetError("email: invalid address")

	c.SetPhase(contact.PhaseSubmitting)
	if c.Error() != "" {
		t.Errorf("Expected error cleared on submit, got %q", c.Error())
	}
}

func TestContactPanel_MessageLengthCountsGraphemes(t *testing.T) {
	c := newTestContactPanel()
	c.FocusField(contact.FieldMessage)
	c.message.SetValue("héllo 👋🏽")

	if got := c.MessageLength(); got != 7 {
		t.Errorf("Expected 7 user-perceived characters, got %d", got)
	}
	if !strings.Contains(stripANSI(c.View()), "7/2000") {
		t.Error("Expected the counter in the view")
	}
}

func TestContactPanel_BlurredIgnoresInput(t *testing.T) {
	c := NewContactPanel()
	c.SetSize(70, 30)

	c = typeInto(c, "x")
	if !c.Draft().IsEmpty() {
		t.Errorf("Blurred form should ignore input, got %+v", c.Draft())
	}
}
