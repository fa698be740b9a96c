package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/contact"
	"github.com/anmolrajas/portfolio/internal/ui"
)

// showFlash puts text in the footer for d. Only one expiry tick runs at a
// time; the FlashTickMsg handler keeps it going while a flash is up.
func (m *Model) showFlash(text string, flashType ui.FlashType, d time.Duration) tea.Cmd {
	m.footer.SetFlashWithDuration(text, flashType, d)
	m.log.Debug("flash", "type", flashType, "text", text)
	if m.flashTicking {
		return nil
	}
	m.flashTicking = true
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.showFlash(text, ui.FlashError, ui.DefaultFlashDuration)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.showFlash(text, ui.FlashWarning, ui.DefaultFlashDuration)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.showFlash(text, ui.FlashInfo, ui.DefaultFlashDuration)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.showFlash(text, ui.FlashSuccess, ui.DefaultFlashDuration)
}

// showContactToast flashes a submission outcome. It stays up as long as the
// success banner does.
func (m *Model) showContactToast(out contact.Outcome) tea.Cmd {
	if out.Err != nil {
		return m.showFlash(out.Notice(), ui.FlashError, contact.SuccessWindow)
	}
	return m.showFlash(out.Notice(), ui.FlashSuccess, contact.SuccessWindow)
}
