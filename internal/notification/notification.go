// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/anmolrajas/portfolio/internal/logger"
)

// AppName titles every notification.
const AppName = "Portfolio"

// notifier is swapped out in tests so no real notification is shown.
var notifier = func(title, message string, icon any) error {
	return beeep.Notify(title, message, icon)
}

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores beeep delivery.
func ResetNotifier() {
	notifier = func(title, message string, icon any) error {
		return beeep.Notify(title, message, icon)
	}
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// ContactOutcome announces the result of a contact form submission.
func ContactOutcome(notice string) error {
	return Send(AppName, notice)
}
