// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/rift/internal/logger"
)

// notifyFunc matches beeep.Notify so tests can intercept notifications.
type notifyFunc func(title, message string, icon any) error

var notifier notifyFunc = beeep.Notify

// SetNotifier replaces the notification backend. This is primarily used for
// testing.
func SetNotifier(f notifyFunc) {
	notifier = f
}

// ResetNotifier restores the default beeep backend.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	logger.Debug("notification: sending title=%q message=%q", title, message)
	// Empty icon; beeep falls back to platform defaults.
	err := notifier(title, message, "")
	if err != nil {
		logger.Warn("notification: send failed: %v", err)
	}
	return err
}

// SessionResolved sends a notification that every conflict in the session
// has a resolution.
func SessionResolved(fileCount int) error {
	return Send("Rift", fmt.Sprintf("All conflicts resolved in %d file(s)", fileCount))
}
