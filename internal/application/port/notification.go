package port

import "context"

// NotificationType picks the toast style.
type NotificationType int

const (
	NotificationInfo NotificationType = iota
	NotificationSuccess
	NotificationError
	NotificationWarning
)

var notificationNames = [...]string{"info", "success", "error", "warning"}

// String returns the style name. Out-of-range values read as "info".
func (t NotificationType) String() string {
	if t < 0 || int(t) >= len(notificationNames) {
		return notificationNames[NotificationInfo]
	}
	return notificationNames[t]
}

// Toaster shows transient messages over the page. Main thread only.
type Toaster interface {
	// Show displays message for durationMs; 0 uses the configured default.
	Show(ctx context.Context, message string, kind NotificationType, durationMs int)
}

// ErrorDialog shows a modal error. A dialog requested while another is
// visible waits for it to be dismissed. Main thread only.
type ErrorDialog interface {
	ShowError(ctx context.Context, title, message string)
}
