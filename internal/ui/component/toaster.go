// Package component provides the widgets layered over the web view.
package component

import (
	"context"
	"sync"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/jwijenbergh/puregotk/v4/gtk"
)

// DefaultToastDurationMs is used when neither the caller nor the config
// sets a duration.
const DefaultToastDurationMs = 2000

var _ port.Toaster = (*Toaster)(nil)

// levelClass returns the CSS class for a notification type.
func levelClass(t port.NotificationType) string {
	switch t {
	case port.NotificationSuccess:
		return "toast-success"
	case port.NotificationWarning:
		return "toast-warning"
	case port.NotificationError:
		return "toast-error"
	default:
		return "toast-info"
	}
}

// resolveDuration picks the caller's duration, then the configured one.
func resolveDuration(requested, configured int) int {
	if requested > 0 {
		return requested
	}
	if configured > 0 {
		return configured
	}
	return DefaultToastDurationMs
}

// Toaster shows one toast at a time at the bottom of the window. A new
// message replaces the visible one and restarts its timer.
type Toaster struct {
	container *gtk.Box
	label     *gtk.Label

	defaultDurationMs int
	currentClass      string
	visible           bool
	dismissTimer      uint

	mu                sync.Mutex
	retainedCallbacks []interface{}
}

// NewToaster creates the toast widget. It is hidden until Show.
func NewToaster(defaultDurationMs int) (*Toaster, error) {
	container := gtk.NewBox(gtk.OrientationHorizontalValue, 0)
	if container == nil {
		return nil, errNilWidget("toastContainer")
	}
	container.AddCssClass("toast")
	container.AddCssClass(levelClass(port.NotificationInfo))
	container.SetHalign(gtk.AlignCenterValue)
	container.SetValign(gtk.AlignEndValue)
	container.SetHexpand(false)
	container.SetVexpand(false)
	// clicks pass through to the page
	container.SetCanTarget(false)
	container.SetCanFocus(false)
	container.SetVisible(false)

	emptyText := ""
	label := gtk.NewLabel(&emptyText)
	if label == nil {
		return nil, errNilWidget("toastLabel")
	}
	label.SetWrap(true)
	label.SetCanTarget(false)
	container.Append(&label.Widget)

	return &Toaster{
		container:         container,
		label:             label,
		defaultDurationMs: defaultDurationMs,
		currentClass:      levelClass(port.NotificationInfo),
	}, nil
}

// SetDefaultDuration changes the duration used when Show gets 0.
func (t *Toaster) SetDefaultDuration(ms int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.defaultDurationMs = ms
}

// Show displays message. Must be called on the main thread.
func (t *Toaster) Show(ctx context.Context, message string, notifType port.NotificationType, durationMs int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	class := levelClass(notifType)
	if class != t.currentClass {
		t.container.RemoveCssClass(t.currentClass)
		t.container.AddCssClass(class)
		t.currentClass = class
	}
	t.label.SetText(message)

	if t.dismissTimer != 0 {
		glib.SourceRemove(t.dismissTimer)
		t.dismissTimer = 0
	}
	if !t.visible {
		t.visible = true
		t.container.SetVisible(true)
	}

	duration := resolveDuration(durationMs, t.defaultDurationMs)
	t.startDismissTimer(duration)

	logging.FromContext(ctx).Debug().
		Str("toast_message", message).
		Str("toast_level", notifType.String()).
		Int("duration", duration).
		Msg("toast shown")
}

// Hide dismisses the toast.
func (t *Toaster) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hide()
}

func (t *Toaster) hide() {
	if !t.visible {
		return
	}
	if t.dismissTimer != 0 {
		glib.SourceRemove(t.dismissTimer)
		t.dismissTimer = 0
	}
	t.visible = false
	t.container.SetVisible(false)
}

// startDismissTimer must be called with the lock held.
func (t *Toaster) startDismissTimer(durationMs int) {
	cb := glib.SourceFunc(func(_ uintptr) bool {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.dismissTimer = 0
		t.hide()
		return false
	})
	t.retainedCallbacks = append(t.retainedCallbacks[:0], cb)
	t.dismissTimer = glib.TimeoutAdd(uint(durationMs), &cb, 0) //nolint:gosec // durations are small positive ints
}

// Widget returns the widget to add to the window overlay.
func (t *Toaster) Widget() *gtk.Widget {
	return &t.container.Widget
}

// IsVisible returns whether the toast is currently visible.
func (t *Toaster) IsVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}
