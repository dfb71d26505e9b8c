package ui

import (
	"context"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/logging"
)

var _ port.DownloadEventHandler = (*downloadNotices)(nil)

// downloadNotices turns transfer events into toasts and page events.
// Events arrive on transfer goroutines. Toasts are posted to the main
// thread; the emitter hops there itself.
type downloadNotices struct {
	main    port.MainThread
	toaster port.Toaster
	events  port.EventEmitter
}

func (h *downloadNotices) OnDownloadEvent(ctx context.Context, event port.DownloadEvent) {
	if outcome, ok := usecase.TransferOutcome(event); ok && h.events != nil {
		if err := h.events.Emit(ctx, port.DownloadEventName, outcome); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("failed to emit download event")
		}
	}

	message, kind, ok := toastFor(event)
	if !ok || h.toaster == nil {
		return
	}
	logging.FromContext(ctx).Debug().
		Str("transfer_id", string(event.TransferID)).
		Str("message", message).
		Msg("download event")

	h.main.Post(func() {
		h.toaster.Show(ctx, message, kind, 0)
	})
}

// toastFor maps an event to its toast. Started events are already
// announced when the transfer is queued.
func toastFor(event port.DownloadEvent) (string, port.NotificationType, bool) {
	switch event.Type {
	case port.DownloadEventFinished:
		return "Downloaded " + event.Filename, port.NotificationSuccess, true
	case port.DownloadEventFailed:
		if event.Filename == "" {
			return "Download failed", port.NotificationError, true
		}
		return "Download failed: " + event.Filename, port.NotificationError, true
	default:
		return "", port.NotificationInfo, false
	}
}
