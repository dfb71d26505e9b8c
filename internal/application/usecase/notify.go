package usecase

import (
	"context"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/download"
)

// postToast shows a toast on the main thread. Use cases may run on any
// goroutine, the toaster may not.
func postToast(ctx context.Context, main port.MainThread, toaster port.Toaster, message string, kind port.NotificationType) {
	if toaster == nil {
		return
	}
	show := func() { toaster.Show(ctx, message, kind, 0) }
	if main == nil {
		show()
		return
	}
	main.Post(show)
}

// TransferOutcome maps a terminal transfer event to its page event
// payload. Started events have none.
func TransferOutcome(event port.DownloadEvent) (port.DownloadOutcome, bool) {
	outcome := port.DownloadOutcome{
		Route:    download.RouteDirect.String(),
		Filename: event.Filename,
	}
	switch event.Type {
	case port.DownloadEventFinished:
		outcome.Status = port.DownloadStatusFinished
		outcome.Path = event.Destination
	case port.DownloadEventFailed:
		outcome.Status = port.DownloadStatusFailed
		if event.Error != nil {
			outcome.Error = event.Error.Error()
		}
	default:
		return port.DownloadOutcome{}, false
	}
	return outcome, true
}
