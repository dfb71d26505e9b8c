// Package dialog provides UI dialog implementations for the application layer.
package dialog

import (
	"context"
	"sync"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

type errorPopup interface {
	Show(ctx context.Context, title, message string, onDismiss func())
}

type errorDialogRequest struct {
	ctx     context.Context
	title   string
	message string
}

// ErrorDialog shows blocking error popups one at a time. Requests that
// arrive while a popup is visible wait in order.
type ErrorDialog struct {
	popup errorPopup

	mu     sync.Mutex
	active bool
	queue  []errorDialogRequest
}

var _ port.ErrorDialog = (*ErrorDialog)(nil)

// NewErrorDialog creates a presenter over popup.
func NewErrorDialog(popup errorPopup) *ErrorDialog {
	return &ErrorDialog{popup: popup}
}

// ShowError presents title and message, or queues them.
func (d *ErrorDialog) ShowError(ctx context.Context, title, message string) {
	req := errorDialogRequest{ctx: ctx, title: title, message: message}
	if !d.enqueueOrStart(req) {
		logging.FromContext(ctx).Debug().Str("title", title).Msg("error dialog queued")
		return
	}
	d.showRequest(req)
}

// Pending returns the number of queued dialogs, excluding the visible one.
func (d *ErrorDialog) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *ErrorDialog) enqueueOrStart(req errorDialogRequest) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active {
		d.queue = append(d.queue, req)
		return false
	}
	d.active = true
	return true
}

func (d *ErrorDialog) showRequest(req errorDialogRequest) {
	log := logging.FromContext(req.ctx)

	if d.popup == nil {
		log.Error().Str("title", req.title).Str("message", req.message).Msg("error popup not available")
		d.showNext()
		return
	}

	log.Debug().Str("title", req.title).Msg("showing error popup")
	d.popup.Show(req.ctx, req.title, req.message, d.showNext)
}

func (d *ErrorDialog) showNext() {
	d.mu.Lock()
	if len(d.queue) == 0 {
		d.active = false
		d.mu.Unlock()
		return
	}
	next := d.queue[0]
	d.queue = d.queue[1:]
	d.mu.Unlock()

	d.showRequest(next)
}
