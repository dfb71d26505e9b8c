package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeErrorPopup struct {
	shown     []shownError
	onDismiss func()
}

type shownError struct {
	title   string
	message string
}

func (f *fakeErrorPopup) Show(_ context.Context, title, message string, onDismiss func()) {
	f.shown = append(f.shown, shownError{title: title, message: message})
	f.onDismiss = onDismiss
}

func (f *fakeErrorPopup) Dismiss() {
	if f.onDismiss == nil {
		return
	}
	cb := f.onDismiss
	f.onDismiss = nil
	cb()
}

func TestErrorDialog_QueuesWhilePopupVisible(t *testing.T) {
	popup := &fakeErrorPopup{}
	d := NewErrorDialog(popup)
	ctx := context.Background()

	d.ShowError(ctx, "Error", "first")
	d.ShowError(ctx, "Session expired", "second")
	d.ShowError(ctx, "Error", "third")

	require.Len(t, popup.shown, 1)
	assert.Equal(t, "first", popup.shown[0].message)
	assert.Equal(t, 2, d.Pending())

	popup.Dismiss()
	require.Len(t, popup.shown, 2)
	assert.Equal(t, shownError{title: "Session expired", message: "second"}, popup.shown[1])

	popup.Dismiss()
	require.Len(t, popup.shown, 3)
	assert.Equal(t, "third", popup.shown[2].message)
	assert.Equal(t, 0, d.Pending())

	popup.Dismiss()
	d.ShowError(ctx, "Error", "fourth")
	require.Len(t, popup.shown, 4, "dialog is free again after the queue drains")
}

func TestErrorDialog_NilPopupDrainsQueue(t *testing.T) {
	d := NewErrorDialog(nil)

	assert.NotPanics(t, func() {
		d.ShowError(context.Background(), "Error", "lost")
		d.ShowError(context.Background(), "Error", "also lost")
	})
	assert.Equal(t, 0, d.Pending())
}
