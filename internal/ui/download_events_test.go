package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/webshell/internal/application/bridge"
	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/port/mocks"
)

func TestToastFor(t *testing.T) {
	tests := []struct {
		name     string
		event    port.DownloadEvent
		message  string
		kind     port.NotificationType
		expected bool
	}{
		{
			name:     "started is silent",
			event:    port.DownloadEvent{Type: port.DownloadEventStarted, Filename: "a.pdf"},
			expected: false,
		},
		{
			name:     "finished",
			event:    port.DownloadEvent{Type: port.DownloadEventFinished, Filename: "a.pdf"},
			message:  "Downloaded a.pdf",
			kind:     port.NotificationSuccess,
			expected: true,
		},
		{
			name:     "failed with name",
			event:    port.DownloadEvent{Type: port.DownloadEventFailed, Filename: "a.pdf", Error: errors.New("boom")},
			message:  "Download failed: a.pdf",
			kind:     port.NotificationError,
			expected: true,
		},
		{
			name:     "failed without name",
			event:    port.DownloadEvent{Type: port.DownloadEventFailed},
			message:  "Download failed",
			kind:     port.NotificationError,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message, kind, ok := toastFor(tt.event)
			assert.Equal(t, tt.expected, ok)
			if tt.expected {
				assert.Equal(t, tt.message, message)
				assert.Equal(t, tt.kind, kind)
			}
		})
	}
}

func TestDownloadNotices_PostsToMainThread(t *testing.T) {
	var queued []func()
	main := port.MainThreadFunc(func(fn func()) { queued = append(queued, fn) })

	toaster := mocks.NewMockToaster(t)
	h := &downloadNotices{main: main, toaster: toaster}

	h.OnDownloadEvent(context.Background(), port.DownloadEvent{Type: port.DownloadEventFinished, Filename: "orders.csv"})
	h.OnDownloadEvent(context.Background(), port.DownloadEvent{Type: port.DownloadEventStarted, Filename: "orders.csv"})

	// nothing is shown until the main thread runs the task
	assert.Len(t, queued, 1)

	toaster.EXPECT().Show(mock.Anything, "Downloaded orders.csv", port.NotificationSuccess, 0).Return()
	queued[0]()
}

func TestDownloadNotices_EmitsOutcome(t *testing.T) {
	events := mocks.NewMockEventEmitter(t)
	h := &downloadNotices{main: port.MainThreadFunc(func(fn func()) { fn() }), events: events}

	events.EXPECT().
		Emit(mock.Anything, port.DownloadEventName, port.DownloadOutcome{
			Status:   port.DownloadStatusFinished,
			Route:    "direct",
			Filename: "invoice.pdf",
			Path:     "/home/u/Downloads/invoice.pdf",
		}).
		Return(nil).Once()
	events.EXPECT().
		Emit(mock.Anything, port.DownloadEventName, port.DownloadOutcome{
			Status:   port.DownloadStatusFailed,
			Route:    "direct",
			Filename: "missing.zip",
			Error:    "status 404",
		}).
		Return(nil).Once()

	ctx := context.Background()
	h.OnDownloadEvent(ctx, port.DownloadEvent{Type: port.DownloadEventStarted, Filename: "invoice.pdf"})
	h.OnDownloadEvent(ctx, port.DownloadEvent{
		Type: port.DownloadEventFinished, Filename: "invoice.pdf", Destination: "/home/u/Downloads/invoice.pdf",
	})
	h.OnDownloadEvent(ctx, port.DownloadEvent{
		Type: port.DownloadEventFailed, Filename: "missing.zip", Error: errors.New("status 404"),
	})
}

// scriptHost records scripts and whether the main thread was running them.
type scriptHost struct {
	onMain  *bool
	scripts []string
	offMain int
}

func (h *scriptHost) EvaluateScript(_ context.Context, src string) {
	if !*h.onMain {
		h.offMain++
	}
	h.scripts = append(h.scripts, src)
}

func (h *scriptHost) LoadURI(context.Context, string) error { return nil }
func (h *scriptHost) CanGoBack() bool                       { return false }
func (h *scriptHost) GoBack(context.Context) error          { return nil }
func (h *scriptHost) URI() string                           { return "" }

func TestDownloadNotices_EventScriptRunsOnMainThread(t *testing.T) {
	var (
		queued []func()
		onMain bool
	)
	main := port.MainThreadFunc(func(fn func()) { queued = append(queued, fn) })
	host := &scriptHost{onMain: &onMain}
	h := &downloadNotices{main: main, events: bridge.NewDispatcher(host, main)}

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.OnDownloadEvent(context.Background(), port.DownloadEvent{
			Type: port.DownloadEventFinished, Filename: "a.pdf", Destination: "/d/a.pdf",
		})
	}()
	<-done

	require.Empty(t, host.scripts, "evaluated before the main thread ran")
	require.Len(t, queued, 1)

	onMain = true
	queued[0]()
	onMain = false

	require.Len(t, host.scripts, 1)
	assert.Zero(t, host.offMain)
	src := host.scripts[0]
	assert.Contains(t, src, "onNativeEvent")
	assert.Contains(t, src, `"download"`)
	assert.Contains(t, src, `\"status\":\"finished\"`)
}
