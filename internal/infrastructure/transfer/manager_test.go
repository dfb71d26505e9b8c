package transfer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/webshell/internal/application/port"
	portmocks "github.com/bnema/webshell/internal/application/port/mocks"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/entity"
	repomocks "github.com/bnema/webshell/internal/domain/repository/mocks"
	"github.com/bnema/webshell/internal/infrastructure/filesystem"
)

// eventLog collects download events and signals terminal ones.
type eventLog struct {
	mu     sync.Mutex
	events []port.DownloadEvent
	done   chan port.DownloadEvent
}

func newEventLog() *eventLog {
	return &eventLog{done: make(chan port.DownloadEvent, 8)}
}

func (l *eventLog) OnDownloadEvent(_ context.Context, event port.DownloadEvent) {
	l.mu.Lock()
	l.events = append(l.events, event)
	l.mu.Unlock()
	if event.Type != port.DownloadEventStarted {
		l.done <- event
	}
}

func (l *eventLog) wait(t *testing.T) port.DownloadEvent {
	t.Helper()
	select {
	case ev := <-l.done:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("transfer did not finish")
		return port.DownloadEvent{}
	}
}

func newTestManager(t *testing.T, deps Deps) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	fs := filesystem.New(dir)
	deps.Store = fs
	deps.Prepare = usecase.NewPrepareDownloadUseCase(fs)
	m := NewManager(deps, Options{Timeout: 5 * time.Second, RetryCount: 0})
	t.Cleanup(func() { _ = m.Close() })
	return m, dir
}

func TestManager_Enqueue_StoresFileWithSession(t *testing.T) {
	var gotCookie, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 body"))
	}))
	defer srv.Close()

	events := newEventLog()
	history := repomocks.NewMockDownloadRepository(t)
	history.EXPECT().
		Save(mock.Anything, mock.MatchedBy(func(r *entity.DownloadRecord) bool {
			return r.Filename == "invoice.pdf" && r.Route == "direct" && r.Size == 13
		})).
		Return(nil).Once()
	notifier := portmocks.NewMockDesktopNotifier(t)
	notifier.EXPECT().
		NotifyFile(mock.Anything, mock.MatchedBy(func(n port.FileNotice) bool {
			return n.Body == "invoice.pdf" && n.MIMEType == "application/pdf"
		})).
		Return(nil).Once()

	m, dir := newTestManager(t, Deps{Events: events, History: history, Notifier: notifier})

	id, err := m.Enqueue(context.Background(), port.TransferRequest{
		URL:       srv.URL + "/files/invoice.pdf",
		Filename:  "invoice.pdf",
		Cookie:    "session=abc",
		UserAgent: "webshell-test",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ev := events.wait(t)
	require.Equal(t, port.DownloadEventFinished, ev.Type, "error: %v", ev.Error)
	assert.Equal(t, id, ev.TransferID)
	assert.Equal(t, filepath.Join(dir, "invoice.pdf"), ev.Destination)
	assert.Equal(t, "session=abc", gotCookie)
	assert.Equal(t, "webshell-test", gotUA)

	data, err := os.ReadFile(ev.Destination)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 body", string(data))
}

func TestManager_Enqueue_NameFromResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="notes.txt"`)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	events := newEventLog()
	m, dir := newTestManager(t, Deps{Events: events})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("older"), 0o644))

	_, err := m.Enqueue(context.Background(), port.TransferRequest{URL: srv.URL + "/export"})
	require.NoError(t, err)

	ev := events.wait(t)
	require.Equal(t, port.DownloadEventFinished, ev.Type, "error: %v", ev.Error)
	assert.Equal(t, "notes_(1).txt", ev.Filename)

	older, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "older", string(older))
}

func TestManager_Enqueue_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	events := newEventLog()
	m, dir := newTestManager(t, Deps{Events: events})

	_, err := m.Enqueue(context.Background(), port.TransferRequest{URL: srv.URL + "/missing.zip", Filename: "missing.zip"})
	require.NoError(t, err)

	ev := events.wait(t)
	assert.Equal(t, port.DownloadEventFailed, ev.Type)
	require.Error(t, ev.Error)
	assert.Contains(t, ev.Error.Error(), "404")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestManager_Enqueue_RejectsUnsupportedSchemes(t *testing.T) {
	m, _ := newTestManager(t, Deps{})

	for _, raw := range []string{"ftp://files.example.com/a.zip", "file:///etc/passwd", "::bad"} {
		_, err := m.Enqueue(context.Background(), port.TransferRequest{URL: raw})
		assert.Error(t, err, raw)
	}
	_, err := m.Enqueue(context.Background(), port.TransferRequest{URL: "ftp://files.example.com/a.zip"})
	assert.ErrorIs(t, err, ErrSchemeNotSupported)
}

func TestManager_CloseCancelsAndRejects(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	events := newEventLog()
	m, _ := newTestManager(t, Deps{Events: events})

	_, err := m.Enqueue(context.Background(), port.TransferRequest{URL: srv.URL + "/slow.bin", Filename: "slow.bin"})
	require.NoError(t, err)

	require.NoError(t, m.Close())
	ev := events.wait(t)
	assert.Equal(t, port.DownloadEventFailed, ev.Type)

	_, err = m.Enqueue(context.Background(), port.TransferRequest{URL: srv.URL + "/late.bin"})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestManager_Enqueue_AnnouncesStartThenFinish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	events := portmocks.NewMockDownloadEventHandler(t)
	finished := make(chan port.DownloadEvent, 1)

	var started bool
	events.EXPECT().
		OnDownloadEvent(mock.Anything, mock.MatchedBy(func(ev port.DownloadEvent) bool {
			return ev.Type == port.DownloadEventStarted && ev.Filename == "ok.txt"
		})).
		Run(func(context.Context, port.DownloadEvent) { started = true }).
		Return().Once()
	events.EXPECT().
		OnDownloadEvent(mock.Anything, mock.MatchedBy(func(ev port.DownloadEvent) bool {
			return ev.Type == port.DownloadEventFinished
		})).
		Run(func(_ context.Context, ev port.DownloadEvent) { finished <- ev }).
		Return().Once()

	m, dir := newTestManager(t, Deps{Events: events})

	id, err := m.Enqueue(context.Background(), port.TransferRequest{URL: srv.URL + "/ok.txt", Filename: "ok.txt"})
	require.NoError(t, err)
	assert.True(t, started, "started is announced before Enqueue returns")

	select {
	case ev := <-finished:
		assert.Equal(t, id, ev.TransferID)
		assert.Equal(t, filepath.Join(dir, "ok.txt"), ev.Destination)
	case <-time.After(5 * time.Second):
		t.Fatal("transfer did not finish")
	}
}
