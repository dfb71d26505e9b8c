package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/webshell/internal/application/bridge"
	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/build"
	"github.com/bnema/webshell/internal/domain/script"
	"github.com/bnema/webshell/internal/infrastructure/filesystem"
	"github.com/bnema/webshell/internal/infrastructure/headless"
	"github.com/bnema/webshell/internal/infrastructure/transfer"
	"github.com/bnema/webshell/internal/logging"
)

// ProbePageURL is a built-in page that prints every native callback.
const ProbePageURL = "about:probe"

const probePage = `<!doctype html>
<html>
<head><title>webshell probe</title></head>
<body>
<p>webshell probe</p>
<script>
window.onNativeResponse = function (id, json) { console.log("response " + id + " " + json); };
window.onNativeEvent = function (name, json) { console.log("event " + name + " " + json); };
window.onScanResult = function (data) { console.log("scan " + data); };
</script>
</body>
</html>`

const defaultProbeTimeout = 30 * time.Second

// ProbeOptions configures RunProbe.
type ProbeOptions struct {
	// URL is loaded first. Empty loads ProbePageURL.
	URL string
	// Envelopes are posted to the bridge, in order, once the page loaded.
	Envelopes   []string
	HandlerName string
	DownloadDir string
	Timeout     time.Duration
	UserAgent   string
	Build       build.Info
	DelayedWork time.Duration
	Out         io.Writer
}

// RunProbe drives the bridge against a headless page and prints what the
// page and the shell would show. It returns once the page loaded, every
// envelope was handled and no response, timer, download or queued script
// is left.
func RunProbe(ctx context.Context, opts ProbeOptions) error {
	if opts.URL == "" {
		opts.URL = ProbePageURL
	}
	if opts.HandlerName == "" {
		opts.HandlerName = "webshell"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProbeTimeout
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	ctx = logging.WithComponent(ctx, "probe")
	// Background bridge work ends with the run.
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	session, err := headless.NewSession(opts.UserAgent)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	p := &probe{out: opts.Out, loop: headless.NewLoop(ctx)}

	store := filesystem.New(opts.DownloadDir)
	prepare := usecase.NewPrepareDownloadUseCase(store)
	transfers := transfer.NewManager(transfer.Deps{
		Store:   store,
		Prepare: prepare,
		Events:  p,
	}, transfer.Options{Timeout: opts.Timeout})
	defer func() { _ = transfers.Close() }()

	var (
		br        *bridge.Bridge
		intercept *usecase.InterceptDownloadUseCase
		observe   *usecase.ObservePageUseCase
	)
	host := headless.NewHost(ctx, p.loop, headless.Options{
		HandlerName: opts.HandlerName,
		UserScripts: []string{script.BridgeShim(opts.HandlerName)},
		Fetch:       probeFetcher{next: headless.NewFetcher(opts.Timeout, session)},
		OnMessage:   func(raw string) { br.Dispatch(ctx, raw) },
		OnDownload: func(d headless.Download) {
			if _, err := intercept.Execute(ctx, usecase.DownloadRequest{
				URL:               d.URL,
				MIMEType:          d.MIMEType,
				SuggestedFilename: d.SuggestedFilename,
				UserAgent:         session.UserAgent(),
			}); err != nil {
				p.printf("download refused: %v\n", err)
			}
		},
		OnLoadFinished: func(uri string) {
			p.printf("loaded %s\n", uri)
			p.loaded = true
			observe.OnPageFinished(ctx, uri)
		},
		OnLoadFailed: func(uri string, err error) {
			p.printf("load failed %s: %v\n", uri, err)
			p.loaded = true
			observe.OnLoadFailed(ctx, uri, err)
		},
		Console: func(level, msg string) { p.printf("console[%s]: %s\n", level, msg) },
	})

	dispatcher := bridge.NewDispatcher(host, p.loop)
	p.events = dispatcher
	observe = usecase.NewObservePageUseCase(dispatcher, p, p.loop)
	intercept = usecase.NewInterceptDownloadUseCase(dispatcher, &countingQueue{next: transfers, probe: p}, session, p, p.loop)
	br = bridge.New(bridge.Deps{
		Dispatcher: dispatcher,
		Main:       p.loop,
		Toaster:    p,
		Dialogs:    p,
		Lifecycle:  p,
		Logout:     usecase.NewLogoutUseCase(session),
		Persist: usecase.NewPersistDownloadUseCase(usecase.PersistDownloadDeps{
			Store:   store,
			Prepare: prepare,
			Toaster: p,
			Main:    p.loop,
			Events:  dispatcher,
		}),
		Build:       opts.Build,
		DelayedWork: opts.DelayedWork,
		Go:          p.goTracked,
	})

	if err := host.LoadURI(ctx, opts.URL); err != nil {
		return err
	}

	sent := false
	err = p.loop.RunUntil(ctx, func() bool {
		if p.quit {
			return true
		}
		if !p.loaded {
			return false
		}
		if !sent && len(opts.Envelopes) > 0 {
			sent = true
			for _, env := range opts.Envelopes {
				p.loop.Post(func() { br.Dispatch(ctx, env) })
			}
			return false
		}
		// A goroutine may post its last script just before it is released.
		return dispatcher.Pending() == 0 &&
			host.PendingTimers() == 0 &&
			p.inflight.Load() == 0 &&
			p.loop.Pending() == 0
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("probe did not settle within %s", opts.Timeout)
	}
	return err
}

// probe is the headless stand-in for the window: it prints toasts, dialogs
// and lifecycle requests instead of showing them.
type probe struct {
	out    io.Writer
	loop   *headless.Loop
	events port.EventEmitter

	outMu sync.Mutex

	// main thread only
	loaded bool
	quit   bool

	inflight atomic.Int64
}

var (
	_ port.Toaster              = (*probe)(nil)
	_ port.ErrorDialog          = (*probe)(nil)
	_ port.AppLifecycle         = (*probe)(nil)
	_ port.DownloadEventHandler = (*probe)(nil)
)

func (p *probe) printf(format string, args ...any) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *probe) Show(_ context.Context, message string, kind port.NotificationType, _ int) {
	p.printf("toast[%s]: %s\n", kind, message)
}

func (p *probe) ShowError(_ context.Context, title, message string) {
	p.printf("dialog[%s]: %s\n", title, message)
}

func (p *probe) Quit() {
	p.printf("exit\n")
	p.quit = true
}

func (p *probe) OnDownloadEvent(ctx context.Context, event port.DownloadEvent) {
	outcome, ok := usecase.TransferOutcome(event)
	if !ok {
		return
	}
	if event.Type == port.DownloadEventFinished {
		p.printf("download finished: %s\n", event.Destination)
	} else {
		p.printf("download failed: %s\n", event.Filename)
	}
	// The event script is queued before the transfer is released.
	if err := p.events.Emit(ctx, port.DownloadEventName, outcome); err != nil {
		p.printf("event failed: %v\n", err)
	}
	p.done()
}

// goTracked runs fn on a new goroutine and keeps the loop from settling
// until it returned.
func (p *probe) goTracked(fn func()) {
	p.inflight.Add(1)
	go func() {
		defer p.done()
		fn()
	}()
}

// done releases one in-flight unit and wakes the loop to re-check.
func (p *probe) done() {
	p.inflight.Add(-1)
	p.loop.Post(func() {})
}

// countingQueue marks every accepted transfer in flight until its
// finished or failed event.
type countingQueue struct {
	next  port.TransferQueue
	probe *probe
}

func (q *countingQueue) Enqueue(ctx context.Context, req port.TransferRequest) (port.TransferID, error) {
	q.probe.inflight.Add(1)
	id, err := q.next.Enqueue(ctx, req)
	if err != nil {
		q.probe.done()
	}
	return id, err
}

// probeFetcher serves ProbePageURL and delegates everything else.
type probeFetcher struct {
	next headless.PageFetcher
}

func (f probeFetcher) Fetch(ctx context.Context, uri string) (string, error) {
	if uri == ProbePageURL {
		return probePage, nil
	}
	return f.next.Fetch(ctx, uri)
}
