package webkit

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/bnema/puregotk-webkit/webkit"
	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/rs/zerolog"
)

var _ port.RenderHost = (*WebView)(nil)

// WebKit error codes that end a load without a user-visible failure.
const (
	policyErrorFrameLoadInterrupted = 102
	networkErrorCancelled           = 302
)

// LoadError is the GError carried by load-failed.
type LoadError struct {
	Code    int
	Message string
}

func (e *LoadError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("load failed (code %d)", e.Code)
	}
	return e.Message
}

// Benign reports errors WebKit raises for interrupted loads, such as a
// navigation turned into a download or superseded by another navigation.
func (e *LoadError) Benign() bool {
	return e.Code == policyErrorFrameLoadInterrupted || e.Code == networkErrorCancelled
}

// gerror mirrors the C GError layout.
type gerror struct {
	domain  uint32
	code    int32
	message *byte
}

func loadErrorFromPtr(ptr uintptr) *LoadError {
	if ptr == 0 {
		return &LoadError{}
	}
	ge := (*gerror)(unsafe.Pointer(ptr)) //nolint:govet // GError owned by the signal emission
	return &LoadError{Code: int(ge.code), Message: goString(ge.message)}
}

func goString(p *byte) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	for ptr := unsafe.Pointer(p); *(*byte)(ptr) != 0; ptr = unsafe.Add(ptr, 1) {
		b.WriteByte(*(*byte)(ptr))
	}
	return b.String()
}

// WebView wraps webkit.WebView with Go-level state tracking and callbacks.
// It is the desktop RenderHost.
type WebView struct {
	inner *webkit.WebView
	ucm   *webkit.UserContentManager

	destroyed atomic.Bool
	uri       string
	title     string

	signalIDs []uint32

	// Callbacks (set by UI layer)
	OnLoadFinished      func(uri string)
	OnLoadFailed        func(uri string, err *LoadError)
	OnTitleChanged      func(string)
	OnProcessTerminated func(reason string)

	frontendAttached atomic.Bool

	logger zerolog.Logger
	mu     sync.RWMutex

	// keep signal and async callbacks reachable while WebKit holds them
	signalCallbacks []interface{}
	asyncCallbacks  []interface{}
}

// NewWebView creates the main WebView. The context must be initialized
// first so the view picks up the persistent network session.
func NewWebView(ctx context.Context, wkCtx *WebKitContext, settings *SettingsManager) (*WebView, error) {
	if wkCtx == nil || !wkCtx.IsInitialized() {
		return nil, fmt.Errorf("webkit context not initialized")
	}

	inner := webkit.NewWebView()
	if inner == nil {
		return nil, fmt.Errorf("failed to create webkit webview")
	}

	wv := &WebView{
		inner:     inner,
		ucm:       inner.GetUserContentManager(),
		logger:    logging.FromContext(ctx).With().Str("component", "webview").Logger(),
		signalIDs: make([]uint32, 0, 4),
	}

	if settings != nil {
		settings.ApplyToWebView(ctx, inner)
	}

	wv.connectSignals()

	wv.logger.Debug().Msg("webview created")
	return wv, nil
}

func (wv *WebView) connectSignals() {
	loadChangedCb := func(inner webkit.WebView, event webkit.LoadEvent) {
		wv.mu.Lock()
		wv.uri = inner.GetUri()
		wv.title = inner.GetTitle()
		uri, title := wv.uri, wv.title
		wv.mu.Unlock()

		if event != webkit.LoadFinishedValue {
			return
		}
		if wv.OnTitleChanged != nil {
			wv.OnTitleChanged(title)
		}
		if wv.OnLoadFinished != nil {
			wv.OnLoadFinished(uri)
		}
	}
	wv.signalIDs = append(wv.signalIDs, wv.inner.ConnectLoadChanged(&loadChangedCb))

	loadFailedCb := func(_ webkit.WebView, _ webkit.LoadEvent, failingURI string, errPtr uintptr) bool {
		loadErr := loadErrorFromPtr(errPtr)
		if loadErr.Benign() {
			wv.logger.Debug().Int("code", loadErr.Code).Str("uri", failingURI).Msg("load interrupted")
			return false
		}
		if wv.OnLoadFailed != nil {
			wv.OnLoadFailed(failingURI, loadErr)
			return true
		}
		return false
	}
	wv.signalIDs = append(wv.signalIDs, wv.inner.ConnectLoadFailed(&loadFailedCb))

	terminatedCb := func(_ webkit.WebView, reason webkit.WebProcessTerminationReason) {
		label := webProcessTerminationReasonString(reason)
		wv.logger.Warn().Str("reason", label).Msg("web process terminated")
		if wv.OnProcessTerminated != nil {
			wv.OnProcessTerminated(label)
		}
	}
	wv.signalIDs = append(wv.signalIDs, wv.inner.ConnectWebProcessTerminated(&terminatedCb))

	wv.signalCallbacks = append(wv.signalCallbacks, loadChangedCb, loadFailedCb, terminatedCb)
}

func webProcessTerminationReasonString(reason webkit.WebProcessTerminationReason) string {
	switch reason {
	case webkit.WebProcessCrashedValue:
		return "crashed"
	case webkit.WebProcessExceededMemoryLimitValue:
		return "exceeded_memory"
	case webkit.WebProcessTerminatedByApiValue:
		return "terminated_by_api"
	default:
		return "unknown"
	}
}

// UserContentManager returns the content manager associated with this WebView.
func (wv *WebView) UserContentManager() *webkit.UserContentManager {
	return wv.ucm
}

// Widget returns the underlying webkit.WebView for GTK embedding.
func (wv *WebView) Widget() *webkit.WebView {
	return wv.inner
}

// LoadURI loads the given URI.
func (wv *WebView) LoadURI(ctx context.Context, uri string) error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview is destroyed")
	}
	wv.inner.LoadUri(uri)
	logging.FromContext(ctx).Debug().Str("uri", uri).Msg("loading URI")
	return nil
}

// Reload reloads the current page.
func (wv *WebView) Reload(ctx context.Context) error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview is destroyed")
	}
	wv.inner.Reload()
	return nil
}

// GoBack navigates back in history.
func (wv *WebView) GoBack(ctx context.Context) error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview is destroyed")
	}
	if !wv.inner.CanGoBack() {
		return fmt.Errorf("cannot go back")
	}
	wv.inner.GoBack()
	logging.FromContext(ctx).Debug().Msg("navigating back")
	return nil
}

// CanGoBack returns true if back navigation is possible.
func (wv *WebView) CanGoBack() bool {
	if wv.destroyed.Load() {
		return false
	}
	return wv.inner.CanGoBack()
}

// URI returns the current URI.
func (wv *WebView) URI() string {
	wv.mu.RLock()
	defer wv.mu.RUnlock()
	return wv.uri
}

// Title returns the current page title.
func (wv *WebView) Title() string {
	wv.mu.RLock()
	defer wv.mu.RUnlock()
	return wv.title
}

// ShowDevTools opens the WebKit inspector.
func (wv *WebView) ShowDevTools() error {
	if wv.destroyed.Load() {
		return fmt.Errorf("webview is destroyed")
	}
	inspector := wv.inner.GetInspector()
	if inspector == nil {
		return fmt.Errorf("failed to get inspector")
	}
	inspector.Show()
	return nil
}

// Destroy marks the view unusable. GTK owns the widget.
func (wv *WebView) Destroy() {
	if wv.destroyed.Swap(true) {
		return
	}
	wv.logger.Debug().Msg("webview destroyed")
}

// EvaluateScript runs script in the main world. It never blocks; failures
// are logged when WebKit reports them.
func (wv *WebView) EvaluateScript(ctx context.Context, script string) {
	if wv.destroyed.Load() {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := logging.FromContext(ctx)

	var cb gio.AsyncReadyCallback
	cb = func(_ uintptr, resPtr uintptr, _ uintptr) {
		defer wv.releaseAsync(&cb)
		if resPtr == 0 {
			log.Warn().Msg("evaluate script: nil async result")
			return
		}

		res := &gio.AsyncResultBase{Ptr: resPtr}
		value, err := wv.inner.EvaluateJavascriptFinish(res)
		if err != nil {
			if nonFatal, signature := classifyEvaluateError(err); nonFatal {
				log.Debug().Str("signature", signature).Msg("evaluate script interrupted")
			} else {
				log.Warn().Err(err).Str("signature", signature).Msg("evaluate script failed")
			}
			return
		}

		if value != nil {
			if jscCtx := value.GetContext(); jscCtx != nil {
				if exc := jscCtx.GetException(); exc != nil {
					log.Warn().Str("exception", exc.GetMessage()).Msg("evaluate script: JS exception")
				}
			}
		}
	}

	wv.mu.Lock()
	wv.asyncCallbacks = append(wv.asyncCallbacks, &cb)
	wv.mu.Unlock()

	wv.inner.EvaluateJavascript(script, -1, nil, nil, nil, &cb, 0)
}

func (wv *WebView) releaseAsync(cb *gio.AsyncReadyCallback) {
	wv.mu.Lock()
	defer wv.mu.Unlock()
	for i, held := range wv.asyncCallbacks {
		if held == cb {
			wv.asyncCallbacks = append(wv.asyncCallbacks[:i], wv.asyncCallbacks[i+1:]...)
			return
		}
	}
}

// classifyEvaluateError separates errors caused by navigation racing the
// evaluation from real script failures.
func classifyEvaluateError(err error) (nonFatal bool, signature string) {
	msg := normalizeErrorSignature(err.Error())
	signature = "evaluate_error:" + msg
	switch {
	case strings.Contains(msg, "operation was canceled"),
		strings.Contains(msg, "execution context was destroyed"):
		return true, signature
	default:
		return false, signature
	}
}

func normalizeErrorSignature(msg string) string {
	fields := strings.Fields(strings.ToLower(msg))
	if len(fields) == 0 {
		return "empty"
	}
	return strings.Join(fields, " ")
}

// AttachFrontend wires the message router and the bridge shim once.
func (wv *WebView) AttachFrontend(ctx context.Context, injector *ContentInjector, router *MessageRouter) error {
	log := logging.FromContext(ctx).With().Str("component", "webview").Logger()

	if wv.destroyed.Load() {
		return fmt.Errorf("webview is destroyed")
	}
	if !wv.frontendAttached.CompareAndSwap(false, true) {
		return nil
	}

	var attachErr error
	defer func() {
		if attachErr != nil {
			wv.frontendAttached.Store(false)
		}
	}()

	if router != nil {
		if _, err := router.SetupMessageHandler(wv.ucm); err != nil {
			attachErr = fmt.Errorf("setup message router: %w", err)
			return attachErr
		}
	}
	if injector != nil {
		injector.InjectScripts(ctx, wv.ucm)
	}

	log.Debug().Msg("frontend attached to webview")
	return nil
}
