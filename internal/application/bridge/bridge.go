package bridge

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/build"
	protocol "github.com/bnema/webshell/internal/domain/bridge"
	"github.com/bnema/webshell/internal/logging"
)

// DefaultDelayedWork is how long DELAYED_WORK pretends to work.
const DefaultDelayedWork = 3 * time.Second

// Deps are the collaborators of a Bridge. Toaster, Dialogs and Lifecycle
// are main-thread only and are always reached through the dispatcher's
// main thread.
type Deps struct {
	Dispatcher *Dispatcher
	Main       port.MainThread
	Toaster    port.Toaster
	Dialogs    port.ErrorDialog
	Lifecycle  port.AppLifecycle
	Logout     *usecase.LogoutUseCase
	Persist    *usecase.PersistDownloadUseCase
	Build      build.Info

	// DelayedWork overrides DefaultDelayedWork when positive.
	DelayedWork time.Duration
	// ToastDurationMs is passed to the toaster; 0 uses its default.
	ToastDurationMs int
	// Go runs background work. Defaults to a new goroutine per task.
	Go func(func())
}

// Bridge is the single native entry point reachable from script.
type Bridge struct {
	deps Deps
}

// New creates a Bridge.
func New(deps Deps) *Bridge {
	if deps.DelayedWork <= 0 {
		deps.DelayedWork = DefaultDelayedWork
	}
	if deps.Go == nil {
		deps.Go = func(fn func()) { go fn() }
	}
	return &Bridge{deps: deps}
}

// Dispatch decodes raw and runs the operation it names. It never panics:
// protocol errors and handler failures are logged and dropped.
func (b *Bridge) Dispatch(ctx context.Context, raw string) {
	ctx = logging.WithComponent(ctx, "bridge")
	log := logging.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("bridge handler panicked")
		}
	}()

	req, err := protocol.Decode(raw)
	if err != nil {
		if errors.Is(err, protocol.ErrUnknownAction) {
			log.Warn().Err(err).Msg("unknown action")
		} else {
			log.Warn().Err(err).Int("length", len(raw)).Msg("dropping malformed envelope")
		}
		return
	}

	ctx = logging.WithCallbackID(ctx, req.CallbackID)
	log = logging.FromContext(ctx)

	if req.ExpectsResponse() && !b.deps.Dispatcher.Begin(req.CallbackID) {
		log.Warn().Str("action", string(req.Op.Action())).Msg("callback id already in flight, dropping call")
		return
	}

	log.Debug().Str("action", string(req.Op.Action())).Str("kind", req.Op.Kind().String()).Msg("dispatching")
	b.handle(ctx, req)
}

func (b *Bridge) handle(ctx context.Context, req protocol.Request) {
	switch op := req.Op.(type) {
	case protocol.Logout:
		b.onMain(ctx, "logout", func() {
			if b.deps.Logout == nil {
				return
			}
			if err := b.deps.Logout.Execute(ctx); err != nil {
				logging.FromContext(ctx).Error().Err(err).Msg("logout failed")
			}
		})

	case protocol.ExitApp:
		b.onMain(ctx, "exit", func() {
			if b.deps.Lifecycle != nil {
				b.deps.Lifecycle.Quit()
			}
		})

	case protocol.ShowToast:
		b.onMain(ctx, "toast", func() {
			if b.deps.Toaster != nil {
				b.deps.Toaster.Show(ctx, op.Message, port.NotificationInfo, b.deps.ToastDurationMs)
			}
		})

	case protocol.ErrorDialog:
		b.onMain(ctx, "error dialog", func() {
			if b.deps.Dialogs != nil {
				b.deps.Dialogs.ShowError(ctx, "Error", op.Message)
			}
		})

	case protocol.GetAppVersion:
		b.respond(ctx, req.CallbackID, b.deps.Build.AppVersion())

	case protocol.DelayedWork:
		b.background(ctx, "delayed work", func() {
			timer := time.NewTimer(b.deps.DelayedWork)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				logging.FromContext(ctx).Debug().Msg("delayed work abandoned")
				b.deps.Dispatcher.Abandon(req.CallbackID)
				return
			}
			b.respond(ctx, req.CallbackID, map[string]string{"status": "done"})
		})

	case protocol.DownloadBlob:
		if b.deps.Persist == nil {
			logging.FromContext(ctx).Warn().Msg("blob download received without a download store")
			return
		}
		b.background(ctx, "persist download", func() {
			_, _ = b.deps.Persist.Execute(ctx, usecase.PersistDownloadInput{
				Base64:    op.Base64,
				MIMEType:  op.MIMEType,
				Filename:  op.Filename,
				SourceURL: op.SourceURL,
			})
		})

	default:
		logging.FromContext(ctx).Warn().Str("action", string(op.Action())).Msg("operation has no handler")
	}
}

func (b *Bridge) respond(ctx context.Context, callbackID string, payload any) {
	if callbackID == "" {
		return
	}
	if err := b.deps.Dispatcher.Respond(ctx, callbackID, payload); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("response not delivered")
	}
}

// onMain runs fn on the main thread, containing panics there too.
func (b *Bridge) onMain(ctx context.Context, name string, fn func()) {
	b.deps.Main.Post(func() {
		defer recoverTask(ctx, name)
		fn()
	})
}

// background runs fn off the main thread.
func (b *Bridge) background(ctx context.Context, name string, fn func()) {
	b.deps.Go(func() {
		defer recoverTask(ctx, name)
		fn()
	})
}

func recoverTask(ctx context.Context, name string) {
	if r := recover(); r != nil {
		logging.FromContext(ctx).Error().
			Interface("panic", r).
			Str("task", name).
			Bytes("stack", debug.Stack()).
			Msg("bridge task panicked")
	}
}
