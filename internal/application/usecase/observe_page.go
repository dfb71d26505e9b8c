package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/domain/script"
	"github.com/bnema/webshell/internal/logging"
)

// ObservePageUseCase reacts to main-frame load transitions.
type ObservePageUseCase struct {
	scripts port.ScriptRunner
	dialogs port.ErrorDialog
	main    port.MainThread
}

// NewObservePageUseCase creates a new ObservePageUseCase.
func NewObservePageUseCase(scripts port.ScriptRunner, dialogs port.ErrorDialog, main port.MainThread) *ObservePageUseCase {
	return &ObservePageUseCase{scripts: scripts, dialogs: dialogs, main: main}
}

// OnPageFinished installs the page hook. The hook is idempotent, so
// repeated finish notifications for one page are harmless.
func (u *ObservePageUseCase) OnPageFinished(ctx context.Context, uri string) {
	logging.FromContext(ctx).Debug().Str("uri", uri).Msg("page finished, installing hooks")
	u.scripts.Evaluate(ctx, script.PageHook())
}

// OnLoadFailed reports a main-frame load failure in a modal dialog.
func (u *ObservePageUseCase) OnLoadFailed(ctx context.Context, uri string, cause error) {
	logging.FromContext(ctx).Warn().Err(cause).Str("uri", uri).Msg("page load failed")
	if u.dialogs == nil {
		return
	}

	message := fmt.Sprintf("The page cannot be loaded.\n%s", uri)
	if cause != nil {
		message = fmt.Sprintf("The page cannot be loaded: %v\n%s", cause, uri)
	}
	show := func() { u.dialogs.ShowError(ctx, "Error", message) }
	if u.main == nil {
		show()
		return
	}
	u.main.Post(show)
}
