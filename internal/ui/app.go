package ui

import (
	"context"
	"errors"
	"os"
	"sync/atomic"

	"github.com/bnema/webshell/internal/application/bridge"
	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/infrastructure/transfer"
	"github.com/bnema/webshell/internal/infrastructure/webkit"
	"github.com/bnema/webshell/internal/logging"
	"github.com/bnema/webshell/internal/ui/component"
	"github.com/bnema/webshell/internal/ui/dialog"
	"github.com/bnema/webshell/internal/ui/input"
	"github.com/bnema/webshell/internal/ui/mainloop"
	"github.com/bnema/webshell/internal/ui/window"
	"github.com/jwijenbergh/puregotk/v4/gio"
	"github.com/jwijenbergh/puregotk/v4/gtk"
)

const (
	// AppID is the application identifier for GTK.
	AppID = "com.github.bnema.webshell"

	configReloadKey = "config"
)

var _ port.AppLifecycle = (*App)(nil)

// App wraps the GTK Application and owns the single web view.
type App struct {
	deps       *Dependencies
	gtkApp     *gtk.Application
	mainWindow *window.MainWindow

	// Built on activate, main thread only
	webView    *webkit.WebView
	toaster    *component.Toaster
	errorPopup *component.ErrorPopup
	dialogs    *dialog.ErrorDialog
	back       *input.BackNavigator

	dispatcher *bridge.Dispatcher
	bridge     *bridge.Bridge
	router     *webkit.MessageRouter
	observe    *usecase.ObservePageUseCase
	transfers  *transfer.Manager
	downloads  *webkit.DownloadHandler

	reloads *mainloop.Coalescer

	// Written on the main thread, read by download routing goroutines.
	userAgent userAgentValue

	ctx    context.Context
	cancel context.CancelCauseFunc
}

// New creates a new App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancelCause(logging.WithComponent(deps.Ctx, "ui"))
	return &App{
		deps:    deps,
		reloads: mainloop.NewCoalescer(deps.Main.Post),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Run starts the GTK application and blocks until it exits.
// Returns the exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	log := logging.FromContext(ctx)
	log.Debug().Msg("creating GTK application")

	// NewApplication takes a nullable id; passing nil keeps the instance
	// non-unique so several shells can run side by side.
	a.gtkApp = gtk.NewApplication(nil, gio.GApplicationFlagsNoneValue)
	if a.gtkApp == nil {
		log.Error().Msg("failed to create GTK application")
		return 1
	}
	defer a.gtkApp.Unref()

	activateCb := func(_ gio.Application) {
		a.onActivate(a.ctx)
	}
	a.gtkApp.ConnectActivate(&activateCb)

	shutdownCb := func(_ gio.Application) {
		a.onShutdown(a.ctx)
	}
	a.gtkApp.ConnectShutdown(&shutdownCb)

	log.Info().Msg("starting GTK main loop")
	return a.gtkApp.Run(len(args), args)
}

// onActivate is called when the GTK application is activated.
func (a *App) onActivate(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application activated")

	if a.mainWindow != nil {
		a.mainWindow.Show()
		return
	}

	a.applyGTKColorSchemePreference(ctx)

	if err := a.createMainWindow(ctx); err != nil {
		log.Error().Err(err).Msg("failed to create main window")
		return
	}
	if err := a.initOverlays(ctx); err != nil {
		log.Error().Err(err).Msg("failed to create overlays")
		return
	}
	if err := a.initWebView(ctx); err != nil {
		log.Error().Err(err).Msg("failed to create web view")
		a.dialogs.ShowError(ctx, "Error", "The web view could not be created.")
		a.mainWindow.Show()
		return
	}

	a.initBridge(ctx)
	a.initDownloads(ctx)
	a.initBackNavigation(ctx)
	a.finalizeActivation(ctx)
}

func (a *App) applyGTKColorSchemePreference(ctx context.Context) {
	if a.deps.Theme == nil {
		return
	}
	settings := gtk.SettingsGetDefault()
	if settings == nil {
		return
	}
	prefersDark := a.deps.Theme.PrefersDark()
	settings.SetPropertyGtkApplicationPreferDarkTheme(prefersDark)
	logging.FromContext(ctx).Debug().
		Bool("prefers_dark", prefersDark).
		Msg("set gtk-application-prefer-dark-theme")
}

func (a *App) createMainWindow(ctx context.Context) error {
	mainWindow, err := window.New(ctx, a.gtkApp, a.deps.Config)
	if err != nil {
		return err
	}
	a.mainWindow = mainWindow

	if a.deps.Theme == nil {
		return nil
	}
	if display := a.mainWindow.Window().GetDisplay(); display != nil {
		a.deps.Theme.ApplyToDisplay(ctx, display)
	}
	return nil
}

func (a *App) initOverlays(ctx context.Context) error {
	toaster, err := component.NewToaster(a.deps.Config.Notifications.ToastDurationMs)
	if err != nil {
		return err
	}
	a.toaster = toaster
	a.mainWindow.AddOverlay(toaster.Widget())

	popup, err := component.NewErrorPopup()
	if err != nil {
		return err
	}
	a.errorPopup = popup
	a.dialogs = dialog.NewErrorDialog(popup)
	a.mainWindow.AddOverlay(popup.Widget())

	logging.FromContext(ctx).Debug().Msg("overlays created")
	return nil
}

func (a *App) initWebView(ctx context.Context) error {
	wv, err := webkit.NewWebView(ctx, a.deps.WebContext, a.deps.Settings)
	if err != nil {
		return err
	}
	a.webView = wv
	a.mainWindow.SetContent(&wv.Widget().Widget)

	a.userAgent.Set(webkit.UserAgent(wv.Widget()))
	a.deps.Session.SetUserAgentSource(a.currentUserAgent)

	a.dispatcher = bridge.NewDispatcher(wv, a.deps.Main)
	a.observe = usecase.NewObservePageUseCase(a.dispatcher, a.dialogs, a.deps.Main)

	wv.OnLoadFinished = func(uri string) {
		a.observe.OnPageFinished(logging.WithURL(ctx, uri), uri)
	}
	wv.OnLoadFailed = func(uri string, loadErr *webkit.LoadError) {
		a.observe.OnLoadFailed(logging.WithURL(ctx, uri), uri, loadErr)
	}
	wv.OnTitleChanged = func(title string) {
		a.mainWindow.SetPageTitle(title)
	}
	wv.OnProcessTerminated = func(reason string) {
		a.onWebProcessTerminated(ctx, reason)
	}
	return nil
}

func (a *App) currentUserAgent() string {
	return a.userAgent.Get()
}

// userAgentValue holds a string safe for concurrent Set and Get.
type userAgentValue struct {
	v atomic.Pointer[string]
}

func (u *userAgentValue) Set(ua string) { u.v.Store(&ua) }

// Get returns the last value set, or "".
func (u *userAgentValue) Get() string {
	if p := u.v.Load(); p != nil {
		return *p
	}
	return ""
}

// onWebProcessTerminated reloads the page after telling the user, unless
// the process was stopped on purpose.
func (a *App) onWebProcessTerminated(ctx context.Context, reason string) {
	if reason == "terminated_by_api" {
		return
	}
	a.dialogs.ShowError(ctx, "Error", "The page stopped unexpectedly and will be reloaded.")
	if err := a.webView.Reload(ctx); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("reload after web process termination failed")
	}
}

func (a *App) initBridge(ctx context.Context) {
	cfg := a.deps.Config

	persist := usecase.NewPersistDownloadUseCase(usecase.PersistDownloadDeps{
		Store:    a.deps.Store,
		Prepare:  a.deps.Prepare,
		Notifier: a.deps.Notifier,
		Toaster:  a.toaster,
		Main:     a.deps.Main,
		History:  a.deps.History,
		Events:   a.dispatcher,
	})

	a.bridge = bridge.New(bridge.Deps{
		Dispatcher:  a.dispatcher,
		Main:        a.deps.Main,
		Toaster:     a.toaster,
		Dialogs:     a.dialogs,
		Lifecycle:   a,
		Logout:      usecase.NewLogoutUseCase(a.deps.Session),
		Persist:     persist,
		Build:       a.deps.Build,
		DelayedWork: cfg.DelayedWork(),
	})
	a.router = webkit.NewMessageRouter(ctx, cfg.Bridge.HandlerName, a.bridge)

	if err := a.webView.AttachFrontend(ctx, a.deps.Injector, a.router); err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to attach bridge to web view")
	}
}

func (a *App) initDownloads(ctx context.Context) {
	a.transfers = transfer.NewManager(transfer.Deps{
		Store:    a.deps.Store,
		Prepare:  a.deps.Prepare,
		Notifier: a.deps.Notifier,
		History:  a.deps.History,
		Events:   &downloadNotices{main: a.deps.Main, toaster: a.toaster, events: a.dispatcher},
	}, a.deps.TransferOptions)

	intercept := usecase.NewInterceptDownloadUseCase(a.dispatcher, a.transfers, a.deps.Session, a.toaster, a.deps.Main)
	a.downloads = webkit.NewDownloadHandler(intercept, a.currentUserAgent)
	a.deps.WebContext.SetDownloadHandler(ctx, a.downloads)
}

func (a *App) initBackNavigation(ctx context.Context) {
	a.back = input.NewBackNavigator(ctx, a.webView)
	a.back.AttachTo(&a.mainWindow.Window().Widget)
}

func (a *App) finalizeActivation(ctx context.Context) {
	log := logging.FromContext(ctx)

	a.mainWindow.Show()
	log.Info().Msg("main window displayed")

	a.initConfigWatcher(ctx)
	a.startScanner(ctx)

	startURL := a.deps.StartURL()
	if err := a.webView.LoadURI(ctx, startURL); err != nil {
		log.Error().Err(err).Str("uri", startURL).Msg("failed to load start page")
	}
}

func (a *App) startScanner(ctx context.Context) {
	if a.deps.Scanner == nil {
		return
	}
	ctx = logging.WithComponent(ctx, "scanner")
	go func() {
		err := a.deps.Scanner.Listen(ctx, func(data string) {
			a.dispatcher.SendScanResult(ctx, data)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.FromContext(ctx).Warn().Err(err).Msg("scan listener stopped")
		}
	}()
}

func (a *App) initConfigWatcher(ctx context.Context) {
	log := logging.FromContext(ctx)

	mgr := a.deps.ConfigManager
	if mgr == nil {
		log.Debug().Msg("no config manager available, skipping watcher")
		return
	}
	if err := mgr.Watch(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to start config watcher")
		return
	}

	mgr.OnConfigChange(func(newCfg *config.Config) {
		a.reloads.Post(configReloadKey, func() {
			a.applyConfig(ctx, newCfg)
		})
	})
	log.Debug().Msg("config watcher initialized")
}

// applyConfig hot-reloads the settings that can change without a restart:
// log level, toast duration, color scheme and WebKit view settings.
func (a *App) applyConfig(ctx context.Context, cfg *config.Config) {
	if cfg == nil {
		return
	}
	log := logging.FromContext(ctx)

	*a.deps.Config = *cfg
	logging.SetLevel(logging.ParseLevel(cfg.Logging.Level))

	if a.toaster != nil {
		a.toaster.SetDefaultDuration(cfg.Notifications.ToastDurationMs)
	}
	if a.deps.Theme != nil && a.deps.Theme.SetScheme(ctx, cfg.App.ColorScheme) {
		a.applyGTKColorSchemePreference(ctx)
	}
	if a.deps.Settings != nil && a.webView != nil {
		a.deps.Settings.UpdateFromConfig(ctx, cfg)
		a.deps.Settings.ApplyToWebView(ctx, a.webView.Widget())
		a.userAgent.Set(webkit.UserAgent(a.webView.Widget()))
	}

	log.Info().Str("level", cfg.Logging.Level).Msg("configuration reloaded")
}

// onShutdown is called when the GTK application is shutting down.
func (a *App) onShutdown(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("GTK application shutting down")

	if err := a.deps.Session.FlushCookies(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to flush cookies")
	}

	a.cancel(errors.New("application shutdown"))
	a.reloads.Destroy()

	if a.transfers != nil {
		if err := a.transfers.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to stop transfers")
		}
	}
	if a.webView != nil {
		a.webView.Destroy()
	}

	log.Info().Msg("application shutdown complete")
}

// Quit requests the application to quit.
func (a *App) Quit() {
	if a.gtkApp != nil {
		a.gtkApp.Quit()
	}
}

// RunWithArgs is a convenience function that creates and runs an App.
func RunWithArgs(ctx context.Context, deps *Dependencies) int {
	app, err := New(deps)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Error().Err(err).Msg("failed to create application")
		return 1
	}
	return app.Run(ctx, os.Args[:1])
}
