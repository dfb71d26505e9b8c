package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/bootstrap"
	"github.com/bnema/webshell/internal/cli/cmd"
	"github.com/bnema/webshell/internal/domain/build"
	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/infrastructure/desktop"
	"github.com/bnema/webshell/internal/infrastructure/filesystem"
	"github.com/bnema/webshell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/webshell/internal/infrastructure/scanner"
	"github.com/bnema/webshell/internal/infrastructure/transfer"
	"github.com/bnema/webshell/internal/logging"
	"github.com/bnema/webshell/internal/ui"
	"github.com/bnema/webshell/internal/ui/mainloop"
	"github.com/bnema/webshell/internal/ui/theme"
	"github.com/rs/zerolog"
)

// Build-time variables (set via ldflags).
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

const (
	transferTimeout = 30 * time.Minute
	transferRetries = 2
)

// initialURL replaces app.start_url when given to `webshell run`.
var initialURL string

func main() {
	enableCrashForensics()

	// The window runs for `webshell run [url]` and for a bare `webshell`.
	if len(os.Args) == 1 || os.Args[1] == "run" {
		if len(os.Args) > 2 {
			initialURL = os.Args[2]
		}
		os.Args = os.Args[:1]
		os.Exit(runGUI())
		return
	}

	cmd.SetBuildInfo(binaryBuildInfo())
	cmd.Execute()
}

func binaryBuildInfo() build.Info {
	return build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	}
}

func runGUI() int {
	runtime.LockOSThread()
	timer := bootstrap.NewStartupTimer()

	cfg := initConfig()
	timer.Mark("config")
	ctx, logCloser := initStartupContext(cfg)
	timer.Mark("logging")
	defer func() { _ = logCloser.Close() }()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := logging.FromContext(ctx)
	logCoreDumpLimits(ctx)

	if cfg.Logging.CaptureGTKLogs {
		level := logging.ParseLevel(cfg.Logging.Level)
		logging.InstallGLibLogHandler(ctx, *log, level <= zerolog.DebugLevel)
	}

	lazyDB := sqlite.NewLazyDB(cfg.Database.Path)
	defer func() { _ = lazyDB.Close() }()
	history := sqlite.NewLazyDownloadRepository(lazyDB)

	store := filesystem.New(cfg.Downloads.Dir)
	notifier := startNotifier(ctx, cfg)
	defer func() { _ = notifier.Close() }()
	timer.Mark("storage")

	stack, err := bootstrap.BuildWebKitStack(bootstrap.WebKitStackInput{Ctx: ctx, Config: cfg})
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize webkit")
		return 1
	}
	defer func() { _ = stack.Close() }()
	timer.Mark("webkit")

	deps := &ui.Dependencies{
		Ctx:        ctx,
		Config:     cfg,
		InitialURL: initialURL,
		Build:      appBuildInfo(cfg),
		Theme:      theme.NewManager(ctx, cfg.App.ColorScheme, theme.DetectSystemDarkMode),
		Main:       mainloop.NewIdle(),
		WebContext: stack.Context,
		Settings:   stack.Settings,
		Injector:   stack.Injector,
		Session:    stack.Session,
		Store:      store,
		Prepare:    usecase.NewPrepareDownloadUseCase(store),
		Notifier:   notifier,
		History:    history,
		TransferOptions: transfer.Options{
			Timeout:    transferTimeout,
			RetryCount: transferRetries,
		},
		ConfigManager: config.GetManager(),
	}
	if cfg.Scanner.Enabled {
		deps.Scanner = scanner.NewListener(scanner.Config{
			Interface: cfg.Scanner.Interface,
			Member:    cfg.Scanner.Member,
			DataKey:   cfg.Scanner.DataKey,
		})
	}

	app, err := ui.New(deps)
	if err != nil {
		log.Error().Err(err).Msg("failed to create application")
		return 1
	}

	timer.Mark("window")
	timer.Log(ctx, zerolog.DebugLevel)

	setupSignalHandler(ctx, app)

	return app.Run(ctx, os.Args)
}

func initConfig() *config.Config {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}
	return config.Get()
}

// initStartupContext builds the process logger. It is created at trace
// level and filtered globally so a config reload can change verbosity.
func initStartupContext(cfg *config.Config) (context.Context, io.Closer) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = zerolog.TraceLevel
	logCfg.Format = cfg.Logging.Format
	logCfg.TimeFormat = "15:04:05"
	logCfg.File = cfg.LogFile()
	if cfg.Logging.MaxSizeMB > 0 {
		logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups > 0 {
		logCfg.MaxBackups = cfg.Logging.MaxBackups
	}

	logger, closer, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file, logging to stderr only: %v\n", err)
		logCfg.File = ""
		logger, closer, _ = logging.New(logCfg)
	}
	logging.SetLevel(logging.ParseLevel(cfg.Logging.Level))

	logger.Info().
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Msg("starting webshell")
	return logging.WithContext(context.Background(), logger), closer
}

func startNotifier(ctx context.Context, cfg *config.Config) *desktop.Notifier {
	notifier := desktop.NewNotifier(ctx, desktop.NewOpener(), cfg.Notifications.Enabled)
	go func() {
		if err := notifier.Listen(ctx); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Msg("notification actions unavailable")
		}
	}()
	return notifier
}

// appBuildInfo is what GET_APP_VERSION answers: the configured pair,
// falling back to the binary version.
func appBuildInfo(cfg *config.Config) build.Info {
	info := binaryBuildInfo()
	if cfg.App.VersionName != "" {
		info.Version = cfg.App.VersionName
	}
	info.VersionCode = cfg.App.VersionCode
	return info
}

func setupSignalHandler(ctx context.Context, app *ui.App) {
	log := logging.FromContext(ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		signal.Stop(sigCh)
		log.Info().Str("signal", sig.String()).Msg("received interrupt, quitting")
		app.Quit()
	}()
}
