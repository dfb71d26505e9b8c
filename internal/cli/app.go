// Package cli holds the dependencies and runners behind the webshell
// subcommands.
package cli

import (
	"context"
	"io"

	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/cli/styles"
	"github.com/bnema/webshell/internal/domain/build"
	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/webshell/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config     *config.Config
	ConfigFile string
	ConfigErr  error
	Theme      *styles.Theme
	BuildInfo  build.Info

	db *sqlite.LazyDB

	ListDownloadsUC *usecase.ListDownloadsUseCase

	ctx       context.Context
	logCloser io.Closer
}

// NewApp creates a CLI application. The database is opened on first use,
// so commands that never read history do not create it.
func NewApp() (*App, error) {
	cfg, cfgFile, cfgErr := loadConfig()

	// Commands print their own output; logs stay quiet unless asked for.
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel("warn")
	logCfg.Format = cfg.Logging.Format
	logCfg.TimeFormat = "15:04:05"
	logger, logCloser, err := logging.New(logging.ApplyEnv(logCfg))
	if err != nil {
		return nil, err
	}
	ctx := logging.WithContext(context.Background(), logger)
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("using default configuration")
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		if dbPath, err = config.GetDatabaseFile(); err != nil {
			_ = logCloser.Close()
			return nil, err
		}
	}
	db := sqlite.NewLazyDB(dbPath)
	downloads := sqlite.NewLazyDownloadRepository(db)

	return &App{
		Config:          cfg,
		ConfigFile:      cfgFile,
		ConfigErr:       cfgErr,
		Theme:           styles.NewTheme(cfg),
		db:              db,
		ListDownloadsUC: usecase.NewListDownloadsUseCase(downloads),
		ctx:             ctx,
		logCloser:       logCloser,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations, falling back to
// defaults so informational commands keep working with a broken file.
func loadConfig() (*config.Config, string, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return config.DefaultConfig(), "", err
	}

	if err := mgr.Load(); err != nil {
		path, _ := config.GetConfigFile()
		return config.DefaultConfig(), path, err
	}

	return mgr.Get(), mgr.GetConfigFile(), nil
}
