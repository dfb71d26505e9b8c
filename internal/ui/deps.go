// Package ui provides the GTK4 presentation layer of the shell.
package ui

import (
	"context"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/application/usecase"
	"github.com/bnema/webshell/internal/domain/build"
	"github.com/bnema/webshell/internal/domain/repository"
	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/infrastructure/transfer"
	"github.com/bnema/webshell/internal/infrastructure/webkit"
	"github.com/bnema/webshell/internal/ui/mainloop"
	"github.com/bnema/webshell/internal/ui/theme"
)

// Dependencies holds everything the shell needs that can exist before GTK
// is activated. Widgets, the web view and the bridge are built on activate.
type Dependencies struct {
	Ctx        context.Context
	Config     *config.Config
	InitialURL string // overrides app.start_url when set
	Build      build.Info

	Theme *theme.Manager
	Main  *mainloop.Idle

	// WebKit infrastructure
	WebContext *webkit.WebKitContext
	Settings   *webkit.SettingsManager
	Injector   *webkit.ContentInjector
	Session    *webkit.SessionStore

	// Downloads
	Store           port.DownloadStore
	Prepare         *usecase.PrepareDownloadUseCase
	Notifier        port.DesktopNotifier
	History         repository.DownloadRepository
	TransferOptions transfer.Options

	// Scanner is optional; nil disables scan forwarding.
	Scanner port.ScanSource

	// ConfigManager enables hot reload when set.
	ConfigManager *config.Manager
}

// Validate checks that all required dependencies are set.
func (d *Dependencies) Validate() error {
	if d == nil {
		return ErrMissingDependency("Dependencies")
	}
	if d.Ctx == nil {
		return ErrMissingDependency("Ctx")
	}
	if d.Config == nil {
		return ErrMissingDependency("Config")
	}
	if d.Main == nil {
		return ErrMissingDependency("Main")
	}
	if d.WebContext == nil {
		return ErrMissingDependency("WebContext")
	}
	if d.Session == nil {
		return ErrMissingDependency("Session")
	}
	if d.Store == nil {
		return ErrMissingDependency("Store")
	}
	return nil
}

// StartURL is the first page loaded into the view.
func (d *Dependencies) StartURL() string {
	if d.InitialURL != "" {
		return d.InitialURL
	}
	return d.Config.App.StartURL
}

// DependencyError indicates a missing required dependency.
type DependencyError struct {
	Name string
}

func (e DependencyError) Error() string {
	return "missing required dependency: " + e.Name
}

// ErrMissingDependency creates a new DependencyError.
func ErrMissingDependency(name string) error {
	return DependencyError{Name: name}
}
