// Package window provides the shell's single GTK window.
package window

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/jwijenbergh/puregotk/v4/gtk"
	"github.com/rs/zerolog"

	"github.com/bnema/webshell/internal/infrastructure/config"
	"github.com/bnema/webshell/internal/logging"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
	defaultTitle  = "WebShell"

	maxTitleLen = 255
)

// ErrWidget is wrapped by every constructor failure in New.
var ErrWidget = errors.New("gtk returned a nil widget")

// MainWindow shows one content widget, the web view, under a stack of
// overlays (toasts, dialogs).
type MainWindow struct {
	window  *gtk.ApplicationWindow
	overlay *gtk.Overlay
	content *gtk.Widget

	appTitle string
	logger   zerolog.Logger
}

// New creates the window. Title and fullscreen come from cfg.App.
func New(ctx context.Context, app *gtk.Application, cfg *config.Config) (*MainWindow, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	mw := &MainWindow{
		appTitle: defaultTitle,
		logger:   logging.FromContext(ctx).With().Str("component", "main-window").Logger(),
	}
	if cfg.App.Title != "" {
		mw.appTitle = cfg.App.Title
	}

	if mw.window = gtk.NewApplicationWindow(app); mw.window == nil {
		return nil, fmt.Errorf("application window: %w", ErrWidget)
	}
	if mw.overlay = gtk.NewOverlay(); mw.overlay == nil {
		mw.window.Unref()
		return nil, fmt.Errorf("content overlay: %w", ErrWidget)
	}

	title := mw.appTitle
	mw.window.SetTitle(&title)
	mw.window.SetDefaultSize(defaultWidth, defaultHeight)
	expand(&mw.overlay.Widget)
	mw.overlay.AddCssClass("content-area")
	mw.window.SetChild(&mw.overlay.Widget)

	if cfg.App.Fullscreen {
		mw.window.Fullscreen()
	}
	mw.logger.Debug().
		Str("title", mw.appTitle).
		Bool("fullscreen", cfg.App.Fullscreen).
		Msg("main window created")
	return mw, nil
}

func expand(w *gtk.Widget) {
	w.SetHexpand(true)
	w.SetVexpand(true)
	w.SetVisible(true)
}

// Show presents the window.
func (mw *MainWindow) Show() {
	mw.window.Present()
}

// Close closes the window.
func (mw *MainWindow) Close() {
	mw.window.Close()
}

// SetContent replaces the widget under the overlays.
func (mw *MainWindow) SetContent(widget *gtk.Widget) {
	if widget == nil {
		return
	}
	expand(widget)
	mw.overlay.SetChild(widget)
	mw.content = widget
}

// Window returns the GTK window.
func (mw *MainWindow) Window() *gtk.ApplicationWindow {
	return mw.window
}

// AddOverlay stacks widget above the content.
func (mw *MainWindow) AddOverlay(widget *gtk.Widget) {
	if widget != nil {
		mw.overlay.AddOverlay(widget)
	}
}

// SetPageTitle shows pageTitle followed by the application title.
func (mw *MainWindow) SetPageTitle(pageTitle string) {
	title := FormatTitle(pageTitle, mw.appTitle)
	mw.window.SetTitle(&title)
}

// FormatTitle builds "<page> - <app>". Titles longer than 255 bytes are
// cut on a rune boundary and end with "...".
func FormatTitle(pageTitle, appTitle string) string {
	title := appTitle
	if pageTitle != "" && pageTitle != appTitle {
		title = pageTitle + " - " + appTitle
	}
	if len(title) <= maxTitleLen {
		return title
	}
	cut := maxTitleLen - len("...")
	for cut > 0 && !utf8.RuneStart(title[cut]) {
		cut--
	}
	return title[:cut] + "..."
}
