package theme

import (
	"context"

	"github.com/jwijenbergh/puregotk/v4/gdk"
	"github.com/jwijenbergh/puregotk/v4/gtk"

	"github.com/bnema/webshell/internal/logging"
)

// Manager resolves app.color_scheme to a palette and owns the CSS
// provider installed on the display. Main thread only.
type Manager struct {
	scheme      string
	detect      func() bool
	prefersDark bool

	provider *gtk.CssProvider
}

// NewManager creates a manager for scheme ("system", "dark" or "light").
// detect answers the system preference and may be nil.
func NewManager(ctx context.Context, scheme string, detect func() bool) *Manager {
	m := &Manager{detect: detect}
	m.resolve(scheme)
	logging.FromContext(ctx).Debug().
		Str("scheme", m.scheme).
		Bool("prefers_dark", m.prefersDark).
		Msg("theme resolved")
	return m
}

func (m *Manager) resolve(scheme string) {
	if scheme == "" {
		scheme = "system"
	}
	m.scheme = scheme
	m.prefersDark = ResolveColorScheme(scheme, m.detect)
}

// PrefersDark reports whether the dark palette is active.
func (m *Manager) PrefersDark() bool {
	return m.prefersDark
}

// CurrentPalette returns the active palette.
func (m *Manager) CurrentPalette() Palette {
	if m.prefersDark {
		return DefaultDarkPalette()
	}
	return DefaultLightPalette()
}

// CSS returns the stylesheet for the active palette.
func (m *Manager) CSS() string {
	return GenerateCSS(m.CurrentPalette())
}

// SetScheme switches to scheme and reloads the installed stylesheet. It
// reports whether the dark preference changed.
func (m *Manager) SetScheme(ctx context.Context, scheme string) bool {
	was := m.prefersDark
	m.resolve(scheme)
	if m.provider != nil {
		m.provider.LoadFromString(m.CSS())
	}
	if was != m.prefersDark {
		logging.FromContext(ctx).Info().
			Str("scheme", m.scheme).
			Bool("prefers_dark", m.prefersDark).
			Msg("color scheme changed")
		return true
	}
	return false
}

// ApplyToDisplay installs the stylesheet on display. Calling it again
// reuses the same provider.
func (m *Manager) ApplyToDisplay(ctx context.Context, display *gdk.Display) {
	log := logging.FromContext(ctx)
	if display == nil {
		log.Warn().Msg("no display, theme not applied")
		return
	}
	if m.provider == nil {
		if m.provider = gtk.NewCssProvider(); m.provider == nil {
			log.Error().Msg("gtk returned no css provider")
			return
		}
	}
	m.provider.LoadFromString(m.CSS())
	gtk.StyleContextAddProviderForDisplay(display, m.provider, uint(gtk.STYLE_PROVIDER_PRIORITY_APPLICATION))
}
