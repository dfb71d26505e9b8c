package theme

import (
	"os"
	"strings"

	"github.com/jwijenbergh/puregotk/v4/gtk"
)

// DetectSystemDarkMode checks GTK_THEME first, then the GTK settings.
func DetectSystemDarkMode() bool {
	if gtkTheme := os.Getenv("GTK_THEME"); gtkTheme != "" {
		return strings.Contains(strings.ToLower(gtkTheme), "dark")
	}

	if settings := gtk.SettingsGetDefault(); settings != nil {
		return settings.GetPropertyGtkApplicationPreferDarkTheme()
	}
	return false
}

// ResolveColorScheme maps a configured scheme to a dark mode preference.
// "system" and unknown values follow detect.
func ResolveColorScheme(scheme string, detect func() bool) bool {
	switch strings.ToLower(scheme) {
	case "prefer-dark", "dark":
		return true
	case "prefer-light", "light":
		return false
	default:
		if detect == nil {
			return false
		}
		return detect()
	}
}
