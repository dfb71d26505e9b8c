package logging

import (
	"context"
	"sync"

	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/rs/zerolog"
)

// glibLogger holds the logger for the GLib handler.
// The GLib callback cannot carry Go pointers.
var (
	glibLogger     zerolog.Logger
	glibLoggerOnce sync.Once
)

// InstallGLibLogHandler routes GTK4/WebKitGTK/GLib messages into zerolog.
// Must be called before GTK/WebKit initialization.
func InstallGLibLogHandler(ctx context.Context, logger zerolog.Logger, enableDebug bool) {
	log := FromContext(ctx)

	glibLoggerOnce.Do(func() {
		glibLogger = logger.With().Str("component", "glib").Logger()

		if enableDebug {
			glib.LogSetDebugEnabled(true)
		}

		handler := glib.LogFunc(glibLogHandler)
		glib.LogSetDefaultHandler(&handler, 0)

		log.Debug().Bool("debug_enabled", enableDebug).Msg("GLib log handler installed")
	})
}

func glibLogHandler(domain string, level glib.LogLevelFlags, message string, _ uintptr) {
	event := glibLogger.WithLevel(glibLevel(level))
	if domain != "" {
		event = event.Str("glib_domain", domain)
	}
	event.Msg(message)
}

// glibLevel maps GLib log flags to a zerolog level. Critical maps to
// error so a GTK critical never aborts the process through zerolog.
func glibLevel(level glib.LogLevelFlags) zerolog.Level {
	switch {
	case level&glib.GLogLevelErrorValue != 0, level&glib.GLogLevelCriticalValue != 0:
		return zerolog.ErrorLevel
	case level&glib.GLogLevelWarningValue != 0:
		return zerolog.WarnLevel
	case level&glib.GLogLevelMessageValue != 0, level&glib.GLogLevelInfoValue != 0:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
