package logging

import (
	"sync"

	"github.com/jwijenbergh/puregotk/v4/glib"
	"github.com/rs/zerolog"
)

// glibLogger holds the logger for the GLib handler. The GLib callback cannot
// carry a Go pointer, so the handler reads this package variable.
var (
	glibLogger     zerolog.Logger
	glibLoggerOnce sync.Once
)

// InstallGLibLogHandler routes GTK4/GDK/GLib log messages into logger. Call
// before GTK initialization. GLib debug messages are forwarded only when the
// logger itself runs at debug or lower.
func InstallGLibLogHandler(logger zerolog.Logger) {
	glibLoggerOnce.Do(func() {
		glibLogger = logger

		if logger.GetLevel() <= zerolog.DebugLevel {
			glib.LogSetDebugEnabled(true)
		}

		handler := glib.LogFunc(glibLogHandler)
		glib.LogSetDefaultHandler(&handler, 0)

		logger.Debug().Msg("GLib log handler installed")
	})
}

// glibLogHandler is the callback invoked by GLib for all log messages.
func glibLogHandler(domain string, level glib.LogLevelFlags, message string, _ uintptr) {
	var event *zerolog.Event

	switch {
	case level&glib.GLogLevelErrorValue != 0,
		level&glib.GLogLevelCriticalValue != 0:
		event = glibLogger.Error()
	case level&glib.GLogLevelWarningValue != 0:
		event = glibLogger.Warn()
	case level&glib.GLogLevelMessageValue != 0,
		level&glib.GLogLevelInfoValue != 0:
		event = glibLogger.Info()
	default:
		event = glibLogger.Debug()
	}

	if domain != "" {
		event = event.Str("glib_domain", domain)
	}
	event.Msg(message)
}
