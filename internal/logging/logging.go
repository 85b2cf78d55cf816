// Package logging routes the standard logger through pterm.
package logging

import (
	"log"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
)

// Setup installs a pterm-backed slog handler as the process default. Calls to
// the standard log package are written through it at info level.
func Setup(level string) *slog.Logger {
	logger := pterm.DefaultLogger.WithLevel(ParseLevel(level))
	l := slog.New(pterm.NewSlogHandler(logger))
	slog.SetDefault(l)
	log.SetFlags(0)
	return l
}

// ParseLevel maps a level name to a pterm level, defaulting to info.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(level) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	case "off", "disabled":
		return pterm.LogLevelDisabled
	}
	return pterm.LogLevelInfo
}
