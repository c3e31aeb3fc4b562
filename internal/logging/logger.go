// Package logging builds the slog loggers shared by the adapter, the engine
// and the hosts.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Log levels accepted in configuration and on the command line.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// ValidLevels lists the accepted level names in increasing severity.
var ValidLevels = []string{LevelDebug, LevelInfo, LevelWarn, LevelError}

// New returns a text logger writing to w at the given level. Unknown levels
// fall back to INFO.
func New(w io.Writer, level string) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler)
}

// ParseLevel converts a level name to slog.Level.
// Defaults to INFO if the level string is not recognized.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsValidLevel reports whether level names one of ValidLevels.
func IsValidLevel(level string) bool {
	upper := strings.ToUpper(strings.TrimSpace(level))
	for _, l := range ValidLevels {
		if upper == l {
			return true
		}
	}
	return false
}

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Component returns a child of logger tagged with the component name. A nil
// logger yields Nop.
func Component(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		logger = Nop()
	}
	return logger.With("component", name)
}
