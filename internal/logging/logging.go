// Package logging builds the charmbracelet/log loggers used across
// the module.
package logging

import (
	"io"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// New returns a text logger writing to w at the given level name.
func New(w io.Writer, level string) *clog.Logger {
	return clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           ParseLevel(level),
		Prefix:          "toastctl",
	})
}

// Discard returns a logger that drops everything.
func Discard() *clog.Logger {
	return clog.New(io.Discard)
}

// ParseLevel converts a level name to clog.Level, defaulting to info.
func ParseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "info":
		return clog.InfoLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}
