// Package logging builds the diagnostic logger. User-facing output goes
// through internal/ui instead.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a text logger prefixed with "cabina" at the given level.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:    "cabina",
		Level:     ParseLevel(level),
		Formatter: log.TextFormatter,
	})
}

// ParseLevel maps a config string to a level, defaulting to warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// ValidLevel reports whether level is one ParseLevel knows by name.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
