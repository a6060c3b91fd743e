// Package logging configures the charmbracelet/log loggers used by the
// CLI and the validation pipeline.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Prefix is shown before every log line.
const Prefix = "htmlcheck"

var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at level. Unknown levels mean info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter returns a logger writing to w at level.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: Prefix})
	logger.SetLevel(parseLevel(level))
	return logger
}

// parseLevel accepts debug, info, warn or warning, and error in any case.
func parseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	switch parsed, err := log.ParseLevel(level); {
	case err != nil, parsed > log.ErrorLevel:
		return log.InfoLevel
	default:
		return parsed
	}
}

// Default returns the process-wide logger, creating an info-level stderr
// logger on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}
