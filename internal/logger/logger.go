// Package logger provides a simple wrapper around slog for structured logging.
//
// The status line owns stdout and many hosts merge stderr into it, so
// logging is discarded unless CLAUDE_PULSE_DEBUG is set.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global logger instance.
var Logger = newLogger()

func newLogger() *slog.Logger {
	if os.Getenv("CLAUDE_PULSE_DEBUG") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
