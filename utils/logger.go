package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger provides leveled logging throughout the application.
// Messages are printf-formatted and emitted through slog so that the
// level can be switched at runtime (e.g. by the --debug flag).
type Logger struct {
	internal *slog.Logger
	level    *slog.LevelVar
}

// NewLogger creates a Logger writing to stderr at info level.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr, "info")
}

// NewLoggerTo creates a Logger writing to w at the given level name.
// Unknown level names fall back to info.
func NewLoggerTo(w io.Writer, level string) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(parseLevel(level))

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{internal: slog.New(handler), level: lvl}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, "error")
}

// SetLevel changes the minimum level by name.
func (l *Logger) SetLevel(level string) {
	l.level.Set(parseLevel(level))
}

// DebugEnabled reports whether debug messages are emitted.
func (l *Logger) DebugEnabled() bool {
	return l.level.Level() <= slog.LevelDebug
}

func (l *Logger) Info(format string, args ...any) {
	l.internal.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.internal.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.internal.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.internal.Debug(fmt.Sprintf(format, args...))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
