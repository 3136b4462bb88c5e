// Package log provides the structured logger shared by the litewrap command
// line tools.
package log

import (
	"io"
	"log/slog"
)

// Logger is a thin structured logger on top of slog.Logger that logs in
// JSON format.
type Logger struct {
	slogger *slog.Logger
}

// NewLogger creates a new Logger that writes to the given writer. The writer
// is typically os.Stdout but can be any io.Writer.
func NewLogger(writer io.Writer, level slog.Level) Logger {
	slogger := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	return Logger{
		slogger: slogger,
	}
}

// IsInitialized returns whether the Logger is ready for use.
func (l *Logger) IsInitialized() bool {
	return l.slogger != nil
}

// Debug logs a structured debug message with a list of key-value pairs.
func (l *Logger) Debug(msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgs(keyVals...)...)
}

// Info logs a structured info message with a list of key-value pairs.
func (l *Logger) Info(msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgs(keyVals...)...)
}

// Warn logs a structured warning message with a list of key-value pairs.
func (l *Logger) Warn(msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgs(keyVals...)...)
}

// Error logs a structured error message with a list of key-value pairs.
func (l *Logger) Error(msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgs(keyVals...)...)
}

// DebugNs logs a structured debug message with a namespace.
//
// The namespace differentiates logs from different parts of the program and
// is included as the first key-value pair in the log.
func (l *Logger) DebugNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Debug(msg, kvToArgsNs(namespace, keyVals...)...)
}

// InfoNs logs a structured info message with a namespace.
func (l *Logger) InfoNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Info(msg, kvToArgsNs(namespace, keyVals...)...)
}

// WarnNs logs a structured warning message with a namespace.
func (l *Logger) WarnNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Warn(msg, kvToArgsNs(namespace, keyVals...)...)
}

// ErrorNs logs a structured error message with a namespace.
func (l *Logger) ErrorNs(namespace string, msg string, keyVals ...KV) {
	l.slogger.Error(msg, kvToArgsNs(namespace, keyVals...)...)
}
