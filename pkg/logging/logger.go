// Package logging wraps log/slog with typed fields and per-component
// sub-loggers. The service logs to stdout/stderr only; log shipping and
// rotation belong to the platform.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config holds logging configuration.
type Config struct {
	Level  string // trace|debug|info|warn|error (trace maps to debug-4)
	Format string // "json" or "text"
	Output string // "stdout" or "stderr"
}

// DefaultConfig returns JSON logging at info level on stdout.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "json", Output: "stdout"}
}

// Logger provides structured logging with typed fields.
type Logger struct {
	slogger *slog.Logger
}

// New creates a logger from config. Unknown levels fall back to info.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Output == "stderr" {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return &Logger{slogger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return slog.LevelDebug - 4
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.slogger.Debug(msg, attrs(fields)...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.slogger.Info(msg, attrs(fields)...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.slogger.Warn(msg, attrs(fields)...) }

func (l *Logger) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	l.slogger.Error(msg, attrs(fields)...)
}

// WithComponent returns a logger that tags every entry with the component.
func (l *Logger) WithComponent(component string) *ComponentLogger {
	return &ComponentLogger{slogger: l.slogger.With(slog.String("component", component))}
}

// ComponentLogger provides component-scoped logging.
type ComponentLogger struct {
	slogger *slog.Logger
}

func (cl *ComponentLogger) Debug(msg string, fields ...Field) { cl.slogger.Debug(msg, attrs(fields)...) }
func (cl *ComponentLogger) Info(msg string, fields ...Field)  { cl.slogger.Info(msg, attrs(fields)...) }
func (cl *ComponentLogger) Warn(msg string, fields ...Field)  { cl.slogger.Warn(msg, attrs(fields)...) }

func (cl *ComponentLogger) Error(msg string, err error, fields ...Field) {
	if err != nil {
		fields = append(fields, Err(err))
	}
	cl.slogger.Error(msg, attrs(fields)...)
}

// Field is a structured log attribute.
type Field struct {
	Key   string
	Value any
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}

// Field constructors.
func String(key, value string) Field                 { return Field{Key: key, Value: value} }
func Int(key string, value int) Field                { return Field{Key: key, Value: value} }
func Int64(key string, value int64) Field            { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field        { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field              { return Field{Key: key, Value: value} }
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }
func Any(key string, value any) Field                { return Field{Key: key, Value: value} }
func Err(err error) Field                            { return Field{Key: "error", Value: err.Error()} }
