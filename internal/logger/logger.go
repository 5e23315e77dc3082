// Package logger is the structured logging facade used across the API and
// the analysis engine. Backends (slog, zap) are chosen at startup.
package logger

import (
	"context"
	"strings"
	"time"
)

// Level represents log severity levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel converts a string to a Level, defaulting to info
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is a key-value pair attached to a log entry
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func Time(key string, value time.Time) Field {
	return Field{Key: key, Value: value}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is implemented by every logging backend
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child Logger that adds fields to every entry
	With(fields ...Field) Logger
	// WithContext returns a child Logger carrying request_id, user_id and
	// user_role from ctx
	WithContext(ctx context.Context) Logger

	Level() Level
}

// Backends
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config holds logging configuration
type Config struct {
	Level Level
	// Format is "json" or "text"; the zap backend maps text to its console encoder.
	Format  string
	Backend string
	// AddSource adds the caller's file:line to entries
	AddSource bool
}

// DefaultConfig returns info-level JSON logs through slog
func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Format:  "json",
		Backend: BackendSlog,
	}
}

// New builds a Logger for the configured backend
func New(cfg Config) (Logger, error) {
	if cfg.Backend == BackendZap {
		return NewZapLogger(cfg)
	}
	return NewSlogLogger(cfg), nil
}

var defaultLogger Logger

// SetDefault sets the process-wide logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger, creating a slog one on first use
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(DefaultConfig())
	}
	return defaultLogger
}

func Debug(msg string, fields ...Field) { Default().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { Default().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { Default().Warn(msg, fields...) }
func Error(msg string, fields ...Field) { Default().Error(msg, fields...) }
