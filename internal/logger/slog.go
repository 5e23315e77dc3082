package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type slogLogger struct {
	logger *slog.Logger
	level  Level
}

// NewSlogLogger creates a Logger backed by log/slog writing to stdout
func NewSlogLogger(cfg Config) Logger {
	return newSlogLogger(os.Stdout, cfg)
}

func newSlogLogger(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &slogLogger{
		logger: slog.New(handler),
		level:  cfg.Level,
	}
}

// Discard returns a Logger that drops everything; used by tests
func Discard() Logger {
	return newSlogLogger(io.Discard, Config{Level: LevelError})
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func fieldsToArgs(fields []Field) []any {
	args := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		args = append(args, f.Key, f.Value)
	}
	return args
}

func (l *slogLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, fieldsToArgs(fields)...)
}

func (l *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{
		logger: l.logger.With(fieldsToArgs(fields)...),
		level:  l.level,
	}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *slogLogger) Level() Level {
	return l.level
}
