package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	sugar *zap.SugaredLogger
	level Level
}

// NewZapLogger creates a Logger backed by zap. JSON format uses the
// production encoder, text uses the development console encoder.
func NewZapLogger(cfg Config) (Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "text" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(toZapLevel(cfg.Level))
	zcfg.DisableCaller = !cfg.AddSource
	zcfg.OutputPaths = []string{"stdout"}

	z, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	return &zapLogger{sugar: z.Sugar(), level: cfg.Level}, nil
}

// newZapLoggerFromCore wraps an existing core; tests use it with an observer core
func newZapLoggerFromCore(core zapcore.Core, level Level) Logger {
	return &zapLogger{sugar: zap.New(core).Sugar(), level: level}
}

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.sugar.Debugw(msg, fieldsToArgs(fields)...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.sugar.Infow(msg, fieldsToArgs(fields)...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.sugar.Warnw(msg, fieldsToArgs(fields)...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.sugar.Errorw(msg, fieldsToArgs(fields)...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{sugar: l.sugar.With(fieldsToArgs(fields)...), level: l.level}
}

func (l *zapLogger) WithContext(ctx context.Context) Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

func (l *zapLogger) Level() Level {
	return l.level
}

// Sync flushes buffered zap entries. It is a no-op for other backends.
func Sync(l Logger) {
	if z, ok := l.(*zapLogger); ok {
		_ = z.sugar.Sync()
	}
}
