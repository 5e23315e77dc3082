package logger

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	userRoleKey  contextKey = "user_role"
	loggerKey    contextKey = "logger"
)

// WithRequestID adds a request ID to the context.
// If requestID is empty, a new UUID is generated.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUser adds the authenticated user's id and role to the context
func WithUser(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}

func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

func UserRoleFromContext(ctx context.Context) string {
	if role, ok := ctx.Value(userRoleKey).(string); ok {
		return role
	}
	return ""
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context, or returns the default logger
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

func extractContextFields(ctx context.Context) []Field {
	var fields []Field

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, String("request_id", requestID))
	}
	if userID := UserIDFromContext(ctx); userID != "" {
		fields = append(fields, String("user_id", userID))
	}
	if role := UserRoleFromContext(ctx); role != "" {
		fields = append(fields, String("user_role", role))
	}

	return fields
}

// Ctx returns the context's logger enriched with the context's values
func Ctx(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
