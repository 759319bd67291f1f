// Package ctxutil carries request-scoped values through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	// TraceIDKey is the log field and context key of the request trace id.
	TraceIDKey = "trace_id"
	// UserIDKey is the log field and context key of the signed-in user id.
	UserIDKey = "user_id"
)

// GetTraceID gets the trace id from context.Context.
func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(ctxKey(TraceIDKey)).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets the trace id to context.Context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey(TraceIDKey), traceID)
}

// EnsureTraceID returns ctx with a trace id, generating one if absent.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// GetUserID gets the signed-in user id from context.Context.
func GetUserID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if userID, ok := ctx.Value(ctxKey(UserIDKey)).(string); ok {
		return userID
	}
	return ""
}

// SetUserID sets the signed-in user id to context.Context.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey(UserIDKey), userID)
}
