package logger

import (
	"context"

	"github.com/ncobase/qeonaru/ctxutil"
)

var (
	traceKey = ctxutil.TraceIDKey
	userKey  = ctxutil.UserIDKey
)

// getTraceID gets a trace ID from the context.
func getTraceID(ctx context.Context) string {
	return ctxutil.GetTraceID(ctx)
}

// getUserID gets the signed-in user ID from the context.
func getUserID(ctx context.Context) string {
	return ctxutil.GetUserID(ctx)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	return ctxutil.EnsureTraceID(ctx)
}
