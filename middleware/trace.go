package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/ctxutil"
)

// TraceHeader is the request and response header carrying the trace id.
const TraceHeader = "X-Trace-Id"

// Trace attaches a trace id to the request context and echoes it in the
// response. An incoming X-Trace-Id is reused.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if incoming := c.GetHeader(TraceHeader); incoming != "" {
			ctx = ctxutil.SetTraceID(ctx, incoming)
		}
		ctx, traceID := ctxutil.EnsureTraceID(ctx)

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, traceID)
		c.Next()
	}
}
