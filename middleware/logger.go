package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/logging/logger"
)

// Logger logs one entry per request.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		args := []any{
			"method", method,
			"path", path,
			"status", status,
			"duration", duration.String(),
			"ip", c.ClientIP(),
		}
		if action, ok := c.Get(ActionKey); ok {
			args = append(args, "action", action)
		}

		switch {
		case status >= 500:
			log.Error(c.Request.Context(), "HTTP request", args...)
		case status >= 400:
			log.Warn(c.Request.Context(), "HTTP request", args...)
		default:
			log.Info(c.Request.Context(), "HTTP request", args...)
		}
	}
}

// ActionKey is the gin context key under which handlers record the dispatched action.
const ActionKey = "action"
