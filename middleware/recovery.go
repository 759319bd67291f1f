package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/net/resp"
)

// Recovery turns a panic into a logged 500 with the standard error body.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered",
			"error", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			"stack", string(debug.Stack()),
		)
		if !c.Writer.Written() {
			resp.Fail(c.Writer, resp.InternalServer(""))
		}
		c.Abort()
	})
}
