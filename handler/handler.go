// Package handler exposes the /api action endpoint and the health check.
//
// A POST body names its action in the "action" field next to the action's
// own fields. Read-only actions may also be sent as GET with the action and
// its fields in the query string:
//
//	POST /api {"action":"LOGIN","email":"alice@x.com","password":"pw123"}
//	GET  /api?action=GET_POSTS&query=go
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/qeonaru/logging/logger"
	"github.com/ncobase/qeonaru/net/resp"
	"github.com/ncobase/qeonaru/service"
)

// HealthChecker reports datastore reachability.
type HealthChecker interface {
	Health(ctx context.Context) (map[string]any, bool)
}

// Handler aggregates all HTTP handlers.
type Handler struct {
	svc    *service.Service
	health HealthChecker
	logger *logger.Logger
}

// NewHandler creates a new handler instance.
func NewHandler(svc *service.Service, health HealthChecker, logger *logger.Logger) *Handler {
	return &Handler{
		svc:    svc,
		health: health,
		logger: logger,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("", h.Post)
		api.GET("", h.Get)
	}

	r.GET("/health", h.Health)

	r.NoRoute(func(c *gin.Context) {
		resp.Fail(c.Writer, resp.NotFound("Route not found"))
	})
}

// Health reports whether the datastore answers.
func (h *Handler) Health(c *gin.Context) {
	report, ok := h.health.Health(c.Request.Context())
	if !ok {
		h.logger.Warn(c.Request.Context(), "health check failed", "report", report)
		resp.WithStatusCode(c.Writer, http.StatusServiceUnavailable, report)
		return
	}
	resp.Success(c.Writer, report)
}
