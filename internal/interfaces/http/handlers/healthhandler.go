package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keygate/internal/shared/logger"
	"keygate/internal/shared/utils"
)

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger logger.Interface
}

func NewHealthHandler(ping func(ctx context.Context) error, log logger.Interface) *HealthHandler {
	return &HealthHandler{ping: ping, logger: log}
}

// Check handles GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"status": "healthy"})
}
