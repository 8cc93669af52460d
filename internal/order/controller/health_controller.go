package controller

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/dto"
	"coilworks/internal/httpx"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	db      Pinger
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthController(db Pinger, logger *zap.Logger) *HealthController {
	return &HealthController{
		db:      db,
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// HandleHealth reports whether the order service can reach its database.
func (c *HealthController) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		c.logger.Warn("order health check failed", zap.Error(err))
		httpx.WriteJSON(w, c.logger, http.StatusServiceUnavailable, dto.Envelope{
			Success: false,
			Data:    dto.HealthResponse{Status: "degraded", Database: "down"},
			Error:   "database unreachable",
		})
		return
	}

	httpx.WriteData(w, c.logger, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
