package api

import (
	"context"
	"net/http"

	xlogger "CourtPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Pinger checks a backing store's liveness.
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler serves the liveness probe.
type HealthHandler struct {
	logger *xlogger.Logger
	store  Pinger
}

func NewHealthHandler(logger *xlogger.Logger, store Pinger) *HealthHandler {
	return &HealthHandler{logger: logger, store: store}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)
}

func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Error("store health check failed", xlogger.Error(err))
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
