package api

import (
	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/usecase"
	xhttp "CourtPulse/pkg/http"
	xlogger "CourtPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HomeHandler serves the aggregated home feed.
type HomeHandler struct {
	logger *xlogger.Logger
	orch   *usecase.Orchestrator
}

func NewHomeHandler(logger *xlogger.Logger, orch *usecase.Orchestrator) *HomeHandler {
	return &HomeHandler{logger: logger, orch: orch}
}

func (h *HomeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/home", h.Home)
}

func (h *HomeHandler) Home(c echo.Context) error {
	req := &models.HomeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	payload := h.orch.Aggregate(c.Request().Context(), req.Force)
	h.logger.Debug("home feed served",
		xlogger.Int("trends", len(payload.Trends)),
		xlogger.Int("injuries", len(payload.Injuries)),
		xlogger.Int("schedule", len(payload.Schedule)))
	return xhttp.SuccessResponse(c, payload)
}
