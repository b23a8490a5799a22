package api

import (
	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/usecase"
	xhttp "CourtPulse/pkg/http"
	xlogger "CourtPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PlayersHandler serves player identity lookups.
type PlayersHandler struct {
	logger   *xlogger.Logger
	resolver usecase.NameResolver
}

func NewPlayersHandler(logger *xlogger.Logger, resolver usecase.NameResolver) *PlayersHandler {
	return &PlayersHandler{logger: logger, resolver: resolver}
}

func (h *PlayersHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/players/resolve", h.Resolve)
}

// Resolve maps a free-text player name to a roster identity. A miss is a
// 404, not a server error.
func (h *PlayersHandler) Resolve(c echo.Context) error {
	req := &models.ResolveRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	match, err := h.resolver.Resolve(c.Request().Context(), req.Name)
	if err != nil {
		h.logger.Debug("player resolution miss",
			xlogger.String("name", req.Name), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("player not found").
			WithParam("name", req.Name).WithError(err))
	}
	return xhttp.SuccessResponse(c, match)
}
