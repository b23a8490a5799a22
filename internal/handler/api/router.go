package api

import (
	xhttp "CourtPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// Router bundles every API handler into one route registrar.
type Router struct {
	handlers []xhttp.Handler
}

func NewRouter(home *HomeHandler, players *PlayersHandler, cron *CronHandler, health *HealthHandler) *Router {
	return &Router{handlers: []xhttp.Handler{home, players, cron, health}}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	for _, h := range r.handlers {
		h.RegisterRoutes(e)
	}
}
