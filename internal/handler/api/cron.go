package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/usecase"
	xlogger "CourtPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CronHandler exposes the scheduled refresh triggers. Responses here are
// a fixed wire contract consumed by the scheduler, so they are emitted as
// raw JSON instead of the shared response envelope.
type CronHandler struct {
	logger    *xlogger.Logger
	trends    *usecase.Section[models.TrendSignal]
	injuries  *usecase.Section[models.InjuryReport]
	schedule  *usecase.Section[models.ScheduledGame]
	refresher *usecase.PlayerRefresher
	secret    string
	now       func() time.Time
}

func NewCronHandler(logger *xlogger.Logger, trends *usecase.Section[models.TrendSignal], injuries *usecase.Section[models.InjuryReport], schedule *usecase.Section[models.ScheduledGame], refresher *usecase.PlayerRefresher, secret string) *CronHandler {
	return &CronHandler{
		logger:    logger,
		trends:    trends,
		injuries:  injuries,
		schedule:  schedule,
		refresher: refresher,
		secret:    secret,
		now:       time.Now,
	}
}

func (h *CronHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/cron", h.requireSecret, h.failClosed)
	g.GET("/update-trends", h.UpdateTrends)
	g.GET("/update-injuries", h.UpdateInjuries)
	g.GET("/update-schedule", h.UpdateSchedule)
	g.GET("/update-stats", h.UpdateStats)
}

// failClosed turns any escaped failure into the scheduler's error
// envelope so the caller always gets the fixed contract.
func (h *CronHandler) failClosed(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("cron handler panicked",
					xlogger.String("path", c.Path()), xlogger.Any("panic", r))
				err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"success": false,
					"error":   "internal error",
				})
			}
		}()
		if err = next(c); err != nil {
			h.logger.Error("cron handler failed",
				xlogger.String("path", c.Path()), xlogger.Error(err))
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"error":   err.Error(),
			})
		}
		return nil
	}
}

// requireSecret enforces the bearer token when one is configured.
func (h *CronHandler) requireSecret(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.secret == "" {
			return next(c)
		}
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.secret)) != 1 {
			h.logger.Warn("cron auth rejected", xlogger.String("path", c.Path()))
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"error":   "unauthorized",
			})
		}
		return next(c)
	}
}

type cronRefreshResponse struct {
	Success   bool   `json:"success"`
	UpdatedAt string `json:"updatedAt"`
	Count     int    `json:"count"`
	Source    string `json:"source"`
	Stale     bool   `json:"stale"`
}

func (h *CronHandler) UpdateTrends(c echo.Context) error {
	res := h.trends.Get(c.Request().Context(), true, 0)
	return h.refreshResponse(c, len(res.Items), res.UpdatedAt, res.Source, res.Stale)
}

func (h *CronHandler) UpdateInjuries(c echo.Context) error {
	res := h.injuries.Get(c.Request().Context(), true, 0)
	return h.refreshResponse(c, len(res.Items), res.UpdatedAt, res.Source, res.Stale)
}

func (h *CronHandler) UpdateSchedule(c echo.Context) error {
	res := h.schedule.Get(c.Request().Context(), true, 0)
	return h.refreshResponse(c, len(res.Items), res.UpdatedAt, res.Source, res.Stale)
}

func (h *CronHandler) refreshResponse(c echo.Context, count int, updatedAt time.Time, source string, stale bool) error {
	if updatedAt.IsZero() {
		updatedAt = h.now()
	}
	return c.JSON(http.StatusOK, cronRefreshResponse{
		Success:   true,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
		Count:     count,
		Source:    source,
		Stale:     stale,
	})
}

type cronStatsResponse struct {
	Success        bool                          `json:"success"`
	Timestamp      string                        `json:"timestamp"`
	PlayersUpdated int                           `json:"playersUpdated"`
	PlayersFailed  int                           `json:"playersFailed"`
	Details        []usecase.PlayerRefreshResult `json:"details"`
}

func (h *CronHandler) UpdateStats(c echo.Context) error {
	details := h.refresher.UpdateTracked(c.Request().Context())

	updated, failed := 0, 0
	for _, d := range details {
		if d.Error == "" {
			updated++
		} else {
			failed++
		}
	}
	h.logger.Info("tracked stats refresh finished",
		xlogger.Int("updated", updated), xlogger.Int("failed", failed))

	return c.JSON(http.StatusOK, cronStatsResponse{
		Success:        true,
		Timestamp:      h.now().UTC().Format(time.RFC3339),
		PlayersUpdated: updated,
		PlayersFailed:  failed,
		Details:        details,
	})
}
