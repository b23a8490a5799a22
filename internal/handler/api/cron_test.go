package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
	"CourtPulse/internal/service/roster"
	"CourtPulse/internal/usecase"
	xlogger "CourtPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubStore[T any] struct {
	rows []repository.SnapshotRow[T]
}

func (s *stubStore[T]) ReadRecent(context.Context, int) ([]repository.SnapshotRow[T], error) {
	return s.rows, nil
}

func (s *stubStore[T]) AppendBatch(_ context.Context, asOf time.Time, payload []T) error {
	for _, p := range payload {
		s.rows = append(s.rows, repository.SnapshotRow[T]{AsOf: asOf, Payload: p})
	}
	return nil
}

type nopMetrics struct{}

func (nopMetrics) SectionServed(string, string, bool)    {}
func (nopMetrics) SectionDuration(string, time.Duration) {}
func (nopMetrics) UpstreamError(string)                  {}
func (nopMetrics) ResolverLookup(string)                 {}
func (nopMetrics) RosterSize(int)                        {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func testSections(t *testing.T) (*usecase.Section[models.TrendSignal], *usecase.Section[models.InjuryReport], *usecase.Section[models.ScheduledGame]) {
	t.Helper()
	log := testLogger(t)
	trends := usecase.NewSection[models.TrendSignal]("trends", &stubStore[models.TrendSignal]{},
		func(context.Context) ([]models.TrendSignal, error) {
			return []models.TrendSignal{{PlayerName: "Jayson Tatum"}}, nil
		}, log, nopMetrics{})
	injuries := usecase.NewSection[models.InjuryReport]("injuries", &stubStore[models.InjuryReport]{},
		func(context.Context) ([]models.InjuryReport, error) {
			return []models.InjuryReport{{PlayerName: "Kristaps Porzingis"}}, nil
		}, log, nopMetrics{})
	schedule := usecase.NewSection[models.ScheduledGame]("schedule", &stubStore[models.ScheduledGame]{},
		func(context.Context) ([]models.ScheduledGame, error) {
			return []models.ScheduledGame{{HomeTeam: "Boston Celtics"}}, nil
		}, log, nopMetrics{})
	return trends, injuries, schedule
}

func cronRequest(t *testing.T, h *CronHandler, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCronRejectsMissingToken(t *testing.T) {
	trends, injuries, schedule := testSections(t)
	h := NewCronHandler(testLogger(t), trends, injuries, schedule, nil, "s3cret")

	rec := cronRequest(t, h, "/api/cron/update-trends", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != false {
		t.Fatalf("body %v", body)
	}
}

func TestCronRejectsWrongToken(t *testing.T) {
	trends, injuries, schedule := testSections(t)
	h := NewCronHandler(testLogger(t), trends, injuries, schedule, nil, "s3cret")

	rec := cronRequest(t, h, "/api/cron/update-trends", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestCronAllowsWhenNoSecretConfigured(t *testing.T) {
	trends, injuries, schedule := testSections(t)
	h := NewCronHandler(testLogger(t), trends, injuries, schedule, nil, "")

	rec := cronRequest(t, h, "/api/cron/update-trends", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestCronRefreshResponseContract(t *testing.T) {
	trends, injuries, schedule := testSections(t)
	h := NewCronHandler(testLogger(t), trends, injuries, schedule, nil, "s3cret")

	rec := cronRequest(t, h, "/api/cron/update-injuries", "s3cret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"success", "updatedAt", "count", "source", "stale"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("response missing %q: %v", key, body)
		}
	}
	if body["success"] != true || body["count"] != float64(1) || body["source"] != "live" || body["stale"] != false {
		t.Fatalf("body %v", body)
	}
	if _, err := time.Parse(time.RFC3339, body["updatedAt"].(string)); err != nil {
		t.Fatalf("updatedAt not RFC3339: %v", body["updatedAt"])
	}
}

func TestCronUpdateStatsResponseShape(t *testing.T) {
	trends, injuries, schedule := testSections(t)
	refresher := usecase.NewPlayerRefresher(
		failingResolver{}, nil, nil, testLogger(t), []string{"Jayson Tatum"}, time.Millisecond, 0)
	h := NewCronHandler(testLogger(t), trends, injuries, schedule, refresher, "s3cret")

	rec := cronRequest(t, h, "/api/cron/update-stats", "s3cret")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body struct {
		Success        bool                          `json:"success"`
		Timestamp      string                        `json:"timestamp"`
		PlayersUpdated int                           `json:"playersUpdated"`
		PlayersFailed  int                           `json:"playersFailed"`
		Details        []usecase.PlayerRefreshResult `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.PlayersUpdated != 0 || body.PlayersFailed != 1 || len(body.Details) != 1 {
		t.Fatalf("body %+v", body)
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (*roster.Match, error) {
	return nil, errors.New("no match")
}
