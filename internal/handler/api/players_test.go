package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/service/roster"

	"github.com/labstack/echo/v4"
)

type stubResolver struct {
	match *roster.Match
	err   error
}

func (r stubResolver) Resolve(context.Context, string) (*roster.Match, error) {
	return r.match, r.err
}

func resolveRequest(t *testing.T, h *PlayersHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, "/api/players/resolve"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestResolveReturnsMatch(t *testing.T) {
	h := NewPlayersHandler(testLogger(t), stubResolver{match: &roster.Match{
		Player:     models.PlayerIdentity{ID: "1628369", Name: "Jayson Tatum", Team: "Celtics"},
		MatchType:  "exact",
		Confidence: 1,
	}})

	rec := resolveRequest(t, h, "?name=Jayson%20Tatum")
	var body struct {
		Status int          `json:"status"`
		Data   roster.Match `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusOK || body.Data.Player.ID != "1628369" {
		t.Fatalf("body %+v", body)
	}
}

func TestResolveMissIsNotFound(t *testing.T) {
	h := NewPlayersHandler(testLogger(t), failingResolver{})

	rec := resolveRequest(t, h, "?name=Nobody%20Real")
	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusNotFound {
		t.Fatalf("envelope status %d", body.Status)
	}
}

func TestResolveRequiresName(t *testing.T) {
	h := NewPlayersHandler(testLogger(t), stubResolver{})

	rec := resolveRequest(t, h, "")
	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusBadRequest {
		t.Fatalf("envelope status %d", body.Status)
	}
}
