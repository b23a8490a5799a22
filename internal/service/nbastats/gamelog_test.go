package nbastats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"CourtPulse/internal/service/ratelimit"
)

func serveStats(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, ratelimit.New(), 10, 100)
}

func TestGameLogNormalizesGameDates(t *testing.T) {
	c := serveStats(t, `{
		"resultSets": [{
			"name": "PlayerGameLog",
			"headers": ["SEASON_ID", "GAME_DATE", "MATCHUP", "MIN", "PTS", "REB", "AST"],
			"rowSet": [
				["22025", "APR 09, 2025", "BOS vs. MIA", 36.0, 31.0, 8.0, 5.0],
				["22025", "MAR 28, 2025", "BOS @ ORL", 34.0, 24.0, 6.0, 4.0]
			]
		}]
	}`)

	games, err := c.GameLog(context.Background(), "1628369", "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games", len(games))
	}
	if games[0].GameDate != "2025-04-09" || games[1].GameDate != "2025-03-28" {
		t.Fatalf("dates not normalized: %q, %q", games[0].GameDate, games[1].GameDate)
	}
	// ISO form must compare newest-first as plain strings; storage sorts
	// on it lexicographically.
	if !(games[0].GameDate > games[1].GameDate) {
		t.Fatalf("april game should sort after march: %q vs %q", games[0].GameDate, games[1].GameDate)
	}
	if games[0].Team != "BOS" || games[0].Opponent != "MIA" || !games[0].IsHome {
		t.Fatalf("game decoded as %+v", games[0])
	}
	if games[0].Points != 31 || games[0].Minutes != 36 {
		t.Fatalf("stat lines decoded as %+v", games[0])
	}
}

func TestGameLogSkipsShortRows(t *testing.T) {
	c := serveStats(t, `{
		"resultSets": [{
			"name": "PlayerGameLog",
			"headers": ["GAME_DATE", "MATCHUP", "MIN", "PTS", "REB", "AST"],
			"rowSet": [
				["APR 09, 2025", "BOS vs. MIA"],
				[],
				["APR 06, 2025", "BOS @ NYK", 33.0, 22.0, 7.0, 3.0]
			]
		}]
	}`)

	games, err := c.GameLog(context.Background(), "1628369", "Jayson Tatum")
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games, want the truncated rows skipped", len(games))
	}
	if games[0].GameDate != "2025-04-06" {
		t.Fatalf("kept the wrong row: %+v", games[0])
	}
}

func TestGameLogRejectsMissingColumns(t *testing.T) {
	c := serveStats(t, `{
		"resultSets": [{
			"name": "PlayerGameLog",
			"headers": ["GAME_DATE", "MATCHUP"],
			"rowSet": []
		}]
	}`)

	if _, err := c.GameLog(context.Background(), "1628369", "Jayson Tatum"); err == nil {
		t.Fatal("expected an error for a result set without stat columns")
	}
}

func TestNormalizeGameDate(t *testing.T) {
	if got := normalizeGameDate("APR 09, 2025"); got != "2025-04-09" {
		t.Fatalf("got %q", got)
	}
	if got := normalizeGameDate("2025-04-09"); got != "2025-04-09" {
		t.Fatalf("already normalized dates should survive, got %q", got)
	}
	if got := normalizeGameDate("not a date"); got != "not a date" {
		t.Fatalf("unparseable input should pass through, got %q", got)
	}
}
