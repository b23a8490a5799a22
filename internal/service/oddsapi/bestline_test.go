package oddsapi

import (
	"testing"

	"CourtPulse/internal/domain/models"
)

func fp(v float64) *float64 { return &v }

func event(home, away string, books ...Bookmaker) Event {
	return Event{
		HomeTeam:     home,
		AwayTeam:     away,
		CommenceTime: "2026-01-15T00:00:00Z",
		Bookmakers:   books,
	}
}

func TestExtractBestLinesLowerLineWins(t *testing.T) {
	ev := event("Boston Celtics", "Miami Heat",
		Bookmaker{Title: "DraftKings", Markets: []Market{{
			Key: marketPoints,
			Outcomes: []Outcome{
				{Name: "Over", Description: "Jayson Tatum", Point: fp(27.5), Price: fp(-110)},
			},
		}}},
		Bookmaker{Title: "FanDuel", Markets: []Market{{
			Key: marketPoints,
			Outcomes: []Outcome{
				{Name: "Over", Description: "Jayson Tatum", Point: fp(26.5), Price: fp(-115)},
			},
		}}},
	)

	best := ExtractBestLines([]Event{ev})
	line, ok := best[LineKey("Jayson Tatum", models.PropPoints)]
	if !ok {
		t.Fatal("expected a best line for Jayson Tatum points")
	}
	if line.Line != 26.5 || line.Book != "FanDuel" {
		t.Fatalf("got line %.1f from %s, want 26.5 from FanDuel", line.Line, line.Book)
	}
}

func TestExtractBestLinesFirstSeenWinsTies(t *testing.T) {
	ev := event("Boston Celtics", "Miami Heat",
		Bookmaker{Title: "DraftKings", Markets: []Market{{
			Key: marketRebounds,
			Outcomes: []Outcome{
				{Name: "Over", Description: "Bam Adebayo", Point: fp(10.5), Price: fp(-105)},
			},
		}}},
		Bookmaker{Title: "FanDuel", Markets: []Market{{
			Key: marketRebounds,
			Outcomes: []Outcome{
				{Name: "Over", Description: "Bam Adebayo", Point: fp(10.5), Price: fp(-120)},
			},
		}}},
	)

	best := ExtractBestLines([]Event{ev})
	line := best[LineKey("Bam Adebayo", models.PropRebounds)]
	if line.Book != "DraftKings" {
		t.Fatalf("tie should keep first-seen book, got %s", line.Book)
	}
}

func TestExtractBestLinesSkipsIncompleteOutcomes(t *testing.T) {
	ev := event("Boston Celtics", "Miami Heat",
		Bookmaker{Title: "DraftKings", Markets: []Market{{
			Key: marketAssists,
			Outcomes: []Outcome{
				{Name: "Under", Description: "Jrue Holiday", Point: fp(6.5), Price: fp(-110)},
				{Name: "Over", Description: "", Point: fp(6.5), Price: fp(-110)},
				{Name: "Over", Description: "Jrue Holiday", Point: nil, Price: fp(-110)},
			},
		}}},
	)

	if best := ExtractBestLines([]Event{ev}); len(best) != 0 {
		t.Fatalf("expected no lines from incomplete outcomes, got %d", len(best))
	}
}

func TestExtractBestLinesIgnoresUnknownMarkets(t *testing.T) {
	ev := event("Boston Celtics", "Miami Heat",
		Bookmaker{Title: "DraftKings", Markets: []Market{{
			Key: "player_threes",
			Outcomes: []Outcome{
				{Name: "Over", Description: "Derrick White", Point: fp(2.5), Price: fp(-110)},
			},
		}}},
	)

	if best := ExtractBestLines([]Event{ev}); len(best) != 0 {
		t.Fatalf("unknown market should be skipped, got %d lines", len(best))
	}
}

func TestNormalizePlayerName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"P.J. Washington", "Pj Washington"},
		{"  jayson  tatum ", "Jayson Tatum"},
		{"LEBRON JAMES", "Lebron James"},
	}
	for _, tc := range cases {
		if got := NormalizePlayerName(tc.in); got != tc.want {
			t.Errorf("NormalizePlayerName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAttributeTeam(t *testing.T) {
	if got := attributeTeam("Jaylen Boston", "Boston Celtics", "Miami Heat"); got != "Boston Celtics" {
		t.Fatalf("surname in home team name should attribute home, got %q", got)
	}
	if got := attributeTeam("Jimmy Butler", "Boston Celtics", "Miami Heat"); got != "Miami Heat" {
		t.Fatalf("no surname match should default to away, got %q", got)
	}
	if got := attributeTeam("", "Boston Celtics", "Miami Heat"); got != "Miami Heat" {
		t.Fatalf("empty name should default to away, got %q", got)
	}
}
