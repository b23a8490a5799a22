package nbastats

import (
	"testing"
	"time"
)

func clientAt(t time.Time) *Client {
	c := &Client{now: func() time.Time { return t }}
	return c
}

func TestCurrentSeasonRollsOverInOctober(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-09-30", "2024-25"},
		{"2025-10-01", "2025-26"},
		{"2026-01-15", "2025-26"},
		{"2026-06-30", "2025-26"},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := clientAt(d).CurrentSeason(); got != tc.want {
			t.Errorf("CurrentSeason at %s = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestParseMatchup(t *testing.T) {
	team, opp, home := parseMatchup("BOS vs. MIA")
	if team != "BOS" || opp != "MIA" || !home {
		t.Fatalf("home matchup decoded as (%q, %q, %v)", team, opp, home)
	}
	team, opp, home = parseMatchup("BOS @ MIA")
	if team != "BOS" || opp != "MIA" || home {
		t.Fatalf("road matchup decoded as (%q, %q, %v)", team, opp, home)
	}
	team, opp, home = parseMatchup("BOS")
	if team != "BOS" || opp != "" || home {
		t.Fatalf("malformed matchup decoded as (%q, %q, %v)", team, opp, home)
	}
}

func TestAsStringHandlesNumericIDs(t *testing.T) {
	if got := asString(float64(1628369)); got != "1628369" {
		t.Fatalf("numeric id formatted as %q", got)
	}
	if got := asString("Jayson Tatum"); got != "Jayson Tatum" {
		t.Fatalf("string passthrough gave %q", got)
	}
	if got := asString(nil); got != "" {
		t.Fatalf("nil should format as empty, got %q", got)
	}
}
