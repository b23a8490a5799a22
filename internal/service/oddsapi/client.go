// Package oddsapi pulls the player prop board from The Odds API and
// reduces it to one best line per (player, prop).
package oddsapi

import (
	"context"
	"fmt"
	"time"

	xhttp "CourtPulse/pkg/http"
)

// Market keys on the board that map to prop types; everything else on the
// board is ignored.
const (
	marketPoints   = "player_points"
	marketRebounds = "player_rebounds"
	marketAssists  = "player_assists"
)

// Client calls The Odds API.
type Client struct {
	baseURL string
	apiKey  string
	regions string
	http    *xhttp.Client
}

// NewClient builds an odds board client.
func NewClient(baseURL, apiKey, regions string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		regions: regions,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Event is one game on the board with every bookmaker's prop markets.
type Event struct {
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	CommenceTime string      `json:"commence_time"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker is one book's markets within an event.
type Bookmaker struct {
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

// Market is one prop market with its outcomes.
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome is one side of a prop quote. Description carries the player
// name; Point is the posted line. Both are required for extraction.
type Outcome struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Point       *float64 `json:"point"`
	Price       *float64 `json:"price"`
}

// Board fetches the full NBA player prop board.
func (c *Client) Board(ctx context.Context) ([]Event, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("odds api key not configured")
	}

	var events []Event
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/sports/basketball_nba/odds",
		QueryParams: map[string][]string{
			"apiKey":     {c.apiKey},
			"regions":    {c.regions},
			"markets":    {marketPoints + "," + marketRebounds + "," + marketAssists},
			"oddsFormat": {"american"},
		},
	}, &events)
	if err != nil {
		return nil, fmt.Errorf("odds board fetch: %w", err)
	}
	return events, nil
}
