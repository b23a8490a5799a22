// Package nbastats calls the stats.nba.com API for the league player
// directory and per-player game logs. The API rejects requests without
// browser-like headers and throttles aggressively, so every call goes
// through a token bucket first.
package nbastats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"CourtPulse/internal/service/ratelimit"
	xhttp "CourtPulse/pkg/http"
)

const (
	limiterKey = "nbastats"

	seasonTypeRegular = "Regular Season"
	freeAgentTeam     = "FA"
)

var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
	"Referer":         "https://www.nba.com/",
	"Origin":          "https://www.nba.com",
	"Accept":          "application/json",
	"Accept-Language": "en-US,en;q=0.9",
}

// Client calls stats.nba.com endpoints.
type Client struct {
	baseURL      string
	http         *xhttp.Client
	limiter      *ratelimit.Limiter
	rateCapacity float64
	ratePerSec   float64
	now          func() time.Time
}

// NewClient builds a stats client. The limiter paces all requests under
// one shared key.
func NewClient(baseURL string, timeout time.Duration, limiter *ratelimit.Limiter, rateCapacity, ratePerSec float64) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if rateCapacity <= 0 {
		rateCapacity = 3
	}
	if ratePerSec <= 0 {
		ratePerSec = 0.5
	}
	return &Client{
		baseURL:      baseURL,
		// The stats endpoint drops connections under load; retry twice.
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithRetries(2)),
		limiter:      limiter,
		rateCapacity: rateCapacity,
		ratePerSec:   ratePerSec,
		now:          time.Now,
	}
}

// SetClock overrides the clock, for tests.
func (c *Client) SetClock(now func() time.Time) { c.now = now }

// CurrentSeason formats today's date as an NBA season key, e.g. "2025-26".
// Seasons roll over in October.
func (c *Client) CurrentSeason() string {
	t := c.now()
	year := t.Year()
	if t.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

type statsResponse struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

func (c *Client) getStats(ctx context.Context, path string, query map[string][]string) (*statsResponse, error) {
	if err := c.limiter.Wait(ctx, limiterKey, c.rateCapacity, c.ratePerSec); err != nil {
		return nil, err
	}
	var resp statsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		Headers:     browserHeaders,
		QueryParams: query,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("nbastats get %s: %w", path, err)
	}
	if len(resp.ResultSets) == 0 {
		return nil, fmt.Errorf("nbastats get %s: empty result sets", path)
	}
	return &resp, nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func asFloat(v interface{}) float64 {
	f, _ := v.(float64)
	return f
}
