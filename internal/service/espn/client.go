// Package espn wraps the ESPN site API endpoints the aggregation core
// pulls from: the league injury table and the daily scoreboard.
package espn

import (
	"context"
	"fmt"
	"time"

	xhttp "CourtPulse/pkg/http"
)

// Client calls the ESPN site API.
type Client struct {
	baseURL string
	http    *xhttp.Client
	now     func() time.Time
}

// NewClient builds an ESPN client with the given base URL and timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		now:     time.Now,
	}
}

// SetClock overrides the clock, for tests.
func (c *Client) SetClock(now func() time.Time) { c.now = now }

func (c *Client) getJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + path,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("espn get %s: %w", path, err)
	}
	return nil
}
