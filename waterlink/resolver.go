package waterlink

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"waterlink/pkg/retrylimit"
)

// QueryOption adjusts how a loadtracks query is retried.
type QueryOption func(*queryOptions)

type queryOptions struct {
	retries int
	delay   time.Duration
}

// WithRetryCount sets how many extra attempts are made when the node
// returns an empty result set. The default is zero.
func WithRetryCount(n int) QueryOption {
	return func(o *queryOptions) { o.retries = n }
}

// WithRetryDelay sets the wait between attempts. The default is one second.
func WithRetryDelay(d time.Duration) QueryOption {
	return func(o *queryOptions) { o.delay = d }
}

// loadTracksResponse is the node's REST answer to a loadtracks query.
type loadTracksResponse struct {
	LoadType string  `json:"loadType"`
	Tracks   []Track `json:"tracks"`
}

// Query resolves a search query or URL into playable tracks through the
// node's REST endpoint. An empty result set is treated as transient and
// retried per the caller's policy; exhausting the budget returns the empty
// slice, not an error. Transport and decode failures abort immediately.
func (c *Connection) Query(ctx context.Context, identifier string, opts ...QueryOption) ([]Track, error) {
	o := queryOptions{delay: time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	c.mu.Lock()
	base, password := c.restURL, c.password
	c.mu.Unlock()

	endpoint := fmt.Sprintf("%s/loadtracks?identifier=%s", base, url.QueryEscape(identifier))

	var tracks []Track
	err := retrylimit.Do(ctx, retrylimit.Policy{Retries: o.retries, Delay: o.delay},
		func(ctx context.Context) (bool, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return false, err
			}
			req.Header.Set("Authorization", password)
			req.Header.Set("Accept", "application/json")

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return false, fmt.Errorf("loadtracks: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return false, fmt.Errorf("loadtracks: unexpected status %s", resp.Status)
			}

			var out loadTracksResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return false, fmt.Errorf("loadtracks: decoding response: %w", err)
			}
			tracks = out.Tracks
			return len(tracks) > 0, nil
		})
	if err != nil {
		return nil, err
	}
	return tracks, nil
}
