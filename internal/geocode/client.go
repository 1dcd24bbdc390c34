package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tripcast/internal/httputil"
	"tripcast/internal/metrics"
	"tripcast/internal/place"
)

// API docs: https://nominatim.org/release-docs/develop/api/Search/
const defaultBaseURL = "https://nominatim.openstreetmap.org"

// maxResults is the upstream result cap per query.
const maxResults = 10

// Client is a Nominatim search client.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a geocoding client. An empty baseURL selects the public
// Nominatim instance.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  httputil.NewClient(),
	}
}

// Search resolves free text to place candidates with address details. The
// query is expected to be normalized already; it is sent percent-encoded.
func (c *Client) Search(ctx context.Context, query string) ([]place.Candidate, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("geocode: parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(maxResults))
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := httputil.NewGet(ctx, u.String())
	if err != nil {
		return nil, fmt.Errorf("geocode: build request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("geocode", "error").Inc()
		return nil, fmt.Errorf("geocode: fetch: %w", err)
	}
	defer resp.Body.Close()
	metrics.UpstreamLatency.WithLabelValues("geocode").Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamCallsTotal.WithLabelValues("geocode", strconv.Itoa(resp.StatusCode)).Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocode: status %d: %s", resp.StatusCode, string(body))
	}
	metrics.UpstreamCallsTotal.WithLabelValues("geocode", "ok").Inc()

	var candidates []place.Candidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("geocode: decode: %w", err)
	}
	return candidates, nil
}
