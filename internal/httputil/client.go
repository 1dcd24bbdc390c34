package httputil

import (
	"context"
	"net/http"
	"time"
)

const DefaultTimeout = 30 * time.Second

// UserAgent identifies tripcast to upstream services. Nominatim's usage
// policy requires a descriptive agent string.
const UserAgent = "tripcast/1.0"

// NewClient returns an HTTP client with standard timeout configuration.
func NewClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
	}
}

// NewGet builds a GET request with context and the standard User-Agent set.
func NewGet(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	return req, nil
}
