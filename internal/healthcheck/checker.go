package healthcheck

import (
	"context"
	"io"
	"net/http"
	"time"
)

// AttemptTimeout bounds a single health check request
const AttemptTimeout = 10 * time.Second

// Checker performs single health check attempts
type Checker struct {
	client *http.Client
}

// NewChecker creates a Checker using the given HTTP client. A nil client gets
// a default one with the standard per-attempt timeout.
func NewChecker(client *http.Client) *Checker {
	if client == nil {
		client = &http.Client{Timeout: AttemptTimeout}
	}
	return &Checker{client: client}
}

// Check issues one GET against url and classifies the outcome. It never
// returns an error: transport failures become a Result with code "000" and
// status "fail".
func (c *Checker) Check(ctx context.Context, url string) Result {
	if url == "" {
		return SkippedResult()
	}

	start := time.Now()
	code := 0

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err == nil {
		resp, doErr := c.client.Do(req)
		if doErr == nil {
			code = resp.StatusCode
			// Drain so the connection can be reused or closed cleanly
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}

	latencyMS := time.Since(start).Milliseconds()

	return resultFor(code, latencyMS)
}
