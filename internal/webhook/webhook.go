// Package webhook delivers build reports to a configured HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RequestTimeout bounds a single delivery attempt
const RequestTimeout = 10 * time.Second

// Sender posts JSON payloads to a webhook URL
type Sender struct {
	client    *http.Client
	userAgent string
}

// SenderOption is a function that modifies a Sender
type SenderOption func(*Sender)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(client *http.Client) SenderOption {
	return func(s *Sender) {
		s.client = client
	}
}

// WithUserAgent sets the User-Agent header for deliveries
func WithUserAgent(userAgent string) SenderOption {
	return func(s *Sender) {
		s.userAgent = userAgent
	}
}

// NewSender creates a Sender with the given options
func NewSender(opts ...SenderOption) *Sender {
	s := &Sender{
		client:    &http.Client{Timeout: RequestTimeout},
		userAgent: "buildmon",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Send serializes payload as compact JSON and POSTs it to url. The response
// body is drained and discarded; the webhook's answer is not interpreted,
// but any transport failure or request-building failure is returned so the
// caller can log it. An empty url is a no-op.
func (s *Sender) Send(ctx context.Context, url string, payload any) error {
	if url == "" {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection closes cleanly
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
