// Package transport implements the HTTP client for the analysis service.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cogitolab/cogito/internal/core"
)

// Default endpoints exposed by the analysis service.
const (
	DebatePath = "/api/debate"
	CancelPath = "/api/cancel"
	HealthPath = "/api/health"
)

// DefaultTimeout bounds a single debate request. The service itself
// enforces a five minute cap per debate, so stay slightly above it.
const DefaultTimeout = 6 * time.Minute

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analysis service returned status %d", e.Code)
}

// HealthStatus is the service's health check response.
type HealthStatus struct {
	Status        string `json:"status"`
	ActiveDebates int    `json:"active_debates"`
}

// Client talks to the remote analysis service.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the service at baseURL. A zero timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Debate submits a topic and blocks until the decision matrix arrives,
// the context is cancelled, or the request fails. Cancelling the
// context is the abort handle for an in-flight debate.
func (c *Client) Debate(ctx context.Context, topic string) (*core.DebateResult, error) {
	body, err := json.Marshal(map[string]string{"topic": topic})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+DebatePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("debate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result, err := core.ParseResult(data)
	if err != nil {
		return nil, fmt.Errorf("malformed response body: %w", err)
	}
	return result, nil
}

// NotifyCancel sends the best-effort out-of-band cancel notification.
// The outcome is ignored; the primary abort already happened client-side.
func (c *Client) NotifyCancel(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+CancelPath, nil)
	if err != nil {
		return
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		slog.Debug("Cancel notification failed", "error", err)
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// Health probes the service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("malformed health response: %w", err)
	}
	return &status, nil
}
