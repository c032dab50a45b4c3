// Package backend is the typed HTTP client for the external storefront
// REST API. The gateway owns no entity state: every read and mutation in
// the application goes through this client.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-gateway/internal/common/metrics"
)

const requestTimeout = 10 * time.Second

// APIError carries a non-2xx upstream response. The body is kept verbatim;
// the upstream does not expose structured error codes.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront API error: %d %s (%s)", e.Status, e.Body, e.Path)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New builds a client for the given base URL, e.g. "https://host/api".
func New(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("storefront API base URL is not set")
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}, nil
}

// doJSON issues a JSON request and decodes the response into out when
// out is non-nil. Non-2xx responses become *APIError; nothing is retried.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, path, out)
}

// doMultipart issues a multipart/form-data request built from form.
func (c *Client) doMultipart(ctx context.Context, method, path string, form *Form, out interface{}) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues(req.Method, path, "error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestDuration.WithLabelValues(req.Method, path, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// HealthCheck is used by the readiness probe. Any upstream reply,
// including an error status, proves the backend is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
