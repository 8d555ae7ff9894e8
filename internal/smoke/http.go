package smoke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Do sends c and returns the status code and body.
func (h *HTTPClient) Do(ctx context.Context, c Case) (int, string, error) {
	var body io.Reader = http.NoBody
	if c.Body != "" {
		body = strings.NewReader(c.Body)
	}

	req, err := http.NewRequestWithContext(ctx, c.Method, h.baseURL+c.Path, body)
	if err != nil {
		return 0, "", fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, string(data), nil
}
