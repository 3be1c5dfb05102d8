// Package httpclient provides a reusable HTTP client for JSON APIs.
package httpclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NikhilAnand12/BOT-GPT/pkg/utils/json"
)

// Client is a thin wrapper around http.Client.
// Requests are executed exactly once; failures surface to the caller.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new HTTP client wrapper with the given timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DoRequest executes an HTTP request. This is a low-level method; the
// caller owns the response body.
func (c *Client) DoRequest(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// DoJSON executes a JSON request, decodes the response, and ensures the body is closed.
func (c *Client) DoJSON(req *http.Request, v interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request failed with status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
