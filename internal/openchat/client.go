// Package openchat wraps the outbound OpenChat messaging endpoint.
package openchat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/openwave/chatcast-backend/internal/errors"
)

// Dispatcher sends one text payload to the destination keyed by apiKey.
// Implemented by Client; the scheduler and forwarder depend on this interface
// so tests can inject fakes.
type Dispatcher interface {
	Send(ctx context.Context, apiKey, content string) error
}

// Client talks to the OpenChat HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client. The timeout bounds every Send call; there is no
// retry — delivery failures are recorded by callers, not retried here.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type messageRequest struct {
	Content string `json:"content"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Send posts one text message. Any transport or API failure comes back as a
// *appErrors.DispatchError.
func (c *Client) Send(ctx context.Context, apiKey, content string) error {
	body, err := json.Marshal(messageRequest{Content: content})
	if err != nil {
		return appErrors.NewDispatch(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return appErrors.NewDispatch(err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.NewDispatch(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return appErrors.NewDispatch(fmt.Errorf("OpenChat API returned status %d: %s", resp.StatusCode, apiErr.Message))
		}
		return appErrors.NewDispatch(fmt.Errorf("OpenChat API returned status %d", resp.StatusCode))
	}

	return nil
}

var _ Dispatcher = (*Client)(nil)
