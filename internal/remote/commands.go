package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusFetcher is implemented by *Client and used by the poller.
type StatusFetcher interface {
	GetStatus(ctx context.Context) (StatusResponse, error)
}

// Commander is implemented by *Client and used by the UI and CLI.
type Commander interface {
	SendCommand(ctx context.Context, intervals Intervals) (json.RawMessage, error)
}

// Ensure Client implements both at compile time.
var (
	_ StatusFetcher = (*Client)(nil)
	_ Commander     = (*Client)(nil)
)

// GetStatus retrieves the device connectivity status.
func (c *Client) GetStatus(ctx context.Context) (StatusResponse, error) {
	raw, err := c.Request(ctx, http.MethodGet, "/status", nil)
	if err != nil {
		return StatusResponse{}, err
	}
	var payload StatusResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return StatusResponse{}, &DecodeError{Path: "/status", Err: err}
	}
	return payload, nil
}

// SendCommand posts {"intervals": intervals} and returns the server's JSON
// reply. A nil schedule is sent as {}.
func (c *Client) SendCommand(ctx context.Context, intervals Intervals) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if intervals == nil {
		intervals = Off()
	}
	return c.Request(ctx, http.MethodPost, "/command", CommandRequest{Intervals: intervals})
}
