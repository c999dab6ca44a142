package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/coolctl/internal/logging"
)

// HeaderSource supplies the Authorization header for each request.
type HeaderSource interface {
	Header(ctx context.Context) (string, error)
}

// CredentialPurger drops a credential the server rejected.
type CredentialPurger interface {
	Reject() error
}

// Client talks to the device HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	auth      HeaderSource
	creds     CredentialPurger
	log       *logging.Logger
	userAgent string
}

const (
	defaultAPIURL    = "127.0.0.1:8080"
	defaultUserAgent = "coolctl/0.1"
	requestTimeout   = 5 * time.Second
	maxErrorBody     = 64 << 10
)

// NewClient builds a Client for apiURL. auth signs every request and creds is
// told when the server rejects the credential. Both are normally the same
// *auth.Authenticator.
func NewClient(apiURL string, auth HeaderSource, creds CredentialPurger, log *logging.Logger) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		auth:      auth,
		creds:     creds,
		log:       log,
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalised API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Request sends a JSON request and returns the raw JSON response body. body
// is encoded when non-nil. Errors are one of *AuthRejectedError, *HTTPError,
// *NetworkError, *DecodeError, or whatever the HeaderSource returned.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	header, err := c.auth.Header(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Authorization", header)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debugw("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return nil, &NetworkError{Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debugw("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(started),
		"request_id", requestID,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.creds.Reject(); err != nil {
			c.log.Warnw("clear rejected credential failed", "err", err)
		}
		c.log.Warnw("credential rejected by server, cleared", "path", path)
		return nil, &AuthRejectedError{Path: path}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(text)), BodyErr: readErr}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Path: path, Err: err}
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return raw, nil
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
