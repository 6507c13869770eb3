package following

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout          = 5 * time.Second
	defaultFailureThreshold = 3
	defaultOpenDuration     = 30 * time.Second

	// maxResponseSize caps the decoded follow list body
	maxResponseSize = 1 << 20
)

// followEntry is one element of GET /following/{username}
type followEntry struct {
	Username string `json:"username"`
}

// Client calls the follower service over HTTP
type Client struct {
	httpClient     *http.Client
	circuitBreaker *circuitBreaker
	baseURL        string
	timeout        time.Duration
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithCircuitBreaker sets how many consecutive failures open the circuit and
// for how long it stays open. A threshold <= 0 disables the breaker.
func WithCircuitBreaker(failureThreshold int, openDuration time.Duration) ClientOption {
	return func(c *Client) {
		if failureThreshold <= 0 {
			c.circuitBreaker = nil
			return
		}
		c.circuitBreaker = newCircuitBreaker(failureThreshold, openDuration)
	}
}

// NewClient creates a follower service client for baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid following service URL: %w", err)
	}

	c := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		timeout:        defaultTimeout,
		circuitBreaker: newCircuitBreaker(defaultFailureThreshold, defaultOpenDuration),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	c.httpClient.Timeout = c.timeout

	return c, nil
}

// GetFollowing returns the usernames that username follows
func (c *Client) GetFollowing(ctx context.Context, username string) ([]string, error) {
	if c.circuitBreaker != nil {
		if err := c.circuitBreaker.canAttempt(); err != nil {
			return nil, err
		}
	}

	result, err := c.fetch(ctx, username)
	if c.circuitBreaker != nil {
		// Cancellation by our own caller says nothing about upstream health
		switch {
		case err == nil:
			c.circuitBreaker.recordSuccess()
		case errors.Is(err, context.Canceled):
			c.circuitBreaker.release()
		default:
			c.circuitBreaker.recordFailure(err)
		}
	}
	return result, err
}

func (c *Client) fetch(ctx context.Context, username string) ([]string, error) {
	apiURL := c.baseURL + "/following/" + url.PathEscape(username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch following list: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Limit error body to 1KB to prevent unbounded reads
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var entries []followEntry
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	usernames := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.Username == "" {
			continue
		}
		if _, dup := seen[e.Username]; dup {
			continue
		}
		seen[e.Username] = struct{}{}
		usernames = append(usernames, e.Username)
	}
	return usernames, nil
}
