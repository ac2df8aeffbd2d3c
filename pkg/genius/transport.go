package genius

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// envelope is the wrapper around every Genius JSON response.
type envelope struct {
	Meta struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Response json.RawMessage `json:"response"`

	// OAuth endpoints answer with these instead of meta.
	OAuthError       string `json:"error"`
	OAuthDescription string `json:"error_description"`
}

// request describes a single HTTP exchange.
type request struct {
	method string
	url    string
	form   url.Values // sent as x-www-form-urlencoded body when non-nil
	accept string
	auth   bool // attach the bearer token
}

// getJSON performs a GET against the API and decodes envelope.response into out.
//
// Requests go to the authenticated API when public is false and a token is
// configured; otherwise the public web API is used.
func (c *Client) getJSON(ctx context.Context, public bool, path string, params url.Values, out interface{}) error {
	base := c.publicBaseURL
	auth := false
	if !public && c.accessToken != "" {
		base = c.apiBaseURL
		auth = true
	}

	u := base + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, err := c.do(ctx, request{
		method: http.MethodGet,
		url:    u,
		accept: "application/json",
		auth:   auth,
	})
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	if env.Meta.Status >= 400 {
		return &Error{Status: env.Meta.Status, Message: env.Meta.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// do executes a request with throttling and retry logic.
//
// It handles:
// - The fixed inter-request delay (SleepTime)
// - Header construction
// - Retrying timeouts, 5xx and 429 responses up to Retries times
// - Context cancellation
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	var lastErr error
	backoff := c.retryDelay
	maxAttempts := c.retries + 1

	for i := 0; i < maxAttempts; i++ {
		if !c.throttle(ctx) {
			return nil, ctx.Err()
		}

		c.logDebugf("genius: %s %s (attempt %d/%d)", r.method, r.url, i+1, maxAttempts)

		var bodyReader io.Reader
		if r.form != nil {
			bodyReader = strings.NewReader(r.form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, r.method, r.url, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		if r.accept != "" {
			req.Header.Set("Accept", r.accept)
		}
		if r.form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if r.auth {
			req.Header.Set("Authorization", "Bearer "+c.accessToken)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if shouldRetryNetworkError(err) && i < maxAttempts-1 {
				c.logDebugf("genius: network error, retrying: %v", err)
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= 300 {
			apiErr := parseError(resp.StatusCode, body)
			if isRetryableError(apiErr) && i < maxAttempts-1 {
				c.logDebugf("genius: temporary error, retrying: %v", apiErr)
				lastErr = apiErr
				if !sleep(ctx, backoff) {
					return nil, ctx.Err()
				}
				backoff = nextBackoff(backoff)
				continue
			}
			return nil, apiErr
		}

		return body, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// parseError builds an *Error from a non-2xx response body.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		switch {
		case env.Meta.Message != "":
			apiErr.Message = env.Meta.Message
		case env.OAuthDescription != "":
			apiErr.Message = env.OAuthDescription
		case env.OAuthError != "":
			apiErr.Message = env.OAuthError
		}
	}

	return apiErr
}

// throttle enforces SleepTime between consecutive requests.
// Returns false if the context was cancelled while waiting.
func (c *Client) throttle(ctx context.Context) bool {
	if c.sleepTime <= 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastRequest); elapsed < c.sleepTime {
		if !sleep(ctx, c.sleepTime-elapsed) {
			return false
		}
	}
	c.lastRequest = time.Now()
	return true
}

// shouldRetryNetworkError checks if a network error is retryable.
func shouldRetryNetworkError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// sleep waits for the specified duration or until context is cancelled.
// Returns true if sleep completed, false if context was cancelled.
func sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}

// nextBackoff calculates the next backoff duration with exponential increase.
// Maximum backoff is capped at 30 seconds.
func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
