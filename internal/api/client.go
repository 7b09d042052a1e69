package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/webstore"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// versioned path prefix of the backend REST surface
const apiPrefix = "/api/v1"

// where the bearer credential comes from, and where it gets evicted
// when a request fails authentication
type TokenSource interface {
	Get() (string, bool)
	Clear()
}

// cookies forwarded with every request, mirroring the browser's
// same-origin credential behavior
type CookieSource interface {
	All() []webstore.Cookie
}

// issues authenticated requests against the versioned backend API.
// every request is attempted exactly once; retry policy belongs to the
// caller. timeouts are not enforced at this layer either - pass a
// context if the call site needs a deadline.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     TokenSource
	cookies    CookieSource
	limiter    *rate.Limiter
}

// creates a client for the given endpoint. tokens is required; cookies
// may be nil for unauthenticated tooling.
func NewClient(endpoint string, tokens TokenSource, cookies CookieSource) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		cookies:    cookies,
		limiter:    rate.NewLimiter(20, 10),
	}
}

// issues a GET request
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// issues a POST request
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// issues a PUT request
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// issues a DELETE request
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// returns the absolute URL for an API path, including the version prefix
func (c *Client) URL(path string) string {
	return c.endpoint + apiPrefix + path
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request aborted: %w", err)
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// forward jar cookies so hybrid cookie auth keeps working
	if c.cookies != nil {
		for _, cookie := range c.cookies.All() {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.failure(resp.StatusCode, raw)
	}

	// the backend has been observed returning 200 with an error detail
	// for stale tokens. message-pattern matching is authoritative here,
	// not the status code.
	var sniff errorBody
	if err := json.Unmarshal(raw, &sniff); err == nil && sniff.Detail != "" {
		if messageIndicatesStaleToken(sniff.Detail) {
			c.tokens.Clear()
			return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: sniff.Detail}
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// turns a non-2xx response into a typed error, evicting the stored
// token when the failure is classified as an auth failure
func (c *Client) failure(status int, raw []byte) error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		_ = err // unstructured error body, fall through to the generic message
	}

	message := body.message()
	if message == "" {
		message = "Unknown error"
	}

	kind := classify(status, body.Error, message)

	if kind == KindAuth {
		logger.Debug("evicting stored token after auth failure", "status", status)
		c.tokens.Clear()
	}

	return &Error{Kind: kind, Status: status, Message: message}
}
