// Package wpcom is a minimal client for the WordPress.com REST API. It knows
// how to address a namespaced route, authenticate, and decode JSON; callers
// own the shape of each endpoint.
package wpcom

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

const (
	DefaultBaseURL = "https://public-api.wordpress.com"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 4 << 20
)

// Request describes one API call. Namespace is the route prefix such as
// "wpcom/v2"; Path is relative to it.
type Request struct {
	Method    string
	Namespace string
	Path      string
	Query     url.Values
}

// Client issues authenticated requests against the API.
type Client struct {
	baseURL    *url.URL
	token      string
	userAgent  string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New builds a client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse wpcom base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("wpcom base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL:    u,
		userAgent:  "partner-portal",
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves the absolute address of req.
func (c *Client) URL(req Request) string {
	u := *c.baseURL
	segments := []string{strings.TrimRight(u.Path, "/")}
	if ns := strings.Trim(req.Namespace, "/"); ns != "" {
		segments = append(segments, ns)
	}
	segments = append(segments, strings.TrimLeft(req.Path, "/"))
	u.Path = strings.Join(segments, "/")
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	u.RawQuery = req.Query.Encode()
	return u.String()
}

// Do performs req and decodes a 2xx JSON body into out. out may be nil.
// Failures are returned as *APIError.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.URL(req), nil)
	if err != nil {
		return newAPIError(ErrorInternal, 0, "build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(ctx, err) {
			return newAPIError(ErrorTimeout, 0, "request timed out", err)
		}
		return newAPIError(ErrorOutage, 0, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(ctx, err) {
			return newAPIError(ErrorTimeout, resp.StatusCode, "reading body timed out", err)
		}
		return newAPIError(ErrorBadData, resp.StatusCode, "read body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(categoryForStatus(resp.StatusCode), resp.StatusCode, http.StatusText(resp.StatusCode), nil)
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Code = payload.Code
			if payload.Message != "" {
				apiErr.Message = payload.Message
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newAPIError(ErrorBadData, resp.StatusCode, "decode response", err)
	}
	return nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
