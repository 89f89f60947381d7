package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
	"github.com/rukkie/storefront/pkg/metrics"
)

const (
	defaultCSRFCookie           = "csrftoken"
	csrfHeader                  = "X-CSRFToken"
	errorBodyReadLimit    int64 = 64 * 1024
	defaultRequestTimeout       = 15 * time.Second
)

var errBaseURLRequired = errors.New("gateway base url is required")

// Client is the single gateway between the storefront and the commerce API.
// It attaches the CSRF token on mutating requests and normalizes every
// response into either decoded JSON or a message-bearing error; no other
// error channel exists for the components built on top of it.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	csrfCookie string
	metrics    *metrics.RequestMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCSRFCookieName overrides the cookie the CSRF token is read from.
func WithCSRFCookieName(name string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			c.csrfCookie = trimmed
		}
	}
}

// WithMetrics attaches request metrics.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a gateway client rooted at the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	parsed, err := url.Parse(strings.TrimRight(trimmed, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing gateway base url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway base url must be absolute, got %q", baseURL)
	}

	client := &Client{
		baseURL:    parsed,
		csrfCookie: defaultCSRFCookie,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	if client.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("building cookie jar: %w", err)
		}
		client.httpClient.Jar = jar
	}

	return client, nil
}

// Get fetches a resource and decodes the normalized payload into a map.
func (c *Client) Get(ctx context.Context, resource string) (map[string]any, error) {
	var payload map[string]any
	if err := c.GetInto(ctx, resource, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetInto fetches a resource and decodes the normalized payload into dest.
func (c *Client) GetInto(ctx context.Context, resource string, dest any) error {
	return c.do(ctx, http.MethodGet, resource, nil, dest)
}

// Post sends a JSON body and decodes the normalized payload into a map.
func (c *Client) Post(ctx context.Context, resource string, body any) (map[string]any, error) {
	var payload map[string]any
	if err := c.PostInto(ctx, resource, body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// PostInto sends a JSON body and decodes the normalized payload into dest.
func (c *Client) PostInto(ctx context.Context, resource string, body, dest any) error {
	if body == nil {
		body = map[string]any{}
	}
	return c.do(ctx, http.MethodPost, resource, body, dest)
}

func (c *Client) do(ctx context.Context, method, resource string, body, dest any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "gateway client not configured")
	}

	target := c.resolveURL(resource)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if token := c.csrfToken(target); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	label := resource
	if idx := strings.Index(label, "?"); idx >= 0 {
		label = label[:idx]
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Observe(label, method, "transport_error", time.Since(start))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	normalized, err := normalizeResponse(resp)
	if err != nil {
		c.metrics.Observe(label, method, "error", time.Since(start))
		return err
	}
	c.metrics.Observe(label, method, "ok", time.Since(start))

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(normalized, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeAPI, err, "decode response")
	}
	return nil
}

// normalizeResponse maps the raw HTTP response onto the payload contract:
// 204 becomes {"ok":true}, non-JSON success bodies become {"detail":text} or
// {}, and non-2xx responses become extracted message errors.
func normalizeResponse(resp *http.Response) (json.RawMessage, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}

	var payload any
	text := strings.TrimSpace(string(raw))
	isJSON := false
	if text != "" && json.Unmarshal(raw, &payload) == nil {
		isJSON = true
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fallback := text
		if fallback == "" {
			fallback = http.StatusText(resp.StatusCode)
		}
		if fallback == "" {
			fallback = "Request failed"
		}
		object, _ := payload.(map[string]any)
		return nil, extractError(object, fallback)
	}

	if resp.StatusCode == http.StatusNoContent {
		return json.RawMessage(`{"ok":true}`), nil
	}
	if isJSON {
		return json.RawMessage(raw), nil
	}
	if text == "" {
		return json.RawMessage(`{}`), nil
	}
	detail, err := json.Marshal(map[string]string{"detail": text})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode detail payload")
	}
	return detail, nil
}

func (c *Client) resolveURL(resource string) *url.URL {
	ref, err := url.Parse(resource)
	if err != nil {
		ref = &url.URL{Path: resource}
	}
	target := *c.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	target.RawQuery = ref.RawQuery
	return &target
}

func (c *Client) csrfToken(target *url.URL) string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(target) {
		if cookie.Name == c.csrfCookie {
			return cookie.Value
		}
	}
	return ""
}
