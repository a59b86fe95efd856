// Package transport issues requests against the storage service and turns
// authentication failures and non-success answers into typed errors.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultContentType = "application/octet-stream"

	// maxErrorBody bounds how much of a failed response is kept for display
	maxErrorBody = 64 << 10
)

// Navigator sends the user to the login flow
type Navigator interface {
	ToLogin()
}

// NavigatorFunc adapts a plain function to Navigator
type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Jar       http.CookieJar
	Navigator Navigator

	// HTTPClient overrides the default client (Jar and Timeout are then ignored)
	HTTPClient *http.Client
}

// CookieSaver is implemented by jars that persist themselves. The client
// saves them whenever a response sets cookies.
type CookieSaver interface {
	Save() error
}

// Client is the single place where every call passes, so 401 handling
// lives here and nowhere else.
type Client struct {
	cookies    CookieSaver
	baseURL    *url.URL
	httpClient *http.Client
	navigator  Navigator
}

func New(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Jar:     cfg.Jar,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		}
	}

	navigator := cfg.Navigator
	if navigator == nil {
		navigator = NavigatorFunc(func() {})
	}

	cookies, _ := httpClient.Jar.(CookieSaver)
	return &Client{
		cookies:    cookies,
		baseURL:    base,
		httpClient: httpClient,
		navigator:  navigator,
	}, nil
}

// BaseURL returns the service root
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Get issues a read request with no body.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

// Post issues a write request. A nil body sends an empty payload and an empty
// contentType falls back to an opaque byte stream.
func (c *Client) Post(ctx context.Context, path string, body io.Reader, contentType string) (*http.Response, error) {
	if body == nil {
		body = bytes.NewReader(nil)
	}
	if contentType == "" {
		contentType = DefaultContentType
	}
	header := http.Header{}
	header.Set("Content-Type", contentType)
	return c.Do(ctx, http.MethodPost, path, body, header)
}

// PostSized is Post for a body whose length is known. The request carries
// Content-Length instead of chunked framing.
func (c *Client) PostSized(ctx context.Context, path string, body io.Reader, size int64, contentType string) (*http.Response, error) {
	if body == nil {
		body = bytes.NewReader(nil)
	}
	return c.Post(ctx, path, &sizedBody{Reader: body, size: size}, contentType)
}

type sizedBody struct {
	io.Reader
	size int64
}

// Do performs the request and returns the response with its body unread on
// 2xx. On 401 the navigator is invoked and ErrUnauthorized returned; any other
// non-2xx yields *RequestFailedError. Failures are logged before returning.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	resp, err := c.Raw(ctx, method, path, body, header)
	if err != nil {
		slog.Error("request failed", "method", method, "path", path, "error", err)
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		drain(resp)
		slog.Error("request failed", "method", method, "path", path, "error", ErrUnauthorized)
		c.navigator.ToLogin()
		return nil, ErrUnauthorized

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		defer resp.Body.Close()
		// best-effort: an unreadable body leaves Body empty
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := &RequestFailedError{Status: resp.StatusCode, Body: string(data)}
		slog.Error("request failed", "method", method, "path", path, "error", err)
		return nil, err
	}

	return resp, nil
}

// Raw performs a plain request without status interpretation. Network
// failures still come back as *TransportError.
func (c *Client) Raw(ctx context.Context, method, path string, body io.Reader, header http.Header) (*http.Response, error) {
	target := c.URL(path)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if sb, ok := body.(*sizedBody); ok {
		req.ContentLength = sb.size
		if sb.size == 0 {
			req.Body = http.NoBody
		}
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	reqID := uuid.New().String()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	slog.Debug("request done",
		"request_id", reqID,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)
	if c.cookies != nil && len(resp.Header.Values("Set-Cookie")) > 0 {
		if err := c.cookies.Save(); err != nil {
			slog.Warn("failed to persist cookies", "error", err)
		}
	}
	return resp, nil
}

// URL resolves path (which may carry a query) against the base URL.
func (c *Client) URL(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.baseURL.String() + path
	}
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(ref.Path, "/")
	u.RawQuery = ref.RawQuery
	return u.String()
}

// Query builds "path?key=value" escaping value the way browsers'
// encodeURIComponent does (spaces become %20, not +).
func Query(path, key, value string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
	return path + "?" + key + "=" + escaped
}

// ReadText consumes and closes a successful response body.
func ReadText(resp *http.Response) (string, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(data), nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}
