// Package api is the REST client for the chaoxe backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chaoxe/miniapp/internal/application/port"
	domainurl "github.com/chaoxe/miniapp/internal/domain/url"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
	"github.com/chaoxe/miniapp/internal/logging"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://chyxe.cn/chaoxe-api"
	// DevPrefix is the dev server path proxied to the API.
	DevPrefix = "/api"

	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// ErrRequestFailed is matched by every *StatusError.
var ErrRequestFailed = errors.New("api request failed")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrRequestFailed
}

// Config configures a Client.
type Config struct {
	// BaseURL is the API root. Empty means DefaultBaseURL.
	BaseURL string
	// Dev routes requests through the dev server proxy at DevOrigin+"/api".
	Dev bool
	// DevOrigin is the dev server origin, e.g. http://localhost:8080.
	DevOrigin string
	// Timeout bounds each request.
	Timeout time.Duration
}

// ResolveBaseURL returns the root requests are sent to.
func (c Config) ResolveBaseURL() string {
	if c.Dev {
		return strings.TrimRight(c.DevOrigin, "/") + DevPrefix
	}
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// Params are query parameters. Nil values are dropped.
type Params map[string]any

// Envelope is the backend's response wrapper.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// Client sends requests to the backend.
type Client struct {
	baseURL  string
	http     *http.Client
	images   *images.Resolver
	observer port.RequestObserver
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver reports every request to o.
func WithObserver(o port.RequestObserver) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a client. resolver rewrites image fields in typed
// endpoint responses; nil uses a resolver with default settings.
func NewClient(cfg Config, resolver *images.Resolver, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if resolver == nil {
		resolver = images.NewResolver("", nil)
	}
	c := &Client{
		baseURL: cfg.ResolveBaseURL(),
		http:    &http.Client{Timeout: timeout},
		images:  resolver,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request sends body as JSON to path and returns the raw response body.
// headers override the defaults.
func (c *Client) Request(ctx context.Context, method, path string, body any, headers map[string]string) ([]byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) ([]byte, error) {
	requestID := req.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set("X-Request-ID", requestID)
	}
	log := logging.FromContext(logging.WithRequestID(ctx, requestID))
	fullURL := req.URL.String()

	log.Debug().Str("method", req.Method).Str("url", fullURL).Msg("api request")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(req.Method, 0, time.Since(start))
		log.Error().Err(err).Str("method", req.Method).Str("url", fullURL).Msg("api request failed")
		return nil, fmt.Errorf("%s %s: %w", req.Method, fullURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.observe(req.Method, resp.StatusCode, elapsed)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(data)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		log.Error().Str("method", req.Method).Str("url", fullURL).Int("status", resp.StatusCode).Msg("api request failed")
		return nil, &StatusError{Method: req.Method, URL: fullURL, StatusCode: resp.StatusCode, Body: snippet}
	}

	log.Debug().Str("method", req.Method).Str("url", fullURL).Int("status", resp.StatusCode).
		Dur("took", elapsed).Int("bytes", len(data)).Msg("api response")
	return data, nil
}

func (c *Client) observe(method string, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(method, status, elapsed)
	}
}

func decodeEnvelope(data []byte) (*Envelope, error) {
	env := &Envelope{}
	if len(bytes.TrimSpace(data)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return env, nil
}

func (c *Client) call(ctx context.Context, method, path string, body any) (*Envelope, error) {
	data, err := c.Request(ctx, method, path, body, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(data)
}

// Get sends a GET with params encoded as the query string.
func (c *Client) Get(ctx context.Context, path string, params Params) (*Envelope, error) {
	if q := BuildQuery(params); q != "" {
		path += "?" + q
	}
	return c.call(ctx, http.MethodGet, path, nil)
}

// Post sends data as a JSON body.
func (c *Client) Post(ctx context.Context, path string, data any) (*Envelope, error) {
	if data == nil {
		data = map[string]any{}
	}
	return c.call(ctx, http.MethodPost, path, data)
}

// Put sends data as a JSON body.
func (c *Client) Put(ctx context.Context, path string, data any) (*Envelope, error) {
	if data == nil {
		data = map[string]any{}
	}
	return c.call(ctx, http.MethodPut, path, data)
}

// Delete sends a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.call(ctx, http.MethodDelete, path, nil)
}

// BuildQuery encodes params with sorted keys, skipping nil values.
func BuildQuery(params Params) string {
	values := make(map[string]string, len(params))
	for k, v := range params {
		if v != nil {
			values[k] = fmt.Sprint(v)
		}
	}
	return domainurl.BuildQuery(values)
}
