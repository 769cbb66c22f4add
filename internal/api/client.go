// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/chatconnect-tui/internal/auth"
	"github.com/jeranaias/chatconnect-tui/internal/config"
)

const (
	// DefaultTimeout matches the backend's expectations for slow pages.
	DefaultTimeout = 20 * time.Second

	// DefaultMaxRetries is the number of extra attempts for GETs.
	DefaultMaxRetries = 3

	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 10 * time.Second

	// MaxResponseSize bounds any response body.
	MaxResponseSize = 10 * 1024 * 1024
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 disables limiting
	RateBurst  int
	MaxRetries int
	Logger     *slog.Logger

	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client

	// RetryBaseDelay overrides the first backoff step.
	RetryBaseDelay time.Duration
}

// Client talks to the REST backend. It is safe for concurrent use.
type Client struct {
	base       *url.URL
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// New validates opts and returns a client.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
			},
			Timeout: timeout,
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	retries := opts.MaxRetries
	if retries < 0 {
		retries = 0
	}
	delay := opts.RetryBaseDelay
	if delay <= 0 {
		delay = retryBaseDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:       base,
		http:       hc,
		limiter:    limiter,
		maxRetries: retries,
		baseDelay:  delay,
		logger:     logger.With("component", "api"),
	}, nil
}

// FromConfig builds a client from the [api] config section.
func FromConfig(cfg config.APIConfig, logger *slog.Logger) (*Client, error) {
	return New(Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout(),
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// request describes one call.
type request struct {
	method   string
	path     string
	query    url.Values
	body     any
	session  *auth.Session
	fallback string // error message when the body has none
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempts := 1
	if req.method == http.MethodGet {
		attempts += c.maxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			c.logger.Debug("retrying request", "path", req.path, "attempt", attempt, "delay", delay, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		lastErr = c.once(ctx, req, payload, out)
		if lastErr == nil || !retryable(lastErr) || ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) once(ctx context.Context, req request, payload []byte, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := *c.base
	u.Path = c.base.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	hr, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	if a := req.session.Authorization(); a != "" {
		hr.Header.Set("Authorization", a)
	}

	start := time.Now()
	resp, err := c.http.Do(hr)
	if err != nil {
		return &netError{err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return &netError{err: err}
	}
	if len(data) > MaxResponseSize {
		return ErrResponseTooLarge
	}

	c.logger.Debug("request", "method", req.method, "path", req.path,
		"status", resp.StatusCode, "duration", time.Since(start), "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: req.fallback, RequestID: requestID}
		var eb struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &eb) == nil && eb.Message != "" {
			apiErr.Message = eb.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.baseDelay << (attempt - 1)
	if d > retryMaxDelay || d <= 0 {
		d = retryMaxDelay
	}
	return d
}

// netError marks transport failures as retryable.
type netError struct{ err error }

func (e *netError) Error() string { return e.err.Error() }
func (e *netError) Unwrap() error { return e.err }

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ne *netError
	if errors.As(err, &ne) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Temporary()
}
