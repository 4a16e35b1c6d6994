// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/metrics"
)

var (
	// ErrFetch wraps every failure to obtain source bytes.
	ErrFetch = errors.New("fetch failed")

	// ErrHostUnavailable means the host's circuit breaker is open.
	ErrHostUnavailable = errors.New("host temporarily unavailable")
)

const (
	dialTimeout         = 10 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	maxRedirects        = 10
)

// Fetch result labels for metrics.FetchRequests.
const (
	resultSuccess      = "success"
	resultInvalidURL   = "invalid_url"
	resultHTTPError    = "http_error"
	resultTooLarge     = "too_large"
	resultNetworkError = "network_error"
	resultRejected     = "rejected"
	resultCanceled     = "canceled"
)

// Result is a downloaded source image.
type Result struct {
	Data []byte

	// FinalURL is the URL after redirects.
	FinalURL string

	// Extension is the extension of the requested URL path (e.g. ".png"),
	// empty when the path has none. It is a naming hint only.
	Extension string
}

// StatusError is returned (wrapped in ErrFetch) for non-2xx responses.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client downloads images over HTTP(S).
type Client struct {
	httpClient *http.Client
	maxBytes   int64
	userAgent  string
	breakers   *breakerRegistry
}

// New creates a Client from fetch settings. The circuit breaker registry is
// only created when cfg.BreakerEnabled is set.
func New(cfg config.FetchConfig) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.Timeout,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:       cfg.Timeout,
			Transport:     transport,
			CheckRedirect: checkRedirect,
		},
		maxBytes:  cfg.MaxBytes,
		userAgent: cfg.UserAgent,
	}
	if cfg.BreakerEnabled {
		c.breakers = newBreakerRegistry(cfg.BreakerFailures, cfg.BreakerOpenTimeout)
	}
	return c
}

// checkRedirect keeps redirects on http(s) and bounds the chain length.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("redirect to unsupported scheme %q", req.URL.Scheme)
	}
	return nil
}

// ParseURL validates rawURL as an absolute http or https URL with a host.
func ParseURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid url: %w", ErrFetch, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrFetch, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: url has no host", ErrFetch)
	}
	return u, nil
}

// Fetch downloads rawURL in a single attempt. Any failure is wrapped in ErrFetch.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		metrics.RecordFetch(resultInvalidURL, 0)
		return nil, err
	}

	var res *Result
	if c.breakers == nil {
		res, err = c.get(ctx, u)
	} else {
		res, err = c.breakers.execute(ctx, u.Host, func() (*Result, error) {
			return c.get(ctx, u)
		})
	}

	if err != nil {
		label := resultLabel(err)
		if ctx.Err() != nil {
			label = resultCanceled
		}
		metrics.RecordFetch(label, 0)
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, u.Redacted(), err)
	}
	metrics.RecordFetch(resultSuccess, len(res.Data))
	return res, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	if resp.ContentLength > c.maxBytes {
		return nil, &tooLargeError{limit: c.maxBytes}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, &tooLargeError{limit: c.maxBytes}
	}

	return &Result{
		Data:      data,
		FinalURL:  resp.Request.URL.String(),
		Extension: path.Ext(u.Path),
	}, nil
}

type tooLargeError struct {
	limit int64
}

func (e *tooLargeError) Error() string {
	return fmt.Sprintf("body exceeds %d bytes", e.limit)
}

// resultLabel maps a download error to its metrics label.
func resultLabel(err error) string {
	var statusErr *StatusError
	var sizeErr *tooLargeError
	switch {
	case errors.Is(err, ErrHostUnavailable):
		return resultRejected
	case errors.As(err, &statusErr):
		return resultHTTPError
	case errors.As(err, &sizeErr):
		return resultTooLarge
	default:
		return resultNetworkError
	}
}
