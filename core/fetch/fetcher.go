// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests against proxy endpoints. Each call is bounded
// by the caller's context; the client timeout is only a safety net.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/dailyword/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "dailyword/1.0 (https://github.com/gaurav-prasanna/dailyword)"
	maxBodyBytes     = 8 << 20
)

// Options configures a fetcher.
type Options struct {
	UserAgent string
	// Timeout caps a single request when the context carries no deadline.
	Timeout time.Duration
	// RatePerSecond limits outgoing requests; zero disables limiting.
	RatePerSecond float64
	Burst         int
}

func (o Options) withDefaults() Options {
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	return o
}

func newLimiter(o Options) *rate.Limiter {
	if o.RatePerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, o.Burst)
	}
	return rate.NewLimiter(rate.Limit(o.RatePerSecond), o.Burst)
}

// HTTPFetcher fetches endpoints via net/http.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	opts = opts.withDefaults()
	return &HTTPFetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		limiter:   newLimiter(opts),
	}
}

// Fetch retrieves the body of the given URL. Any non-2xx status is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &core.FetchError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json,text/plain;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &core.FetchError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}
