// Package fetch — colly transport.
// CollyFetcher is an alternative to HTTPFetcher built on gocolly. A fresh
// collector is used per request so no state leaks between endpoints.
package fetch

import (
	"context"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/dailyword/core"
)

// CollyFetcher fetches endpoints through a colly collector.
type CollyFetcher struct {
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// NewColly creates a CollyFetcher.
func NewColly(opts Options) *CollyFetcher {
	opts = opts.withDefaults()
	return &CollyFetcher{
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		limiter:   newLimiter(opts),
	}
}

// Fetch retrieves the body of the given URL.
func (f *CollyFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &core.FetchError{URL: url, Err: err}
	}

	timeout := f.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(timeout)

	var (
		body   []byte
		status int
		reqErr error
	)
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	hdr := http.Header{}
	hdr.Set("Cache-Control", "no-cache")
	err := c.Request(http.MethodGet, url, nil, colly.NewContext(), hdr)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, &core.FetchError{URL: url, Status: status, Err: ctxErr}
	}
	if status != 0 && (status < 200 || status >= 300) {
		return nil, &core.FetchError{URL: url, Status: status}
	}
	if err == nil {
		err = reqErr
	}
	if err != nil {
		return nil, &core.FetchError{URL: url, Status: status, Err: err}
	}
	if status == 0 {
		status = http.StatusOK
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: status,
		Body:       string(body),
	}, nil
}
