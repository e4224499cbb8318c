package fetcher

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// MaxAttempts is the total number of tries, including the first.
	// Default: 1 (no retry).
	MaxAttempts int
	// RatePerSec limits requests per host. Default: 5.
	RatePerSec float64
	Burst      int
}

// HTTPFetcher implements Fetcher using net/http with per-host rate limiting.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates an HTTPFetcher, filling defaults for zero options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.RatePerSec <= 0 {
		opts.RatePerSec = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "yield-advisor/1.0"
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (f *HTTPFetcher) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(f.opts.RatePerSec), f.opts.Burst)
		f.limiters[host] = lim
	}
	return lim
}

// Download fetches the URL and returns the body of a 200 response.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	var lastErr error
	for attempt := range f.opts.MaxAttempts {
		if attempt > 0 {
			f.backoff(ctx, attempt-1)
		}
		if err := f.limiterFor(rawURL).Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limiter wait")
		}

		resp, err := f.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = eris.Wrap(err, "fetcher: get")
			zap.L().Warn("fetcher: request failed",
				zap.String("url", rawURL),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetcher: http %d from %s", resp.StatusCode, rawURL)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, eris.Errorf("fetcher: unexpected status %d from %s", resp.StatusCode, rawURL)
		}
		return resp.Body, nil
	}

	return nil, eris.Wrapf(lastErr, "fetcher: %d attempt(s) failed", f.opts.MaxAttempts)
}

func (f *HTTPFetcher) backoff(ctx context.Context, attempt int) {
	d := time.Duration(float64(250*time.Millisecond) * math.Pow(2, float64(attempt)))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	d += time.Duration(rand.Int64N(int64(d)/2 + 1))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
