package research

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// FetchResult is the raw outcome of a single successful HTTP fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Fetcher retrieves the body of a single URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (FetchResult, error)
}

// FetchConfig controls HTTP fetch behavior.
type FetchConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxRetries  int
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// HTTPFetcher implements Fetcher using a Colly collector with a
// per-call retry loop. Stateless across invocations; retry state is
// scoped to a single Fetch call.
type HTTPFetcher struct {
	cfg           FetchConfig
	baseCollector *colly.Collector
	policy        *ExponentialRetryPolicy
	logger        *zap.Logger
}

// NewHTTPFetcher builds a fetcher with pooled transport settings.
func NewHTTPFetcher(cfg FetchConfig, logger *zap.Logger) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	base := colly.NewCollector(colly.Async(false))
	// Retries re-visit the same URL; the visit store is shared across
	// collector clones.
	base.AllowURLRevisit = true
	if cfg.UserAgent != "" {
		base.UserAgent = cfg.UserAgent
	}
	base.SetRequestTimeout(cfg.Timeout)
	base.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 10 * time.Second,
		MaxIdleConns:        64,
		IdleConnTimeout:     30 * time.Second,
	})

	return &HTTPFetcher{
		cfg:           cfg,
		baseCollector: base,
		policy:        NewExponentialRetryPolicy(cfg.BackoffBase, cfg.BackoffMax),
		logger:        logger,
	}
}

// Fetch issues up to MaxRetries request attempts for rawURL. A 429
// carrying a Retry-After header is honored exactly; other transient
// failures back off exponentially with jitter. On exhaustion a
// *FetchError is returned, never an unrecoverable fault.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (FetchResult, error) {
	var lastErr error
	var lastStatus int

	for attempt := 0; attempt < f.cfg.MaxRetries; attempt++ {
		TotalFetchAttempts.Inc()
		if attempt > 0 {
			TotalFetchRetries.Inc()
		}

		result, err := f.doFetch(ctx, rawURL)
		if err == nil && result.StatusCode < 400 {
			return result, nil
		}
		lastErr = err
		lastStatus = result.StatusCode

		if !f.policy.ShouldRetry(err, result.StatusCode) {
			return FetchResult{}, &FetchError{
				URL:    rawURL,
				Reason: fetchFailureReason(result.StatusCode, err),
				Err:    err,
			}
		}

		delay := f.policy.Backoff(attempt)
		if result.StatusCode == http.StatusTooManyRequests {
			TotalRateLimitHits.Inc()
			if serverDelay, ok := parseRetryAfter(result.Headers.Get("Retry-After")); ok {
				delay = serverDelay
			}
		}

		f.logger.Debug("fetch attempt failed, backing off",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Int("status_code", result.StatusCode),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if serr := sleepContext(ctx, delay); serr != nil {
			return FetchResult{}, &FetchError{URL: rawURL, Reason: "canceled during backoff", Err: serr}
		}
	}

	return FetchResult{}, &FetchError{
		URL:    rawURL,
		Reason: fmt.Sprintf("retries exhausted: %s", fetchFailureReason(lastStatus, lastErr)),
		Err:    lastErr,
	}
}

// doFetch runs one request through a cloned collector.
func (f *HTTPFetcher) doFetch(ctx context.Context, rawURL string) (FetchResult, error) {
	collector := f.baseCollector.Clone()

	var (
		result   FetchResult
		fetchErr error
	)
	collector.OnResponse(func(r *colly.Response) {
		headers := http.Header{}
		if r.Headers != nil {
			headers = r.Headers.Clone()
		}
		result = FetchResult{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Headers:    headers,
			Body:       append([]byte(nil), r.Body...),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			result.StatusCode = r.StatusCode
			if r.Headers != nil {
				result.Headers = r.Headers.Clone()
			} else {
				result.Headers = http.Header{}
			}
		}
		if err == nil {
			err = errors.New("unknown collector error")
		}
		fetchErr = err
	})

	done := make(chan error, 1)
	go func() {
		visitErr := collector.Visit(rawURL)
		collector.Wait()
		done <- visitErr
	}()

	select {
	case <-ctx.Done():
		// The collector goroutine may still be writing; do not touch
		// its result after abandoning it.
		return FetchResult{}, ctx.Err()
	case err := <-done:
		if err != nil {
			return result, err
		}
		return result, fetchErr
	}
}

func fetchFailureReason(statusCode int, err error) string {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return "rate limited"
	case statusCode >= 500:
		return fmt.Sprintf("server error %d", statusCode)
	case statusCode >= 400:
		return fmt.Sprintf("client error %d", statusCode)
	case err != nil:
		return err.Error()
	default:
		return "unknown failure"
	}
}
