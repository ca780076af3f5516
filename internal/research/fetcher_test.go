package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFetcher(maxRetries int) *HTTPFetcher {
	return NewHTTPFetcher(FetchConfig{
		UserAgent:   "scout-test",
		Timeout:     5 * time.Second,
		MaxRetries:  maxRetries,
		BackoffBase: time.Millisecond,
		BackoffMax:  5 * time.Millisecond,
	}, zap.NewNop())
}

func TestHTTPFetcher_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><main>hello</main></body></html>"))
	}))
	defer srv.Close()

	result, err := newTestFetcher(3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, result.StatusCode)
	require.Contains(t, string(result.Body), "hello")
}

func TestHTTPFetcher_RetriesTransientThenSucceeds(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	result, err := newTestFetcher(3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())
	require.Contains(t, string(result.Body), "recovered")
}

func TestHTTPFetcher_HonorsRetryAfter(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := newTestFetcher(3).Fetch(context.Background(), srv.URL)
	elapsed := time.Since(start)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, srv.URL, fetchErr.URL)
	require.Equal(t, int32(3), calls.Load(), "exactly maxRetries attempts")
	require.GreaterOrEqual(t, elapsed, 3*time.Second,
		"server-specified retry duration must be honored on every attempt")
}

func TestHTTPFetcher_PermanentFailureNotRetried(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(3).Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, int32(1), calls.Load(), "client errors are not retryable")
}

func TestHTTPFetcher_ExhaustionReturnsFetchError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestFetcher(2).Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Contains(t, fetchErr.Reason, "retries exhausted")
}
