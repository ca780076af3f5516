package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFetcher struct {
	body []byte
	err  error
}

func (f *fakeFetcher) Fetch(_ context.Context, rawURL string) (FetchResult, error) {
	if f.err != nil {
		return FetchResult{}, f.err
	}
	return FetchResult{URL: rawURL, StatusCode: 200, Body: f.body}, nil
}

type fakeRenderer struct {
	html     string
	err      error
	calls    int
	released int
}

func (r *fakeRenderer) Render(_ context.Context, _ string) (string, error) {
	r.calls++
	// Mirror the real renderer's contract: the session is released on
	// every exit path, success or failure.
	defer func() { r.released++ }()
	if r.err != nil {
		return "", r.err
	}
	return r.html, nil
}

func (r *fakeRenderer) Close(_ context.Context) error { return nil }

func staticPage(text string) []byte {
	return []byte("<html><head><title>T</title></head><body><main>" + text + "</main></body></html>")
}

func TestAcquirer_StaticSufficient(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x ", 100)
	renderer := &fakeRenderer{}
	a := NewAcquirer(&fakeFetcher{body: staticPage(long)}, renderer, 100, zap.NewNop())

	content, err := a.Acquire(context.Background(), "https://docs.example.com/")
	require.NoError(t, err)
	require.Equal(t, MethodStatic, content.Method)
	require.Equal(t, 0, renderer.calls, "sufficient static content must not trigger rendering")
}

func TestAcquirer_BelowThresholdFallsBackExactlyOnce(t *testing.T) {
	t.Parallel()
	// 99 characters: one short of the sufficiency threshold.
	short := strings.Repeat("a", 99)
	rendered := "<html><body><main>" + strings.Repeat("b", 300) + "</main></body></html>"
	renderer := &fakeRenderer{html: rendered}
	a := NewAcquirer(&fakeFetcher{body: staticPage(short)}, renderer, 100, zap.NewNop())

	content, err := a.Acquire(context.Background(), "https://docs.example.com/")
	require.NoError(t, err)
	require.Equal(t, MethodDynamic, content.Method)
	require.Equal(t, 1, renderer.calls, "dynamic fallback must run exactly once")
	require.Equal(t, 1, renderer.released, "render session must be released")
}

func TestAcquirer_RenderFailureReleasesSession(t *testing.T) {
	t.Parallel()
	renderer := &fakeRenderer{err: errors.New("navigation timeout")}
	a := NewAcquirer(&fakeFetcher{body: staticPage("tiny")}, renderer, 100, zap.NewNop())

	_, err := a.Acquire(context.Background(), "https://docs.example.com/")

	var acquireErr *AcquireError
	require.ErrorAs(t, err, &acquireErr)
	require.Equal(t, 1, renderer.calls)
	require.Equal(t, 1, renderer.released, "failed render must still release the session")
}

func TestAcquirer_BothPathsFail(t *testing.T) {
	t.Parallel()
	fetchErr := &FetchError{URL: "https://docs.example.com/", Reason: "retries exhausted"}
	renderer := &fakeRenderer{err: errors.New("browser crashed")}
	a := NewAcquirer(&fakeFetcher{err: fetchErr}, renderer, 100, zap.NewNop())

	_, err := a.Acquire(context.Background(), "https://docs.example.com/")

	var acquireErr *AcquireError
	require.ErrorAs(t, err, &acquireErr)
	require.ErrorIs(t, acquireErr.StaticErr, fetchErr)
}

func TestAcquirer_NoRendererKeepsShortStaticText(t *testing.T) {
	t.Parallel()
	a := NewAcquirer(&fakeFetcher{body: staticPage("short but present")}, nil, 100, zap.NewNop())

	content, err := a.Acquire(context.Background(), "https://docs.example.com/")
	require.NoError(t, err)
	require.Equal(t, MethodStatic, content.Method)
	require.Equal(t, "short but present", content.Text)
}

func TestAcquirer_NoRendererEmptyStaticFails(t *testing.T) {
	t.Parallel()
	a := NewAcquirer(&fakeFetcher{body: []byte("<html><body></body></html>")}, nil, 100, zap.NewNop())

	_, err := a.Acquire(context.Background(), "https://docs.example.com/")

	var acquireErr *AcquireError
	require.ErrorAs(t, err, &acquireErr)
}
