package research

import (
	"context"
	"errors"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultMinStaticChars is the extracted-length threshold below which a
// page is presumed client-side rendered. A carried-over heuristic, kept
// tunable rather than hard-coded.
const DefaultMinStaticChars = 100

// ContentAcquirer turns a URL into usable text.
type ContentAcquirer interface {
	Acquire(ctx context.Context, rawURL string) (AcquiredContent, error)
}

// Acquirer implements progressive-enhancement acquisition: cheap static
// fetch first, headless rendering only when the static text is too
// short to be trusted.
type Acquirer struct {
	fetcher        Fetcher
	renderer       Renderer
	minStaticChars int
	logger         *zap.Logger
}

// NewAcquirer builds an Acquirer. The renderer may be nil, in which
// case pages that fail the static path yield an AcquireError.
func NewAcquirer(fetcher Fetcher, renderer Renderer, minStaticChars int, logger *zap.Logger) *Acquirer {
	if minStaticChars <= 0 {
		minStaticChars = DefaultMinStaticChars
	}
	return &Acquirer{
		fetcher:        fetcher,
		renderer:       renderer,
		minStaticChars: minStaticChars,
		logger:         logger,
	}
}

// Acquire fetches rawURL and extracts main-content text. If the static
// extraction yields at least the configured character count, the result
// is returned as-is; otherwise a single rendering session is opened as
// fallback. Failure of both paths returns an *AcquireError, which the
// caller treats as "URL yielded nothing", not fatal.
func (a *Acquirer) Acquire(ctx context.Context, rawURL string) (AcquiredContent, error) {
	title, text, staticErr := a.acquireStatic(ctx, rawURL)
	if staticErr == nil && utf8.RuneCountInString(text) >= a.minStaticChars {
		return AcquiredContent{URL: rawURL, Title: title, Text: text, Method: MethodStatic}, nil
	}

	if a.renderer == nil {
		if staticErr != nil {
			return AcquiredContent{}, &AcquireError{URL: rawURL, StaticErr: staticErr, RenderErr: ErrRendererDisabled}
		}
		// Below threshold but non-empty is still better than nothing
		// when no renderer is available.
		if text != "" {
			return AcquiredContent{URL: rawURL, Title: title, Text: text, Method: MethodStatic}, nil
		}
		return AcquiredContent{}, &AcquireError{URL: rawURL, StaticErr: staticErr, RenderErr: ErrRendererDisabled}
	}

	a.logger.Debug("static extraction insufficient, escalating to renderer",
		zap.String("url", rawURL),
		zap.Int("static_chars", utf8.RuneCountInString(text)),
	)

	html, renderErr := a.renderer.Render(ctx, rawURL)
	if renderErr != nil {
		return AcquiredContent{}, &AcquireError{URL: rawURL, StaticErr: staticErr, RenderErr: renderErr}
	}
	renderedTitle, renderedText, extractErr := ExtractMainContent([]byte(html))
	if extractErr == nil && renderedText == "" {
		extractErr = errors.New("rendered page produced no text")
	}
	if extractErr != nil {
		return AcquiredContent{}, &AcquireError{URL: rawURL, StaticErr: staticErr, RenderErr: extractErr}
	}
	return AcquiredContent{URL: rawURL, Title: renderedTitle, Text: renderedText, Method: MethodDynamic}, nil
}

func (a *Acquirer) acquireStatic(ctx context.Context, rawURL string) (title, text string, err error) {
	result, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", "", err
	}
	return ExtractMainContent(result.Body)
}
