package research

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedAcquirer returns canned content keyed by URL and records the
// order of acquisition attempts.
type scriptedAcquirer struct {
	pages    map[string]AcquiredContent
	attempts []string
}

func (a *scriptedAcquirer) Acquire(_ context.Context, rawURL string) (AcquiredContent, error) {
	a.attempts = append(a.attempts, rawURL)
	if content, ok := a.pages[rawURL]; ok {
		return content, nil
	}
	return AcquiredContent{}, &AcquireError{URL: rawURL}
}

func newTestResearcher(acquirer ContentAcquirer) *DomainResearcher {
	return NewDomainResearcher(acquirer, NewHostDenylist(nil), zap.NewNop())
}

func TestDomainResearcher_FailedCandidatesAreSkippedNotFatal(t *testing.T) {
	t.Parallel()
	acquirer := &scriptedAcquirer{pages: map[string]AcquiredContent{
		"https://react.dev/reference/react": {
			URL:    "https://react.dev/reference/react",
			Text:   "reference material",
			Method: MethodStatic,
		},
	}}
	r := newTestResearcher(acquirer)

	findings := r.Research(context.Background(), ResearchTopic{Topic: "react"}, DomainStack)

	require.Len(t, findings, 1)
	require.Equal(t, "https://react.dev/reference/react", findings[0].SourceURL)
	require.Greater(t, len(acquirer.attempts), 1, "earlier failure must not abort the candidate loop")
}

func TestDomainResearcher_AllFindingsSecureAndOffDenylist(t *testing.T) {
	t.Parallel()
	acquirer := &scriptedAcquirer{pages: map[string]AcquiredContent{}}
	r := newTestResearcher(acquirer)

	// Feed filter directly with a hostile mix.
	raw := []Finding{
		{Content: "insecure", SourceURL: "http://docs.example.com/"},
		{Content: "community", SourceURL: "https://www.reddit.com/r/golang"},
		{Content: "good", SourceURL: "https://docs.example.com/"},
	}
	filtered := r.filter(raw)

	require.Len(t, filtered, 1)
	for _, finding := range filtered {
		parsed, err := url.Parse(finding.SourceURL)
		require.NoError(t, err)
		require.Equal(t, "https", parsed.Scheme)
		require.False(t, NewHostDenylist(nil).IsDenied(parsed.Host))
	}
}

func TestDomainResearcher_LockedConstraintReplacesTopic(t *testing.T) {
	t.Parallel()
	acquirer := &scriptedAcquirer{pages: map[string]AcquiredContent{}}
	r := newTestResearcher(acquirer)

	topic := ResearchTopic{
		Topic:       "web framework",
		Constraints: map[DomainCategory]string{DomainStack: "rails"},
	}
	r.Research(context.Background(), topic, DomainStack)

	require.NotEmpty(t, acquirer.attempts)
	for _, attempted := range acquirer.attempts {
		require.NotContains(t, attempted, "web-framework",
			"locked decision must not be second-guessed by exploring the raw topic")
	}
	require.True(t, strings.Contains(acquirer.attempts[0], "rubyonrails"),
		"candidates must be built from the locked value")
}

func TestDomainResearcher_ClassifiesAndDeduplicates(t *testing.T) {
	t.Parallel()
	acquirer := &scriptedAcquirer{pages: map[string]AcquiredContent{
		"https://react.dev/learn": {
			URL:    "https://react.dev/learn",
			Text:   "the same words",
			Method: MethodStatic,
		},
		"https://react.dev/reference/react": {
			URL:    "https://react.dev/reference/react",
			Text:   "The  Same   WORDS",
			Method: MethodStatic,
		},
	}}
	r := newTestResearcher(acquirer)

	findings := r.Research(context.Background(), ResearchTopic{Topic: "react"}, DomainFeatures)

	require.Len(t, findings, 1)
	require.Equal(t, ConfidenceHigh, findings[0].Confidence, "react.dev/learn matches a documentation pattern")
	require.Equal(t, []string{"https://react.dev/reference/react"}, findings[0].AlternateSources)
	require.Equal(t, DomainFeatures, findings[0].Domain)
}

func TestDomainResearcher_EmptyResultIsValid(t *testing.T) {
	t.Parallel()
	acquirer := &scriptedAcquirer{pages: map[string]AcquiredContent{}}
	r := newTestResearcher(acquirer)

	findings := r.Research(context.Background(), ResearchTopic{Topic: "somethingobscure"}, DomainPitfalls)

	require.Empty(t, findings)
}
