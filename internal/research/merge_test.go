package research

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMerge_ManualWinsOnURLCollision(t *testing.T) {
	t.Parallel()
	automated := []Finding{{
		Content:    "automated summary",
		SourceURL:  "https://docs.example.com/guide",
		Confidence: ConfidenceHigh,
	}}
	manual := []Finding{{
		Content:    "hand-curated summary",
		SourceURL:  "https://docs.example.com/guide",
		Confidence: ConfidenceHigh,
	}}

	out := Merge(automated, manual)

	require.Len(t, out, 1)
	require.Equal(t, "hand-curated summary", out[0].Content)
	for _, f := range out {
		require.NotEqual(t, "automated summary", f.Content,
			"the losing automated entry must not appear as a top-level finding")
	}
	// The colliding URL is already the winner's own, so no redundant
	// alternate is recorded.
	require.Empty(t, out[0].AlternateSources)
}

func TestMerge_IdenticalContentNoAlternate(t *testing.T) {
	t.Parallel()
	automated := []Finding{{
		Content:   "same words",
		SourceURL: "https://docs.example.com/guide",
	}}
	manual := []Finding{{
		Content:   "Same   WORDS",
		SourceURL: "https://docs.example.com/guide",
	}}

	out := Merge(automated, manual)

	require.Len(t, out, 1)
	require.Empty(t, out[0].AlternateSources,
		"matching content must not produce a redundant alternate")
}

func TestMerge_DisjointSetsConcatenateAutomatedFirst(t *testing.T) {
	t.Parallel()
	automated := []Finding{
		{Content: "auto one", SourceURL: "https://a.example.com/1"},
		{Content: "auto two", SourceURL: "https://a.example.com/2"},
	}
	manual := []Finding{
		{Content: "manual one", SourceURL: "https://m.example.com/1"},
	}

	out := Merge(automated, manual)

	require.Len(t, out, 3)
	require.Equal(t, "auto one", out[0].Content)
	require.Equal(t, "auto two", out[1].Content)
	require.Equal(t, "manual one", out[2].Content)
}

func TestMerge_ContentDedupAcrossSources(t *testing.T) {
	t.Parallel()
	automated := []Finding{
		{Content: "shared insight", SourceURL: "https://a.example.com/1"},
	}
	manual := []Finding{
		{Content: "SHARED insight", SourceURL: "https://m.example.com/1"},
	}

	out := Merge(automated, manual)

	require.Len(t, out, 1)
	require.Equal(t, []string{"https://m.example.com/1"}, out[0].AlternateSources)
}

func TestMerge_NormalizedURLCollision(t *testing.T) {
	t.Parallel()
	automated := []Finding{{
		Content:   "automated text",
		SourceURL: "HTTPS://Docs.Example.com:443/guide#intro",
	}}
	manual := []Finding{{
		Content:   "manual text",
		SourceURL: "https://docs.example.com/guide",
	}}

	out := Merge(automated, manual)

	require.Len(t, out, 1)
	require.Equal(t, "manual text", out[0].Content)
}
