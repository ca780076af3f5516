package research

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Canonicalize lowercases content, collapses whitespace runs, and
// trims, so that trivially reformatted copies hash identically.
func Canonicalize(content string) string {
	return strings.Join(strings.Fields(strings.ToLower(content)), " ")
}

// ContentKey returns the dedup key for a piece of content.
func ContentKey(content string) string {
	sum := sha256.Sum256([]byte(Canonicalize(content)))
	return hex.EncodeToString(sum[:])
}

// Deduplicate folds findings with identical canonical content into the
// first occurrence, appending the duplicates' source URLs to its
// AlternateSources. Output preserves first-seen order. Empty-content
// findings carry no signal and are dropped before hashing. Idempotent.
func Deduplicate(findings []Finding) []Finding {
	seen := make(map[string]int, len(findings))
	out := make([]Finding, 0, len(findings))

	for _, finding := range findings {
		if Canonicalize(finding.Content) == "" {
			continue
		}
		key := ContentKey(finding.Content)
		idx, dup := seen[key]
		if !dup {
			seen[key] = len(out)
			out = append(out, finding)
			continue
		}
		TotalDuplicatesFolded.Inc()
		original := &out[idx]
		original.AlternateSources = appendSource(original.AlternateSources, original.SourceURL, finding.SourceURL)
		for _, alt := range finding.AlternateSources {
			original.AlternateSources = appendSource(original.AlternateSources, original.SourceURL, alt)
		}
	}
	return out
}

// appendSource adds candidate to alternates unless it duplicates the
// primary source or an existing alternate.
func appendSource(alternates []string, primary, candidate string) []string {
	if candidate == "" || candidate == primary {
		return alternates
	}
	for _, existing := range alternates {
		if existing == candidate {
			return alternates
		}
	}
	return append(alternates, candidate)
}
