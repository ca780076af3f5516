package research

// Merge combines automated findings with caller-supplied manual ones.
// Manual entries are assumed more trustworthy: on a sourceURL collision
// the manual finding wins, and the automated entry survives only as an
// alternate source, and only when its content actually differs. The
// combined list is then content-hash deduplicated.
func Merge(automated, manual []Finding) []Finding {
	manualByURL := make(map[string]int, len(manual))
	merged := make([]Finding, 0, len(automated)+len(manual))

	manualCopies := make([]Finding, len(manual))
	copy(manualCopies, manual)
	for i, finding := range manualCopies {
		manualByURL[mergeKey(finding.SourceURL)] = i
	}

	for _, finding := range automated {
		idx, collides := manualByURL[mergeKey(finding.SourceURL)]
		if !collides {
			merged = append(merged, finding)
			continue
		}
		winner := &manualCopies[idx]
		if ContentKey(finding.Content) != ContentKey(winner.Content) {
			winner.AlternateSources = appendSource(winner.AlternateSources, winner.SourceURL, finding.SourceURL)
		}
	}

	merged = append(merged, manualCopies...)
	return Deduplicate(merged)
}

// mergeKey normalizes a URL for collision detection, falling back to
// the raw string when the URL does not parse.
func mergeKey(rawURL string) string {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return rawURL
	}
	return normalized
}
