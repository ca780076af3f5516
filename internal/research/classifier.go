package research

import (
	"net/url"
	"strings"
)

// Host and path patterns are checked in tier order; the first match
// wins. Unmatched URLs are unverified rather than low: an unknown host
// carries no signal either way.
var (
	highHostPrefixes = []string{"docs.", "developer.", "developers.", "pkg.", "api."}
	highHostSuffixes = []string{"readthedocs.io", "pages.dev"}
	highPathPrefixes = []string{"/docs", "/documentation", "/reference", "/learn", "/guide"}

	mediumHostSuffixes = []string{
		"wikipedia.org",
		"stackoverflow.com",
		"github.com",
		"mozilla.org",
		"go.dev",
	}

	lowHostPrefixes = []string{"blog."}
	lowHostSuffixes = []string{
		"medium.com",
		"dev.to",
		"hashnode.dev",
		"blogspot.com",
		"wordpress.com",
		"substack.com",
	}
)

// Classify maps a source URL to a confidence tier. Confidence is
// derived solely from the URL pattern plus the explicit verified flag;
// a verified source is at least high regardless of pattern match.
// Pure and deterministic.
func Classify(rawURL string, verified bool) ConfidenceLevel {
	level := classifyByPattern(rawURL)
	if verified && !level.AtLeast(ConfidenceHigh) {
		return ConfidenceHigh
	}
	return level
}

func classifyByPattern(rawURL string) ConfidenceLevel {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ConfidenceUnverified
	}
	host := strings.ToLower(parsed.Host)
	path := strings.ToLower(parsed.Path)

	if matchesPrefix(host, highHostPrefixes) || matchesHostSuffix(host, highHostSuffixes) {
		return ConfidenceHigh
	}
	for _, p := range highPathPrefixes {
		if strings.HasPrefix(path, p) {
			return ConfidenceHigh
		}
	}
	if matchesHostSuffix(host, mediumHostSuffixes) {
		return ConfidenceMedium
	}
	if matchesPrefix(host, lowHostPrefixes) || matchesHostSuffix(host, lowHostSuffixes) {
		return ConfidenceLow
	}
	return ConfidenceUnverified
}

func matchesPrefix(host string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(host, p) {
			return true
		}
	}
	return false
}

func matchesHostSuffix(host string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
