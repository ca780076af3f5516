package research

import "strings"

// defaultDenyPatterns lists low-signal community platforms whose pages
// are filtered out of research results regardless of content.
var defaultDenyPatterns = []string{
	"*.reddit.com",
	"reddit.com",
	"*.quora.com",
	"quora.com",
	"*.pinterest.com",
	"pinterest.com",
	"*.facebook.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"*.tiktok.com",
	"tiktok.com",
}

// HostDenylist stores exact hosts and suffix wildcards.
type HostDenylist struct {
	exact    map[string]struct{}
	suffixes []string
}

// NewHostDenylist builds a matcher from patterns. Entries of the form
// "*.example.com" or ".example.com" match the host and all subdomains.
// Extra patterns extend the built-in community-platform set.
func NewHostDenylist(extra []string) *HostDenylist {
	matcher := &HostDenylist{
		exact: make(map[string]struct{}),
	}
	for _, raw := range append(append([]string{}, defaultDenyPatterns...), extra...) {
		value := strings.TrimSpace(strings.ToLower(raw))
		if value == "" {
			continue
		}
		switch {
		case strings.HasPrefix(value, "*."):
			matcher.addSuffix(strings.TrimPrefix(value, "*."))
		case strings.HasPrefix(value, "."):
			matcher.addSuffix(strings.TrimPrefix(value, "."))
		default:
			matcher.exact[value] = struct{}{}
		}
	}
	return matcher
}

func (b *HostDenylist) addSuffix(suffix string) {
	if suffix == "" {
		return
	}
	for _, existing := range b.suffixes {
		if existing == suffix {
			return
		}
	}
	b.suffixes = append(b.suffixes, suffix)
}

// IsDenied reports whether host matches the denylist.
func (b *HostDenylist) IsDenied(host string) bool {
	if b == nil {
		return false
	}
	host = strings.TrimSpace(strings.ToLower(host))
	if host == "" {
		return false
	}
	if _, exact := b.exact[host]; exact {
		return true
	}
	for _, suffix := range b.suffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return true
		}
	}
	return false
}
