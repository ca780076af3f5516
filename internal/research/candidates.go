package research

import (
	"fmt"
	"strings"
)

// wellKnownDocs maps recognized ecosystem names to their canonical
// reference locations, in priority order. Topics outside this table
// fall back to generic docs-style guesses.
var wellKnownDocs = map[string][]CandidateURL{
	"react": {
		{URL: "https://react.dev/learn", SourceHint: "official docs"},
		{URL: "https://react.dev/reference/react", SourceHint: "api reference"},
	},
	"vue": {
		{URL: "https://vuejs.org/guide/introduction.html", SourceHint: "official docs"},
	},
	"angular": {
		{URL: "https://angular.dev/overview", SourceHint: "official docs"},
	},
	"django": {
		{URL: "https://docs.djangoproject.com/en/stable/", SourceHint: "official docs"},
	},
	"rails": {
		{URL: "https://guides.rubyonrails.org/", SourceHint: "official guides"},
		{URL: "https://api.rubyonrails.org/", SourceHint: "api reference"},
	},
	"laravel": {
		{URL: "https://laravel.com/docs", SourceHint: "official docs"},
	},
	"spring": {
		{URL: "https://docs.spring.io/spring-framework/reference/", SourceHint: "official docs"},
	},
	"go": {
		{URL: "https://go.dev/doc/", SourceHint: "official docs"},
		{URL: "https://pkg.go.dev/std", SourceHint: "stdlib reference"},
	},
	"rust": {
		{URL: "https://doc.rust-lang.org/book/", SourceHint: "official book"},
	},
	"python": {
		{URL: "https://docs.python.org/3/", SourceHint: "official docs"},
	},
	"node": {
		{URL: "https://nodejs.org/docs/latest/api/", SourceHint: "api reference"},
	},
	"typescript": {
		{URL: "https://www.typescriptlang.org/docs/", SourceHint: "official docs"},
	},
	"postgresql": {
		{URL: "https://www.postgresql.org/docs/current/", SourceHint: "official docs"},
	},
	"redis": {
		{URL: "https://redis.io/docs/latest/", SourceHint: "official docs"},
	},
	"kubernetes": {
		{URL: "https://kubernetes.io/docs/home/", SourceHint: "official docs"},
	},
	"docker": {
		{URL: "https://docs.docker.com/", SourceHint: "official docs"},
	},
}

// topicAliases folds common spellings onto table keys.
var topicAliases = map[string]string{
	"golang":        "go",
	"reactjs":       "react",
	"vuejs":         "vue",
	"nodejs":        "node",
	"node.js":       "node",
	"postgres":      "postgresql",
	"k8s":           "kubernetes",
	"ruby on rails": "rails",
}

// BuildCandidates returns the ordered fetch targets for one topic and
// domain. Recognized ecosystems get their well-known locations first;
// unrecognized topics get generic docs-prefix guesses. The list is
// regenerated fresh on every call and never persisted.
func BuildCandidates(topic string, domain DomainCategory) []CandidateURL {
	key := strings.ToLower(strings.TrimSpace(topic))
	if alias, ok := topicAliases[key]; ok {
		key = alias
	}

	var candidates []CandidateURL
	if known, ok := wellKnownDocs[key]; ok {
		candidates = append(candidates, known...)
	} else {
		slug := slugify(key)
		if slug == "" {
			return nil
		}
		candidates = append(candidates,
			CandidateURL{URL: fmt.Sprintf("https://docs.%s.com/", slug), SourceHint: "docs guess"},
			CandidateURL{URL: fmt.Sprintf("https://%s.org/docs/", slug), SourceHint: "docs guess"},
			CandidateURL{URL: fmt.Sprintf("https://%s.io/docs/", slug), SourceHint: "docs guess"},
		)
	}

	// Pitfall research benefits from community Q&A on established
	// reference sites; other domains stay on primary sources.
	if domain == DomainPitfalls {
		candidates = append(candidates, CandidateURL{
			URL:        fmt.Sprintf("https://stackoverflow.com/questions/tagged/%s", slugify(key)),
			SourceHint: "community q&a",
		})
	}
	return candidates
}

// slugify reduces a topic to a hostname-safe token.
func slugify(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
