// Package research implements the automated research acquisition engine:
// progressive content acquisition, source classification, deduplication,
// and bounded-concurrency coordination across research domains.
package research

// DomainCategory partitions a topic into independent research angles.
type DomainCategory string

// Supported research domains.
const (
	DomainStack        DomainCategory = "stack"
	DomainFeatures     DomainCategory = "features"
	DomainArchitecture DomainCategory = "architecture"
	DomainPitfalls     DomainCategory = "pitfalls"
)

// KnownDomains lists every recognized domain category.
var KnownDomains = []DomainCategory{
	DomainStack,
	DomainFeatures,
	DomainArchitecture,
	DomainPitfalls,
}

// IsKnownDomain reports whether d is one of the recognized categories.
func IsKnownDomain(d DomainCategory) bool {
	for _, known := range KnownDomains {
		if d == known {
			return true
		}
	}
	return false
}

// ConfidenceLevel is a coarse trust ranking derived from the source URL.
type ConfidenceLevel string

// Confidence tiers, highest to lowest.
const (
	ConfidenceHigh       ConfidenceLevel = "high"
	ConfidenceMedium     ConfidenceLevel = "medium"
	ConfidenceLow        ConfidenceLevel = "low"
	ConfidenceUnverified ConfidenceLevel = "unverified"
)

var confidenceRank = map[ConfidenceLevel]int{
	ConfidenceHigh:       3,
	ConfidenceMedium:     2,
	ConfidenceLow:        1,
	ConfidenceUnverified: 0,
}

// AtLeast reports whether c ranks at or above other.
func (c ConfidenceLevel) AtLeast(other ConfidenceLevel) bool {
	return confidenceRank[c] >= confidenceRank[other]
}

// ResearchTopic is the immutable, caller-constructed unit of work.
// Constraints holds decisions already locked by earlier workflow phases,
// keyed by domain category; a locked value replaces the topic string
// when candidate URLs are built for that domain.
type ResearchTopic struct {
	Topic       string                    `json:"topic"`
	Domain      DomainCategory            `json:"domain"`
	Constraints map[DomainCategory]string `json:"constraints,omitempty"`
}

// CandidateURL is a generated, ephemeral fetch target for one topic.
type CandidateURL struct {
	URL        string
	SourceHint string
}

// AcquisitionMethod tags how content was obtained.
type AcquisitionMethod string

// Acquisition methods.
const (
	MethodStatic  AcquisitionMethod = "static"
	MethodDynamic AcquisitionMethod = "dynamic"
)

// AcquiredContent is the outcome of one successful URL acquisition.
type AcquiredContent struct {
	URL    string
	Title  string
	Text   string
	Method AcquisitionMethod
}

// Finding is one piece of research evidence. AlternateSources grows
// during dedup folding; nothing else mutates a Finding after creation.
type Finding struct {
	Content          string          `json:"content"`
	SourceURL        string          `json:"source_url"`
	Domain           DomainCategory  `json:"domain"`
	Confidence       ConfidenceLevel `json:"confidence"`
	AlternateSources []string        `json:"alternate_sources,omitempty"`
}

// DomainResult is the settled outcome for one domain in a coordinator
// run. Err distinguishes "domain failed" from "domain found nothing".
type DomainResult struct {
	Domain   DomainCategory `json:"domain"`
	Findings []Finding      `json:"findings"`
	Err      string         `json:"error,omitempty"`
}
