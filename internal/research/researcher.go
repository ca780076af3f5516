package research

import (
	"context"
	"net/url"

	"go.uber.org/zap"
)

// Researcher produces findings for one topic within one domain.
type Researcher interface {
	Research(ctx context.Context, topic ResearchTopic, domain DomainCategory) []Finding
}

// DomainResearcher drives the acquirer over the candidate URLs for a
// topic+domain pair, then filters, classifies, and deduplicates the
// results. It never raises a fatal error: every failure resolves to an
// empty or partial findings list plus a logged reason.
type DomainResearcher struct {
	acquirer ContentAcquirer
	denylist *HostDenylist
	logger   *zap.Logger
}

// NewDomainResearcher builds a researcher. A nil denylist falls back to
// the built-in community-platform set.
func NewDomainResearcher(acquirer ContentAcquirer, denylist *HostDenylist, logger *zap.Logger) *DomainResearcher {
	if denylist == nil {
		denylist = NewHostDenylist(nil)
	}
	return &DomainResearcher{
		acquirer: acquirer,
		denylist: denylist,
		logger:   logger,
	}
}

// Research attempts each candidate URL in order, sequentially, with no
// early abort: a URL that yields nothing is logged and skipped. The
// returned list may be empty.
func (r *DomainResearcher) Research(ctx context.Context, topic ResearchTopic, domain DomainCategory) []Finding {
	effective := r.effectiveTopic(topic, domain)
	candidates := BuildCandidates(effective, domain)

	raw := make([]Finding, 0, len(candidates))
	for _, candidate := range candidates {
		if ctx.Err() != nil {
			r.logger.Warn("research interrupted",
				zap.String("domain", string(domain)),
				zap.Error(ctx.Err()),
			)
			break
		}
		content, err := r.acquirer.Acquire(ctx, candidate.URL)
		if err != nil {
			r.logger.Warn("candidate yielded nothing",
				zap.String("domain", string(domain)),
				zap.String("url", candidate.URL),
				zap.String("hint", candidate.SourceHint),
				zap.Error(err),
			)
			continue
		}
		r.logger.Debug("candidate acquired",
			zap.String("domain", string(domain)),
			zap.String("url", content.URL),
			zap.String("method", string(content.Method)),
		)
		raw = append(raw, Finding{
			Content:   content.Text,
			SourceURL: content.URL,
			Domain:    domain,
		})
	}

	findings := Deduplicate(r.classify(r.filter(raw)))
	TotalFindings.WithLabelValues(string(domain)).Add(float64(len(findings)))
	return findings
}

// effectiveTopic substitutes a locked constraint for the topic string.
// Once a decision is locked for a domain, alternatives to it must not
// be explored.
func (r *DomainResearcher) effectiveTopic(topic ResearchTopic, domain DomainCategory) string {
	if locked, ok := topic.Constraints[domain]; ok && locked != "" {
		r.logger.Debug("using locked constraint as research topic",
			zap.String("domain", string(domain)),
			zap.String("locked", locked),
		)
		return locked
	}
	return topic.Topic
}

// filter drops non-HTTPS sources and denylisted community platforms.
func (r *DomainResearcher) filter(findings []Finding) []Finding {
	out := findings[:0]
	for _, finding := range findings {
		parsed, err := url.Parse(finding.SourceURL)
		if err != nil || parsed.Scheme != "https" {
			r.logger.Debug("dropping non-secure source", zap.String("url", finding.SourceURL))
			continue
		}
		if r.denylist.IsDenied(parsed.Host) {
			r.logger.Debug("dropping denylisted source", zap.String("url", finding.SourceURL))
			continue
		}
		out = append(out, finding)
	}
	return out
}

func (r *DomainResearcher) classify(findings []Finding) []Finding {
	for i := range findings {
		findings[i].Confidence = Classify(findings[i].SourceURL, false)
	}
	return findings
}
