package research

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Coordinator concurrency bounds. Rendering contexts are resource
// heavy; past roughly five simultaneous instances, resource exhaustion
// becomes likely, so the ceiling stays well clear of that.
const (
	DefaultConcurrency = 2
	MinConcurrency     = 1
	MaxConcurrency     = 10
)

// Coordinator runs one researcher per domain category under a bounded
// concurrency limit, isolating per-domain failures from siblings.
type Coordinator struct {
	researcher  Researcher
	concurrency int
	logger      *zap.Logger
}

// NewCoordinator validates the concurrency limit and builds a
// Coordinator. A zero limit takes the default; an out-of-range limit
// is a *ConfigurationError raised before any work begins.
func NewCoordinator(researcher Researcher, concurrency int, logger *zap.Logger) (*Coordinator, error) {
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency < MinConcurrency || concurrency > MaxConcurrency {
		return nil, &ConfigurationError{
			Field:  "concurrency",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinConcurrency, MaxConcurrency, concurrency),
		}
	}
	return &Coordinator{
		researcher:  researcher,
		concurrency: concurrency,
		logger:      logger,
	}, nil
}

// Coordinate researches every requested domain and returns a settled
// result per domain. A panic inside one domain unit is caught at the
// unit boundary and reported via DomainResult.Err; siblings are
// unaffected, and partial results are the normal successful outcome.
func (c *Coordinator) Coordinate(
	ctx context.Context,
	topic ResearchTopic,
	domains []DomainCategory,
) (map[DomainCategory]DomainResult, error) {
	if len(domains) == 0 {
		return nil, &ConfigurationError{Field: "domains", Reason: "at least one domain category is required"}
	}
	for _, domain := range domains {
		if !IsKnownDomain(domain) {
			return nil, &ConfigurationError{Field: "domains", Reason: fmt.Sprintf("unknown domain category %q", domain)}
		}
	}

	runID := uuid.NewString()
	log := c.logger.With(zap.String("run_id", runID), zap.String("topic", topic.Topic))
	log.Info("starting coordinated research",
		zap.Int("domains", len(domains)),
		zap.Int("concurrency", c.concurrency),
	)

	sem := make(chan struct{}, c.concurrency)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[DomainCategory]DomainResult, len(domains))
	)

	for _, domain := range domains {
		wg.Add(1)
		go func(domain DomainCategory) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			result := c.runDomain(ctx, log, topic, domain)
			mu.Lock()
			results[domain] = result
			mu.Unlock()
		}(domain)
	}
	wg.Wait()

	log.Info("coordinated research finished")
	return results, nil
}

// runDomain executes one researcher call with panic isolation.
func (c *Coordinator) runDomain(
	ctx context.Context,
	log *zap.Logger,
	topic ResearchTopic,
	domain DomainCategory,
) (result DomainResult) {
	result = DomainResult{Domain: domain, Findings: []Finding{}}

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("domain researcher panicked",
				zap.String("domain", string(domain)),
				zap.Any("panic", rec),
			)
			result = DomainResult{
				Domain:   domain,
				Findings: []Finding{},
				Err:      fmt.Sprintf("researcher panic: %v", rec),
			}
		}
	}()

	log.Debug("domain research started", zap.String("domain", string(domain)))
	findings := c.researcher.Research(ctx, topic, domain)
	if findings == nil {
		findings = []Finding{}
	}
	log.Info("domain research settled",
		zap.String("domain", string(domain)),
		zap.Int("findings", len(findings)),
	)
	result.Findings = findings
	return result
}
