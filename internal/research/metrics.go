package research

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalFetchAttempts tracks individual HTTP request attempts,
	// including retries.
	TotalFetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_fetch_attempts_total",
		Help: "The total number of HTTP fetch attempts, including retries.",
	})
	// TotalFetchRetries tracks attempts beyond the first for a URL.
	TotalFetchRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_fetch_retries_total",
		Help: "The total number of fetch retries.",
	})
	// TotalRateLimitHits tracks 429 responses received.
	TotalRateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_rate_limit_hits_total",
		Help: "The total number of rate-limited responses.",
	})
	// TotalRenderSessions tracks dynamic rendering fallbacks taken.
	TotalRenderSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_render_sessions_total",
		Help: "The total number of headless render sessions opened.",
	})
	// TotalFindings tracks findings produced per research domain.
	TotalFindings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_findings_total",
		Help: "The total number of findings produced, by domain.",
	}, []string{"domain"})
	// TotalDuplicatesFolded tracks findings folded away by dedup.
	TotalDuplicatesFolded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scout_duplicates_folded_total",
		Help: "The total number of duplicate findings folded into alternates.",
	})
)
