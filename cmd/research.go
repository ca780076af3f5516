package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planforge/scout/internal/api"
	"github.com/planforge/scout/internal/research"
)

// newResearchCmd creates the 'research' subcommand. It runs the
// multi-domain coordinator for a single topic and writes the settled
// results as JSON to stdout.
func newResearchCmd() *cobra.Command {
	var (
		domainFlags []string
		concurrency int
		constraints map[string]string
	)

	cmd := &cobra.Command{
		Use:   "research <topic>",
		Short: "Research a topic across the configured domain categories",
		Long: `Runs bounded-concurrency research for one topic. Each requested
domain category (stack, features, architecture, pitfalls) is researched
independently; a failure in one domain never aborts the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResearch(cmd.Context(), args[0], domainFlags, concurrency, constraints)
		},
	}

	cmd.Flags().StringSliceVar(&domainFlags, "domains",
		[]string{"stack", "features", "architecture", "pitfalls"},
		"domain categories to research")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0,
		"override research.concurrency (1-10)")
	cmd.Flags().StringToStringVar(&constraints, "locked",
		nil, "locked decisions per domain, e.g. stack=rails")

	return cmd
}

func runResearch(
	ctx context.Context,
	topic string,
	domainFlags []string,
	concurrency int,
	locked map[string]string,
) error {
	engine, cleanup, err := buildEngine(concurrency)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.Server.Enabled {
		statusServer := api.NewServer(cfg.Server.Port, logger)
		statusServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := statusServer.Shutdown(shutdownCtx); serr != nil {
				logger.Warn("status server shutdown failed", zap.Error(serr))
			}
		}()
	}

	domains := make([]research.DomainCategory, 0, len(domainFlags))
	for _, d := range domainFlags {
		domains = append(domains, research.DomainCategory(d))
	}

	researchTopic := research.ResearchTopic{
		Topic:       topic,
		Constraints: lockedConstraints(locked),
	}

	results, err := engine.Coordinate(ctx, researchTopic, domains)
	if err != nil {
		var cfgErr *research.ConfigurationError
		if errors.As(err, &cfgErr) {
			return fmt.Errorf("invalid research request: %w", err)
		}
		return fmt.Errorf("coordinate research: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

// buildEngine wires the fetcher, renderer, acquirer, researcher, and
// coordinator from the loaded configuration.
func buildEngine(concurrencyOverride int) (*research.Coordinator, func(), error) {
	fetcher := research.NewHTTPFetcher(research.FetchConfig{
		UserAgent:   cfg.HTTP.UserAgent,
		Timeout:     cfg.FetchTimeout(),
		MaxRetries:  cfg.HTTP.MaxRetries,
		BackoffBase: cfg.BackoffBase(),
		BackoffMax:  cfg.BackoffMax(),
	}, logger)

	renderer, cleanup, err := buildRenderer()
	if err != nil {
		return nil, nil, err
	}

	acquirer := research.NewAcquirer(fetcher, renderer, cfg.Research.MinStaticChars, logger)
	researcher := research.NewDomainResearcher(
		acquirer,
		research.NewHostDenylist(cfg.Research.DenyHosts),
		logger,
	)

	concurrency := cfg.Research.Concurrency
	if concurrencyOverride != 0 {
		concurrency = concurrencyOverride
	}
	coordinator, err := research.NewCoordinator(researcher, concurrency, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return coordinator, cleanup, nil
}

func buildRenderer() (research.Renderer, func(), error) {
	if !cfg.Render.Enabled {
		return nil, func() {}, nil
	}
	renderer, err := research.NewChromedpRenderer(research.RenderConfig{
		MaxParallel: cfg.Render.MaxParallel,
		UserAgent:   cfg.HTTP.UserAgent,
		NavTimeout:  cfg.NavTimeout(),
		DomainQPS:   cfg.Render.DomainQPS,
	}, logger)
	switch {
	case err == nil:
		cleanup := func() {
			if cerr := renderer.Close(context.Background()); cerr != nil {
				logger.Warn("renderer close failed", zap.Error(cerr))
			}
		}
		return renderer, cleanup, nil
	case errors.Is(err, research.ErrRendererDisabled):
		logger.Warn("renderer disabled despite feature flag; static path only")
		return nil, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("init renderer: %w", err)
	}
}

// lockedConstraints converts the flag map to domain-keyed constraints.
func lockedConstraints(locked map[string]string) map[research.DomainCategory]string {
	if len(locked) == 0 {
		return nil
	}
	out := make(map[research.DomainCategory]string, len(locked))
	for k, v := range locked {
		out[research.DomainCategory(k)] = v
	}
	return out
}
