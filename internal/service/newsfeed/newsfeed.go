package newsfeed

import (
	"context"
	"sync"

	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
	"SentiPull/internal/domain/repository"
)

// Provider is a single upstream news API.
type Provider interface {
	repository.NewsSource
	Name() string
}

// MultiSource fans a fetch out to all configured providers. A provider
// failure is logged and excluded; the merged result only fails when no
// provider is configured at all. Articles are deduplicated by URL.
type MultiSource struct {
	providers []Provider
	metrics   repository.Metrics
	logger    *logger.Logger
}

// NewMultiSource creates the merged news source.
func NewMultiSource(providers []Provider, m repository.Metrics, l *logger.Logger) *MultiSource {
	return &MultiSource{providers: providers, metrics: m, logger: l}
}

// Fetch queries every provider concurrently and merges the results.
func (s *MultiSource) Fetch(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	if len(s.providers) == 0 || limit <= 0 {
		return nil, nil
	}

	type result struct {
		name  string
		items []models.NewsItem
		err   error
	}

	results := make(chan result, len(s.providers))
	var wg sync.WaitGroup
	for _, p := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			items, err := p.Fetch(ctx, ticker, limit)
			results <- result{name: p.Name(), items: items, err: err}
		}(p)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	var merged []models.NewsItem
	for r := range results {
		if r.err != nil {
			if s.metrics != nil {
				s.metrics.RecordProviderError(r.name)
			}
			if s.logger != nil {
				s.logger.Warn("news provider failed",
					logger.String("provider", r.name),
					logger.String("ticker", ticker),
					logger.Error(r.err),
				)
			}
			continue
		}
		for _, item := range r.items {
			if item.URL != "" && seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			merged = append(merged, item)
		}
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}
