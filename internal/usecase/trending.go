package usecase

import (
	"context"
	"math"
	"sort"

	"SentiPull/internal/domain/models"
)

// Trending analyzes the given tickers and returns those whose absolute
// sentiment meets the threshold, strongest first. Social data is
// always included here because trending is driven by discussion
// momentum, not just news coverage.
func (a *Analyzer) Trending(ctx context.Context, tickers []string, threshold float64) *models.TrendingResult {
	batch := a.AnalyzeBatch(ctx, &models.AnalyzeBatchRequest{
		Tickers:       tickers,
		IncludeSocial: true,
	})

	trending := make([]*models.TickerSentiment, 0, len(batch.Results))
	for _, r := range batch.Results {
		if r.Error != "" {
			continue
		}
		if math.Abs(r.Score) >= threshold {
			trending = append(trending, r)
		}
	}

	sort.SliceStable(trending, func(i, j int) bool {
		return math.Abs(trending[i].Score) > math.Abs(trending[j].Score)
	})

	return &models.TrendingResult{
		Trending:  trending,
		Threshold: threshold,
		Scanned:   batch.Requested,
	}
}
