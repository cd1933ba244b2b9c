package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"SentiPull/pkg/cache"
	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
)

// History reads the per-day cache entries for the past days, oldest
// first. Days without a cached aggregation are omitted; no upstream
// calls are made.
func (a *Analyzer) History(ctx context.Context, ticker string, days int) (*models.TickerHistory, error) {
	ticker, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 7
	}

	now := time.Now().UTC()
	points := make([]models.HistoryPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := cache.DailyKey(ticker, day)

		var cached models.TickerSentiment
		if err := a.cache.Get(ctx, key, &cached); err != nil {
			if !errors.Is(err, cache.ErrCacheMiss) && a.logger != nil {
				a.logger.Warn("history read failed", logger.String("key", key), logger.Error(err))
			}
			if a.metrics != nil {
				a.metrics.RecordCacheMiss("daily")
			}
			continue
		}
		if a.metrics != nil {
			a.metrics.RecordCacheHit("daily")
		}
		points = append(points, models.HistoryPoint{
			Date:  day.Format("2006-01-02"),
			Score: cached.Score,
			Label: cached.Label,
		})
	}

	return &models.TickerHistory{
		Ticker: ticker,
		Period: fmt.Sprintf("%dd", days),
		Data:   points,
	}, nil
}
