package repository

import (
	"context"
	"time"

	"SentiPull/internal/domain/models"
)

// NewsSource fetches recent news items for a ticker.
type NewsSource interface {
	Fetch(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error)
}

// SocialSource fetches recent social posts mentioning a ticker.
type SocialSource interface {
	Fetch(ctx context.Context, ticker string, limit int) ([]models.SocialItem, error)
}

// Scorer scores a piece of text in [-1, 1].
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// SentimentPublisher emits computed results to downstream consumers.
type SentimentPublisher interface {
	PublishSentiment(ctx context.Context, s *models.TickerSentiment) error
	Close() error
}

// Metrics records pipeline counters. Implementations must be safe for
// concurrent use.
type Metrics interface {
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordScorerFallback()
	RecordItemsScored(source string, n int)
	RecordProviderError(provider string)
	RecordAnalysisLatency(d time.Duration)
}
