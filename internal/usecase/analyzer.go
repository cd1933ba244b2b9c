package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"SentiPull/pkg/cache"
	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
	"SentiPull/internal/domain/repository"
)

// ErrInvalidTicker is returned for empty or malformed ticker symbols.
var ErrInvalidTicker = errors.New("invalid ticker symbol")

// AnalyzeOptions tunes a single ticker analysis.
type AnalyzeOptions struct {
	IncludeSocial bool
	SkipCache     bool
	NewsLimit     int
	SocialLimit   int
}

// AnalyzerOption configures Analyzer.
type AnalyzerOption func(*Analyzer)

// Analyzer runs the full pipeline for one ticker: cache check, source
// fetch, per-item scoring and aggregation.
type Analyzer struct {
	cache         cache.Service
	news          repository.NewsSource
	social        repository.SocialSource
	scorer        repository.Scorer
	publisher     repository.SentimentPublisher
	metrics       repository.Metrics
	logger        *logger.Logger
	ttl           time.Duration
	bucketMinutes int
	newsLimit     int
	socialLimit   int
}

// NewAnalyzer creates the analyzer.
func NewAnalyzer(c cache.Service, news repository.NewsSource, social repository.SocialSource, scorer repository.Scorer, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		cache:         c,
		news:          news,
		social:        social,
		scorer:        scorer,
		ttl:           30 * time.Minute,
		bucketMinutes: 1,
		newsLimit:     10,
		socialLimit:   10,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// WithCacheTTL sets the result cache TTL and bucket width.
func WithCacheTTL(ttl time.Duration, bucketMinutes int) AnalyzerOption {
	return func(a *Analyzer) {
		if ttl > 0 {
			a.ttl = ttl
		}
		if bucketMinutes > 0 {
			a.bucketMinutes = bucketMinutes
		}
	}
}

// WithDefaultLimits sets the per-source item limits.
func WithDefaultLimits(news, social int) AnalyzerOption {
	return func(a *Analyzer) {
		if news > 0 {
			a.newsLimit = news
		}
		if social > 0 {
			a.socialLimit = social
		}
	}
}

// WithPublisher sets the downstream event publisher.
func WithPublisher(p repository.SentimentPublisher) AnalyzerOption {
	return func(a *Analyzer) { a.publisher = p }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m repository.Metrics) AnalyzerOption {
	return func(a *Analyzer) { a.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// NormalizeTicker uppercases and validates a ticker symbol.
func NormalizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" || len(t) > 10 {
		return "", ErrInvalidTicker
	}
	for _, r := range t {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", ErrInvalidTicker
		}
	}
	return t, nil
}

// Analyze computes the current sentiment for one ticker. Cached
// results within the current bucket window are returned with
// from_cache set, unless opts.SkipCache forces a fresh run.
func (a *Analyzer) Analyze(ctx context.Context, ticker string, opts AnalyzeOptions) (*models.TickerSentiment, error) {
	start := time.Now()
	ticker, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}
	if opts.NewsLimit <= 0 {
		opts.NewsLimit = a.newsLimit
	}
	if opts.SocialLimit <= 0 {
		opts.SocialLimit = a.socialLimit
	}

	key := cache.BucketKey(ticker, start, a.bucketMinutes)
	if !opts.SkipCache {
		var cached models.TickerSentiment
		if err := a.cache.Get(ctx, key, &cached); err == nil {
			if a.metrics != nil {
				a.metrics.RecordCacheHit("bucket")
			}
			cached.FromCache = true
			return &cached, nil
		} else if !errors.Is(err, cache.ErrCacheMiss) && a.logger != nil {
			a.logger.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		}
		if a.metrics != nil {
			a.metrics.RecordCacheMiss("bucket")
		}
	}

	newsItems, socialItems, err := a.fetchSources(ctx, ticker, opts)
	if err != nil {
		return nil, err
	}

	scoredNews := a.scoreNews(ctx, newsItems)
	scoredSocial := a.scoreSocial(ctx, socialItems)

	if a.metrics != nil {
		a.metrics.RecordItemsScored("news", len(scoredNews))
		a.metrics.RecordItemsScored("social", len(scoredSocial))
		a.metrics.RecordAnalysisLatency(time.Since(start))
	}

	result := Aggregate(ticker, scoredNews, scoredSocial, start)
	a.store(ctx, ticker, key, result)
	a.publish(ctx, result)
	return result, nil
}

// fetchSources pulls news and (optionally) social items concurrently.
// Both fetchers are fail-soft internally; an error here means every
// configured provider failed.
func (a *Analyzer) fetchSources(ctx context.Context, ticker string, opts AnalyzeOptions) ([]models.NewsItem, []models.SocialItem, error) {
	var (
		wg          sync.WaitGroup
		newsItems   []models.NewsItem
		socialItems []models.SocialItem
		newsErr     error
		socialErr   error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		newsItems, newsErr = a.news.Fetch(ctx, ticker, opts.NewsLimit)
	}()

	if opts.IncludeSocial && a.social != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			socialItems, socialErr = a.social.Fetch(ctx, ticker, opts.SocialLimit)
		}()
	}
	wg.Wait()

	if newsErr != nil && a.logger != nil {
		a.logger.Warn("news fetch failed", logger.String("ticker", ticker), logger.Error(newsErr))
	}
	if socialErr != nil && a.logger != nil {
		a.logger.Warn("social fetch failed", logger.String("ticker", ticker), logger.Error(socialErr))
	}
	if newsErr != nil && socialErr != nil {
		return nil, nil, fmt.Errorf("all sources failed for %s: %w", ticker, newsErr)
	}
	return newsItems, socialItems, nil
}

// scoreNews scores articles concurrently. Items carrying a
// provider-precomputed sentiment skip the scorer. Every fetched item
// produces a scored entry; a scorer error counts as a neutral 0.
func (a *Analyzer) scoreNews(ctx context.Context, items []models.NewsItem) []models.ScoredItem {
	scored := make([]models.ScoredItem, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item models.NewsItem) {
			defer wg.Done()
			var raw float64
			if item.Precomputed != nil {
				raw = clamp(*item.Precomputed)
			} else {
				text := item.Title
				if item.Summary != "" {
					text += ". " + item.Summary
				}
				s, err := a.scorer.Score(ctx, text)
				if err != nil {
					if a.logger != nil {
						a.logger.Warn("scoring failed", logger.String("title", item.Title), logger.Error(err))
					}
					s = 0
				}
				raw = clamp(s)
			}
			scored[i] = models.ScoredItem{
				Title:    item.Title,
				URL:      item.URL,
				Source:   item.Source,
				RawScore: raw,
				Weight:   raw,
			}
		}(i, item)
	}
	wg.Wait()
	return scored
}

// scoreSocial scores posts concurrently. A post's aggregation weight
// is its raw score amplified by engagement on a log scale.
func (a *Analyzer) scoreSocial(ctx context.Context, items []models.SocialItem) []models.ScoredItem {
	scored := make([]models.ScoredItem, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item models.SocialItem) {
			defer wg.Done()
			text := item.Title
			if item.Text != "" {
				text += ". " + item.Text
			}
			s, err := a.scorer.Score(ctx, text)
			if err != nil {
				if a.logger != nil {
					a.logger.Warn("scoring failed", logger.String("title", item.Title), logger.Error(err))
				}
				s = 0
			}
			raw := clamp(s)
			engagement := item.Engagement
			if engagement < 0 {
				engagement = 0
			}
			scored[i] = models.ScoredItem{
				Title:    item.Title,
				URL:      item.URL,
				Source:   "r/" + item.Subreddit,
				RawScore: raw,
				Weight:   raw * math.Log10(float64(engagement)+10),
			}
		}(i, item)
	}
	wg.Wait()
	return scored
}

// store writes the result under both the bucket key and the daily key.
// The daily key is overwritten on every run so history always reflects
// the day's latest aggregation.
func (a *Analyzer) store(ctx context.Context, ticker, bucketKey string, result *models.TickerSentiment) {
	if err := a.cache.Set(ctx, bucketKey, result, a.ttl); err != nil && a.logger != nil {
		a.logger.Warn("cache write failed", logger.String("key", bucketKey), logger.Error(err))
	}
	dailyKey := cache.DailyKey(ticker, result.Timestamp)
	if err := a.cache.Set(ctx, dailyKey, result, 8*24*time.Hour); err != nil && a.logger != nil {
		a.logger.Warn("cache write failed", logger.String("key", dailyKey), logger.Error(err))
	}
}

// publish emits the result downstream. Failures are logged, never
// surfaced to the caller.
func (a *Analyzer) publish(ctx context.Context, result *models.TickerSentiment) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.PublishSentiment(ctx, result); err != nil && a.logger != nil {
		a.logger.Error("sentiment publish failed",
			logger.String("ticker", result.Ticker),
			logger.Error(err),
		)
	}
}
