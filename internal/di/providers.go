package di

import (
	"fmt"
	"time"

	"SentiPull/internal/domain/repository"
	"SentiPull/internal/handler/api"
	internalrepo "SentiPull/internal/repository"
	"SentiPull/internal/service/newsfeed"
	"SentiPull/internal/service/ratelimit"
	"SentiPull/internal/service/scorer"
	"SentiPull/internal/service/socialfeed"
	"SentiPull/internal/usecase"
	"SentiPull/pkg/cache"
	"SentiPull/pkg/config"
	xhttp "SentiPull/pkg/http"
	pkgkafka "SentiPull/pkg/kafka"
	"SentiPull/pkg/logger"
	"SentiPull/pkg/metrics"
	"SentiPull/pkg/server"
)

// ProvideLogger creates the application logger. When event publishing
// is enabled and an error topic is configured, error logs are
// aggregated and flushed to the stream.
func ProvideLogger(cfg *config.Config, publisher repository.SentimentPublisher) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if cfg.Events.Enabled && cfg.Events.ErrorTopic != "" && publisher != nil {
		if kp, ok := publisher.(*internalrepo.KafkaPublisher); ok {
			l.AddCollector(&logger.CollectionConfig{
				TimeInterval:   30 * time.Second,
				CountThreshold: 100,
				Topic:          cfg.Events.ErrorTopic,
				Publisher:      kp,
			})
		}
	}
	return l, nil
}

// ProvideCache creates the cache backend selected in config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Type {
	case "redis", "layered":
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Type == "redis" {
			return redisCache, nil
		}
		return cache.NewLayeredCache(redisCache,
			cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		), nil
	default:
		var opts []cache.MemoryOption
		if cfg.Cache.MemoryMaxSize > 0 {
			opts = append(opts, cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
		}
		return cache.NewMemoryCache(opts...), nil
	}
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.NewRecorder()
}

// ProvideRateLimiter creates the shared per-provider rate limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvidePublisher creates the Kafka publisher, or nil when event
// publishing is disabled.
func ProvidePublisher(cfg *config.Config) (repository.SentimentPublisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Events.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Events.WriteTimeout, cfg.Events.ReadTimeout),
		pkgkafka.WithAsync(cfg.Events.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic), nil
}

// ProvideNewsSource creates the merged multi-provider news source.
func ProvideNewsSource(cfg *config.Config, limiter *ratelimit.Limiter, m repository.Metrics, l *logger.Logger) repository.NewsSource {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.News.Timeout))
	providers := []newsfeed.Provider{
		newsfeed.NewAlphaVantageSource(
			newsfeed.WithAlphaVantageKey(cfg.News.AlphaVantage.APIKey),
			newsfeed.WithAlphaVantageURL(cfg.News.AlphaVantage.BaseURL),
			newsfeed.WithAlphaVantageClient(client),
			newsfeed.WithAlphaVantageLimiter(limiter),
			newsfeed.WithAlphaVantageLogger(l),
		),
		newsfeed.NewNewsAPISource(
			newsfeed.WithNewsAPIKey(cfg.News.NewsAPI.APIKey),
			newsfeed.WithNewsAPIURL(cfg.News.NewsAPI.BaseURL),
			newsfeed.WithNewsAPIClient(client),
			newsfeed.WithNewsAPILimiter(limiter),
			newsfeed.WithNewsAPILogger(l),
		),
	}
	return newsfeed.NewMultiSource(providers, m, l)
}

// ProvideSocialSource creates the Reddit social source.
func ProvideSocialSource(cfg *config.Config, limiter *ratelimit.Limiter, m repository.Metrics, l *logger.Logger) repository.SocialSource {
	return socialfeed.NewRedditSource(
		socialfeed.WithRedditCredentials(cfg.Social.Reddit.ClientID, cfg.Social.Reddit.ClientSecret),
		socialfeed.WithRedditURLs(cfg.Social.Reddit.BaseURL, cfg.Social.Reddit.AuthURL),
		socialfeed.WithRedditUserAgent(cfg.Social.Reddit.UserAgent),
		socialfeed.WithSubreddits(cfg.Social.Subreddits),
		socialfeed.WithRedditClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Social.Timeout))),
		socialfeed.WithRedditLimiter(limiter),
		socialfeed.WithRedditMetrics(m),
		socialfeed.WithRedditLogger(l),
	)
}

// ProvideScorer creates the scoring chain.
func ProvideScorer(cfg *config.Config, m repository.Metrics, l *logger.Logger) repository.Scorer {
	primary := scorer.NewLLMScorer(
		scorer.WithEndpoint(cfg.Scorer.URL, cfg.Scorer.APIKey),
		scorer.WithModel(cfg.Scorer.Model),
		scorer.WithMaxChars(cfg.Scorer.MaxChars),
		scorer.WithClient(xhttp.NewClient(xhttp.WithTimeout(cfg.Scorer.Timeout))),
	)
	return scorer.NewChain(primary,
		scorer.WithMinChars(cfg.Scorer.MinChars),
		scorer.WithChainMetrics(m),
		scorer.WithChainLogger(l),
	)
}

// ProvideAnalyzer creates the analysis pipeline.
func ProvideAnalyzer(
	cfg *config.Config,
	store cache.Service,
	news repository.NewsSource,
	social repository.SocialSource,
	sc repository.Scorer,
	publisher repository.SentimentPublisher,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(store, news, social, sc,
		usecase.WithCacheTTL(cfg.Cache.TTL, cfg.Cache.BucketMinutes),
		usecase.WithDefaultLimits(cfg.News.DefaultLimit, cfg.Social.DefaultLimit),
		usecase.WithPublisher(publisher),
		usecase.WithMetrics(m),
		usecase.WithLogger(l),
	)
}

// ProvideCollector creates the watchlist collector, or nil when disabled.
func ProvideCollector(cfg *config.Config, analyzer *usecase.Analyzer, l *logger.Logger) *usecase.WatchlistCollector {
	if !cfg.Watchlist.Enabled {
		return nil
	}
	return usecase.NewWatchlistCollector(analyzer, cfg.Watchlist.Tickers, cfg.Watchlist.Interval, l)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(cfg *config.Config, analyzer *usecase.Analyzer, l *logger.Logger) xhttp.Handler {
	return api.NewSentimentHandler(analyzer, cfg.Trending.DefaultThreshold, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	store cache.Service,
	publisher repository.SentimentPublisher,
	collector *usecase.WatchlistCollector,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, store, publisher, collector, handler)
}
