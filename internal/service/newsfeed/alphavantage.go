package newsfeed

import (
	"context"
	"fmt"
	"strconv"
	"time"

	httpclient "SentiPull/pkg/http"
	"SentiPull/pkg/logger"
	"SentiPull/pkg/util"

	"SentiPull/internal/domain/models"
	"SentiPull/internal/service/ratelimit"
)

const defaultAlphaVantageURL = "https://www.alphavantage.co/query"

// AlphaVantageOption configures AlphaVantageSource.
type AlphaVantageOption func(*AlphaVantageSource)

// AlphaVantageSource fetches ticker news from the Alpha Vantage
// NEWS_SENTIMENT endpoint. The provider ships a per-ticker relevance
// score with each article, which is carried through as a precomputed
// sentiment so the scorer can skip those items.
type AlphaVantageSource struct {
	apiKey  string
	baseURL string
	client  *httpclient.Client
	limiter *ratelimit.Limiter
	logger  *logger.Logger
}

// NewAlphaVantageSource creates an Alpha Vantage news source.
func NewAlphaVantageSource(opts ...AlphaVantageOption) *AlphaVantageSource {
	s := &AlphaVantageSource{
		baseURL: defaultAlphaVantageURL,
		client:  httpclient.NewClient(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithAlphaVantageKey sets the API key.
func WithAlphaVantageKey(key string) AlphaVantageOption {
	return func(s *AlphaVantageSource) { s.apiKey = key }
}

// WithAlphaVantageURL overrides the endpoint URL.
func WithAlphaVantageURL(url string) AlphaVantageOption {
	return func(s *AlphaVantageSource) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithAlphaVantageClient sets the HTTP client.
func WithAlphaVantageClient(c *httpclient.Client) AlphaVantageOption {
	return func(s *AlphaVantageSource) { s.client = c }
}

// WithAlphaVantageLimiter sets the rate limiter shared across providers.
func WithAlphaVantageLimiter(l *ratelimit.Limiter) AlphaVantageOption {
	return func(s *AlphaVantageSource) { s.limiter = l }
}

// WithAlphaVantageLogger sets the logger.
func WithAlphaVantageLogger(l *logger.Logger) AlphaVantageOption {
	return func(s *AlphaVantageSource) { s.logger = l }
}

// Name returns the provider name.
func (s *AlphaVantageSource) Name() string { return "alphavantage" }

type alphaVantageResponse struct {
	Feed []struct {
		Title           string `json:"title"`
		URL             string `json:"url"`
		Summary         string `json:"summary"`
		Source          string `json:"source"`
		TimePublished   string `json:"time_published"`
		TickerSentiment []struct {
			Ticker         string `json:"ticker"`
			SentimentScore string `json:"ticker_sentiment_score"`
		} `json:"ticker_sentiment"`
	} `json:"feed"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

// Fetch returns up to limit recent articles for ticker.
func (s *AlphaVantageSource) Fetch(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	if s.apiKey == "" {
		if s.logger != nil {
			s.logger.Warn("alphavantage api key not configured, skipping provider")
		}
		return nil, nil
	}

	if s.limiter != nil {
		// Free tier allows 5 requests per minute.
		if err := s.limiter.Wait(ctx, s.Name(), 5, 5.0/60.0); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var resp alphaVantageResponse
	err := s.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    s.baseURL,
		QueryParams: map[string][]string{
			"function": {"NEWS_SENTIMENT"},
			"tickers":  {ticker},
			"limit":    {strconv.Itoa(limit)},
			"apikey":   {s.apiKey},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}

	// The API reports throttling with a 200 and a Note field.
	if resp.Note != "" || resp.Information != "" {
		return nil, fmt.Errorf("alphavantage throttled: %s%s", resp.Note, resp.Information)
	}

	items := make([]models.NewsItem, 0, len(resp.Feed))
	for _, a := range resp.Feed {
		if len(items) >= limit {
			break
		}
		item := models.NewsItem{
			Title:       a.Title,
			Summary:     a.Summary,
			URL:         a.URL,
			Source:      a.Source,
			PublishedAt: util.ParseTimeDefault(a.TimePublished, time.Now().UTC()),
		}
		for _, ts := range a.TickerSentiment {
			if ts.Ticker != ticker {
				continue
			}
			if score, err := strconv.ParseFloat(ts.SentimentScore, 64); err == nil {
				item.Precomputed = &score
			}
		}
		items = append(items, item)
	}
	return items, nil
}
