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

const defaultNewsAPIURL = "https://newsapi.org/v2/everything"

// NewsAPIOption configures NewsAPISource.
type NewsAPIOption func(*NewsAPISource)

// NewsAPISource fetches ticker news from the NewsAPI everything endpoint.
type NewsAPISource struct {
	apiKey  string
	baseURL string
	client  *httpclient.Client
	limiter *ratelimit.Limiter
	logger  *logger.Logger
}

// NewNewsAPISource creates a NewsAPI news source.
func NewNewsAPISource(opts ...NewsAPIOption) *NewsAPISource {
	s := &NewsAPISource{
		baseURL: defaultNewsAPIURL,
		client:  httpclient.NewClient(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithNewsAPIKey sets the API key.
func WithNewsAPIKey(key string) NewsAPIOption {
	return func(s *NewsAPISource) { s.apiKey = key }
}

// WithNewsAPIURL overrides the endpoint URL.
func WithNewsAPIURL(url string) NewsAPIOption {
	return func(s *NewsAPISource) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithNewsAPIClient sets the HTTP client.
func WithNewsAPIClient(c *httpclient.Client) NewsAPIOption {
	return func(s *NewsAPISource) { s.client = c }
}

// WithNewsAPILimiter sets the rate limiter shared across providers.
func WithNewsAPILimiter(l *ratelimit.Limiter) NewsAPIOption {
	return func(s *NewsAPISource) { s.limiter = l }
}

// WithNewsAPILogger sets the logger.
func WithNewsAPILogger(l *logger.Logger) NewsAPIOption {
	return func(s *NewsAPISource) { s.logger = l }
}

// Name returns the provider name.
func (s *NewsAPISource) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns up to limit recent articles mentioning ticker.
func (s *NewsAPISource) Fetch(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	if s.apiKey == "" {
		if s.logger != nil {
			s.logger.Warn("newsapi key not configured, skipping provider")
		}
		return nil, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.Name(), 10, 1); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var resp newsAPIResponse
	err := s.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    s.baseURL,
		Headers: map[string]string{
			"X-Api-Key": s.apiKey,
		},
		QueryParams: map[string][]string{
			"q":        {fmt.Sprintf("%q stock", ticker)},
			"language": {"en"},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(limit)},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", resp.Message)
	}

	items := make([]models.NewsItem, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if len(items) >= limit {
			break
		}
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Summary:     a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: util.ParseTimeDefault(a.PublishedAt, time.Now().UTC()),
		})
	}
	return items, nil
}
