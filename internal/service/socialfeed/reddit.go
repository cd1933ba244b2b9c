package socialfeed

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	httpclient "SentiPull/pkg/http"
	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
	"SentiPull/internal/domain/repository"
	"SentiPull/internal/service/ratelimit"
)

const (
	defaultRedditBaseURL = "https://oauth.reddit.com"
	defaultRedditAuthURL = "https://www.reddit.com/api/v1/access_token"
	defaultUserAgent     = "sentipull/1.0"
)

var defaultSubreddits = []string{"stocks", "investing", "wallstreetbets"}

// RedditOption configures RedditSource.
type RedditOption func(*RedditSource)

// RedditSource fetches posts mentioning a ticker from a set of
// subreddits via the OAuth API with application-only credentials.
type RedditSource struct {
	clientID     string
	clientSecret string
	baseURL      string
	authURL      string
	userAgent    string
	subreddits   []string
	client       *httpclient.Client
	limiter      *ratelimit.Limiter
	metrics      repository.Metrics
	logger       *logger.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewRedditSource creates a Reddit social source.
func NewRedditSource(opts ...RedditOption) *RedditSource {
	s := &RedditSource{
		baseURL:    defaultRedditBaseURL,
		authURL:    defaultRedditAuthURL,
		userAgent:  defaultUserAgent,
		subreddits: defaultSubreddits,
		client:     httpclient.NewClient(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithRedditCredentials sets the OAuth client credentials.
func WithRedditCredentials(id, secret string) RedditOption {
	return func(s *RedditSource) {
		s.clientID = id
		s.clientSecret = secret
	}
}

// WithRedditURLs overrides the API and auth endpoints.
func WithRedditURLs(base, auth string) RedditOption {
	return func(s *RedditSource) {
		if base != "" {
			s.baseURL = base
		}
		if auth != "" {
			s.authURL = auth
		}
	}
}

// WithRedditUserAgent sets the User-Agent header.
func WithRedditUserAgent(ua string) RedditOption {
	return func(s *RedditSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithSubreddits sets the subreddits to scan.
func WithSubreddits(subs []string) RedditOption {
	return func(s *RedditSource) {
		if len(subs) > 0 {
			s.subreddits = subs
		}
	}
}

// WithRedditClient sets the HTTP client.
func WithRedditClient(c *httpclient.Client) RedditOption {
	return func(s *RedditSource) { s.client = c }
}

// WithRedditLimiter sets the rate limiter shared across providers.
func WithRedditLimiter(l *ratelimit.Limiter) RedditOption {
	return func(s *RedditSource) { s.limiter = l }
}

// WithRedditMetrics sets the metrics recorder.
func WithRedditMetrics(m repository.Metrics) RedditOption {
	return func(s *RedditSource) { s.metrics = m }
}

// WithRedditLogger sets the logger.
func WithRedditLogger(l *logger.Logger) RedditOption {
	return func(s *RedditSource) { s.logger = l }
}

// Name returns the provider name.
func (s *RedditSource) Name() string { return "reddit" }

type redditTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Subreddit   string  `json:"subreddit"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				Permalink   string  `json:"permalink"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ensureToken refreshes the application-only token when missing or
// within a minute of expiry.
func (s *RedditSource) ensureToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry.Add(-time.Minute)) {
		return s.token, nil
	}

	basic := base64.StdEncoding.EncodeToString([]byte(s.clientID + ":" + s.clientSecret))
	var resp redditTokenResponse
	err := s.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodPost,
		URL:    s.authURL,
		Headers: map[string]string{
			"Authorization": "Basic " + basic,
			"Content-Type":  "application/x-www-form-urlencoded",
			"User-Agent":    s.userAgent,
		},
		Body: map[string]string{"grant_type": "client_credentials"},
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("reddit token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("reddit token: empty access_token")
	}

	s.token = resp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	return s.token, nil
}

// Fetch scans the configured subreddits in parallel and returns up to
// limit posts mentioning ticker, most engaged first. A failing
// subreddit is logged and excluded from the pool.
func (s *RedditSource) Fetch(ctx context.Context, ticker string, limit int) ([]models.SocialItem, error) {
	if s.clientID == "" || s.clientSecret == "" {
		if s.logger != nil {
			s.logger.Warn("reddit credentials not configured, skipping provider")
		}
		return nil, nil
	}
	if limit <= 0 {
		return nil, nil
	}

	token, err := s.ensureToken(ctx)
	if err != nil {
		return nil, err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		pool []models.SocialItem
	)
	for _, sub := range s.subreddits {
		wg.Add(1)
		go func(sub string) {
			defer wg.Done()
			items, err := s.fetchSubreddit(ctx, token, sub, ticker)
			if err != nil {
				if s.metrics != nil {
					s.metrics.RecordProviderError("reddit:" + sub)
				}
				if s.logger != nil {
					s.logger.Warn("subreddit fetch failed",
						logger.String("subreddit", sub),
						logger.String("ticker", ticker),
						logger.Error(err),
					)
				}
				return
			}
			mu.Lock()
			pool = append(pool, items...)
			mu.Unlock()
		}(sub)
	}
	wg.Wait()

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Engagement > pool[j].Engagement
	})
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func (s *RedditSource) fetchSubreddit(ctx context.Context, token, sub, ticker string) ([]models.SocialItem, error) {
	if s.limiter != nil {
		// Reddit allows 60 requests per minute for app-only auth.
		if err := s.limiter.Wait(ctx, s.Name(), 60, 1); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var listing redditListing
	err := s.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodGet,
		URL:    fmt.Sprintf("%s/r/%s/hot", s.baseURL, sub),
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
			"User-Agent":    s.userAgent,
		},
		QueryParams: map[string][]string{
			"limit": {strconv.Itoa(100)},
		},
	}, &listing)
	if err != nil {
		return nil, fmt.Errorf("subreddit %s: %w", sub, err)
	}

	seen := make(map[string]bool)
	var items []models.SocialItem
	for _, child := range listing.Data.Children {
		post := child.Data
		if !mentionsTicker(post.Title, post.Selftext, ticker) {
			continue
		}
		if post.Permalink != "" && seen[post.Permalink] {
			continue
		}
		seen[post.Permalink] = true
		items = append(items, models.SocialItem{
			Title:      post.Title,
			Text:       post.Selftext,
			Subreddit:  post.Subreddit,
			Engagement: post.Score,
			Comments:   post.NumComments,
			URL:        "https://www.reddit.com" + post.Permalink,
			CreatedAt:  time.Unix(int64(post.CreatedUTC), 0).UTC(),
		})
	}
	return items, nil
}

// mentionsTicker reports whether the post text refers to the ticker,
// either as $SYM or as a standalone uppercase word.
func mentionsTicker(title, body, ticker string) bool {
	text := title + " " + body
	if strings.Contains(text, "$"+ticker) {
		return true
	}
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	}) {
		if word == ticker {
			return true
		}
	}
	return false
}
