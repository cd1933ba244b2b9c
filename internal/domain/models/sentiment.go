package models

import "time"

// NewsItem is a single news article about a ticker.
type NewsItem struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	URL         string     `json:"url"`
	Source      string     `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Precomputed *float64  `json:"-"` // provider-supplied sentiment, skips scoring when set
}

// SocialItem is a single social media post mentioning a ticker.
type SocialItem struct {
	Title      string    `json:"title"`
	Text       string    `json:"text,omitempty"`
	Subreddit  string    `json:"subreddit"`
	Engagement int       `json:"engagement"`
	Comments   int       `json:"comments"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScoredItem pairs an item with its sentiment score and aggregation weight.
type ScoredItem struct {
	Title    string
	URL      string
	Source   string
	RawScore float64
	Weight   float64
}

// SourceStat is the per-source slice of an aggregate result.
type SourceStat struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// Headline is one of the most polarized items behind a result.
type Headline struct {
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// TickerSentiment is the aggregate sentiment for one ticker.
type TickerSentiment struct {
	Ticker          string                `json:"ticker"`
	Timestamp       time.Time             `json:"timestamp"`
	Score           float64               `json:"score"`
	Label           string                `json:"label"`
	Confidence      float64               `json:"confidence"`
	SourcesAnalyzed int                   `json:"sources_analyzed"`
	SourceBreakdown map[string]SourceStat `json:"source_breakdown,omitempty"`
	TopHeadlines    []Headline            `json:"top_headlines,omitempty"`
	FromCache       bool                  `json:"from_cache"`
	Error           string                `json:"error,omitempty"`
}

// Sentiment labels.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
	LabelError    = "error"
)

// HistoryPoint is one day of cached sentiment.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// TickerHistory is the cache-backed history for one ticker.
type TickerHistory struct {
	Ticker string         `json:"ticker"`
	Period string         `json:"period"`
	Data   []HistoryPoint `json:"data"`
}

// AnalyzeBatchRequest is the POST /sentiment/analyze body.
type AnalyzeBatchRequest struct {
	Tickers       []string `json:"tickers" validate:"required,min=1,dive,required"`
	IncludeSocial bool     `json:"includeSocial"`
	NewsLimit     int      `json:"newsLimit" default:"10" validate:"gte=0,lte=100"`
	SocialLimit   int      `json:"socialLimit" default:"10" validate:"gte=0,lte=100"`
}

// BatchResult maps each requested ticker to its result or error
// placeholder. Every requested ticker has exactly one entry.
type BatchResult struct {
	Results   map[string]*TickerSentiment `json:"results"`
	Requested int                         `json:"requested"`
	Failed    int                         `json:"failed"`
}

// TrendingResult is the GET /sentiment/trending response.
type TrendingResult struct {
	Trending  []*TickerSentiment `json:"trending"`
	Threshold float64            `json:"threshold"`
	Scanned   int                `json:"scanned"`
}
