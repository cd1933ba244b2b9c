package scorer

import (
	"context"
	"strings"

	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/repository"
)

// Chain tries the primary scorer and falls back to the lexicon when
// the primary is unconfigured, errors out, or the text is too short to
// be worth a model call. The chain itself never returns an error.
type Chain struct {
	primary  *LLMScorer
	fallback *LexiconScorer
	minChars int
	metrics  repository.Metrics
	logger   *logger.Logger
}

// ChainOption configures Chain.
type ChainOption func(*Chain)

// NewChain creates the scoring chain.
func NewChain(primary *LLMScorer, opts ...ChainOption) *Chain {
	c := &Chain{
		primary:  primary,
		fallback: NewLexiconScorer(),
		minChars: 10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMinChars sets the minimum text length for a primary call.
func WithMinChars(n int) ChainOption {
	return func(c *Chain) {
		if n > 0 {
			c.minChars = n
		}
	}
}

// WithChainMetrics sets the metrics recorder.
func WithChainMetrics(m repository.Metrics) ChainOption {
	return func(c *Chain) { c.metrics = m }
}

// WithChainLogger sets the logger.
func WithChainLogger(l *logger.Logger) ChainOption {
	return func(c *Chain) { c.logger = l }
}

// Score returns a sentiment in [-1, 1]. It only reaches the fallback
// path on primary failure, so the returned error is always nil.
func (c *Chain) Score(ctx context.Context, text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, nil
	}

	if c.primary != nil && c.primary.Configured() && len(trimmed) >= c.minChars {
		score, err := c.primary.Score(ctx, trimmed)
		if err == nil {
			return score, nil
		}
		if c.logger != nil {
			c.logger.Debug("primary scorer failed, using lexicon", logger.Error(err))
		}
	}

	if c.metrics != nil {
		c.metrics.RecordScorerFallback()
	}
	return c.fallback.Score(ctx, trimmed)
}
