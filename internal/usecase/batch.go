package usecase

import (
	"context"
	"fmt"
	"sync"

	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
)

// AnalyzeBatch runs the analyzer for every distinct ticker in the
// request concurrently. One ticker failing, even panicking, never
// affects the others; failures become error placeholder entries.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, req *models.AnalyzeBatchRequest) *models.BatchResult {
	tickers := dedupeTickers(req.Tickers)
	opts := AnalyzeOptions{
		IncludeSocial: req.IncludeSocial,
		NewsLimit:     req.NewsLimit,
		SocialLimit:   req.SocialLimit,
	}

	results := make([]*models.TickerSentiment, len(tickers))
	var wg sync.WaitGroup
	for i, ticker := range tickers {
		wg.Add(1)
		go func(i int, ticker string) {
			defer wg.Done()
			results[i] = a.analyzeSafe(ctx, ticker, opts)
		}(i, ticker)
	}
	wg.Wait()

	out := &models.BatchResult{
		Results:   make(map[string]*models.TickerSentiment, len(tickers)),
		Requested: len(tickers),
	}
	for i, ticker := range tickers {
		out.Results[ticker] = results[i]
		if results[i].Error != "" {
			out.Failed++
		}
	}
	return out
}

// analyzeSafe wraps Analyze with panic recovery so a single bad ticker
// cannot take down a batch.
func (a *Analyzer) analyzeSafe(ctx context.Context, ticker string, opts AnalyzeOptions) (result *models.TickerSentiment) {
	defer func() {
		if r := recover(); r != nil {
			if a.logger != nil {
				a.logger.Error("analysis panicked",
					logger.String("ticker", ticker),
					logger.Any("panic", r),
				)
			}
			result = errorPlaceholder(ticker, fmt.Errorf("internal error"))
		}
	}()

	res, err := a.Analyze(ctx, ticker, opts)
	if err != nil {
		return errorPlaceholder(ticker, err)
	}
	return res
}

func errorPlaceholder(ticker string, err error) *models.TickerSentiment {
	return &models.TickerSentiment{
		Ticker: ticker,
		Label:  models.LabelError,
		Error:  err.Error(),
	}
}

// dedupeTickers uppercases and deduplicates while preserving request
// order. Blank entries are dropped.
func dedupeTickers(tickers []string) []string {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		norm, err := NormalizeTicker(t)
		if err != nil {
			norm = t // keep the raw value so the placeholder names it
			if norm == "" {
				continue
			}
		}
		if seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}
