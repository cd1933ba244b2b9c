package usecase

import (
	"context"
	"sync"
	"time"

	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
)

// WatchlistCollector periodically refreshes sentiment for a fixed set
// of tickers so interactive requests hit a warm cache.
type WatchlistCollector struct {
	analyzer *Analyzer
	tickers  []string
	interval time.Duration
	logger   *logger.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatchlistCollector creates the collector.
func NewWatchlistCollector(a *Analyzer, tickers []string, interval time.Duration, l *logger.Logger) *WatchlistCollector {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &WatchlistCollector{
		analyzer: a,
		tickers:  tickers,
		interval: interval,
		logger:   l,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the refresh loop. The first pass runs immediately.
func (c *WatchlistCollector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)

		c.refresh(ctx)
		t := time.NewTicker(c.interval)
		defer t.Stop()
		for {
			select {
			case <-c.stop:
				return
			case <-ctx.Done():
				return
			case <-t.C:
				c.refresh(ctx)
			}
		}
	}()
}

// Shutdown stops the loop and waits for the in-flight pass to finish.
func (c *WatchlistCollector) Shutdown(ctx context.Context) error {
	c.stopOnce.Do(func() { close(c.stop) })
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *WatchlistCollector) refresh(ctx context.Context) {
	if len(c.tickers) == 0 {
		return
	}
	start := time.Now()
	result := c.analyzer.AnalyzeBatch(ctx, &models.AnalyzeBatchRequest{
		Tickers:       c.tickers,
		IncludeSocial: true,
	})
	if c.logger != nil {
		c.logger.Info("watchlist refresh complete",
			logger.Int("tickers", result.Requested),
			logger.Int("failed", result.Failed),
			logger.Duration("took", time.Since(start)),
		)
	}
}
