package usecase

import (
	"context"
	"testing"
	"time"

	"SentiPull/pkg/cache"

	"SentiPull/internal/domain/models"
)

func seedDay(t *testing.T, store *fakeCache, ticker string, daysAgo int, score float64, label string) {
	t.Helper()
	day := time.Now().UTC().AddDate(0, 0, -daysAgo)
	err := store.Set(context.Background(), cache.DailyKey(ticker, day), &models.TickerSentiment{
		Ticker: ticker,
		Score:  score,
		Label:  label,
	}, time.Hour)
	if err != nil {
		t.Fatalf("seed day %d: %v", daysAgo, err)
	}
}

func TestHistoryReadsDailyKeys(t *testing.T) {
	store := newFakeCache()
	seedDay(t, store, "AAPL", 0, 0.5, models.LabelPositive)
	seedDay(t, store, "AAPL", 2, -0.3, models.LabelNegative)

	news := &fakeNews{items: []models.NewsItem{newsItem("should not be fetched")}}
	a := NewAnalyzer(store, news, &fakeSocial{}, &fixedScorer{})

	got, err := a.History(context.Background(), "aapl", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Ticker != "AAPL" || got.Period != "7d" {
		t.Fatalf("unexpected envelope %+v", got)
	}
	// Missing days are omitted, not zero-filled.
	if len(got.Data) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got.Data))
	}
	// Oldest first.
	if got.Data[0].Score != -0.3 || got.Data[1].Score != 0.5 {
		t.Fatalf("expected oldest first, got %+v", got.Data)
	}
	if news.calls != 0 {
		t.Fatalf("history is cache-only, upstream was called %d times", news.calls)
	}
}

func TestHistoryEmpty(t *testing.T) {
	a := NewAnalyzer(newFakeCache(), &fakeNews{}, &fakeSocial{}, &fixedScorer{})
	got, err := a.History(context.Background(), "ZZZZ", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Data) != 0 {
		t.Fatalf("expected empty history, got %d", len(got.Data))
	}
}

func TestHistoryInvalidTicker(t *testing.T) {
	a := NewAnalyzer(newFakeCache(), &fakeNews{}, &fakeSocial{}, &fixedScorer{})
	if _, err := a.History(context.Background(), "", 7); err == nil {
		t.Fatalf("expected error for empty ticker")
	}
}

func TestHistoryDefaultDays(t *testing.T) {
	a := NewAnalyzer(newFakeCache(), &fakeNews{}, &fakeSocial{}, &fixedScorer{})
	got, err := a.History(context.Background(), "AAPL", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Period != "7d" {
		t.Fatalf("expected default 7 day period, got %q", got.Period)
	}
}
