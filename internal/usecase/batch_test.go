package usecase

import (
	"context"
	"testing"

	"SentiPull/internal/domain/models"
)

func TestAnalyzeBatchDedupes(t *testing.T) {
	news := &fakeNews{items: []models.NewsItem{newsItem("good earnings")}}
	a := NewAnalyzer(newFakeCache(), news, &fakeSocial{}, &fixedScorer{})

	got := a.AnalyzeBatch(context.Background(), &models.AnalyzeBatchRequest{
		Tickers: []string{"aapl", "AAPL", "msft", " aapl "},
	})
	if got.Requested != 2 {
		t.Fatalf("expected 2 distinct tickers, got %d", got.Requested)
	}
	if len(got.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got.Results))
	}
	for _, ticker := range []string{"AAPL", "MSFT"} {
		r, ok := got.Results[ticker]
		if !ok {
			t.Fatalf("expected entry for %q", ticker)
		}
		if r.Ticker != ticker {
			t.Fatalf("entry for %q carries ticker %q", ticker, r.Ticker)
		}
	}
}

func TestAnalyzeBatchFailureIsolation(t *testing.T) {
	news := &fakeNews{items: []models.NewsItem{newsItem("good earnings")}}
	a := NewAnalyzer(newFakeCache(), news, &fakeSocial{}, &fixedScorer{})

	got := a.AnalyzeBatch(context.Background(), &models.AnalyzeBatchRequest{
		Tickers: []string{"AAPL", "not a ticker!"},
	})
	if got.Requested != 2 || got.Failed != 1 {
		t.Fatalf("expected 1 failure out of 2, got %+v", got)
	}

	var placeholder *models.TickerSentiment
	for _, r := range got.Results {
		if r.Error != "" {
			placeholder = r
		}
	}
	if placeholder == nil {
		t.Fatalf("expected an error placeholder")
	}
	if placeholder.Score != 0 || placeholder.Label != models.LabelError {
		t.Fatalf("placeholder must carry zero score and error label, got %+v", placeholder)
	}
}

func TestTrendingFiltersAndSorts(t *testing.T) {
	// Seed one strong positive, one weak, one strong negative.
	sc := &fixedScorer{}
	store := newFakeCache()
	news := &fakeNews{items: []models.NewsItem{newsItem("good earnings"), newsItem("good guidance")}}
	social := &fakeSocial{}

	a := NewAnalyzer(store, news, social, sc)
	got := a.Trending(context.Background(), []string{"AAPL"}, 0.3)
	if got.Scanned != 1 {
		t.Fatalf("expected 1 scanned, got %d", got.Scanned)
	}
	if len(got.Trending) != 1 {
		t.Fatalf("|0.8| >= 0.3 should trend, got %d entries", len(got.Trending))
	}
	if social.calls == 0 {
		t.Fatalf("trending must force social data on")
	}

	strict := a.Trending(context.Background(), []string{"AAPL"}, 0.9)
	if len(strict.Trending) != 0 {
		t.Fatalf("threshold 0.9 should filter everything, got %d", len(strict.Trending))
	}
}

func TestTrendingSkipsFailedTickers(t *testing.T) {
	news := &fakeNews{items: []models.NewsItem{newsItem("good earnings")}}
	a := NewAnalyzer(newFakeCache(), news, &fakeSocial{}, &fixedScorer{})

	got := a.Trending(context.Background(), []string{"AAPL", "bad ticker!"}, 0)
	for _, r := range got.Trending {
		if r.Error != "" {
			t.Fatalf("failed tickers must not appear in trending")
		}
	}
}
