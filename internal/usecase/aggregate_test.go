package usecase

import (
	"testing"
	"time"

	"SentiPull/internal/domain/models"
)

func item(title string, raw, weight float64) models.ScoredItem {
	return models.ScoredItem{Title: title, URL: "https://x/" + title, Source: "s", RawScore: raw, Weight: weight}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate("AAPL", nil, nil, time.Now())
	if got.Score != 0 || got.Label != models.LabelNeutral {
		t.Fatalf("expected neutral zero, got %v %q", got.Score, got.Label)
	}
	if got.Confidence != 0 || got.SourcesAnalyzed != 0 {
		t.Fatalf("expected zero confidence and count")
	}
}

func TestAggregateCountWeightedMean(t *testing.T) {
	news := []models.ScoredItem{item("a", 0.8, 0.8), item("b", 0.4, 0.4)}
	social := []models.ScoredItem{item("c", -0.6, -0.6)}

	got := Aggregate("AAPL", news, social, time.Now())

	// news mean 0.6 * 2 + social mean -0.6 * 1 over 3 items
	if got.Score != 0.2 {
		t.Fatalf("expected 0.2, got %v", got.Score)
	}
	if got.Label != models.LabelPositive {
		t.Fatalf("thresholds are inclusive, expected positive at 0.2, got %q", got.Label)
	}
	if got.SourcesAnalyzed != 3 {
		t.Fatalf("expected 3 sources analyzed, got %d", got.SourcesAnalyzed)
	}
}

func TestAggregateLabels(t *testing.T) {
	cases := []struct {
		score float64
		label string
	}{
		{0.5, models.LabelPositive},
		{0.2, models.LabelPositive},
		{0.19, models.LabelNeutral},
		{-0.19, models.LabelNeutral},
		{-0.2, models.LabelNegative},
		{-0.9, models.LabelNegative},
	}
	for _, c := range cases {
		if got := labelFor(c.score); got != c.label {
			t.Fatalf("score %v: expected %q, got %q", c.score, c.label, got)
		}
	}
}

func TestAggregateConfidence(t *testing.T) {
	news := []models.ScoredItem{item("a", 0.5, 0.5)}
	social := []models.ScoredItem{item("b", 0.5, 0.5)}

	both := Aggregate("AAPL", news, social, time.Now())
	if both.Confidence != 0.04 {
		t.Fatalf("2/50 with both sources: expected 0.04, got %v", both.Confidence)
	}

	newsOnly := Aggregate("AAPL", news, nil, time.Now())
	if newsOnly.Confidence != 0.01 {
		t.Fatalf("1/50 * 0.7 rounded: expected 0.01, got %v", newsOnly.Confidence)
	}
}

func TestAggregateConfidenceSaturates(t *testing.T) {
	var news, social []models.ScoredItem
	for i := 0; i < 40; i++ {
		news = append(news, item("n", 0.1, 0.1))
		social = append(social, item("s", 0.1, 0.1))
	}
	got := Aggregate("AAPL", news, social, time.Now())
	if got.Confidence != 1 {
		t.Fatalf("expected saturated confidence 1, got %v", got.Confidence)
	}
}

func TestAggregateClampsScore(t *testing.T) {
	// Social weights can exceed 1 after engagement amplification.
	social := []models.ScoredItem{item("a", 0.9, 2.7), item("b", 0.8, 2.4)}
	got := Aggregate("GME", nil, social, time.Now())
	if got.Score != 1 {
		t.Fatalf("expected clamp to 1, got %v", got.Score)
	}
}

func TestTopHeadlines(t *testing.T) {
	news := []models.ScoredItem{
		item("mild", 0.1, 0.1),
		item("strong-neg", -0.9, -0.9),
		item("strong-pos", 0.8, 0.8),
		item("mid", 0.5, 0.5),
		item("mid2", 0.4, 0.4),
		item("mild2", 0.2, 0.2),
	}
	social := []models.ScoredItem{
		item("viral-post", -0.95, -1.9),
	}

	got := Aggregate("AAPL", news, social, time.Now())
	if len(got.TopHeadlines) != 5 {
		t.Fatalf("expected 5 headlines, got %d", len(got.TopHeadlines))
	}
	if got.TopHeadlines[0].Title != "strong-neg" {
		t.Fatalf("expected ranking by absolute score, got %q first", got.TopHeadlines[0].Title)
	}
	if got.TopHeadlines[0].Score != -0.9 {
		t.Fatalf("headline keeps its raw score, got %v", got.TopHeadlines[0].Score)
	}
	for _, h := range got.TopHeadlines {
		if h.Title == "viral-post" {
			t.Fatalf("social posts must never appear in headlines")
		}
	}
}

func TestAggregateSourceBreakdown(t *testing.T) {
	news := []models.ScoredItem{item("a", 0.6, 0.6)}
	got := Aggregate("AAPL", news, nil, time.Now())

	stat, ok := got.SourceBreakdown["news"]
	if !ok {
		t.Fatalf("expected news breakdown")
	}
	if stat.Score != 0.6 || stat.Count != 1 {
		t.Fatalf("unexpected breakdown %+v", stat)
	}
	if _, ok := got.SourceBreakdown["social"]; ok {
		t.Fatalf("empty source group must be omitted")
	}
}
