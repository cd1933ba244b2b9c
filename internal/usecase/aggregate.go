package usecase

import (
	"math"
	"sort"
	"time"

	"SentiPull/internal/domain/models"
)

const (
	labelThreshold = 0.2
	// confidenceSaturation is the item count at which confidence
	// reaches its maximum.
	confidenceSaturation = 50.0
	// singleSourcePenalty discounts confidence when only one of the
	// two source kinds contributed items.
	singleSourcePenalty = 0.7
	maxHeadlines        = 5
)

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clamp bounds v to [-1, 1].
func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// labelFor maps a score to its label. The thresholds are inclusive.
func labelFor(score float64) string {
	switch {
	case score >= labelThreshold:
		return models.LabelPositive
	case score <= -labelThreshold:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

// groupMean averages the weighted scores of one source group.
func groupMean(items []models.ScoredItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range items {
		sum += item.Weight
	}
	return sum / float64(len(items))
}

// Aggregate combines scored news and social items into a single
// TickerSentiment. The overall score is the count-weighted mean of the
// per-source means, clamped to [-1, 1]. Confidence grows with item
// count and is discounted when only one source kind contributed.
func Aggregate(ticker string, news, social []models.ScoredItem, now time.Time) *models.TickerSentiment {
	total := len(news) + len(social)
	result := &models.TickerSentiment{
		Ticker:          ticker,
		Timestamp:       now.UTC(),
		Label:           models.LabelNeutral,
		SourcesAnalyzed: total,
		SourceBreakdown: make(map[string]models.SourceStat),
	}
	if total == 0 {
		return result
	}

	newsMean := groupMean(news)
	socialMean := groupMean(social)

	weighted := newsMean*float64(len(news)) + socialMean*float64(len(social))
	score := clamp(weighted / float64(total))

	result.Score = round2(score)
	result.Label = labelFor(result.Score)

	if len(news) > 0 {
		result.SourceBreakdown["news"] = models.SourceStat{
			Score: round2(clamp(newsMean)),
			Count: len(news),
		}
	}
	if len(social) > 0 {
		result.SourceBreakdown["social"] = models.SourceStat{
			Score: round2(clamp(socialMean)),
			Count: len(social),
		}
	}

	confidence := math.Min(float64(total)/confidenceSaturation, 1)
	if len(news) == 0 || len(social) == 0 {
		confidence *= singleSourcePenalty
	}
	result.Confidence = round2(confidence)

	result.TopHeadlines = topHeadlines(news)
	return result
}

// topHeadlines returns the most polarized news items, ranked by
// absolute raw score. Social posts never appear here.
func topHeadlines(news []models.ScoredItem) []models.Headline {
	all := make([]models.ScoredItem, len(news))
	copy(all, news)

	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].RawScore) > math.Abs(all[j].RawScore)
	})

	n := len(all)
	if n > maxHeadlines {
		n = maxHeadlines
	}
	headlines := make([]models.Headline, 0, n)
	for _, item := range all[:n] {
		headlines = append(headlines, models.Headline{
			Title:  item.Title,
			URL:    item.URL,
			Source: item.Source,
			Score:  round2(item.RawScore),
		})
	}
	return headlines
}
