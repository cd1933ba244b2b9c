package scorer

import (
	"context"
	"strings"
)

var positiveWords = map[string]bool{
	"gain": true, "gains": true, "up": true, "surge": true, "surges": true,
	"rally": true, "rallies": true, "beat": true, "beats": true, "bull": true,
	"bullish": true, "growth": true, "profit": true, "profits": true,
	"record": true, "strong": true, "upgrade": true, "upgraded": true,
	"outperform": true, "buy": true, "soar": true, "soars": true, "jump": true,
	"jumps": true, "positive": true, "win": true, "wins": true, "boom": true,
	"breakout": true, "moon": true, "rocket": true,
}

var negativeWords = map[string]bool{
	"loss": true, "losses": true, "down": true, "drop": true, "drops": true,
	"fall": true, "falls": true, "miss": true, "misses": true, "bear": true,
	"bearish": true, "decline": true, "declines": true, "weak": true,
	"downgrade": true, "downgraded": true, "underperform": true, "sell": true,
	"plunge": true, "plunges": true, "crash": true, "crashes": true,
	"negative": true, "lawsuit": true, "fraud": true, "recall": true,
	"bankruptcy": true, "layoff": true, "layoffs": true, "cut": true,
	"cuts": true, "warning": true, "tank": true, "tanks": true,
}

// LexiconScorer is a deterministic word-list scorer used when the
// model-backed scorer is unavailable. It never fails.
type LexiconScorer struct{}

// NewLexiconScorer creates the fallback scorer.
func NewLexiconScorer() *LexiconScorer { return &LexiconScorer{} }

// Score counts positive and negative words and normalizes the balance
// by the number of matches. Empty or matchless text scores 0.
func (s *LexiconScorer) Score(_ context.Context, text string) (float64, error) {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:'\"()[]$")
		if positiveWords[word] {
			pos++
		}
		if negativeWords[word] {
			neg++
		}
	}
	total := pos + neg
	if total == 0 {
		return 0, nil
	}
	return float64(pos-neg) / float64(total), nil
}
