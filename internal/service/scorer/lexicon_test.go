package scorer

import (
	"context"
	"testing"
)

func TestLexiconEmpty(t *testing.T) {
	s := NewLexiconScorer()
	got, err := s.Score(context.Background(), "")
	if err != nil || got != 0 {
		t.Fatalf("expected 0 for empty, got %v err %v", got, err)
	}
}

func TestLexiconPositive(t *testing.T) {
	s := NewLexiconScorer()
	got, _ := s.Score(context.Background(), "Shares surge on record profit and strong growth")
	if got <= 0 {
		t.Fatalf("expected positive, got %v", got)
	}
}

func TestLexiconNegative(t *testing.T) {
	s := NewLexiconScorer()
	got, _ := s.Score(context.Background(), "Stock tanks after lawsuit, layoffs and a downgrade")
	if got >= 0 {
		t.Fatalf("expected negative, got %v", got)
	}
}

func TestLexiconMixedNormalized(t *testing.T) {
	s := NewLexiconScorer()
	got, _ := s.Score(context.Background(), "gain loss")
	if got != 0 {
		t.Fatalf("balanced words should cancel, got %v", got)
	}
	got, _ = s.Score(context.Background(), "gain gain loss")
	if got < -1 || got > 1 {
		t.Fatalf("score out of range: %v", got)
	}
}

func TestLexiconDeterministic(t *testing.T) {
	s := NewLexiconScorer()
	text := "Bullish rally continues, profits beat expectations"
	first, _ := s.Score(context.Background(), text)
	for i := 0; i < 5; i++ {
		again, _ := s.Score(context.Background(), text)
		if again != first {
			t.Fatalf("scorer must be deterministic: %v vs %v", first, again)
		}
	}
}

func TestLexiconStripsPunctuation(t *testing.T) {
	s := NewLexiconScorer()
	got, _ := s.Score(context.Background(), "Huge gains! Profits, records...")
	if got <= 0 {
		t.Fatalf("punctuation should not hide matches, got %v", got)
	}
}
