package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpclient "SentiPull/pkg/http"
)

func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Errorf("missing authorization header")
		}
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	}))
}

func TestLLMScore(t *testing.T) {
	srv := chatServer(t, "0.75", http.StatusOK)
	defer srv.Close()

	s := NewLLMScorer(
		WithEndpoint(srv.URL, "test-key"),
		WithClient(httpclient.NewClient()),
	)
	got, err := s.Score(context.Background(), "Company beats earnings expectations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestLLMScoreStripsCodeFence(t *testing.T) {
	srv := chatServer(t, "```json\n-0.4\n```", http.StatusOK)
	defer srv.Close()

	s := NewLLMScorer(WithEndpoint(srv.URL, "k"), WithClient(httpclient.NewClient()))
	got, err := s.Score(context.Background(), "some negative headline here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != -0.4 {
		t.Fatalf("expected -0.4, got %v", got)
	}
}

func TestLLMScoreOutOfRange(t *testing.T) {
	srv := chatServer(t, "3.5", http.StatusOK)
	defer srv.Close()

	s := NewLLMScorer(WithEndpoint(srv.URL, "k"), WithClient(httpclient.NewClient()))
	if _, err := s.Score(context.Background(), "headline text goes here"); err == nil {
		t.Fatalf("expected range error")
	}
}

func TestLLMScoreGarbage(t *testing.T) {
	srv := chatServer(t, "the sentiment is neutral", http.StatusOK)
	defer srv.Close()

	s := NewLLMScorer(WithEndpoint(srv.URL, "k"), WithClient(httpclient.NewClient()))
	if _, err := s.Score(context.Background(), "headline text goes here"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLLMTruncatesInput(t *testing.T) {
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && len(body.Messages) > 0 {
			gotLen = len(body.Messages[0].Content)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"0.1"}}]}`)
	}))
	defer srv.Close()

	s := NewLLMScorer(
		WithEndpoint(srv.URL, "k"),
		WithMaxChars(100),
		WithClient(httpclient.NewClient()),
	)
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := s.Score(context.Background(), string(long)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLen > len(scorePrompt)+100 {
		t.Fatalf("text was not truncated, prompt length %d", gotLen)
	}
}

func TestChainFallsBackOnError(t *testing.T) {
	srv := chatServer(t, "oops", http.StatusInternalServerError)
	defer srv.Close()

	primary := NewLLMScorer(WithEndpoint(srv.URL, "k"), WithClient(httpclient.NewClient()))
	chain := NewChain(primary)

	got, err := chain.Score(context.Background(), "Stock surges on record profit")
	if err != nil {
		t.Fatalf("chain must never fail: %v", err)
	}
	if got <= 0 {
		t.Fatalf("lexicon fallback should score positive, got %v", got)
	}
}

func TestChainFallsBackWhenUnconfigured(t *testing.T) {
	chain := NewChain(NewLLMScorer())
	got, err := chain.Score(context.Background(), "Stock tanks after bankruptcy warning")
	if err != nil {
		t.Fatalf("chain must never fail: %v", err)
	}
	if got >= 0 {
		t.Fatalf("expected negative fallback score, got %v", got)
	}
}

func TestChainShortTextSkipsPrimary(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		fmt.Fprint(w, `{"choices":[{"message":{"content":"0.9"}}]}`)
	}))
	defer srv.Close()

	primary := NewLLMScorer(WithEndpoint(srv.URL, "k"), WithClient(httpclient.NewClient()))
	chain := NewChain(primary, WithMinChars(10))

	if _, err := chain.Score(context.Background(), "up"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatalf("short text must not reach the primary scorer")
	}
}

func TestChainEmptyText(t *testing.T) {
	chain := NewChain(nil)
	got, err := chain.Score(context.Background(), "   ")
	if err != nil || got != 0 {
		t.Fatalf("expected 0 for blank text, got %v err %v", got, err)
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.5", 0.5, true},
		{" -1 ", -1, true},
		{"```\n0.25\n```", 0.25, true},
		{"0.3,", 0.3, true},
		{"2", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := parseScore(c.in)
		if c.ok && (err != nil || got != c.want) {
			t.Fatalf("%q: expected %v, got %v err %v", c.in, c.want, got, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("%q: expected error", c.in)
		}
	}
}
