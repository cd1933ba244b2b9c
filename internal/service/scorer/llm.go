package scorer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	httpclient "SentiPull/pkg/http"
)

const scorePrompt = "Rate the sentiment of the following text about a stock " +
	"on a scale from -1.0 (very negative) to 1.0 (very positive). " +
	"Respond with only the number.\n\nText: %s"

// LLMOption configures LLMScorer.
type LLMOption func(*LLMScorer)

// LLMScorer scores text through a chat-completion style model API.
type LLMScorer struct {
	url      string
	apiKey   string
	model    string
	maxChars int
	client   *httpclient.Client
}

// NewLLMScorer creates the model-backed scorer.
func NewLLMScorer(opts ...LLMOption) *LLMScorer {
	s := &LLMScorer{
		maxChars: 500,
		client:   httpclient.NewClient(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithEndpoint sets the completion endpoint and API key.
func WithEndpoint(url, apiKey string) LLMOption {
	return func(s *LLMScorer) {
		s.url = url
		s.apiKey = apiKey
	}
}

// WithModel sets the model name.
func WithModel(model string) LLMOption {
	return func(s *LLMScorer) { s.model = model }
}

// WithMaxChars caps the text length sent to the model.
func WithMaxChars(n int) LLMOption {
	return func(s *LLMScorer) {
		if n > 0 {
			s.maxChars = n
		}
	}
}

// WithClient sets the HTTP client.
func WithClient(c *httpclient.Client) LLMOption {
	return func(s *LLMScorer) { s.client = c }
}

// Configured reports whether the scorer has an endpoint to call.
func (s *LLMScorer) Configured() bool { return s.url != "" && s.apiKey != "" }

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Score asks the model for a bare number and parses it. Returns an
// error for transport failures, empty responses, unparseable output
// and scores outside [-1, 1].
func (s *LLMScorer) Score(ctx context.Context, text string) (float64, error) {
	if !s.Configured() {
		return 0, fmt.Errorf("llm scorer not configured")
	}
	if len(text) > s.maxChars {
		text = text[:s.maxChars]
	}

	var resp chatResponse
	err := s.client.SendAndParse(ctx, &httpclient.RequestOptions{
		Method: httpclient.MethodPost,
		URL:    s.url,
		Headers: map[string]string{
			"Authorization": "Bearer " + s.apiKey,
		},
		Body: chatRequest{
			Model: s.model,
			Messages: []chatMessage{
				{Role: "user", Content: fmt.Sprintf(scorePrompt, text)},
			},
			Temperature: 0,
		},
	}, &resp)
	if err != nil {
		return 0, fmt.Errorf("llm request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("llm response: no choices")
	}

	score, err := parseScore(resp.Choices[0].Message.Content)
	if err != nil {
		return 0, err
	}
	return score, nil
}

// parseScore extracts a float from model output, tolerating code
// fences and surrounding prose on the same line.
func parseScore(raw string) (float64, error) {
	out := strings.TrimSpace(raw)
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	out = strings.TrimSpace(out)

	fields := strings.Fields(out)
	if len(fields) > 0 {
		out = strings.Trim(fields[0], ",;")
	}

	score, err := strconv.ParseFloat(out, 64)
	if err != nil {
		return 0, fmt.Errorf("parse score %q: %w", raw, err)
	}
	if score < -1 || score > 1 {
		return 0, fmt.Errorf("score %v out of range", score)
	}
	return score, nil
}
