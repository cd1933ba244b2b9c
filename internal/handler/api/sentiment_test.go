package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"SentiPull/pkg/cache"
	xhttp "SentiPull/pkg/http"
	applogger "SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
	"SentiPull/internal/usecase"

	"github.com/labstack/echo/v4"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = b
	m.mu.Unlock()
	return nil
}

func (m *memStore) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	b, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(b, dest)
}

func (m *memStore) Delete(_ context.Context, _ ...string) error { return nil }

func (m *memStore) Exists(_ context.Context, _ ...string) (bool, error) { return false, nil }

type stubNews struct{}

func (stubNews) Fetch(_ context.Context, _ string, _ int) ([]models.NewsItem, error) {
	return []models.NewsItem{
		{Title: "good earnings report", URL: "https://n/1", Source: "wire", PublishedAt: time.Now()},
	}, nil
}

type stubSocial struct{}

func (stubSocial) Fetch(_ context.Context, _ string, _ int) ([]models.SocialItem, error) {
	return nil, nil
}

type stubScorer struct{}

func (stubScorer) Score(_ context.Context, text string) (float64, error) {
	if strings.Contains(text, "good") {
		return 0.8, nil
	}
	return 0, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	analyzer := usecase.NewAnalyzer(
		&memStore{data: make(map[string][]byte)},
		stubNews{}, stubSocial{}, stubScorer{},
	)
	h := NewSentimentHandler(analyzer, 0.3, l)
	return xhttp.NewServer(h).Echo()
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRootEndpoint(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var info map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if info["service"] != "sentipull" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetTicker(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/sentiment/ticker/aapl", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.TickerSentiment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Ticker != "AAPL" {
		t.Fatalf("expected normalized ticker, got %q", got.Ticker)
	}
	if got.Score != 0.8 || got.Label != models.LabelPositive {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestGetTickerEmptySymbol(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/sentiment/ticker/", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["error"] != "bad_request" {
		t.Fatalf("unexpected envelope %s", rec.Body.String())
	}
}

func TestGetTickerInvalidSymbol(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/sentiment/ticker/WAYTOOLONGSYMBOL", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetTickerCacheFlag(t *testing.T) {
	e := newTestEcho(t)
	doRequest(e, http.MethodGet, "/sentiment/ticker/AAPL", "")
	rec := doRequest(e, http.MethodGet, "/sentiment/ticker/AAPL", "")

	var got models.TickerSentiment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !got.FromCache {
		t.Fatalf("second request should be served from cache")
	}

	fresh := doRequest(e, http.MethodGet, "/sentiment/ticker/AAPL?skip_cache=true", "")
	if err := json.Unmarshal(fresh.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.FromCache {
		t.Fatalf("skip_cache should force a fresh run")
	}
}

func TestGetHistoryValidation(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/sentiment/ticker/AAPL/history?days=99", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range days, got %d", rec.Code)
	}

	ok := doRequest(e, http.MethodGet, "/sentiment/ticker/AAPL/history", "")
	if ok.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", ok.Code)
	}
	var got models.TickerHistory
	if err := json.Unmarshal(ok.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Period != "7d" {
		t.Fatalf("expected default 7 day period, got %q", got.Period)
	}
}

func TestAnalyzeBatchValidation(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/sentiment/analyze", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing tickers must 400, got %d", rec.Code)
	}

	rec = doRequest(e, http.MethodPost, "/sentiment/analyze", `{"tickers": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty tickers must 400, got %d", rec.Code)
	}

	rec = doRequest(e, http.MethodPost, "/sentiment/analyze", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body must 400, got %d", rec.Code)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodPost, "/sentiment/analyze", `{"tickers": ["aapl", "msft", "AAPL"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.BatchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Requested != 2 || len(got.Results) != 2 {
		t.Fatalf("expected deduplication to 2, got %+v", got)
	}
	if _, ok := got.Results["AAPL"]; !ok {
		t.Fatalf("expected entry keyed by normalized ticker, got %s", rec.Body.String())
	}
}

func TestTrendingValidation(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodGet, "/sentiment/trending", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing tickers must 400, got %d", rec.Code)
	}

	rec = doRequest(e, http.MethodGet, "/sentiment/trending?tickers=AAPL&threshold=5", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("threshold out of range must 400, got %d", rec.Code)
	}
}

func TestTrending(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/sentiment/trending?tickers=AAPL,MSFT&threshold=0.5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got models.TrendingResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Threshold != 0.5 || got.Scanned != 2 {
		t.Fatalf("unexpected envelope %+v", got)
	}
	for _, r := range got.Trending {
		if r.Score < 0.5 && r.Score > -0.5 {
			t.Fatalf("entry below threshold leaked through: %+v", r)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["error"] != "not_found" {
		t.Fatalf("unexpected envelope %s", rec.Body.String())
	}
}
