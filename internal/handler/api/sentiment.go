package api

import (
	"errors"
	"strings"
	"time"

	xhttp "SentiPull/pkg/http"
	"SentiPull/pkg/logger"

	"SentiPull/internal/domain/models"
	"SentiPull/internal/service/metrics"
	"SentiPull/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SentimentHandler exposes the sentiment API.
type SentimentHandler struct {
	analyzer         *usecase.Analyzer
	defaultThreshold float64
	logger           *logger.Logger
}

// NewSentimentHandler creates the handler.
func NewSentimentHandler(a *usecase.Analyzer, defaultThreshold float64, l *logger.Logger) *SentimentHandler {
	if defaultThreshold <= 0 {
		defaultThreshold = 0.3
	}
	return &SentimentHandler{
		analyzer:         a,
		defaultThreshold: defaultThreshold,
		logger:           l,
	}
}

// RegisterRoutes registers the API routes.
func (h *SentimentHandler) RegisterRoutes(e *echo.Echo) {
	metrics.Register()

	e.GET("/", h.Root)
	e.GET("/sentiment/ticker/:symbol", h.GetTicker)
	e.GET("/sentiment/ticker/", h.missingSymbol)
	e.GET("/sentiment/ticker/:symbol/history", h.GetHistory)
	e.POST("/sentiment/analyze", h.AnalyzeBatch)
	e.GET("/sentiment/trending", h.GetTrending)
}

type serviceInfo struct {
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// Root returns service metadata.
func (h *SentimentHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, serviceInfo{
		Service: "sentipull",
		Status:  "ok",
		Endpoints: map[string]string{
			"ticker":   "GET /sentiment/ticker/{symbol}",
			"history":  "GET /sentiment/ticker/{symbol}/history",
			"analyze":  "POST /sentiment/analyze",
			"trending": "GET /sentiment/trending",
		},
	})
}

func (h *SentimentHandler) missingSymbol(c echo.Context) error {
	metrics.EndpointErrors.WithLabelValues("ticker").Inc()
	return xhttp.BadRequestResponse(c, "ticker symbol is required")
}

// GetTicker returns the current sentiment for one ticker.
func (h *SentimentHandler) GetTicker(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.EndpointLatency.WithLabelValues("ticker").Observe(time.Since(start).Seconds())
	}()

	symbol := c.Param("symbol")
	opts := usecase.AnalyzeOptions{
		IncludeSocial: xhttp.ParseBoolDefault(c.QueryParam("social"), false),
		SkipCache:     xhttp.ParseBoolDefault(c.QueryParam("skip_cache"), false),
	}

	result, err := h.analyzer.Analyze(c.Request().Context(), symbol, opts)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("ticker").Inc()
		if errors.Is(err, usecase.ErrInvalidTicker) {
			return xhttp.BadRequestResponse(c, "invalid ticker symbol")
		}
		h.logger.Error("ticker analysis failed", logger.String("symbol", symbol), logger.Error(err))
		return xhttp.InternalServerErrorResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, result)
}

// GetHistory returns the cache-backed daily history for one ticker.
func (h *SentimentHandler) GetHistory(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.EndpointLatency.WithLabelValues("history").Observe(time.Since(start).Seconds())
	}()

	symbol := c.Param("symbol")
	days := xhttp.ParseIntDefault(c.QueryParam("days"), 7)
	if days < 1 || days > 30 {
		metrics.EndpointErrors.WithLabelValues("history").Inc()
		return xhttp.BadRequestResponse(c, "days must be between 1 and 30")
	}

	result, err := h.analyzer.History(c.Request().Context(), symbol, days)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("history").Inc()
		if errors.Is(err, usecase.ErrInvalidTicker) {
			return xhttp.BadRequestResponse(c, "invalid ticker symbol")
		}
		h.logger.Error("history read failed", logger.String("symbol", symbol), logger.Error(err))
		return xhttp.InternalServerErrorResponse(c, err.Error())
	}
	return xhttp.SuccessResponse(c, result)
}

// AnalyzeBatch analyzes a set of tickers in one request.
func (h *SentimentHandler) AnalyzeBatch(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.EndpointLatency.WithLabelValues("analyze").Observe(time.Since(start).Seconds())
	}()

	var req models.AnalyzeBatchRequest
	if errs := xhttp.ReadAndValidateRequest(c, &req); errs != nil {
		metrics.EndpointErrors.WithLabelValues("analyze").Inc()
		return xhttp.BadRequestResponse(c, errs)
	}

	result := h.analyzer.AnalyzeBatch(c.Request().Context(), &req)
	return xhttp.SuccessResponse(c, result)
}

// GetTrending scans the requested tickers and returns those with
// strong sentiment in either direction.
func (h *SentimentHandler) GetTrending(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.EndpointLatency.WithLabelValues("trending").Observe(time.Since(start).Seconds())
	}()

	raw := strings.TrimSpace(c.QueryParam("tickers"))
	if raw == "" {
		metrics.EndpointErrors.WithLabelValues("trending").Inc()
		return xhttp.BadRequestResponse(c, "tickers query parameter is required")
	}
	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	if len(tickers) == 0 {
		metrics.EndpointErrors.WithLabelValues("trending").Inc()
		return xhttp.BadRequestResponse(c, "tickers query parameter is required")
	}

	threshold := xhttp.ParseFloatDefault(c.QueryParam("threshold"), h.defaultThreshold)
	if threshold < 0 || threshold > 1 {
		metrics.EndpointErrors.WithLabelValues("trending").Inc()
		return xhttp.BadRequestResponse(c, "threshold must be between 0 and 1")
	}

	result := h.analyzer.Trending(c.Request().Context(), tickers, threshold)
	return xhttp.SuccessResponse(c, result)
}
