package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes the domain counters used across the analysis pipeline.
type Recorder struct {
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	scorerFallbacks prometheus.Counter
	itemsScored     *prometheus.CounterVec
	providerErrors  *prometheus.CounterVec
	analysisLatency prometheus.Histogram
}

// NewRecorder registers the pipeline metrics on the default registry.
func NewRecorder() *Recorder {
	return &Recorder{
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sentipull",
				Name:      "cache_hits_total",
				Help:      "Sentiment cache hits",
			},
			[]string{"kind"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sentipull",
				Name:      "cache_misses_total",
				Help:      "Sentiment cache misses",
			},
			[]string{"kind"},
		),
		scorerFallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "sentipull",
				Name:      "scorer_fallbacks_total",
				Help:      "Items scored by the lexicon fallback instead of the primary scorer",
			},
		),
		itemsScored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sentipull",
				Name:      "items_scored_total",
				Help:      "Items scored, by source kind",
			},
			[]string{"source"},
		),
		providerErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sentipull",
				Name:      "provider_errors_total",
				Help:      "Upstream provider failures",
			},
			[]string{"provider"},
		),
		analysisLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "sentipull",
				Name:      "analysis_duration_seconds",
				Help:      "End-to-end ticker analysis latency",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
}

func (r *Recorder) RecordCacheHit(kind string)  { r.cacheHits.WithLabelValues(kind).Inc() }
func (r *Recorder) RecordCacheMiss(kind string) { r.cacheMisses.WithLabelValues(kind).Inc() }
func (r *Recorder) RecordScorerFallback()       { r.scorerFallbacks.Inc() }

func (r *Recorder) RecordItemsScored(source string, n int) {
	r.itemsScored.WithLabelValues(source).Add(float64(n))
}

func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

func (r *Recorder) RecordAnalysisLatency(d time.Duration) {
	r.analysisLatency.Observe(d.Seconds())
}
