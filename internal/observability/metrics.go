package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics exposed at /metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	ItemsInserted prometheus.Counter
	ItemsLoaded   prometheus.Counter

	IndexSize     prometheus.Gauge
	IndexBitWords prometheus.Gauge

	SearchLatency    *prometheus.HistogramVec
	SearchResultSize prometheus.Histogram
	SearchOvershoot  prometheus.Histogram

	EmbedderCallsTotal prometheus.Counter
	EmbedderErrors     prometheus.Counter
	EmbedderLatency    prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annvec_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "annvec_request_duration_seconds",
				Help:    "HTTP request duration in seconds by route",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"route"},
		),
		RequestErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "annvec_request_errors_total",
				Help: "Total number of HTTP request errors by route and error kind",
			},
			[]string{"route", "kind"},
		),

		ItemsInserted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "annvec_items_inserted_total",
				Help: "Total number of items added to the index",
			},
		),
		ItemsLoaded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "annvec_items_loaded_total",
				Help: "Total number of items loaded from the store at startup",
			},
		),

		IndexSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "annvec_index_size",
				Help: "Current number of entries in the index",
			},
		),
		IndexBitWords: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "annvec_index_bit_words",
				Help: "Packed word count (B) per entry in the binary index",
			},
		),

		SearchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "annvec_search_latency_seconds",
				Help:    "Search latency in seconds by stage (embed, search_full, search_binary, read_back, re_rank)",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		SearchResultSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "annvec_search_result_size",
				Help:    "Number of results returned per search",
				Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
			},
		),
		SearchOvershoot: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "annvec_search_overshoot",
				Help:    "Overshoot value used per binary search with reorder",
				Buckets: []float64{0, 10, 20, 30, 50, 75, 100},
			},
		),

		EmbedderCallsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "annvec_embedder_calls_total",
				Help: "Total number of embedder invocations",
			},
		),
		EmbedderErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "annvec_embedder_errors_total",
				Help: "Total number of failed embedder invocations",
			},
		),
		EmbedderLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "annvec_embedder_latency_seconds",
				Help:    "Embedder call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
