// Package metrics holds the Prometheus instrumentation for the bot and the
// verse API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Bot Prometheus metrics.
var (
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verseguide",
			Name:      "bot_messages_total",
			Help:      "Inbound bot messages by outcome",
		},
		[]string{"outcome"}, // command, allowed, denied, invalid, error
	)

	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verseguide",
			Name:      "backend_requests_total",
			Help:      "Verse backend requests by status",
		},
		[]string{"status"}, // success, empty, error
	)

	BackendRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "verseguide",
			Name:      "backend_request_duration_seconds",
			Help:      "Verse backend request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verseguide",
			Name:      "verse_generations_total",
			Help:      "Verse generations by status",
		},
		[]string{"model", "status"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "verseguide",
			Name:      "verse_generation_duration_seconds",
			Help:      "Verse generation duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"model"},
	)

	VerseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "verseguide",
			Name:      "verse_cache_total",
			Help:      "Verse reply cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	UsageRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "verseguide",
			Name:      "usage_records",
			Help:      "Usage records currently held in memory",
		},
	)

	SweepRemovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "verseguide",
			Name:      "usage_sweep_removed_total",
			Help:      "Stale usage records removed by the janitor",
		},
	)
)

var botMetricsRegistered bool

// RegisterBotMetrics registers bot Prometheus metrics. Must be called once from main.
func RegisterBotMetrics() {
	if botMetricsRegistered {
		return
	}
	prometheus.MustRegister(MessagesTotal)
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(GenerationsTotal)
	prometheus.MustRegister(GenerationDuration)
	prometheus.MustRegister(VerseCacheTotal)
	prometheus.MustRegister(UsageRecords)
	prometheus.MustRegister(SweepRemovedTotal)
	botMetricsRegistered = true
}
