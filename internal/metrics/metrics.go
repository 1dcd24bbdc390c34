package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripcast_upstream_calls_total",
			Help: "Total upstream API calls (geocode, forecast, advisory)",
		},
		[]string{"upstream", "status"},
	)

	UpstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripcast_upstream_latency_seconds",
			Help:    "Upstream API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream"},
	)

	SuggestionQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripcast_suggestion_queries_total",
			Help: "Suggestion queries by outcome",
		},
		[]string{"outcome"},
	)
)
