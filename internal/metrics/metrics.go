// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climb_http_requests_total",
			Help: "Total HTTP requests by route pattern, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "climb_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	ForecastsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climb_forecasts_computed_total",
			Help: "Forecast computations by kind (metrics, projection, scenarios, goal)",
		},
		[]string{"kind"},
	)

	ATSScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "climb_ats_score",
			Help:    "Distribution of ATS scores returned",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climb_cache_lookups_total",
			Help: "Cache lookups by namespace and result (hit, miss, error)",
		},
		[]string{"namespace", "result"},
	)

	KeywordExtractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climb_keyword_extractions_total",
			Help: "Keyword extraction calls to the completion service by outcome",
		},
		[]string{"outcome"},
	)
)
