// Package metrics exposes the service's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "branchevents_http_requests_total",
		Help: "HTTP requests by route and status class",
	}, []string{"route", "status"})

	RequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "branchevents_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	IngestRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "branchevents_ingest_records_total",
		Help: "Raw records fetched from the catalogue, by dataset",
	}, []string{"dataset"})

	IngestFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "branchevents_ingest_failures_total",
		Help: "Failed dataset refreshes, by dataset",
	}, []string{"dataset"})

	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "branchevents_refresh_duration_seconds",
		Help:    "Full snapshot refresh duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	ResultCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchevents_result_cache_hits_total",
		Help: "Calendar result cache hits",
	})
	ResultCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchevents_result_cache_misses_total",
		Help: "Calendar result cache misses",
	})

	RedisHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchevents_redis_hits_total",
		Help: "Redis response cache hits",
	})
	RedisMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "branchevents_redis_misses_total",
		Help: "Redis response cache misses",
	})
)

// Handler serves the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
