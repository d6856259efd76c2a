// Package observability holds the Prometheus collectors and OpenTelemetry
// helpers shared by the HTTP, service and storage layers.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sns_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sns_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ActivityEvents counts ledger writes by kind (pv, like) and outcome
	// (created, refreshed, duplicate, anonymous).
	ActivityEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sns_activity_events_total",
		Help: "Activity ledger events by kind and outcome",
	}, []string{"kind", "outcome"})

	// SideEffectFailures counts best-effort operations that failed without
	// failing the request.
	SideEffectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sns_side_effect_failures_total",
		Help: "Best-effort side effects that failed",
	}, []string{"operation"})

	// PostRateLimited counts post creations rejected by the cooldown.
	PostRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sns_post_rate_limited_total",
		Help: "Post creations rejected by the per-user cooldown",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
