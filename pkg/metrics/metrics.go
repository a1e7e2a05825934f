package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_latency_seconds",
			Help:    "Model generation call latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~100s
		},
		[]string{"kind"},
	)

	GenerationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_count",
			Help: "Total number of generation attempts",
		},
		[]string{"kind", "status"}, // kind: questions, mandalart; status: ok, error, invalid
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "table"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	HistoryOpCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_op_count",
			Help: "Total number of history store operations",
		},
		[]string{"op", "status"},
	)
)

// RecordGenerationLatency records one model call duration.
func RecordGenerationLatency(kind string, duration time.Duration) {
	GenerationLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

// IncrementGeneration counts one generation attempt by outcome.
func IncrementGeneration(kind, status string) {
	GenerationCount.WithLabelValues(kind, status).Inc()
}

// RecordDBQueryDuration records one database query duration.
func RecordDBQueryDuration(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementHistoryOp counts one history store operation by outcome.
func IncrementHistoryOp(op, status string) {
	HistoryOpCount.WithLabelValues(op, status).Inc()
}
