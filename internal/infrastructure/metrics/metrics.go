package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Roomcraft API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roomcraft",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 120},
		},
		[]string{"method", "endpoint"},
	)

	// S3 operations counter
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "storage",
			Name:      "operations_total",
			Help:      "Total object storage operations",
		},
		[]string{"operation", "status"},
	)

	// Presign URL duration
	PresignDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roomcraft",
			Subsystem: "storage",
			Name:      "presign_duration_seconds",
			Help:      "Presigned URL generation duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)

	// Generation outcomes
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Total AI generation calls by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roomcraft",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "AI generation latency in seconds, retries included",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 300},
		},
		[]string{"kind"},
	)

	GenerationRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "generation",
			Name:      "retries_total",
			Help:      "Upstream retries issued by the AI gateway",
		},
		[]string{"kind", "status"},
	)

	// Rate limiting
	RateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "ratelimit",
			Name:      "rejections_total",
			Help:      "Requests rejected by the per-user limiter",
		},
		[]string{"bucket"},
	)

	// Sweeper
	SweeperPhotosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "sweeper",
			Name:      "photos_total",
			Help:      "Pending photos resolved by the sweeper",
		},
		[]string{"result"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordStorageOperation records an object storage call
func RecordStorageOperation(operation, status string) {
	StorageOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordPresign records presigned URL generation
func RecordPresign(operation string, durationSec float64) {
	PresignDuration.WithLabelValues(operation).Observe(durationSec)
}

// RecordGeneration records one gateway call. outcome is "success" or the error kind.
func RecordGeneration(kind, outcome string, durationSec float64) {
	GenerationsTotal.WithLabelValues(kind, outcome).Inc()
	GenerationDuration.WithLabelValues(kind).Observe(durationSec)
}

// RecordGenerationRetry records a retried upstream attempt.
func RecordGenerationRetry(kind, status string) {
	GenerationRetriesTotal.WithLabelValues(kind, status).Inc()
}

// RecordRateLimited records a rejected request.
func RecordRateLimited(bucket string) {
	RateLimitRejectionsTotal.WithLabelValues(bucket).Inc()
}

// RecordSweep records one sweeper pass.
func RecordSweep(confirmed, deleted int) {
	SweeperPhotosTotal.WithLabelValues("confirmed").Add(float64(confirmed))
	SweeperPhotosTotal.WithLabelValues("deleted").Add(float64(deleted))
}
