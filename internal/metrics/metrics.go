// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upload outcomes, one per error code plus success.
const (
	OutcomeSuccess              = "success"
	OutcomeMissingBoundary      = "missing_boundary"
	OutcomeNoFileProvided       = "no_file_provided"
	OutcomeUnsupportedMediaType = "unsupported_media_type"
	OutcomePayloadTooLarge      = "payload_too_large"
	OutcomeStorageWriteFailed   = "storage_write_failed"
	OutcomeUnexpectedFailure    = "unexpected_failure"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photorelay_uploads_total",
			Help: "Total number of upload requests by outcome",
		},
		[]string{"outcome"},
	)
	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "photorelay_upload_bytes",
			Help:    "Size of successfully stored files in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)
	storageWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photorelay_storage_write_duration_seconds",
			Help:    "Duration of object storage writes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"bucket"},
	)
)

// ObserveUpload counts one upload request.
func ObserveUpload(outcome string) {
	uploadsTotal.WithLabelValues(outcome).Inc()
}

// ObserveStored records the size of a stored file.
func ObserveStored(size int64) {
	uploadBytes.Observe(float64(size))
}

// ObserveStorageWrite records how long a write to bucket took.
func ObserveStorageWrite(bucket string, d time.Duration) {
	storageWriteDuration.WithLabelValues(bucket).Observe(d.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
