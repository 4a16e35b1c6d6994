// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Image Pipeline Metrics
	ImagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "images_processed_total",
			Help: "Total number of process-image attempts by outcome",
		},
		[]string{"outcome"}, // "padded", "unchanged", "fetch_failed", "decode_failed", "encode_failed", "store_failed", "unknown_failed"
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of each image pipeline stage in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"stage"}, // "fetch", "normalize", "store"
	)

	SourceImageBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "source_image_bytes",
			Help:    "Size of downloaded source images in bytes",
			Buckets: prometheus.ExponentialBuckets(16<<10, 2, 12), // 16 KiB .. 32 MiB
		},
	)

	PaddingPixels = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "padding_pixels",
			Help:    "Total padding added per processed image, in pixels along the padded axis",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"axis"}, // "horizontal", "vertical"
	)

	// Fetch Metrics
	FetchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetch_requests_total",
			Help: "Total number of upstream image downloads by result",
		},
		[]string{"result"}, // "success", "http_error", "too_large", "network_error", "rejected", "canceled"
	)

	// Storage Metrics
	StoredArtifacts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_artifacts_written_total",
			Help: "Total number of processed images persisted",
		},
	)

	StorageWriteErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_write_errors_total",
			Help: "Total number of failed artifact writes",
		},
		[]string{"reason"}, // "collision", "io"
	)

	Downloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downloads_total",
			Help: "Total number of artifact download requests by result",
		},
		[]string{"result"}, // "served", "not_found", "invalid_name"
	)

	TempFilesSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_temp_files_swept_total",
			Help: "Total number of abandoned temp files removed by the janitor",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements active request counter
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordImageOutcome counts one finished pipeline run.
func RecordImageOutcome(outcome string) {
	ImagesProcessed.WithLabelValues(outcome).Inc()
}

// RecordStage observes how long a pipeline stage took.
func RecordStage(stage string, duration time.Duration) {
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordPadding observes the padding added to one image. Zero padding is not recorded.
func RecordPadding(axis string, pixels int) {
	if pixels <= 0 {
		return
	}
	PaddingPixels.WithLabelValues(axis).Observe(float64(pixels))
}

// RecordFetch counts one upstream download and, on success, its size.
func RecordFetch(result string, bytes int) {
	FetchRequests.WithLabelValues(result).Inc()
	if result == "success" {
		SourceImageBytes.Observe(float64(bytes))
	}
}

// RecordDownload counts one artifact download request.
func RecordDownload(result string) {
	Downloads.WithLabelValues(result).Inc()
}
