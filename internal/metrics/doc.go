// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry through promauto at package
init, so importing the package is enough to make them appear on /metrics.

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Image pipeline:
  - images_processed_total{outcome}
  - pipeline_stage_duration_seconds{stage}
  - source_image_bytes
  - padding_pixels{axis}

Upstream fetch and circuit breakers (one breaker per source host):
  - fetch_requests_total{result}
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

Storage:
  - storage_artifacts_written_total
  - storage_write_errors_total{reason}
  - downloads_total{result}
  - storage_temp_files_swept_total

# Usage

	start := time.Now()
	// ... fetch ...
	metrics.RecordStage("fetch", time.Since(start))
*/
package metrics
