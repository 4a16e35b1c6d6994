// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectpad/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged at warn level.
const DefaultSlowRequestThreshold = 5 * time.Second

// AccessLog returns middleware that writes one structured log line per request.
// Requests slower than slow are logged at warn level, others at debug.
// Place it inside RequestID so the line carries request_id.
func AccessLog(slow time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next(rec, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			var event *zerolog.Event
			switch {
			case duration > slow:
				event = logger.Warn().Bool("slow", true)
			case rec.statusCode >= http.StatusInternalServerError:
				event = logger.Info()
			default:
				event = logger.Debug()
			}

			event.
				Str("method", r.Method).
				Str("path", logging.SanitizeValue(r.URL.Path)).
				Str("route", routePattern(r)).
				Int("status", rec.statusCode).
				Int64("bytes", rec.bytes).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP request")
		}
	}
}
