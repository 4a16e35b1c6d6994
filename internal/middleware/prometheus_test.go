// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/aspectpad/internal/metrics"
)

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/download/{filename}", PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/download/{filename}", "404")
	before := testutil.ToFloat64(counter)

	for _, name := range []string{"a.jpg", "b.jpg", "c.png"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/download/"+name, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter); got != before+3 {
		t.Errorf("api_requests_total{endpoint=/download/{filename}} = %v, want %v", got, before+3)
	}
}

func TestPrometheusMetrics_UnmatchedWithoutRouter(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	counter := metrics.APIRequestsTotal.WithLabelValues("GET", unmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/anything/at/all", nil))

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("unmatched counter = %v, want %v", got, before+1)
	}
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	sr := newStatusRecorder(rec)

	sr.WriteHeader(http.StatusInternalServerError)
	sr.WriteHeader(http.StatusOK) // ignored by the recorder
	n, err := sr.Write([]byte("Error processing image."))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if sr.statusCode != http.StatusInternalServerError {
		t.Errorf("statusCode = %d, want 500", sr.statusCode)
	}
	if sr.bytes != int64(n) {
		t.Errorf("bytes = %d, want %d", sr.bytes, n)
	}
	if sr.Unwrap() != rec {
		t.Error("Unwrap() did not return the underlying writer")
	}
}
