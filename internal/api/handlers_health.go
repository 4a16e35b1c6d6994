// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/aspectpad/internal/logging"
	"github.com/tomtom215/aspectpad/internal/middleware"
)

// readinessTimeout bounds the store probe.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: LivenessStatus{
			Alive:  true,
			Uptime: time.Since(h.startTime).Seconds(),
		},
		Metadata: Metadata{
			Timestamp: time.Now(),
			RequestID: middleware.GetRequestID(r.Context()),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only if the artifact store accepts writes, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	meta := Metadata{
		Timestamp: time.Now(),
		RequestID: middleware.GetRequestID(r.Context()),
	}

	if err := h.store.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed: store not writable")
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Status:   "error",
			Data:     ReadinessStatus{Ready: false, StoreWritable: false},
			Metadata: meta,
			Error: &APIError{
				Code:    ErrCodeServiceUnavailable,
				Message: "storage directory is not writable",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     ReadinessStatus{Ready: true, StoreWritable: true},
		Metadata: meta,
	})
}
