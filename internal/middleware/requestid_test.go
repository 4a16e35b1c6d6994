// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_GeneratesNewID(t *testing.T) {
	var capturedID string
	handler := func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/process-image", nil)
	rec := httptest.NewRecorder()
	RequestID(handler)(rec, req)

	responseID := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(responseID); err != nil {
		t.Errorf("Response X-Request-ID is not a valid UUID: %v", err)
	}
	if capturedID != responseID {
		t.Errorf("Context ID (%s) doesn't match response header ID (%s)", capturedID, responseID)
	}
}

func TestRequestID_PreservesExistingID(t *testing.T) {
	var capturedID string
	handler := func(w http.ResponseWriter, r *http.Request) {
		capturedID = GetRequestID(r.Context())
	}

	req := httptest.NewRequest(http.MethodGet, "/process-image", nil)
	req.Header.Set(RequestIDHeader, "edge-7f3a.42")
	rec := httptest.NewRecorder()
	RequestID(handler)(rec, req)

	if capturedID != "edge-7f3a.42" {
		t.Errorf("captured ID = %q, want edge-7f3a.42", capturedID)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "edge-7f3a.42" {
		t.Errorf("response header = %q, want edge-7f3a.42", got)
	}
}

func TestRequestID_RejectsMalformedUpstreamID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"newline", "abc\ninjected"},
		{"too long", strings.Repeat("a", 65)},
		{"spaces", "has space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var capturedID string
			handler := func(w http.ResponseWriter, r *http.Request) {
				capturedID = GetRequestID(r.Context())
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.id)
			RequestID(handler)(httptest.NewRecorder(), req)

			if capturedID == tt.id {
				t.Errorf("malformed upstream ID %q was accepted", tt.id)
			}
			if _, err := uuid.Parse(capturedID); err != nil {
				t.Errorf("replacement ID is not a UUID: %q", capturedID)
			}
		})
	}
}
