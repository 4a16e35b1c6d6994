// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import "time"

// APIResponse is the envelope used by the health endpoints.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError represents an error in the envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProcessImageResponse is the success body of /process-image.
type ProcessImageResponse struct {
	DownloadLink string `json:"downloadLink"`
}

// LivenessStatus is returned by /health/live.
type LivenessStatus struct {
	Alive  bool    `json:"alive"`
	Uptime float64 `json:"uptime"`
}

// ReadinessStatus is returned by /health/ready.
type ReadinessStatus struct {
	Ready         bool `json:"ready"`
	StoreWritable bool `json:"store_writable"`
}
