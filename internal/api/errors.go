// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

// Response bodies for the image endpoints. Clients match on these strings.
const (
	msgNoImageURL      = "No imageUrl provided in query."
	msgProcessingError = "Error processing image."
	msgFileNotFound    = "File not found."
)

// ErrCodeServiceUnavailable is the envelope error code of a failed readiness probe.
const ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
