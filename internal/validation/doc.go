// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is built lazily and reused; it caches struct
// metadata, so handlers validate their request structs on every call without
// rebuilding it.
//
// Field names in errors follow the `query` or `url` struct tag, so a failure on
//
//	type ProcessImageRequest struct {
//	    ImageURL string `query:"imageUrl" validate:"required"`
//	}
//
// reports the field as imageUrl.
//
// # Custom Tags
//
//   - artifact_name: 32 lowercase hex characters followed by a short
//     alphanumeric extension, the shape of every stored file name
package validation
