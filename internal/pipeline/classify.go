// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package pipeline

import (
	"context"
	"errors"

	"github.com/tomtom215/aspectpad/internal/aspect"
	"github.com/tomtom215/aspectpad/internal/fetch"
	"github.com/tomtom215/aspectpad/internal/storage"
)

// Error classes returned by Classify.
const (
	ClassFetch    = "fetch"
	ClassDecode   = "decode"
	ClassEncode   = "encode"
	ClassStore    = "store"
	ClassTooLarge = "too_large"
	ClassCanceled = "canceled"
	ClassUnknown  = "unknown"
)

// Classify maps a pipeline error to a stable class name for logs and metrics.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	// The caller went away; whichever stage noticed is incidental. Deadlines
	// are left to the stage, since http.Client timeouts also match them.
	case errors.Is(err, context.Canceled):
		return ClassCanceled
	case errors.Is(err, fetch.ErrFetch):
		return ClassFetch
	case errors.Is(err, aspect.ErrDecode):
		return ClassDecode
	case errors.Is(err, aspect.ErrTooLarge):
		return ClassTooLarge
	case errors.Is(err, aspect.ErrEncode):
		return ClassEncode
	case errors.Is(err, storage.ErrStore):
		return ClassStore
	default:
		return ClassUnknown
	}
}
