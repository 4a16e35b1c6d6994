// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import (
	"context"
	"os"
	"time"

	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/pipeline"
	"github.com/tomtom215/aspectpad/internal/storage"
)

// ImageProcessor runs the fetch, pad and store pipeline.
type ImageProcessor interface {
	Process(ctx context.Context, sourceURL string) (*pipeline.Result, error)
}

// ArtifactStore opens stored images and reports whether the store is usable.
type ArtifactStore interface {
	Open(ctx context.Context, name string) (*os.File, *storage.Artifact, error)
	Ping(ctx context.Context) error
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_image.go: /process-image and /download
//   - handlers_health.go: liveness and readiness probes
//   - handlers_helpers.go: response helpers and download link construction
type Handler struct {
	processor ImageProcessor
	store     ArtifactStore

	trustProxyHeaders bool
	startTime         time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(processor, store, cfg.Server)
//	router := api.NewRouter(handler, cfg.Server)
func NewHandler(processor ImageProcessor, store ArtifactStore, cfg config.ServerConfig) *Handler {
	return &Handler{
		processor:         processor,
		store:             store,
		trustProxyHeaders: cfg.TrustProxyHeaders,
		startTime:         time.Now(),
	}
}
