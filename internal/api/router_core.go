// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import (
	"time"

	"github.com/tomtom215/aspectpad/internal/config"
	"github.com/tomtom215/aspectpad/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware

	trustProxyHeaders bool
	slowRequest       time.Duration
}

// NewRouter creates a new router with the given handler and server settings.
func NewRouter(handler *Handler, cfg config.ServerConfig) *Router {
	return &Router{
		handler:           handler,
		chiMiddleware:     NewChiMiddlewareFromOrigins(cfg.CORSOrigins),
		trustProxyHeaders: cfg.TrustProxyHeaders,
		slowRequest:       middleware.DefaultSlowRequestThreshold,
	}
}
