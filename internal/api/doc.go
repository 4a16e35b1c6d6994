// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package api provides the HTTP layer for AspectPad.

Key Components:

  - Router: Chi route configuration and the global middleware stack
  - Handler: request handlers for processing, downloads and health probes
  - ChiMiddleware: go-chi/cors configuration and security headers
  - Response formatting: plain-text bodies for the image endpoints, the JSON
    envelope for health endpoints

Endpoints:

	GET /process-image?imageUrl=<url>   fetch, pad and store an image
	GET /download/{filename}            serve a stored image
	GET /health/live                    liveness probe
	GET /health/ready                   readiness probe (store writable)
	GET /metrics                        Prometheus exposition

Response Bodies:

The image endpoints keep deliberately small, stable bodies:

	400 No imageUrl provided in query.
	500 Error processing image.
	404 File not found.
	200 {"downloadLink":"http://host/download/<32 hex>.<ext>"}

Failure detail (error class, source URL, request ID) goes to the log only.

Middleware Stack (applied in order):

  - middleware.RequestID: X-Request-ID assignment and logging context
  - chimiddleware.RealIP: only when server.trust_proxy_headers is set
  - chimiddleware.Recoverer: panics become 500s
  - CORS via go-chi/cors
  - APISecurityHeaders
  - middleware.PrometheusMetrics and middleware.AccessLog

Usage Example:

	handler := api.NewHandler(processor, store, cfg.Server)
	router := api.NewRouter(handler, cfg.Server)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
