// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package middleware provides HTTP middleware components for the application.

Middleware here uses the func(http.HandlerFunc) http.HandlerFunc shape; the api
package adapts them to chi's func(http.Handler) http.Handler.

Key Components:

  - RequestID: UUID request tracking, echoed in X-Request-ID
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled by chi route pattern
  - AccessLog: one zerolog line per request, warn level above a slow threshold

Typical order, outermost first:

	RequestID -> PrometheusMetrics -> AccessLog -> handler
*/
package middleware
