// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aspectpad/internal/logging"
)

// forwardedHostPattern accepts host[:port] values from X-Forwarded-Host.
var forwardedHostPattern = regexp.MustCompile(`^[A-Za-z0-9.-]+(:[0-9]{1,5})?$|^\[[0-9A-Fa-f:.]+\](:[0-9]{1,5})?$`)

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondText sends a plain-text body.
func respondText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(message)); err != nil {
		logging.Error().Err(err).Msg("Failed to write text response")
	}
}

// requestScheme returns "https" for TLS requests and "http" otherwise.
// With trustProxy, a valid X-Forwarded-Proto wins.
func requestScheme(r *http.Request, trustProxy bool) string {
	if trustProxy {
		proto := strings.ToLower(strings.TrimSpace(firstHeaderValue(r.Header.Get("X-Forwarded-Proto"))))
		if proto == "http" || proto == "https" {
			return proto
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

// requestHost returns the Host the client used. With trustProxy, a
// well-formed X-Forwarded-Host wins.
func requestHost(r *http.Request, trustProxy bool) string {
	if trustProxy {
		host := strings.TrimSpace(firstHeaderValue(r.Header.Get("X-Forwarded-Host")))
		if host != "" && forwardedHostPattern.MatchString(host) {
			return host
		}
	}
	return r.Host
}

// firstHeaderValue returns the first element of a comma-separated header.
func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		return v[:i]
	}
	return v
}

// downloadLink builds <scheme>://<host>/download/<filename> for the request.
func downloadLink(r *http.Request, filename string, trustProxy bool) string {
	u := url.URL{
		Scheme: requestScheme(r, trustProxy),
		Host:   requestHost(r, trustProxy),
		Path:   "/download/" + filename,
	}
	return u.String()
}
