// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Request structs carry go-playground/validator tags. The `query` and `url`
// tags name the parameter in validation errors.
//
//	req := parseProcessImageRequest(r)
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondText(w, http.StatusBadRequest, msgNoImageURL)
//	    return
//	}

// ProcessImageRequest is the validated query of /process-image.
// Any non-empty value passes; reachability is the fetcher's concern.
type ProcessImageRequest struct {
	ImageURL string `query:"imageUrl" validate:"required"`
}

// DownloadRequest is the validated path of /download/{filename}.
type DownloadRequest struct {
	Filename string `url:"filename" validate:"required,artifact_name"`
}

func parseProcessImageRequest(r *http.Request) ProcessImageRequest {
	return ProcessImageRequest{ImageURL: strings.TrimSpace(r.URL.Query().Get("imageUrl"))}
}

func parseDownloadRequest(r *http.Request) DownloadRequest {
	return DownloadRequest{Filename: chi.URLParam(r, "filename")}
}
