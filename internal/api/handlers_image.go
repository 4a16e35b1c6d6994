// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/tomtom215/aspectpad/internal/logging"
	"github.com/tomtom215/aspectpad/internal/metrics"
	"github.com/tomtom215/aspectpad/internal/storage"
	"github.com/tomtom215/aspectpad/internal/validation"
)

// ProcessImage handles GET /process-image?imageUrl=<url>.
//
// The image is fetched, padded to the target ratio and stored under a random
// name. Success returns {"downloadLink": ...}; every pipeline failure returns
// the same 500 body, with the detail left to the pipeline's log observer.
func (h *Handler) ProcessImage(w http.ResponseWriter, r *http.Request) {
	req := parseProcessImageRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondText(w, http.StatusBadRequest, msgNoImageURL)
		return
	}

	res, err := h.processor.Process(r.Context(), req.ImageURL)
	if err != nil {
		respondText(w, http.StatusInternalServerError, msgProcessingError)
		return
	}

	respondJSON(w, http.StatusOK, ProcessImageResponse{
		DownloadLink: downloadLink(r, res.Filename, h.trustProxyHeaders),
	})
}

// Download handles GET /download/{filename}.
//
// Range and conditional requests are handled by http.ServeContent. Anything
// that does not resolve to a stored artifact, including malformed names, is
// a plain 404.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	req := parseDownloadRequest(r)
	if verr := validation.ValidateStruct(&req); verr != nil {
		metrics.RecordDownload("invalid_name")
		logging.Ctx(r.Context()).Debug().
			Str("filename", logging.SanitizeValue(req.Filename)).
			Msg("Rejected download name")
		respondText(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	f, art, err := h.store.Open(r.Context(), req.Filename)
	if err != nil {
		result := "not_found"
		if errors.Is(err, storage.ErrInvalidName) {
			result = "invalid_name"
		} else if !errors.Is(err, storage.ErrNotFound) {
			logging.Ctx(r.Context()).Error().Err(err).Str("filename", req.Filename).Msg("Failed to read artifact")
		}
		metrics.RecordDownload(result)
		respondText(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	defer f.Close()

	ctype, err := contentType(f, art.Name)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("filename", req.Filename).Msg("Failed to read artifact")
		metrics.RecordDownload("not_found")
		respondText(w, http.StatusNotFound, msgFileNotFound)
		return
	}

	metrics.RecordDownload("served")
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, art.Name, art.ModTime, f)
}

// contentType sniffs the head of content, falling back to the extension of
// name when the bytes are not recognized. content is rewound afterwards.
func contentType(content io.ReadSeeker, name string) (string, error) {
	detected, err := mimetype.DetectReader(content)
	if err != nil {
		return "", err
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if !detected.Is("application/octet-stream") {
		return detected.String(), nil
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt, nil
	}
	return detected.String(), nil
}
