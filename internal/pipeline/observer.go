// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package pipeline

import (
	"context"
	"errors"

	"github.com/tomtom215/aspectpad/internal/logging"
	"github.com/tomtom215/aspectpad/internal/metrics"
	"github.com/tomtom215/aspectpad/internal/storage"
)

// Observer receives one Event per Process call. Implementations must not
// block for long; they run on the request goroutine.
type Observer interface {
	Observe(ctx context.Context, ev *Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ev *Event)

// Observe calls f(ctx, ev).
func (f ObserverFunc) Observe(ctx context.Context, ev *Event) {
	f(ctx, ev)
}

// LogObserver writes one line per run through the request-scoped logger.
type LogObserver struct{}

// Observe logs the outcome of a run.
func (LogObserver) Observe(ctx context.Context, ev *Event) {
	logger := logging.Ctx(ctx)
	source := logging.SanitizeURL(ev.SourceURL)

	if ev.Failed() {
		logger.Error().
			Err(ev.Err).
			Str("class", ev.Class).
			Str("stage", ev.Stage).
			Str("source_url", source).
			Dur("duration", ev.Duration).
			Msg("Error processing image")
		return
	}

	res := ev.Result
	event := logger.Info().
		Str("file", res.Filename).
		Str("source_url", source).
		Int("source_bytes", res.SourceBytes).
		Dur("duration", ev.Duration)
	if img := res.Image; img != nil {
		event = event.
			Str("format", img.Format).
			Int("width", img.Width).
			Int("height", img.Height).
			Bool("padded", img.Changed())
	}
	event.Msgf("Processed image: %s, from URL: %s", res.Filename, source)
}

// MetricsObserver records Prometheus metrics for each run.
type MetricsObserver struct{}

// Observe records stage durations and the run outcome.
func (MetricsObserver) Observe(_ context.Context, ev *Event) {
	for _, st := range ev.Stages {
		metrics.RecordStage(st.Stage, st.Duration)
	}

	if ev.Failed() {
		metrics.RecordImageOutcome(ev.Class + "_failed")
		if ev.Class == ClassStore {
			reason := "io"
			if errors.Is(ev.Err, storage.ErrCollision) {
				reason = "collision"
			}
			metrics.StorageWriteErrors.WithLabelValues(reason).Inc()
		}
		return
	}

	metrics.StoredArtifacts.Inc()
	img := ev.Result.Image
	if img == nil || !img.Changed() {
		metrics.RecordImageOutcome("unchanged")
		return
	}
	metrics.RecordImageOutcome("padded")
	metrics.RecordPadding("vertical", img.Padding.Vertical())
	metrics.RecordPadding("horizontal", img.Padding.Horizontal())
}
