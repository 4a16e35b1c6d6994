// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package pipeline

import (
	"context"
	"time"

	"github.com/tomtom215/aspectpad/internal/aspect"
	"github.com/tomtom215/aspectpad/internal/fetch"
)

// Stage names used in events and metrics.
const (
	StageFetch     = "fetch"
	StageNormalize = "normalize"
	StageStore     = "store"
)

// Fetcher downloads source bytes.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Result, error)
}

// Normalizer pads image bytes to the target ratio.
type Normalizer interface {
	Normalize(ctx context.Context, data []byte) (*aspect.ProcessedImage, error)
}

// Saver persists bytes under a fresh name.
type Saver interface {
	Save(ctx context.Context, data []byte, extHint string) (string, error)
}

// Result describes a stored, normalized image.
type Result struct {
	Filename    string
	SourceURL   string
	SourceBytes int
	Image       *aspect.ProcessedImage
}

// StageTiming records how long one stage ran.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Event is delivered to observers once per Process call.
type Event struct {
	SourceURL string
	Started   time.Time
	Duration  time.Duration
	Stages    []StageTiming

	// Set on success
	Result *Result

	// Set on failure
	Err   error
	Class string
	Stage string
}

// Failed reports whether the run ended in an error.
func (e *Event) Failed() bool {
	return e.Err != nil
}

// Processor composes the fetch, normalize and store stages.
type Processor struct {
	fetcher    Fetcher
	normalizer Normalizer
	saver      Saver
	observers  []Observer
	now        func() time.Time
}

// NewProcessor creates a Processor. Observers are notified in the given order.
func NewProcessor(f Fetcher, n Normalizer, s Saver, observers ...Observer) *Processor {
	return &Processor{
		fetcher:    f,
		normalizer: n,
		saver:      s,
		observers:  observers,
		now:        time.Now,
	}
}

// Process fetches sourceURL, pads it to the target ratio and stores it.
// Errors keep their stage sentinel (fetch.ErrFetch, aspect.ErrDecode, ...)
// so Classify can tell them apart.
func (p *Processor) Process(ctx context.Context, sourceURL string) (*Result, error) {
	ev := &Event{SourceURL: sourceURL, Started: p.now()}
	defer func() {
		ev.Duration = p.now().Sub(ev.Started)
		p.notify(ctx, ev)
	}()

	fail := func(stage string, err error) (*Result, error) {
		ev.Err = err
		ev.Stage = stage
		ev.Class = Classify(err)
		return nil, err
	}

	start := p.now()
	src, err := p.fetcher.Fetch(ctx, sourceURL)
	ev.Stages = append(ev.Stages, StageTiming{StageFetch, p.now().Sub(start)})
	if err != nil {
		return fail(StageFetch, err)
	}

	start = p.now()
	img, err := p.normalizer.Normalize(ctx, src.Data)
	ev.Stages = append(ev.Stages, StageTiming{StageNormalize, p.now().Sub(start)})
	if err != nil {
		return fail(StageNormalize, err)
	}

	start = p.now()
	name, err := p.saver.Save(ctx, img.Data, src.Extension)
	ev.Stages = append(ev.Stages, StageTiming{StageStore, p.now().Sub(start)})
	if err != nil {
		return fail(StageStore, err)
	}

	ev.Result = &Result{
		Filename:    name,
		SourceURL:   sourceURL,
		SourceBytes: len(src.Data),
		Image:       img,
	}
	return ev.Result, nil
}

func (p *Processor) notify(ctx context.Context, ev *Event) {
	for _, o := range p.observers {
		o.Observe(ctx, ev)
	}
}
