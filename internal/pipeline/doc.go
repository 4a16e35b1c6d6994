// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package pipeline runs the process-image flow: fetch, normalize, store.

Processor is the single place the three stages are composed. It takes its
collaborators as small interfaces so tests can substitute any stage:

	proc := pipeline.NewProcessor(fetchClient, padder, store,
	    pipeline.LogObserver{},
	    pipeline.MetricsObserver{},
	)
	res, err := proc.Process(ctx, "https://example.com/cover.png")

Observers:

Every run, successful or not, produces one Event delivered to each Observer
in order. Logging and metrics live in observers so the stages themselves stay
side-effect free apart from the store write.

Error Classes:

Classify maps any error returned by Process to one of "canceled", "fetch",
"decode", "too_large", "encode", "store" or "unknown". context.Canceled
wins over the stage sentinel. The HTTP layer turns every class into the same
500 response; the class only appears in logs and metrics.
*/
package pipeline
