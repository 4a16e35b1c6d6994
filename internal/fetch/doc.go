// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package fetch downloads source images from caller-supplied URLs.

Key Components:

  - Client: single-attempt HTTP GET with a hard timeout and a body size cap
  - breakerRegistry: one sony/gobreaker circuit breaker per upstream host

Failure Handling:

Every failure is returned wrapped in ErrFetch so callers can classify it with
errors.Is. The body is treated as an opaque blob; the declared Content-Type is
ignored and the decoder decides whether the bytes are an image.

Resilience Mechanisms:

  - Timeout: fetch.timeout bounds the whole request, including redirects
  - Size cap: bodies larger than fetch.max_bytes are rejected before decode
  - Circuit breaker: after fetch.breaker_failures consecutive failures against
    a host, requests to that host fail fast with ErrHostUnavailable for
    fetch.breaker_open_timeout. Client errors (4xx) are not host failures.

Usage Example:

	client := fetch.New(cfg.Fetch)
	res, err := client.Fetch(ctx, "https://example.com/cover.png")
	if err != nil {
	    return err
	}
	fmt.Println(len(res.Data), res.Extension)

Thread Safety:

Client is safe for concurrent use. The breaker registry is a mutex-guarded map
and each breaker is goroutine-safe.
*/
package fetch
