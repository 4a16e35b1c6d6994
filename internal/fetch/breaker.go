// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/aspectpad/internal/logging"
	"github.com/tomtom215/aspectpad/internal/metrics"
)

// maxTrackedHosts bounds the registry. When full, breakers in the closed
// state are evicted since they carry no rejection state worth keeping.
const maxTrackedHosts = 1024

// breakerRegistry holds one circuit breaker per upstream host.
type breakerRegistry struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[*Result]

	failures    uint32
	openTimeout time.Duration
}

func newBreakerRegistry(failures uint32, openTimeout time.Duration) *breakerRegistry {
	if failures == 0 {
		failures = 1
	}
	return &breakerRegistry{
		breakers:    make(map[string]*gobreaker.CircuitBreaker[*Result]),
		failures:    failures,
		openTimeout: openTimeout,
	}
}

// get returns the breaker for host, creating it on first use.
func (r *breakerRegistry) get(host string) *gobreaker.CircuitBreaker[*Result] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[host]; ok {
		return cb
	}

	if len(r.breakers) >= maxTrackedHosts {
		for h, cb := range r.breakers {
			if cb.State() == gobreaker.StateClosed {
				delete(r.breakers, h)
				metrics.CircuitBreakerState.DeleteLabelValues(breakerName(h))
				metrics.CircuitBreakerConsecutiveFailures.DeleteLabelValues(breakerName(h))
			}
		}
	}

	cb := r.newBreaker(host)
	r.breakers[host] = cb
	return cb
}

func (r *breakerRegistry) newBreaker(host string) *gobreaker.CircuitBreaker[*Result] {
	name := breakerName(host)
	threshold := r.failures

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[*Result](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     r.openTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			shouldTrip := counts.ConsecutiveFailures >= threshold
			if shouldTrip {
				logging.Warn().
					Str("host", host).
					Uint32("consecutive_failures", counts.ConsecutiveFailures).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A 4xx or an oversized body says the URL is wrong, not that the host is down.
		// Neither does a caller that gave up before the host answered.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var canceled *callerCanceledError
			if errors.As(err, &canceled) {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 &&
					statusErr.StatusCode != http.StatusTooManyRequests
			}
			var sizeErr *tooLargeError
			return errors.As(err, &sizeErr)
		},
	})
}

// callerCanceledError marks a failure caused by the caller's context ending,
// as opposed to the client timeout or the host itself.
type callerCanceledError struct {
	err error
}

func (e *callerCanceledError) Error() string { return e.err.Error() }
func (e *callerCanceledError) Unwrap() error { return e.err }

// execute runs fn under the breaker for host. Failures that happen after ctx
// is done are not charged to the host.
func (r *breakerRegistry) execute(ctx context.Context, host string, fn func() (*Result, error)) (*Result, error) {
	cb := r.get(host)
	name := cb.Name()

	res, err := cb.Execute(func() (*Result, error) {
		res, err := fn()
		if err != nil && ctx.Err() != nil {
			return nil, &callerCanceledError{err: err}
		}
		return res, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %s", ErrHostUnavailable, host)
		}
		var canceled *callerCanceledError
		if errors.As(err, &canceled) {
			metrics.CircuitBreakerRequests.WithLabelValues(name, "canceled").Inc()
			return nil, err
		}
		metrics.CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(float64(cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
	return res, nil
}

// state reports the current breaker state for host, closed if unknown.
func (r *breakerRegistry) state(host string) gobreaker.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[host]; ok {
		return cb.State()
	}
	return gobreaker.StateClosed
}

func breakerName(host string) string {
	return "fetch:" + host
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
