// Package poll repeats a fetch until its result satisfies a condition.
//
// The interval starts at [Options.Interval] and grows by
// [Options.Multiplier] up to [Options.MaxInterval] while the fetched value
// stays unchanged, as reported by [Options.Fingerprint]. A change resets the
// interval. Every wait is stretched by up to [Options.Jitter] of itself so
// that many clients do not poll in lockstep.
package poll

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxInterval = 30 * time.Second
	DefaultMultiplier  = 1.5
	DefaultJitter      = 0.3
)

// Options controls how Wait paces its fetches. Zero fields use the defaults.
type Options struct {
	Interval    time.Duration
	MaxInterval time.Duration
	Multiplier  float64
	// Jitter is a fraction of the interval. Negative disables jitter.
	Jitter float64

	// Retryable reports whether a fetch error is transient. Nil treats
	// every error as transient.
	Retryable func(error) bool
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.MaxInterval <= 0 {
		o.MaxInterval = DefaultMaxInterval
	}
	if o.MaxInterval < o.Interval {
		o.MaxInterval = o.Interval
	}
	if o.Multiplier < 1 {
		o.Multiplier = DefaultMultiplier
	}
	if o.Jitter == 0 {
		o.Jitter = DefaultJitter
	}
	return o
}

// Fetcher retrieves the current value.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Matcher reports whether the value is the one being waited for.
type Matcher[T any] func(T) bool

// Fingerprint summarizes a value so that unchanged results can be detected.
// Nil treats every result as a change.
type Fingerprint[T any] func(T) string

// Wait fetches immediately and then keeps fetching until match accepts a
// value, a non-retryable error occurs or ctx is done. On ctx expiry the last
// fetch error, if any, is joined to the context error.
func Wait[T any](ctx context.Context, fetch Fetcher[T], match Matcher[T], fp Fingerprint[T], opts Options) (T, error) {
	opts = opts.withDefaults()

	var (
		zero     T
		lastErr  error
		lastSeen string
		seen     bool
		interval = opts.Interval
	)

	for {
		value, err := fetch(ctx)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return zero, errors.Join(ctx.Err(), err)
			}
			if opts.Retryable != nil && !opts.Retryable(err) {
				return zero, err
			}
			lastErr = err
		case match(value):
			return value, nil
		default:
			lastErr = nil
			changed := true
			if fp != nil {
				mark := fp(value)
				changed = !seen || mark != lastSeen
				lastSeen, seen = mark, true
			}
			if changed {
				interval = opts.Interval
			} else {
				interval = next(interval, opts)
			}
		}

		timer := time.NewTimer(withJitter(interval, opts.Jitter))
		select {
		case <-ctx.Done():
			timer.Stop()
			if lastErr != nil {
				return zero, errors.Join(ctx.Err(), lastErr)
			}
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}

func next(interval time.Duration, opts Options) time.Duration {
	grown := time.Duration(float64(interval) * opts.Multiplier)
	if grown > opts.MaxInterval {
		return opts.MaxInterval
	}
	return grown
}

func withJitter(d time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return d
	}
	return d + time.Duration(rand.Float64()*jitter*float64(d))
}
