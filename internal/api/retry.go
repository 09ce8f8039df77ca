package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strings"
	"time"
)

// Retry defaults.
const (
	DefaultRetries       = 3
	DefaultInitialDelay  = 300 * time.Millisecond
	DefaultMaxDelay      = 4 * time.Second
	DefaultBackoffFactor = 2.0
)

// RetryPolicy configures retry behavior for failed transport calls.
type RetryPolicy struct {
	// Retries is the number of retries after the first attempt.
	Retries int
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration
	// MaxDelay caps the delay between attempts.
	MaxDelay time.Duration
	// BackoffFactor multiplies the delay after each attempt.
	BackoffFactor float64
	// Methods lists the HTTP methods that may be retried. Any other method
	// runs exactly once.
	Methods []string
}

// DefaultRetryPolicy returns the default retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Retries:       DefaultRetries,
		InitialDelay:  DefaultInitialDelay,
		MaxDelay:      DefaultMaxDelay,
		BackoffFactor: DefaultBackoffFactor,
		Methods: []string{
			http.MethodGet,
			http.MethodPut,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
	}
}

// Clone returns a copy that shares no memory with p.
func (p RetryPolicy) Clone() RetryPolicy {
	p.Methods = slices.Clone(p.Methods)
	return p
}

// Validate reports whether the policy is usable.
func (p RetryPolicy) Validate() error {
	switch {
	case p.Retries < 0:
		return fmt.Errorf("retries must be >= 0, got %d", p.Retries)
	case p.InitialDelay < 0:
		return fmt.Errorf("initial delay must be >= 0, got %v", p.InitialDelay)
	case p.MaxDelay < 0:
		return fmt.Errorf("max delay must be >= 0, got %v", p.MaxDelay)
	case p.BackoffFactor < 1:
		return fmt.Errorf("backoff factor must be >= 1, got %v", p.BackoffFactor)
	}
	return nil
}

// Retryable reports whether method is in Methods.
func (p RetryPolicy) Retryable(method string) bool {
	return slices.ContainsFunc(p.Methods, func(m string) bool {
		return strings.EqualFold(m, method)
	})
}

// Resolve returns the effective policy for one call. The override is applied
// to a copy of p. Retries is forced to 0 when method is not retryable.
func (p RetryPolicy) Resolve(method string, override func(*RetryPolicy)) RetryPolicy {
	retryable := p.Retryable(method)
	out := p.Clone()
	if override != nil {
		override(&out)
	}
	if !retryable {
		out.Retries = 0
	}
	return out
}

// Delay returns the delay after failed attempt n (1-indexed).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if p.InitialDelay <= 0 {
		return 0
	}
	delay := float64(p.InitialDelay) * math.Pow(p.BackoffFactor, float64(attempt-1))
	if !(delay <= float64(p.MaxDelay)) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
