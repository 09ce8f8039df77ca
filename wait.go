package soulnest

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/soulnest/client-go/internal/poll"
)

// WaitOption configures polling in WaitForStatus and WaitHealthy.
type WaitOption func(*poll.Options)

// WithPollInterval sets the first poll interval and the interval cap.
// Default: 2s and 30s
func WithPollInterval(initial, maxInterval time.Duration) WaitOption {
	return func(o *poll.Options) {
		o.Interval = initial
		o.MaxInterval = maxInterval
	}
}

// WithPollBackoff sets how much the interval grows while nothing changes.
// Default: 1.5
func WithPollBackoff(multiplier float64) WaitOption {
	return func(o *poll.Options) {
		o.Multiplier = multiplier
	}
}

// WithPollJitter sets the random stretch applied to each interval as a
// fraction of it. Zero keeps the default; negative disables jitter.
// Default: 0.3
func WithPollJitter(fraction float64) WaitOption {
	return func(o *poll.Options) {
		o.Jitter = fraction
	}
}

func buildWaitOptions(opts []WaitOption, retryable func(error) bool) poll.Options {
	o := poll.Options{Retryable: retryable}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// transientError reports whether polling should continue after err.
// Business and encryption failures will not resolve by asking again.
func transientError(err error) bool {
	code, ok := CodeOf(err)
	if !ok {
		return !errors.Is(err, ErrClientClosed)
	}
	return code == CodeNetwork || code == CodeTimeoutAbort
}

// WaitForStatus polls the session until match accepts its status.
// A BUSINESS_ERROR, such as an unknown or expired session, stops polling.
func (s *sessionsImpl) WaitForStatus(ctx context.Context, sessionID string, match func(*SessionStatus) bool, opts ...WaitOption) (*SessionStatus, error) {
	return poll.Wait[*SessionStatus](ctx,
		func(ctx context.Context) (*SessionStatus, error) {
			return s.Status(ctx, sessionID)
		},
		match,
		statusFingerprint,
		buildWaitOptions(opts, transientError))
}

// WaitHealthy polls the LLM health endpoint until it reports "ok".
// Failures are retried until ctx is done since the service may still be
// starting.
func (s *sessionsImpl) WaitHealthy(ctx context.Context, opts ...WaitOption) (*Health, error) {
	return poll.Wait[*Health](ctx,
		s.Health,
		func(h *Health) bool { return h != nil && h.Status == HealthOK },
		func(h *Health) string { return h.Status },
		buildWaitOptions(opts, func(err error) bool {
			return !errors.Is(err, ErrClientClosed) && !errors.Is(err, ErrEncryption)
		}))
}

func statusFingerprint(st *SessionStatus) string {
	if st == nil {
		return ""
	}
	var last string
	if st.LastActive != nil {
		last = *st.LastActive
	}
	var dialogue string
	if st.DialogueID != nil {
		dialogue = strconv.FormatInt(*st.DialogueID, 10)
	}
	return last + "|" + dialogue + "|" + strconv.Itoa(st.TimeoutSeconds)
}
