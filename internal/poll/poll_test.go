package poll

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() Options {
	return Options{
		Interval:    time.Millisecond,
		MaxInterval: 4 * time.Millisecond,
		Jitter:      -1,
	}
}

func TestWait_MatchesFirstFetch(t *testing.T) {
	calls := 0
	got, err := Wait(context.Background(),
		func(context.Context) (int, error) { calls++; return 5, nil },
		func(v int) bool { return v == 5 },
		nil, fastOptions())

	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Equal(t, 1, calls)
}

func TestWait_PollsUntilMatch(t *testing.T) {
	n := 0
	got, err := Wait(context.Background(),
		func(context.Context) (int, error) { n++; return n, nil },
		func(v int) bool { return v >= 4 },
		func(v int) string { return strconv.Itoa(v) }, fastOptions())

	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestWait_TransientErrorsRetried(t *testing.T) {
	n := 0
	got, err := Wait(context.Background(),
		func(context.Context) (string, error) {
			n++
			if n < 3 {
				return "", errors.New("flaky")
			}
			return "ready", nil
		},
		func(v string) bool { return v == "ready" },
		nil, fastOptions())

	require.NoError(t, err)
	assert.Equal(t, "ready", got)
	assert.Equal(t, 3, n)
}

func TestWait_NonRetryableErrorStops(t *testing.T) {
	fatal := errors.New("gone")
	opts := fastOptions()
	opts.Retryable = func(err error) bool { return !errors.Is(err, fatal) }

	n := 0
	_, err := Wait(context.Background(),
		func(context.Context) (int, error) { n++; return 0, fatal },
		func(int) bool { return true },
		nil, opts)

	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, n)
}

func TestWait_ContextExpiryJoinsLastError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	flaky := errors.New("flaky")
	_, err := Wait(ctx,
		func(context.Context) (int, error) { return 0, flaky },
		func(int) bool { return true },
		nil, fastOptions())

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, flaky)
}

func TestWait_ContextExpiryWithoutError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Wait(ctx,
		func(context.Context) (int, error) { return 1, nil },
		func(int) bool { return false },
		func(int) string { return "same" }, fastOptions())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{}.withDefaults()
	assert.Equal(t, DefaultInterval, opts.Interval)
	assert.Equal(t, DefaultMaxInterval, opts.MaxInterval)
	assert.Equal(t, DefaultMultiplier, opts.Multiplier)
	assert.Equal(t, DefaultJitter, opts.Jitter)

	opts = Options{Interval: time.Minute, MaxInterval: time.Second}.withDefaults()
	assert.Equal(t, time.Minute, opts.MaxInterval)
}

func TestNext_CapsAtMax(t *testing.T) {
	opts := Options{Interval: time.Second, MaxInterval: 3 * time.Second, Multiplier: 2}
	assert.Equal(t, 2*time.Second, next(time.Second, opts))
	assert.Equal(t, 3*time.Second, next(2*time.Second, opts))
}

func TestWithJitter_Bounds(t *testing.T) {
	for range 100 {
		d := withJitter(time.Second, 0.3)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 1300*time.Millisecond)
	}
	assert.Equal(t, time.Second, withJitter(time.Second, -1))
}
