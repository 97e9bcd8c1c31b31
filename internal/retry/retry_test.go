package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("busy")

func onlyBusy(err error) bool { return errors.Is(err, errBusy) }

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	v, err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesRetryableUntilSuccess(t *testing.T) {
	calls := 0
	var waits []time.Duration
	p := Policy{
		MaxAttempts: 3,
		BaseDelay:   time.Millisecond,
		Retryable:   onlyBusy,
		OnRetry:     func(_ error, d time.Duration) { waits = append(waits, d) },
	}
	v, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errBusy
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, waits)
}

func TestDoStopsAfterMaxAttempts(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Retryable: onlyBusy}, func(context.Context) (int, error) {
		calls++
		return 0, errBusy
	})
	assert.ErrorIs(t, err, errBusy)
	assert.Equal(t, 3, calls)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := Do(context.Background(), Policy{MaxAttempts: 5, BaseDelay: time.Millisecond, Retryable: onlyBusy}, func(context.Context) (int, error) {
		calls++
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDoHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Do(ctx, Policy{MaxAttempts: 10, BaseDelay: 50 * time.Millisecond, Retryable: onlyBusy}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errBusy
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
