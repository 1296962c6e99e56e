package httpclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryPolicy_DelayGrowsLinearly(t *testing.T) {
	policy := NewRetryPolicy(5, 2*time.Second)

	assert.Equal(t, 2*time.Second, policy.Delay(1))
	assert.Equal(t, 4*time.Second, policy.Delay(2))
	assert.Equal(t, 6*time.Second, policy.Delay(3))
}

func TestRetryPolicy_ExecuteSucceedsAfterRetries(t *testing.T) {
	policy := NewRetryPolicy(3, time.Second)

	var slept []time.Duration
	policy.Sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	calls := 0
	err := policy.Execute(context.Background(), func(context.Context) (bool, error) {
		calls++
		if calls < 3 {
			return true, errors.New("transient")
		}
		return false, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
}

func TestRetryPolicy_ExecuteSurfacesFinalError(t *testing.T) {
	policy := NewRetryPolicy(3, time.Millisecond)
	policy.Sleep = func(context.Context, time.Duration) error { return nil }

	calls := 0
	finalErr := errors.New("still failing")
	err := policy.Execute(context.Background(), func(context.Context) (bool, error) {
		calls++
		return true, finalErr
	})

	assert.ErrorIs(t, err, finalErr)
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_ExecuteStopsOnNonRetryable(t *testing.T) {
	policy := NewRetryPolicy(5, time.Millisecond)
	policy.Sleep = func(context.Context, time.Duration) error { return nil }

	calls := 0
	err := policy.Execute(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, errors.New("bad request")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryPolicy_ExecuteHonorsContextDuringWait(t *testing.T) {
	policy := NewRetryPolicy(3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := policy.Execute(ctx, func(context.Context) (bool, error) {
		return true, errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
