package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryFixedDelay(t *testing.T) {
	s, _ := newTestScanner(t, Config{MaxRetries: 3, RetryDelay: 250 * time.Millisecond}, newFakeChain(), nil)
	var delays []time.Duration
	s.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	calls := 0
	err := s.retry(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errBoom
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Equal(t, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, delays)
}

func TestRetryGivesUp(t *testing.T) {
	s, _ := newTestScanner(t, Config{MaxRetries: 1}, newFakeChain(), nil)

	calls := 0
	err := s.retry(context.Background(), "op", func(context.Context) error {
		calls++
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 2, calls)
}

func TestRetryNoRetries(t *testing.T) {
	s, _ := newTestScanner(t, Config{MaxRetries: -1}, newFakeChain(), nil)

	calls := 0
	err := s.retry(context.Background(), "op", func(context.Context) error {
		calls++
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, 1, calls)
}

func TestRetryCanceled(t *testing.T) {
	s, _ := newTestScanner(t, Config{MaxRetries: 5, RetryDelay: time.Hour}, newFakeChain(), nil)
	s.sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.retry(ctx, "op", func(context.Context) error { return errBoom })
	require.True(t, errors.Is(err, context.Canceled))
}
