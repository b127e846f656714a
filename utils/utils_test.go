package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDSetNoDuplicates(t *testing.T) {
	s := NewIDSet()

	assert.True(t, s.Add(1), "first Add should return true")
	assert.False(t, s.Add(1), "second Add of same id should return false")
	assert.True(t, s.Contains(1))
	assert.Equal(t, 1, s.Size())

	s.Reset()
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains(1))
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewNopLogger()}

	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWrapsLastError(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewNopLogger()}
	boom := errors.New("boom")

	err := r.Do(context.Background(), "always", func() error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestRetryStopsOnCancel(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour, Logger: NewNopLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := r.Do(ctx, "cancelled", func() error {
		calls++
		return errors.New("down")
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewLoggerLevelUnknownFallsBack(t *testing.T) {
	l := NewLoggerLevel("chatty")
	require.NotNil(t, l)
	l.Debug("suppressed %d", 1)
	l.Info("visible %s", "line")
}
