package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhijitabd5/sti-academy/internal/config"
)

func newLocalQuoteLimiter(rate float64, burst int) *QuoteLimiter {
	return NewQuoteLimiter(config.Config{
		QuoteRatePerSecond: rate,
		QuoteBurst:         burst,
		SubmitLockSeconds:  5,
	})
}

func TestQuoteLimiterLocalBucket(t *testing.T) {
	l := newLocalQuoteLimiter(0.001, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.AllowClient(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := l.AllowClient(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "burst exhausted")

	// Other clients keep their own bucket.
	ok, err = l.AllowClient(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestQuoteLimiterLocalBucketRefills(t *testing.T) {
	l := newLocalQuoteLimiter(100, 1)
	ctx := context.Background()

	ok, err := l.AllowClient(ctx, "10.0.0.9")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.AllowClient(ctx, "10.0.0.9")
	require.NoError(t, err)
	require.False(t, ok)

	time.Sleep(30 * time.Millisecond)

	ok, err = l.AllowClient(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, ok, "tokens refill over time")
}

func TestQuoteLimiterSubmitLock(t *testing.T) {
	l := newLocalQuoteLimiter(5, 10)
	ctx := context.Background()

	token, ok, err := l.TryLockSubmit(ctx, "9876543210")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	_, ok, err = l.TryLockSubmit(ctx, "9876543210")
	require.NoError(t, err)
	assert.False(t, ok, "second submission for the same phone is blocked")

	// A different phone is unaffected.
	_, ok, err = l.TryLockSubmit(ctx, "9123456780")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, l.ReleaseSubmit(ctx, "9876543210", token))

	_, ok, err = l.TryLockSubmit(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, ok, "lock is reusable after release")
}

func TestQuoteLimiterNilIsPermissive(t *testing.T) {
	var l *QuoteLimiter
	ctx := context.Background()

	ok, err := l.AllowClient(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = l.TryLockSubmit(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, l.ReleaseSubmit(ctx, "9876543210", ""))
}
