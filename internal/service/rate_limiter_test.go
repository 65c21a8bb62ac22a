package service

import (
	"context"
	"testing"
	"time"

	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(t *testing.T) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(database.NewRedisFromClient(client)), mr
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	limiter, _ := newTestRateLimiter(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	limiter.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}

	for i := 0; i < 3; i++ {
		result, err := limiter.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Allow(ctx, "login:1.2.3.4", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	limiter, _ := newTestRateLimiter(t)
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	result, err := limiter.Allow(ctx, "signup:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	now = now.Add(time.Second)
	result, err = limiter.Allow(ctx, "signup:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	now = now.Add(2 * time.Minute)
	result, err = limiter.Allow(ctx, "signup:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestRateLimiter(t)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)

	result, err := limiter.Allow(ctx, "b", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterRedisDown(t *testing.T) {
	limiter, mr := newTestRateLimiter(t)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "a", 1, time.Minute)
	assert.Error(t, err)
}
