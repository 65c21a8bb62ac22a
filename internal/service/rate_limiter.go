package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/BilawalArif/redfin-clone/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes the state of a key after a request was counted
type RateLimitResult struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	redis *database.Redis
	now   func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redis *database.Redis) *RateLimiter {
	return &RateLimiter{redis: redis, now: time.Now}
}

// Allow counts a request against key using a sliding window log
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitResult, error) {
	now := r.now()
	windowStart := now.Add(-window)
	redisKey := "ratelimit:" + key

	// Drop entries that fell out of the window
	err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixMilli(), 10)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	result := &RateLimitResult{Limit: limit}

	if count >= int64(limit) {
		result.RetryAfter = window
		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			oldestTime := time.UnixMilli(int64(oldest[0].Score))
			result.RetryAfter = window - now.Sub(oldestTime)
		}
		return result, nil
	}

	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	}).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}

	// Expiry only bounds memory; a failure here does not affect the count
	_ = r.redis.Client.Expire(ctx, redisKey, window+time.Minute).Err()

	result.Allowed = true
	result.Remaining = limit - int(count) - 1
	return result, nil
}
