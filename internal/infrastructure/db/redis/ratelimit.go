package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limit is a fixed window allowance.
type Limit struct {
	Max    int64
	Window time.Duration
}

// RateLimiter counts hits per bucket and key in fixed windows
// (INCR + EXPIRE). Buckets without a configured limit are never limited.
// Key format: ratelimit:<bucket>:<key>
type RateLimiter struct {
	client *redis.Client
	limits map[string]Limit
}

func NewRateLimiter(client *redis.Client, limits map[string]Limit) *RateLimiter {
	return &RateLimiter{client: client, limits: limits}
}

func (r *RateLimiter) Allow(ctx context.Context, bucket, key string) (bool, error) {
	limit, ok := r.limits[bucket]
	if !ok || limit.Max <= 0 || key == "" {
		return true, nil
	}
	rk := fmt.Sprintf("ratelimit:%s:%s", bucket, key)

	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, rk)
	pipe.ExpireNX(ctx, rk, limit.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("rate limit %s: %w", bucket, err)
	}
	return incr.Val() <= limit.Max, nil
}
