package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration, limit int) (int64, error)
	Reset(ctx context.Context, key string) error
}

// NoopRateLimiter allows everything. It is used when redis is not configured.
type NoopRateLimiter struct{}

func (NoopRateLimiter) Allow(context.Context, string, RateLimitConfig) (bool, error) {
	return true, nil
}

func (NoopRateLimiter) GetRemaining(_ context.Context, _ string, _ time.Duration, limit int) (int64, error) {
	return int64(limit), nil
}

func (NoopRateLimiter) Reset(context.Context, string) error {
	return nil
}
