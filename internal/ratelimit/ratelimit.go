// Package ratelimit keeps outgoing forecast requests under the provider's
// per-second quota.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-dashboard/config"
	"weather-dashboard/pkg/logger"
)

// Penalty is how long a caller waits once the per-second budget is spent.
const Penalty = time.Second

// Limiter blocks until the caller may issue one request.
type Limiter interface {
	Wait(ctx context.Context) error
}

// Clock and Sleeper are swapped out by tests.
type (
	Clock   func() time.Time
	Sleeper func(ctx context.Context, d time.Duration) error
)

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// FromConfig builds the limiter selected by cfg.Backend. The returned close
// function releases backend connections and is never nil.
func FromConfig(cfg config.RateLimitConfig, l *logger.Logger) (Limiter, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "window":
		return NewWindowLimiter(cfg.PerSecond), noop, nil
	case "token":
		return NewTokenLimiter(cfg.PerSecond), noop, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return NewRedisLimiter(client, cfg.PerSecond, l), client.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
}
