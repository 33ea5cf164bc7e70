package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"weather-dashboard/pkg/logger"
)

const redisKeyPrefix = "weather:ratelimit"

// Counter is the subset of the redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// RedisLimiter shares the per-second count between processes using the same
// API key. Keys expire after two seconds so memory stays bounded. When Redis
// is unreachable it falls back to a process-local window.
type RedisLimiter struct {
	client   Counter
	limit    int
	now      Clock
	sleep    Sleeper
	fallback Limiter
	l        *logger.Logger
}

func NewRedisLimiter(client Counter, perSecond int, l *logger.Logger) *RedisLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &RedisLimiter{
		client:   client,
		limit:    perSecond,
		now:      time.Now,
		sleep:    sleepContext,
		fallback: NewWindowLimiter(perSecond),
		l:        l,
	}
}

// Wait retries in the following second after every Penalty, like the
// local window.
func (r *RedisLimiter) Wait(ctx context.Context) error {
	for {
		count, err := r.incr(ctx, r.now())
		if err != nil {
			r.l.Warning("redis rate limiter unavailable, using local window", map[string]any{"err": err.Error()})
			return r.fallback.Wait(ctx)
		}
		if count <= int64(r.limit) {
			return nil
		}
		if err := r.sleep(ctx, Penalty); err != nil {
			return err
		}
	}
}

func (r *RedisLimiter) incr(ctx context.Context, t time.Time) (int64, error) {
	key := fmt.Sprintf("%s:%d", redisKeyPrefix, t.Unix())

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, key, 2*time.Second).Err(); err != nil {
			return 0, fmt.Errorf("expire %s: %w", key, err)
		}
	}
	return count, nil
}
