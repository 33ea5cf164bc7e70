package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// TokenLimiter is a token bucket refilled at perSecond with an equal burst.
type TokenLimiter struct {
	limiter *rate.Limiter
}

func NewTokenLimiter(perSecond int) *TokenLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &TokenLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), perSecond)}
}

func (t *TokenLimiter) Wait(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return nil
}
