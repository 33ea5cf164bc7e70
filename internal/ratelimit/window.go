package ratelimit

import (
	"context"
	"sync"
	"time"
)

const windowSlots = 60

type slot struct {
	second int64
	count  int
}

// WindowLimiter counts requests per wall-clock second in a fixed ring of 60
// slots indexed by the second of the minute. A request that pushes the count
// for its second above the limit sleeps Penalty and then competes for the
// next second's budget, so no second ever releases more than the limit.
type WindowLimiter struct {
	limit int
	now   Clock
	sleep Sleeper

	mu    sync.Mutex
	slots [windowSlots]slot
}

func NewWindowLimiter(perSecond int) *WindowLimiter {
	return newWindowLimiter(perSecond, time.Now, sleepContext)
}

func newWindowLimiter(perSecond int, now Clock, sleep Sleeper) *WindowLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &WindowLimiter{limit: perSecond, now: now, sleep: sleep}
}

func (w *WindowLimiter) Wait(ctx context.Context) error {
	for w.record(w.now()) > w.limit {
		if err := w.sleep(ctx, Penalty); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// record counts one request at t and returns the count for t's second.
func (w *WindowLimiter) record(t time.Time) int {
	sec := t.Unix()

	w.mu.Lock()
	defer w.mu.Unlock()

	s := &w.slots[t.Second()%windowSlots]
	if s.second != sec {
		s.second = sec
		s.count = 0
	}
	s.count++
	return s.count
}
