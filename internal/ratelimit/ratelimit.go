// Package ratelimit spaces out browser extractions so the worker does not
// hammer the target storefront.
package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

type Limiter interface {
	Wait(ctx context.Context) error
}

// Jittered enforces a randomized minimum gap between actions. Jitter keeps
// the request cadence from looking machine-regular.
type Jittered struct {
	mu         sync.Mutex
	minDelay   time.Duration
	maxDelay   time.Duration
	lastAction time.Time
}

func NewJittered(minDelay, maxDelay time.Duration) *Jittered {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Jittered{
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Wait blocks until the jittered delay since the previous action has
// elapsed, or the context is cancelled.
func (j *Jittered) Wait(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	elapsed := time.Since(j.lastAction)
	delay := j.nextDelay()

	if elapsed < delay {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay - elapsed):
		}
	}

	j.lastAction = time.Now()
	return nil
}

func (j *Jittered) nextDelay() time.Duration {
	if j.maxDelay == j.minDelay {
		return j.minDelay
	}
	return j.minDelay + time.Duration(rand.Int63n(int64(j.maxDelay-j.minDelay)))
}

// None performs no pacing. Used in tests and when pacing is disabled.
type None struct{}

func (None) Wait(ctx context.Context) error {
	return ctx.Err()
}
