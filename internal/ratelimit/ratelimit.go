// Package ratelimit spaces consecutive generative calls so a run
// stays polite toward the backend.
package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// Pacer sleeps a jittered interval between generations. The bounds
// default to the 3-5 second gap the pipeline keeps between calls.
type Pacer struct {
	min time.Duration
	max time.Duration
	rng *rand.Rand
}

func NewPacer(min, max time.Duration) *Pacer {
	if max < min {
		max = min
	}
	return &Pacer{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Wait blocks for a random duration within the pacer's bounds, or
// until the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	delay := p.min
	if span := p.max - p.min; span > 0 {
		delay += time.Duration(p.rng.Int63n(int64(span) + 1))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
