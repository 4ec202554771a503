package collect

import (
	"context"
	"math/rand/v2"
	"time"
)

// Pacer inserts a courtesy delay between artists, drawn uniformly from
// [Min, Max]. A zero range disables waiting.
type Pacer struct {
	Min time.Duration
	Max time.Duration

	rand  func() float64
	sleep func(context.Context, time.Duration) error
}

// NewPacer creates a pacer for the given range. A Max below Min is raised to Min.
func NewPacer(minDelay, maxDelay time.Duration) *Pacer {
	minDelay = max(minDelay, 0)
	return &Pacer{
		Min:   minDelay,
		Max:   max(maxDelay, minDelay),
		rand:  rand.Float64,
		sleep: sleepContext,
	}
}

// NoPacing returns a pacer that never waits.
func NoPacing() *Pacer {
	return NewPacer(0, 0)
}

// Next returns the delay for the next wait.
func (p *Pacer) Next() time.Duration {
	if p == nil || p.Max <= 0 {
		return 0
	}
	span := p.Max - p.Min
	if span <= 0 {
		return p.Min
	}
	return p.Min + time.Duration(p.rand()*float64(span))
}

// Wait blocks for Next() or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	d := p.Next()
	if d <= 0 {
		return nil
	}
	return p.sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
