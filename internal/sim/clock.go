package sim

import (
	"context"
	"sync"
	"time"
)

// Clock suspends the simulation for simulated time.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock sleeps in wall-clock time divided by Speed.
type RealClock struct {
	Speed float64
}

// Sleep implements Clock.
func (c RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if c.Speed > 0 && c.Speed != 1 {
		d = time.Duration(float64(d) / c.Speed)
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ManualClock never blocks; it records every requested sleep.
type ManualClock struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

// Sleep implements Clock.
func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	return nil
}

// Sleeps returns a copy of the recorded sleeps in call order.
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// Elapsed is the total simulated time slept.
func (c *ManualClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total time.Duration
	for _, d := range c.sleeps {
		total += d
	}
	return total
}
