package weft

import (
	"context"
	"sync"
	"time"
)

// DefaultPaceInterval is the fixed delay inserted between completed locales.
// It exists to keep the translation backend under its rate limits; a batch
// run always paces, it is not a tunable per call.
const DefaultPaceInterval = time.Second

// Pacer enforces a minimum interval between successive operations. The first
// call passes immediately; each later call waits out the remainder of the
// interval since the previous completion.
type Pacer struct {
	interval time.Duration
	last     time.Time
	mu       sync.Mutex
}

// NewPacer creates a pacer with the given interval. Non-positive intervals
// fall back to DefaultPaceInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultPaceInterval
	}
	return &Pacer{interval: interval}
}

// Wait blocks until the interval since the previous Wait has elapsed or the
// context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	remaining := p.interval - time.Since(p.last)
	p.mu.Unlock()

	if remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}

	p.mu.Lock()
	p.last = time.Now()
	p.mu.Unlock()
	return nil
}

// Interval returns the configured pacing interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
