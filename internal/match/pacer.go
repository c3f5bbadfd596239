package match

import (
	"context"
	"time"
)

// DefaultThinkDelay is the pause before each CPU action.
const DefaultThinkDelay = 700 * time.Millisecond

// Pacer spaces out the steps of a CPU plan so a human can follow them. A nil
// Pacer or a zero Delay does not wait.
type Pacer struct {
	Delay time.Duration
}

// NewPacer creates a Pacer. Negative delays are treated as zero.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{Delay: max(delay, 0)}
}

// Wait blocks for the delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
