// Package loop runs frames at a fixed cadence.
package loop

import (
	"context"
	"time"
)

// Pacer calls a frame function at most once per Interval. When a frame finishes
// early the pacer sleeps for the rest of the interval. When a frame overruns,
// the next one starts immediately and the lost time is not made up.
type Pacer struct {
	Interval time.Duration

	// Now and Sleep default to time.Now and time.Sleep
	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewPacer returns a pacer using the wall clock
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{Interval: interval}
}

// Run calls frame until it returns false or ctx is done. It returns ctx.Err()
// when cancelled and nil when the frame asked to stop.
func (p *Pacer) Run(ctx context.Context, frame func() bool) error {
	now, sleep := p.Now, p.Sleep
	if now == nil {
		now = time.Now
	}
	if sleep == nil {
		sleep = time.Sleep
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := now()
		if !frame() {
			return nil
		}
		if rest := p.Interval - now().Sub(start); rest > 0 {
			sleep(rest)
		}
	}
}
