package system

import (
	"context"
	"time"
)

// IntentSource produces the input for the next frame.
type IntentSource interface {
	Next(state RunState) Intent
}

// IntentFunc adapts a function to IntentSource.
type IntentFunc func(state RunState) Intent

func (f IntentFunc) Next(state RunState) Intent { return f(state) }

// RunConfig controls the fixed-tick driver.
type RunConfig struct {
	// Tick is the frame interval. Zero runs frames back to back.
	Tick time.Duration
	// MaxTicks stops the run after that many frames. Zero means no limit.
	MaxTicks uint64
	// Cues, when set, receives the cues of every frame that raised any.
	Cues func([]Cue)
}

// Run steps the session once per tick until the quit signal, the tick budget,
// a step error or ctx cancellation. A frame in progress always completes.
func Run(ctx context.Context, s *Session, src IntentSource, cfg RunConfig) error {
	var tick <-chan time.Time
	if cfg.Tick > 0 {
		ticker := time.NewTicker(cfg.Tick)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := uint64(0); cfg.MaxTicks == 0 || n < cfg.MaxTicks; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.Step(src.Next(s.State())); err != nil {
			return err
		}
		if cues := s.DrainCues(); len(cues) > 0 && cfg.Cues != nil {
			cfg.Cues(cues)
		}
		if s.Done() {
			return nil
		}
	}
	return nil
}
