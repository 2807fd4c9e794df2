package marquee

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Hz is the tick rate; each tick advances the marquee by 1/Hz seconds.
	Hz int
	// Ticks stops the runner after that many ticks; 0 runs until ctx ends
	// or the script finishes.
	Ticks uint64
	// Script, when set, is stepped before every tick.
	Script *Script
	// OnTick is called after every tick.
	OnTick func(m *Marquee) error
}

// RunHeadless drives m from a ticker without opening a window. The tick
// delta is fixed at 1/Hz regardless of scheduling jitter.
func RunHeadless(ctx context.Context, m *Marquee, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	dt := 1 / float64(cfg.Hz)
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.Script != nil {
				cfg.Script.step(m)
			}
			m.Update(dt)
			if cfg.OnTick != nil {
				if err := cfg.OnTick(m); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
			if cfg.Script != nil && cfg.Script.Done() {
				return nil
			}
		}
	}
}
