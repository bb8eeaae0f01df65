package engine

import (
	"fmt"
	"time"
)

// Timing controls how long the loop waits between ticks.
type Timing struct {
	FPSTargetEnabled bool
	FPSTarget        float64
	LoopDelayFixed   time.Duration
	LoopDelayMin     time.Duration
}

// DefaultTiming targets 90 ticks per second.
func DefaultTiming() Timing {
	return Timing{
		FPSTargetEnabled: true,
		FPSTarget:        90,
		LoopDelayFixed:   1000 * time.Millisecond,
		LoopDelayMin:     5 * time.Millisecond,
	}
}

// Delay is the pause inserted after each tick: 1000/FPSTarget whole
// milliseconds in target mode (LoopDelayMin when the target is not positive),
// LoopDelayFixed otherwise.
func (t Timing) Delay() time.Duration {
	if !t.FPSTargetEnabled {
		return t.LoopDelayFixed
	}
	if t.FPSTarget > 0 {
		return time.Duration(int64(1000.0/t.FPSTarget)) * time.Millisecond
	}
	return t.LoopDelayMin
}

// Validate rejects negative delays.
func (t Timing) Validate() error {
	if t.LoopDelayFixed < 0 {
		return fmt.Errorf("loop delay fixed %s is negative", t.LoopDelayFixed)
	}
	if t.LoopDelayMin < 0 {
		return fmt.Errorf("loop delay min %s is negative", t.LoopDelayMin)
	}
	return nil
}
