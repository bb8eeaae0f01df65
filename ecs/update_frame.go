package ecs

import "time"

// UpdateFrame is passed to every system during a tick.
type UpdateFrame struct {
	// Tick is the 1-based tick counter of the scheduler.
	Tick uint64
	// Elapsed is the duration of the previous tick, zero on the first one.
	Elapsed time.Duration
	// DeltaTime is Elapsed in seconds.
	DeltaTime float64
	Commands  *CommandQueue
	Storage   *Storage
}

func newUpdateFrame(tick uint64, elapsed time.Duration, storage *Storage, commands *CommandQueue) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		Elapsed:   elapsed,
		DeltaTime: elapsed.Seconds(),
		Commands:  commands,
		Storage:   storage,
	}
}

// Millis returns Elapsed in fractional milliseconds.
func (f *UpdateFrame) Millis() float64 {
	return float64(f.Elapsed) / float64(time.Millisecond)
}
