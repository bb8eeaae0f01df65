// Package engine runs the game loop: drain commands, update systems in order,
// present, then wait out the tick delay.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/ecsloop/ecs"
)

var (
	ErrAlreadyRunning = errors.New("engine already running")
	// ErrSurfaceClosed is returned by a Surface whose output has gone away.
	// The loop stops cleanly when it sees it.
	ErrSurfaceClosed = errors.New("surface closed")
)

// Surface receives every finished tick, after all systems have run.
// Present is called on the loop goroutine and should not block for long.
type Surface interface {
	Present(report *ecs.TickReport) error
}

// Engine drives a Scheduler at a regulated rate.
type Engine struct {
	scheduler *ecs.Scheduler
	surface   Surface
	clock     Clock
	logger    *zap.Logger

	mu     sync.Mutex
	timing Timing
	runID  string

	// active is held for the whole of Run; running is the stop request
	// checked between ticks.
	active      atomic.Bool
	running     atomic.Bool
	lastElapsed atomic.Int64
	ticks       atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

func WithSurface(s Surface) Option {
	return func(e *Engine) {
		e.surface = s
	}
}

func WithTiming(t Timing) Option {
	return func(e *Engine) {
		e.timing = t
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// New creates a stopped engine around scheduler.
func New(scheduler *ecs.Scheduler, opts ...Option) *Engine {
	e := &Engine{
		scheduler: scheduler,
		clock:     realClock{},
		logger:    zap.NewNop(),
		timing:    DefaultTiming(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Scheduler returns the scheduler driven by the engine.
func (e *Engine) Scheduler() *ecs.Scheduler {
	return e.scheduler
}

// Commands is shorthand for Scheduler().Commands().
func (e *Engine) Commands() *ecs.CommandQueue {
	return e.scheduler.Commands()
}

// Run executes ticks until Stop is called, the surface closes, or ctx is done.
// The running flag is only checked between ticks, so a Stop during a tick
// lets that tick finish. Run returns ErrAlreadyRunning until the previous Run
// has returned, even after Stop. The first tick of every run sees a zero
// elapsed time.
func (e *Engine) Run(ctx context.Context) error {
	if !e.active.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.active.Store(false)
	e.running.Store(true)
	defer e.running.Store(false)

	runID := uuid.NewString()
	e.mu.Lock()
	e.runID = runID
	e.mu.Unlock()

	log := e.logger.With(zap.String("run", runID))
	log.Info("game loop started", zap.Duration("delay", e.Timing().Delay()))

	var elapsed time.Duration
	e.lastElapsed.Store(0)

	for e.running.Load() {
		if err := ctx.Err(); err != nil {
			log.Info("game loop cancelled", zap.Uint64("ticks", e.ticks.Load()))
			return err
		}

		start := e.clock.Now()

		report := e.scheduler.Once(elapsed)
		e.ticks.Add(1)

		if e.surface != nil {
			if err := e.surface.Present(report); err != nil {
				if errors.Is(err, ErrSurfaceClosed) {
					log.Info("surface closed, stopping")
					return nil
				}
				log.Error("present failed", zap.Uint64("tick", report.Tick), zap.Error(err))
			}
		}

		e.clock.Sleep(ctx, e.Timing().Delay())

		elapsed = e.clock.Now().Sub(start)
		e.lastElapsed.Store(int64(elapsed))
	}

	log.Info("game loop stopped", zap.Uint64("ticks", e.ticks.Load()))
	return nil
}

// Stop asks the current run to end before its next tick. Safe to call from
// any goroutine; it has no effect on a later Run.
func (e *Engine) Stop() {
	e.running.Store(false)
}

// Running reports whether Run is in progress and has not been stopped.
func (e *Engine) Running() bool {
	return e.active.Load() && e.running.Load()
}

// LastElapsed returns the duration of the most recent tick.
func (e *Engine) LastElapsed() time.Duration {
	return time.Duration(e.lastElapsed.Load())
}

// FPS is the tick rate implied by the last tick, zero before any tick finished.
func (e *Engine) FPS() float64 {
	d := e.LastElapsed()
	if d <= 0 {
		return 0
	}
	return float64(time.Second) / float64(d)
}

// Ticks returns the number of ticks run over the engine's lifetime.
func (e *Engine) Ticks() uint64 {
	return e.ticks.Load()
}

// RunID identifies the current or most recent run.
func (e *Engine) RunID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runID
}

// Timing returns the current tick timing.
func (e *Engine) Timing() Timing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.timing
}

// SetTiming replaces the tick timing; it applies from the next delay.
func (e *Engine) SetTiming(t Timing) {
	e.mu.Lock()
	e.timing = t
	e.mu.Unlock()
}
