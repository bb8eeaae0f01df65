package surface

import (
	"sync"

	"go.uber.org/zap"

	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/engine"
	"github.com/plus3/ecsloop/render"
)

// Headless is a Surface for runs without a window. It counts presented ticks,
// keeps the last few frames, and can close itself after a fixed tick count.
type Headless struct {
	source    FrameSource
	keep      int
	stopAfter uint64
	logger    *zap.Logger

	mu        sync.Mutex
	frames    []*render.DrawList
	presented uint64
	failed    uint64
}

type HeadlessOption func(*Headless)

// WithKeep sets how many recent frames are retained. Zero keeps none.
func WithKeep(n int) HeadlessOption {
	return func(h *Headless) {
		h.keep = n
	}
}

// WithStopAfter closes the surface once n ticks have been presented.
func WithStopAfter(n uint64) HeadlessOption {
	return func(h *Headless) {
		h.stopAfter = n
	}
}

func WithLogger(logger *zap.Logger) HeadlessOption {
	return func(h *Headless) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHeadless creates a headless surface. source may be nil.
func NewHeadless(source FrameSource, opts ...HeadlessOption) *Headless {
	h := &Headless{
		source: source,
		keep:   1,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Headless) Present(report *ecs.TickReport) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.presented++
	if report != nil && report.Failed() {
		h.failed++
		h.logger.Warn("tick failed",
			zap.Uint64("tick", report.Tick),
			zap.Int("commandErrors", len(report.CommandErrors)),
			zap.Int("systemErrors", len(report.SystemErrors)),
		)
	}

	if h.source != nil && h.keep > 0 {
		if frame := h.source.Frame(); frame != nil {
			h.frames = append(h.frames, frame.Clone())
			if over := len(h.frames) - h.keep; over > 0 {
				clear(h.frames[:over])
				h.frames = h.frames[over:]
			}
		}
	}

	if h.stopAfter > 0 && h.presented >= h.stopAfter {
		return engine.ErrSurfaceClosed
	}
	return nil
}

// Presented returns the number of ticks presented.
func (h *Headless) Presented() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.presented
}

// Failed returns the number of presented ticks that reported a failure.
func (h *Headless) Failed() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failed
}

// Frames returns the retained frames, oldest first.
func (h *Headless) Frames() []*render.DrawList {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*render.DrawList(nil), h.frames...)
}

// Last returns the most recent retained frame, or nil.
func (h *Headless) Last() *render.DrawList {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}
