// Package surface holds engine surfaces that need no window, and the frame
// buffer shared with the windowed one.
package surface

import (
	"sync"

	"github.com/plus3/ecsloop/render"
)

// FrameSource exposes the draw list built during the last tick.
// render.System implements it.
type FrameSource interface {
	Frame() *render.DrawList
}

// Buffer hands the most recent frame from the loop goroutine to a drawing
// goroutine. Store copies, so the source may reuse its list immediately.
type Buffer struct {
	mu     sync.Mutex
	latest *render.DrawList
	swaps  uint64
}

// Store publishes a copy of d.
func (b *Buffer) Store(d *render.DrawList) {
	if d == nil {
		return
	}
	clone := d.Clone()
	b.mu.Lock()
	b.latest = clone
	b.swaps++
	b.mu.Unlock()
}

// Load returns the latest frame and the number of frames stored so far.
// The frame is nil until the first Store. It must be treated as read only.
func (b *Buffer) Load() (*render.DrawList, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.swaps
}
