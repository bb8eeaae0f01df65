// Package input turns key transitions into commands. A Binder latches the
// state of every key so that auto-repeat produces a single press, and posts
// the bound commands to the command queue; it never touches entity state.
package input

import (
	"sync"

	"go.uber.org/zap"

	"github.com/plus3/ecsloop/ecs"
)

// Binding holds the commands posted on the press and release edges of a key.
// Either may be nil.
type Binding struct {
	Press   ecs.Command
	Release ecs.Command
}

// Binder maps keys to commands. Safe for use from the UI goroutine while the
// game loop flushes the queue.
type Binder struct {
	mu       sync.Mutex
	queue    *ecs.CommandQueue
	bindings map[Key][]Binding
	down     [keyCount]bool
	logger   *zap.Logger
}

// NewBinder creates a binder posting to queue.
func NewBinder(queue *ecs.CommandQueue, logger *zap.Logger) *Binder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Binder{
		queue:    queue,
		bindings: make(map[Key][]Binding),
		logger:   logger,
	}
}

// Bind adds a binding for key. A key may carry several bindings; they post in
// the order they were added.
func (b *Binder) Bind(key Key, press, release ecs.Command) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings[key] = append(b.bindings[key], Binding{Press: press, Release: release})
}

// Unbind removes every binding of key.
func (b *Binder) Unbind(key Key) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.bindings, key)
}

// Bound lists the keys that have at least one binding.
func (b *Binder) Bound() []Key {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]Key, 0, len(b.bindings))
	for _, k := range Keys() {
		if len(b.bindings[k]) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Press records a key-down event. It posts the press commands only on the
// up to down transition and reports whether it did.
func (b *Binder) Press(key Key) bool {
	return b.transition(key, true)
}

// Release records a key-up event. It posts the release commands only on the
// down to up transition and reports whether it did.
func (b *Binder) Release(key Key) bool {
	return b.transition(key, false)
}

// IsDown reports the latched state of key.
func (b *Binder) IsDown(key Key) bool {
	if key >= keyCount {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.down[key]
}

// Poll feeds the current state of every bound key, for surfaces that report
// key levels instead of events.
func (b *Binder) Poll(pressed func(Key) bool) {
	for _, k := range b.Bound() {
		if pressed(k) {
			b.Press(k)
		} else {
			b.Release(k)
		}
	}
}

// ReleaseAll releases every latched key, posting their release commands.
// Surfaces call it when they lose focus.
func (b *Binder) ReleaseAll() {
	for _, k := range Keys() {
		b.Release(k)
	}
}

func (b *Binder) transition(key Key, down bool) bool {
	if key == KeyNone || key >= keyCount {
		return false
	}

	b.mu.Lock()
	if b.down[key] == down {
		b.mu.Unlock()
		return false
	}
	b.down[key] = down
	bindings := b.bindings[key]
	b.mu.Unlock()

	for _, binding := range bindings {
		cmd := binding.Release
		if down {
			cmd = binding.Press
		}
		if cmd != nil {
			b.queue.Post(cmd)
		}
	}
	b.logger.Debug("key", zap.Stringer("key", key), zap.Bool("down", down), zap.Int("bindings", len(bindings)))
	return true
}
