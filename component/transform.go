package component

import (
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/vmath"
)

const (
	DefaultHistoryDepth  = 16
	DefaultHistoryStride = 4
)

// Rotation indices.
const (
	Pitch = iota
	Yaw
	Roll
)

// Transform places an entity in world space.
type Transform struct {
	ecs.Identity

	// Origin is the geometric centre, the pivot for rotation.
	Origin      vmath.Vec2
	Scale       vmath.Vec2
	Rotation    [3]float64
	Translation vmath.Vec2

	// History holds past translations, oldest first, at most HistoryDepth long.
	History       []vmath.Vec2
	HistoryDepth  int
	HistoryStride int
}

// NewTransform returns a Transform with the default history depth and stride.
func NewTransform(origin, scale vmath.Vec2, rotation [3]float64, translation vmath.Vec2) *Transform {
	return &Transform{
		Origin:        origin,
		Scale:         scale,
		Rotation:      rotation,
		Translation:   translation,
		HistoryDepth:  DefaultHistoryDepth,
		HistoryStride: DefaultHistoryStride,
	}
}

// SaveTranslation appends v to the history, evicting the oldest entry first
// when the history is full.
func (t *Transform) SaveTranslation(v vmath.Vec2) {
	if t.HistoryDepth <= 0 {
		return
	}
	for len(t.History) >= t.HistoryDepth {
		copy(t.History, t.History[1:])
		t.History = t.History[:len(t.History)-1]
	}
	t.History = append(t.History, v)
}
