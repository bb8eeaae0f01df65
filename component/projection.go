package component

import (
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/vmath"
)

// Draw layers. Larger values are farther from the viewer and drawn first.
const (
	LayerHUD         = 0.0
	LayerForeground  = 0.1
	LayerContainers  = 1.1
	LayerProjectiles = 2.1
	LayerPlayer      = 3.1
	LayerAI          = 4.1
	LayerMidground   = 5.1
	LayerBackground  = 6.1
)

// Projection maps an entity from world space to device space.
type Projection struct {
	ecs.Identity

	Window   vmath.Rect
	Origin   vmath.Vec2
	Scale    vmath.Vec2
	Viewport vmath.Rect
	Aspect   vmath.Vec2
	Layer    float64
}

// NewScreenProjection returns the projection used for a w by h screen: a unit
// world window centred on the screen, the Y axis pointing up.
func NewScreenProjection(w, h, zoom, layer float64) *Projection {
	return &Projection{
		Window:   vmath.R(-1, -1, 1, 1),
		Origin:   vmath.V(w/2, h/2),
		Scale:    vmath.V(zoom, -zoom),
		Viewport: vmath.R(0, 0, w, h),
		Aspect:   vmath.V(w, h),
		Layer:    layer,
	}
}

// AspectRatio returns Aspect.Y / Aspect.X, or 1 when Aspect.X is zero.
func (p *Projection) AspectRatio() float64 {
	if p.Aspect.X == 0 {
		return 1
	}
	return p.Aspect.Y / p.Aspect.X
}

// ScreenSize is the size of the viewport.
func (p *Projection) ScreenSize() vmath.Vec2 {
	return p.Viewport.Size()
}
