package render

import (
	"math"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/vmath"
)

// placement is the world-space position of a shape's anchor and the factor
// applied to its size, before the projection to device space.
func placement(tr *component.Transform, rotate, scale bool) (vmath.Vec2, float64) {
	var p vmath.Vec2
	if rotate {
		o := tr.Origin
		ro := o.Magnitude()
		a := tr.Rotation[component.Roll]
		p = vmath.V(o.X+ro*math.Cos(a), o.Y+ro*math.Sin(a))
	}

	k := 1.0
	if scale {
		k = (tr.Scale.X + tr.Scale.Y) / 2
	}

	return p.Add(tr.Translation), k
}

// ToDevice maps a world position and a world length to device space using the
// projection: half-screen scaling with Y inverted, aspect correction on the
// dominant axis, then the projection's screen origin.
func ToDevice(p vmath.Vec2, r float64, proj *component.Projection) (vmath.Vec2, float64) {
	screen := proj.ScreenSize()

	p.X *= screen.X / 2
	p.Y *= -screen.Y / 2

	r *= math.Min(screen.X, screen.Y)

	ratio := proj.AspectRatio()
	if proj.Aspect.X >= proj.Aspect.Y {
		p.X *= ratio
	} else {
		p.Y /= ratio
	}

	return p.Add(proj.Origin), r
}
