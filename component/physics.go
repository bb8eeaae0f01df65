package component

import (
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/vmath"
)

// Physics holds the kinematic state of an entity and its steering flags.
type Physics struct {
	ecs.Identity

	Velocity     vmath.Vec2
	Acceleration vmath.Vec2
	Force        vmath.Vec2
	Mass         float64
	VMin         float64
	VMax         float64

	Up, Down, Left, Right bool
}

// Vertical reports whether an up or down flag is set.
func (p *Physics) Vertical() bool {
	return p.Up || p.Down
}

// Horizontal reports whether a left or right flag is set.
func (p *Physics) Horizontal() bool {
	return p.Left || p.Right
}

// Steering returns the unit direction of the set flags; opposite flags cancel.
func (p *Physics) Steering() vmath.Vec2 {
	var d vmath.Vec2
	if p.Up {
		d.Y++
	}
	if p.Down {
		d.Y--
	}
	if p.Left {
		d.X--
	}
	if p.Right {
		d.X++
	}
	return d
}

// Brake clears every steering flag.
func (p *Physics) Brake() {
	p.Up, p.Down, p.Left, p.Right = false, false, false, false
}
