// Package physics advances Transform/Physics pairs once per tick.
package physics

import (
	"fmt"
	"math"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/vmath"
)

// ScreenHeight is the reference height the default constants are tuned for.
const ScreenHeight = 600.0

// Constants are the tuning values of a friction policy. Times are in
// milliseconds, so Acceleration is added per tick and Friction removed per tick.
type Constants struct {
	Acceleration float64
	Friction     float64
	Amplifier    float64
}

// DefaultConstants returns the tuning used by the scene.
func DefaultConstants() Constants {
	return Constants{
		Acceleration: 0.001 / ScreenHeight,
		Friction:     0.0001 / ScreenHeight,
		Amplifier:    4,
	}
}

// Policy integrates one entity for one tick of t milliseconds.
type Policy interface {
	Name() string
	Step(tr *component.Transform, ph *component.Physics, t float64, c Constants)
}

const (
	PolicySymmetric   = "symmetric"
	PolicyDirectional = "directional"
)

// PolicyByName returns the policy registered under name.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicySymmetric:
		return SymmetricClamped{}, nil
	case PolicyDirectional:
		return DirectionalAmplified{}, nil
	}
	return nil, fmt.Errorf("unknown friction policy %q", name)
}

// SymmetricClamped adds the steering acceleration, integrates, then removes
// Friction from each axis of the acceleration without letting it change sign.
type SymmetricClamped struct{}

func (SymmetricClamped) Name() string { return PolicySymmetric }

func (SymmetricClamped) Step(tr *component.Transform, ph *component.Physics, t float64, c Constants) {
	a := baseAcceleration(ph)
	a = a.Add(ph.Steering().Scale(c.Acceleration))

	v := a.Scale(t)
	d := v.Scale(t)

	a.X = clampedFriction(a.X, c.Friction)
	a.Y = clampedFriction(a.Y, c.Friction)

	store(tr, ph, a, v, d)
}

// DirectionalAmplified accelerates toward the steering direction while the
// speed is under VMax per millisecond and decelerates once over it. While
// steering, friction on the axis across the input is multiplied by Amplifier.
type DirectionalAmplified struct{}

func (DirectionalAmplified) Name() string { return PolicyDirectional }

func (DirectionalAmplified) Step(tr *component.Transform, ph *component.Physics, t float64, c Constants) {
	a := baseAcceleration(ph)
	v := a.Scale(t)

	// On the first tick t is zero and the ceiling is unbounded.
	ceiling := math.Inf(1)
	if t != 0 {
		ceiling = ph.VMax / t
	}

	push := ph.Steering().Scale(c.Acceleration)
	if v.Magnitude() < ceiling {
		a = a.Add(push)
	} else {
		a = a.Sub(push)
	}

	d := v.Scale(t)

	p := c.Friction
	switch {
	case ph.Vertical():
		a.X = friction(a.X, p*c.Amplifier)
		a.Y = friction(a.Y, p)
	case ph.Horizontal():
		a.X = friction(a.X, p)
		a.Y = friction(a.Y, p*c.Amplifier)
	default:
		a.X = clampedFriction(a.X, p)
		a.Y = clampedFriction(a.Y, p)
	}

	store(tr, ph, a, v, d)
}

// baseAcceleration is the stored acceleration plus Force/Mass for entities
// with a positive mass.
func baseAcceleration(ph *component.Physics) vmath.Vec2 {
	a := ph.Acceleration
	if ph.Mass > 0 && !ph.Force.IsZero() {
		a = a.Add(ph.Force.Scale(1 / ph.Mass))
	}
	return a
}

func store(tr *component.Transform, ph *component.Physics, a, v, d vmath.Vec2) {
	if ph.VMin > 0 && v.Magnitude() < ph.VMin {
		v = vmath.Vec2{}
	}
	ph.Acceleration = a
	ph.Velocity = v
	tr.Translation = tr.Translation.Add(d)
}

// friction raises a negative x by p, then lowers a positive x by p. A positive
// x may cross zero; a negative x within p of zero ends where it started.
func friction(x, p float64) float64 {
	if x < 0 {
		x += p
	}
	if x > 0 {
		x -= p
	}
	return x
}

// clampedFriction moves x toward zero by p and stops at zero.
func clampedFriction(x, p float64) float64 {
	switch {
	case x > 0:
		return math.Max(x-p, 0)
	case x < 0:
		return math.Min(x+p, 0)
	}
	return x
}
