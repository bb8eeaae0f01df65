package component

import (
	"image/color"

	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/vmath"
)

// Shape is one of Point, Line, Circle, Box or Triangle, in world units
// relative to the transform.
type Shape interface {
	// Extent is the characteristic size scaled by the renderer.
	Extent() float64
	shape()
}

type Point struct {
	P vmath.Vec2
}

type Line struct {
	A, B vmath.Vec2
}

type Circle struct {
	R float64
}

type Box struct {
	Min, Max vmath.Vec2
}

type Triangle struct {
	A, B, C vmath.Vec2
}

func (Point) Extent() float64      { return 0 }
func (l Line) Extent() float64     { return l.B.Sub(l.A).Magnitude() }
func (c Circle) Extent() float64   { return c.R }
func (b Box) Extent() float64      { return b.Max.Sub(b.Min).Magnitude() }
func (t Triangle) Extent() float64 { return t.B.Sub(t.A).Magnitude() }

func (Point) shape()    {}
func (Line) shape()     {}
func (Circle) shape()   {}
func (Box) shape()      {}
func (Triangle) shape() {}

// Geometry is the drawable outline of an entity.
type Geometry struct {
	ecs.Identity

	Shapes []Shape
	Color  color.RGBA
}
