// Package vmath holds the small amount of 2D vector math the runtime needs.
package vmath

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector of float64 components.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Approx reports whether both components are within eps of o.
func (v Vec2) Approx(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Rect is an axis aligned box given by its minimum and maximum corners.
type Rect struct {
	Min, Max Vec2
}

// R builds a Rect from xmin, ymin, xmax, ymax.
func R(xmin, ymin, xmax, ymax float64) Rect {
	return Rect{Min: Vec2{xmin, ymin}, Max: Vec2{xmax, ymax}}
}

// Size returns Max - Min.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Scale(0.5)
}
