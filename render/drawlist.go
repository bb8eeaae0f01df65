// Package render projects world-space geometry into device-space draw lists.
package render

import (
	"image/color"

	"github.com/plus3/ecsloop/vmath"
)

// Kind identifies a drawing primitive.
type Kind uint8

const (
	KindPoint Kind = iota
	KindLine
	KindCircle
	KindRect
	KindTriangle
	KindCrosshair
)

var kindNames = [...]string{"point", "line", "circle", "rect", "triangle", "crosshair"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Item is one device-space primitive. Points holds one vertex for points,
// circles and crosshairs, two for lines and rects, three for triangles.
type Item struct {
	Kind   Kind
	Points []vmath.Vec2
	// Radius of a circle, or half the arm length of a crosshair.
	Radius float64
	Color  color.RGBA
	Width  float32
	Filled bool
	Dashed bool
	Layer  float64
	Entity int
}

// DrawList is everything produced for one presented frame, in paint order.
type DrawList struct {
	Tick       uint64
	Background color.RGBA
	Items      []Item
}

// Reset empties the list keeping its capacity.
func (d *DrawList) Reset(tick uint64, background color.RGBA) {
	d.Tick = tick
	d.Background = background
	clear(d.Items)
	d.Items = d.Items[:0]
}

func (d *DrawList) add(item Item) {
	d.Items = append(d.Items, item)
}

// Clone returns a deep copy that can be handed to another goroutine.
func (d *DrawList) Clone() *DrawList {
	out := &DrawList{
		Tick:       d.Tick,
		Background: d.Background,
		Items:      make([]Item, len(d.Items)),
	}
	for i, item := range d.Items {
		item.Points = append([]vmath.Vec2(nil), item.Points...)
		out.Items[i] = item
	}
	return out
}

// Count returns how many items of kind k the list holds.
func (d *DrawList) Count(k Kind) int {
	n := 0
	for _, item := range d.Items {
		if item.Kind == k {
			n++
		}
	}
	return n
}
