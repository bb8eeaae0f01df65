package window

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/ecsloop/render"
	"github.com/plus3/ecsloop/vmath"
)

const (
	dashOn  = 4.0
	dashOff = 3.0
)

func drawItem(dst *ebiten.Image, item render.Item) {
	width := item.Width
	if width <= 0 {
		width = 1
	}

	switch item.Kind {
	case render.KindPoint:
		if len(item.Points) < 1 {
			return
		}
		p := item.Points[0]
		vector.DrawFilledRect(dst, float32(p.X), float32(p.Y), width, width, item.Color, false)

	case render.KindLine:
		if len(item.Points) < 2 {
			return
		}
		strokeLine(dst, item.Points[0], item.Points[1], width, item)

	case render.KindCircle:
		if len(item.Points) < 1 {
			return
		}
		c := item.Points[0]
		if item.Filled {
			vector.DrawFilledCircle(dst, float32(c.X), float32(c.Y), float32(item.Radius), item.Color, true)
		} else {
			vector.StrokeCircle(dst, float32(c.X), float32(c.Y), float32(item.Radius), width, item.Color, true)
		}

	case render.KindRect:
		if len(item.Points) < 2 {
			return
		}
		a, b := item.Points[0], item.Points[1]
		x, y := math.Min(a.X, b.X), math.Min(a.Y, b.Y)
		w, h := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
		if item.Filled {
			vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), item.Color, false)
		} else {
			vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), width, item.Color, false)
		}

	case render.KindTriangle:
		if len(item.Points) < 3 {
			return
		}
		for i := range 3 {
			strokeLine(dst, item.Points[i], item.Points[(i+1)%3], width, item)
		}

	case render.KindCrosshair:
		if len(item.Points) < 1 {
			return
		}
		c, r := item.Points[0], item.Radius
		strokeLine(dst, vmath.Vec2{X: c.X - r, Y: c.Y}, vmath.Vec2{X: c.X + r, Y: c.Y}, width, item)
		strokeLine(dst, vmath.Vec2{X: c.X, Y: c.Y - r}, vmath.Vec2{X: c.X, Y: c.Y + r}, width, item)
	}
}

func strokeLine(dst *ebiten.Image, a, b vmath.Vec2, width float32, item render.Item) {
	if !item.Dashed {
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, item.Color, true)
		return
	}
	for _, seg := range Dashes(a, b, dashOn, dashOff) {
		vector.StrokeLine(dst, float32(seg[0].X), float32(seg[0].Y), float32(seg[1].X), float32(seg[1].Y), width, item.Color, true)
	}
}

// Dashes splits the segment a-b into drawn pieces of length on separated by
// gaps of length off. The last piece is cut at b.
func Dashes(a, b vmath.Vec2, on, off float64) [][2]vmath.Vec2 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || on <= 0 {
		return nil
	}
	if off < 0 {
		off = 0
	}
	ux, uy := dx/length, dy/length

	var out [][2]vmath.Vec2
	for start := 0.0; start < length; start += on + off {
		end := math.Min(start+on, length)
		out = append(out, [2]vmath.Vec2{
			{X: a.X + ux*start, Y: a.Y + uy*start},
			{X: a.X + ux*end, Y: a.Y + uy*end},
		})
	}
	return out
}
