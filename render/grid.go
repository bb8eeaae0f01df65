package render

import "github.com/plus3/ecsloop/vmath"

// appendGrid adds the minor, major and axis lines covering screen. Grid lines
// sit behind every layer.
func appendGrid(d *DrawList, screen Screen, g GridOptions) {
	if !g.Visible || screen.Width <= 0 || screen.Height <= 0 {
		return
	}
	if g.MinorVisible {
		gridLines(d, screen, g.MinorX, g.MinorY, Item{Color: g.MinorColor, Width: 1, Dashed: true})
	}
	if g.MajorVisible {
		gridLines(d, screen, g.MajorX, g.MajorY, Item{Color: g.MajorColor, Width: 1})
	}
	if g.AxisVisible {
		c := vmath.V(screen.Width/2, screen.Height/2)
		style := Item{Kind: KindLine, Color: g.AxisColor, Width: 3, Layer: gridLayer}
		style.Points = []vmath.Vec2{vmath.V(0, c.Y), vmath.V(screen.Width, c.Y)}
		d.add(style)
		style.Points = []vmath.Vec2{vmath.V(c.X, 0), vmath.V(c.X, screen.Height)}
		d.add(style)
	}
}

const gridLayer = 1e9

// gridLines adds 2*nx+1 vertical and 2*ny+1 horizontal lines so each half of
// an axis gets n cells.
func gridLines(d *DrawList, screen Screen, nx, ny int, style Item) {
	style.Kind = KindLine
	style.Layer = gridLayer

	if nx > 0 {
		cols := 2 * nx
		w := screen.Width / float64(cols)
		for i := 0; i <= cols; i++ {
			x := w * float64(i)
			style.Points = []vmath.Vec2{vmath.V(x, 0), vmath.V(x, screen.Height)}
			d.add(style)
		}
	}
	if ny > 0 {
		rows := 2 * ny
		h := screen.Height / float64(rows)
		for i := 0; i <= rows; i++ {
			y := h * float64(i)
			style.Points = []vmath.Vec2{vmath.V(0, y), vmath.V(screen.Width, y)}
			d.add(style)
		}
	}
}
