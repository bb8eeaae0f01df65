package render

import "image/color"

// Options toggle parts of the projection pipeline. They live in the storage
// as a singleton so the debug overlay can flip them while the loop runs.
type Options struct {
	Rotation        bool
	Scale           bool
	GeometryVisible bool
	HistoryVisible  bool
	Grid            GridOptions
	CrosshairSize   float64
	Background      color.RGBA
}

// GridOptions describe the background grid. Subdivisions count cells on each
// side of an axis.
type GridOptions struct {
	Visible      bool
	AxisVisible  bool
	MajorVisible bool
	MinorVisible bool
	MajorX       int
	MajorY       int
	MinorX       int
	MinorY       int
	AxisColor    color.RGBA
	MajorColor   color.RGBA
	MinorColor   color.RGBA
}

// Screen is the size of the output surface in pixels.
type Screen struct {
	Width, Height float64
}

var darkGray = color.RGBA{R: 64, G: 64, B: 64, A: 255}

// DefaultOptions mirrors the shipped settings file.
func DefaultOptions() Options {
	return Options{
		Rotation:        false,
		Scale:           true,
		GeometryVisible: true,
		HistoryVisible:  true,
		CrosshairSize:   6,
		Background:      color.RGBA{A: 255},
		Grid: GridOptions{
			Visible:      true,
			AxisVisible:  true,
			MajorVisible: true,
			MinorVisible: true,
			MajorX:       2,
			MajorY:       2,
			MinorX:       8,
			MinorY:       8,
			AxisColor:    darkGray,
			MajorColor:   darkGray,
			MinorColor:   darkGray,
		},
	}
}
