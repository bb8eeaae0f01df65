package render_test

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/render"
	"github.com/plus3/ecsloop/vmath"
)

var red = color.RGBA{R: 255, A: 255}

func newWorld(t *testing.T, opts render.Options) (*ecs.Storage, *ecs.Scheduler, *render.System) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	component.Register(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton[render.Options](storage, opts)
	ecs.NewSingleton[render.Screen](storage, render.Screen{Width: 800, Height: 600})

	scheduler := ecs.NewScheduler(storage)
	sys := render.New(0, "SYSTEM_RENDERER", nil)
	require.NoError(t, scheduler.Register(sys))
	return storage, scheduler, sys
}

func ball(t *testing.T, storage *ecs.Storage, id ecs.EntityId, translation vmath.Vec2, r float64, layer float64) *component.Transform {
	t.Helper()
	tr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, translation)
	_, err := storage.Spawn(id, "ball", tr,
		&component.Geometry{Shapes: []component.Shape{component.Circle{R: r}}, Color: red},
		component.NewScreenProjection(800, 600, 1, layer),
	)
	require.NoError(t, err)
	return tr
}

func noGrid() render.Options {
	opts := render.DefaultOptions()
	opts.Grid.Visible = false
	opts.HistoryVisible = false
	return opts
}

func TestToDevice(t *testing.T) {
	wide := component.NewScreenProjection(800, 600, 1, 0)

	p, r := render.ToDevice(vmath.V(0, -0.5), 2.0/12, wide)
	assert.True(t, p.Approx(vmath.V(400, 450), 1e-9), "got %v", p)
	assert.InDelta(t, 100, r, 1e-9)

	p, _ = render.ToDevice(vmath.V(0.5, 0), 0, wide)
	assert.True(t, p.Approx(vmath.V(550, 300), 1e-9), "got %v", p)

	tall := component.NewScreenProjection(600, 800, 1, 0)
	p, r = render.ToDevice(vmath.V(0, 0.5), 0.1, tall)
	assert.True(t, p.Approx(vmath.V(300, 400-200*0.75), 1e-9), "got %v", p)
	assert.InDelta(t, 60, r, 1e-9)
}

func TestSystemCircle(t *testing.T) {
	storage, scheduler, sys := newWorld(t, noGrid())
	ball(t, storage, 1, vmath.V(0, -0.5), 2.0/12, component.LayerPlayer)

	report := scheduler.Once(0)
	require.False(t, report.Failed(), "%v", report.Err())

	frame := sys.Frame()
	require.Equal(t, 1, frame.Count(render.KindCircle))
	require.Equal(t, 1, frame.Count(render.KindCrosshair))

	circle := frame.Items[0]
	assert.Equal(t, render.KindCircle, circle.Kind)
	assert.True(t, circle.Points[0].Approx(vmath.V(400, 450), 1e-9))
	assert.InDelta(t, 50, circle.Radius, 1e-9)
	assert.Equal(t, red, circle.Color)
	assert.Equal(t, 3.0, frame.Items[1].Radius)
}

func TestSystemScaleAndRotation(t *testing.T) {
	t.Run("scale averages both axes when enabled", func(t *testing.T) {
		storage, scheduler, sys := newWorld(t, noGrid())
		tr := ball(t, storage, 1, vmath.Vec2{}, 0.1, 0)
		tr.Scale = vmath.V(0.5, 1.5)

		scheduler.Once(0)
		assert.InDelta(t, 30, sys.Frame().Items[0].Radius, 1e-9)

		opts := ecs.ReadSingleton[render.Options](storage)
		opts.Scale = false
		scheduler.Once(0)
		assert.InDelta(t, 30, sys.Frame().Items[0].Radius, 1e-9)

		tr.Scale = vmath.V(0.5, 0.5)
		scheduler.Once(0)
		assert.InDelta(t, 30, sys.Frame().Items[0].Radius, 1e-9)
		opts.Scale = true
		scheduler.Once(0)
		assert.InDelta(t, 15, sys.Frame().Items[0].Radius, 1e-9)
	})

	t.Run("rotation about the origin uses both origin components", func(t *testing.T) {
		opts := noGrid()
		opts.Rotation = true
		storage, scheduler, sys := newWorld(t, opts)
		tr := ball(t, storage, 1, vmath.Vec2{}, 0.1, 0)
		tr.Origin = vmath.V(0.1, 0.2)
		tr.Rotation[component.Roll] = math.Pi / 2

		scheduler.Once(0)

		ro := math.Hypot(0.1, 0.2)
		want, _ := render.ToDevice(vmath.V(0.1, 0.2+ro), 0, component.NewScreenProjection(800, 600, 1, 0))
		assert.True(t, sys.Frame().Items[0].Points[0].Approx(want, 1e-9))
	})
}

func TestSystemLayers(t *testing.T) {
	storage, scheduler, sys := newWorld(t, noGrid())
	ball(t, storage, 1, vmath.Vec2{}, 0.1, component.LayerHUD)
	ball(t, storage, 2, vmath.Vec2{}, 0.1, component.LayerBackground)
	ball(t, storage, 3, vmath.Vec2{}, 0.1, component.LayerPlayer)

	scheduler.Once(0)

	var order []int
	for _, item := range sys.Frame().Items {
		if item.Kind == render.KindCircle {
			order = append(order, item.Entity)
		}
	}
	assert.Equal(t, []int{2, 3, 1}, order)
}

func TestSystemHistory(t *testing.T) {
	opts := noGrid()
	opts.HistoryVisible = true
	storage, scheduler, sys := newWorld(t, opts)
	tr := ball(t, storage, 1, vmath.Vec2{}, 0.1, 0)
	tr.HistoryStride = 2
	tr.HistoryDepth = 3

	for i := 0; i < 10; i++ {
		tr.Translation = vmath.V(float64(i)/10, 0)
		scheduler.Once(time.Millisecond)
	}

	// sampled on ticks 0, 2, 4, 6, 8; only the last three survive
	assert.Equal(t, []vmath.Vec2{vmath.V(0.4, 0), vmath.V(0.6, 0), vmath.V(0.8, 0)}, tr.History)
	assert.Equal(t, 3, sys.Frame().Count(render.KindPoint))
}

func TestSystemOtherShapes(t *testing.T) {
	storage, scheduler, sys := newWorld(t, noGrid())
	tr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, vmath.Vec2{})
	_, err := storage.Spawn(1, "shapes", tr,
		&component.Geometry{Shapes: []component.Shape{
			component.Point{P: vmath.V(0, 0)},
			component.Line{A: vmath.V(-0.5, 0), B: vmath.V(0.5, 0)},
			component.Box{Min: vmath.V(-0.1, -0.1), Max: vmath.V(0.1, 0.1)},
			component.Triangle{A: vmath.V(0, 0.1), B: vmath.V(-0.1, 0), C: vmath.V(0.1, 0)},
		}},
		component.NewScreenProjection(800, 600, 1, 0),
	)
	require.NoError(t, err)

	scheduler.Once(0)
	frame := sys.Frame()
	assert.Equal(t, 1, frame.Count(render.KindPoint))
	assert.Equal(t, 1, frame.Count(render.KindLine))
	assert.Equal(t, 1, frame.Count(render.KindTriangle))
	require.Equal(t, 1, frame.Count(render.KindRect))

	for _, item := range frame.Items {
		if item.Kind == render.KindRect {
			assert.Less(t, item.Points[0].X, item.Points[1].X)
			assert.Less(t, item.Points[0].Y, item.Points[1].Y)
		}
		if item.Kind == render.KindLine {
			assert.True(t, item.Points[0].Approx(vmath.V(250, 300), 1e-9), "got %v", item.Points[0])
		}
	}
}

func TestSystemGrid(t *testing.T) {
	opts := render.DefaultOptions()
	opts.Grid.MinorVisible = false
	opts.Grid.MajorX, opts.Grid.MajorY = 2, 1
	_, scheduler, sys := newWorld(t, opts)

	scheduler.Once(0)
	// 5 columns + 3 rows + 2 axes
	assert.Equal(t, 10, sys.Frame().Count(render.KindLine))
}

func TestSystemEmptyViewport(t *testing.T) {
	storage, scheduler, _ := newWorld(t, noGrid())
	tr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, vmath.Vec2{})
	_, err := storage.Spawn(1, "broken", tr,
		&component.Geometry{Shapes: []component.Shape{component.Circle{R: 1}}},
		&component.Projection{},
	)
	require.NoError(t, err)

	assert.True(t, scheduler.Once(0).Failed())
}

func TestDrawListClone(t *testing.T) {
	var d render.DrawList
	d.Reset(3, red)
	d.Items = append(d.Items, render.Item{Kind: render.KindPoint, Points: []vmath.Vec2{vmath.V(1, 1)}})

	c := d.Clone()
	d.Items[0].Points[0] = vmath.V(2, 2)
	assert.Equal(t, vmath.V(1, 1), c.Items[0].Points[0])
	assert.Equal(t, uint64(3), c.Tick)
	assert.Equal(t, "crosshair", render.KindCrosshair.String())
}
