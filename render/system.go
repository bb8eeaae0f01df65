package render

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/vmath"
)

type renderable struct {
	ecs.EntityId
	*component.Transform
	*component.Geometry
	*component.Projection
}

// System projects every enabled entity with a Transform, a Geometry and a
// Projection into its DrawList, farthest layer first, and samples each
// transform's translation history.
type System struct {
	ecs.SystemInfo

	Entities ecs.Query[renderable]
	Options  ecs.Singleton[Options]
	Screen   ecs.Singleton[Screen]

	frame  DrawList
	order  []renderable
	ticks  uint64
	logger *zap.Logger
}

// New creates a projection system.
func New(id int, name string, logger *zap.Logger) *System {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &System{
		SystemInfo: ecs.NewSystemInfo(id, name),
		logger:     logger,
	}
}

// Frame returns the draw list built by the last Execute. It is reused by the
// next Execute; callers that keep it must Clone it.
func (s *System) Frame() *DrawList {
	return &s.frame
}

func (s *System) Execute(frame *ecs.UpdateFrame) error {
	opts := DefaultOptions()
	if o := s.Options.Get(); o != nil {
		opts = *o
	}

	s.frame.Reset(frame.Tick, opts.Background)
	if screen := s.Screen.Get(); screen != nil {
		appendGrid(&s.frame, *screen, opts.Grid)
	}

	s.order = s.order[:0]
	for item := range s.Entities.Values() {
		s.order = append(s.order, item)
	}
	sort.SliceStable(s.order, func(i, j int) bool {
		return s.order[i].Projection.Layer > s.order[j].Projection.Layer
	})

	var failed []string
	for _, e := range s.order {
		if err := s.renderEntity(e, opts); err != nil {
			failed = append(failed, fmt.Sprintf("%d: %v", e.EntityId, err))
		}
	}
	s.ticks++

	if len(failed) > 0 {
		return fmt.Errorf("render: %d entities skipped: %v", len(failed), failed)
	}
	return nil
}

func (s *System) renderEntity(e renderable, opts Options) error {
	if e.Projection.ScreenSize().X <= 0 || e.Projection.ScreenSize().Y <= 0 {
		return fmt.Errorf("empty viewport %v", e.Projection.Viewport)
	}

	if opts.HistoryVisible {
		for _, h := range e.Transform.History {
			p, _ := ToDevice(h, 0, e.Projection)
			s.frame.add(Item{
				Kind:   KindPoint,
				Points: []vmath.Vec2{p},
				Color:  e.Geometry.Color,
				Width:  1,
				Layer:  e.Projection.Layer,
				Entity: int(e.EntityId),
			})
		}
	}

	stride := e.Transform.HistoryStride
	if stride <= 0 {
		stride = 1
	}
	if s.ticks%uint64(stride) == 0 {
		e.Transform.SaveTranslation(e.Transform.Translation)
	}

	if !opts.GeometryVisible || len(e.Geometry.Shapes) == 0 {
		return nil
	}

	anchor, k := placement(e.Transform, opts.Rotation, opts.Scale)
	for _, shape := range e.Geometry.Shapes {
		s.renderShape(e, shape, anchor, k, opts)
	}
	return nil
}

func (s *System) renderShape(e renderable, shape component.Shape, anchor vmath.Vec2, k float64, opts Options) {
	base := Item{
		Color:  e.Geometry.Color,
		Width:  1,
		Layer:  e.Projection.Layer,
		Entity: int(e.EntityId),
	}
	vertex := func(v vmath.Vec2) vmath.Vec2 {
		p, _ := ToDevice(anchor.Add(v.Scale(k)), 0, e.Projection)
		return p
	}

	switch sh := shape.(type) {
	case component.Circle:
		center, diameter := ToDevice(anchor, sh.R*k, e.Projection)
		circle := base
		circle.Kind = KindCircle
		circle.Points = []vmath.Vec2{center}
		circle.Radius = diameter / 2
		s.frame.add(circle)

		cross := base
		cross.Kind = KindCrosshair
		cross.Points = []vmath.Vec2{center}
		cross.Radius = opts.CrosshairSize / 2
		s.frame.add(cross)

	case component.Point:
		item := base
		item.Kind = KindPoint
		item.Points = []vmath.Vec2{vertex(sh.P)}
		s.frame.add(item)

	case component.Line:
		item := base
		item.Kind = KindLine
		item.Points = []vmath.Vec2{vertex(sh.A), vertex(sh.B)}
		s.frame.add(item)

	case component.Box:
		a, b := vertex(sh.Min), vertex(sh.Max)
		item := base
		item.Kind = KindRect
		item.Points = []vmath.Vec2{
			vmath.V(min(a.X, b.X), min(a.Y, b.Y)),
			vmath.V(max(a.X, b.X), max(a.Y, b.Y)),
		}
		s.frame.add(item)

	case component.Triangle:
		item := base
		item.Kind = KindTriangle
		item.Points = []vmath.Vec2{vertex(sh.A), vertex(sh.B), vertex(sh.C)}
		s.frame.add(item)

	default:
		s.logger.Warn("unsupported shape", zap.Int("entity", int(e.EntityId)), zap.String("shape", fmt.Sprintf("%T", shape)))
	}
}
