// Package scene builds the demo world: its component registry, entities,
// singletons and systems.
package scene

import (
	"fmt"
	"image/color"
	"io"

	"go.uber.org/zap"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/config"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/input"
	"github.com/plus3/ecsloop/physics"
	"github.com/plus3/ecsloop/render"
	"github.com/plus3/ecsloop/vmath"
)

// Entity ids.
const (
	EntityExample ecs.EntityId = iota
	EntityBallRed
	EntityBallGreen
	EntityBallBlue
)

// System ids, in registration order.
const (
	SystemExample = iota
	SystemPhysics
	SystemCollider
	SystemRenderer
	// SystemDebugSnapshot is registered by the debug overlay, when enabled.
	SystemDebugSnapshot
)

var (
	colorRed   = color.RGBA{R: 255, A: 255}
	colorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Scene is a fully wired world, ready to be driven by an engine.
type Scene struct {
	Types     component.Types
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	Example  *ExampleSystem
	Physics  *physics.System
	Collider *physics.System
	Renderer *render.System

	settings *config.Settings
}

// New builds the scene described by settings. The player ball is moved by
// the configured policy; the red ball by the collider policy.
func New(settings *config.Settings, logger *zap.Logger) (*Scene, error) {
	if settings == nil {
		settings = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := ecs.NewComponentRegistry()
	sc := &Scene{
		Types:    component.Register(registry),
		Storage:  ecs.NewStorage(registry),
		settings: settings,
	}
	sc.Scheduler = ecs.NewScheduler(sc.Storage, ecs.WithLogger(logger.Named("scheduler")))

	ecs.NewSingleton[render.Options](sc.Storage, settings.RenderOptions())
	ecs.NewSingleton[render.Screen](sc.Storage, settings.ScreenSize())

	if err := sc.spawnEntities(); err != nil {
		return nil, err
	}
	if err := sc.registerSystems(logger); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scene) projection() *component.Projection {
	s := sc.settings.Screen
	return component.NewScreenProjection(float64(s.Width), float64(s.Height), s.Zoom, component.LayerPlayer)
}

func (sc *Scene) transform(translation vmath.Vec2) *component.Transform {
	tr := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, translation)
	tr.HistoryDepth = sc.settings.Render.HistoryDepth
	tr.HistoryStride = sc.settings.Render.HistoryStride
	return tr
}

func (sc *Scene) spawnEntities() error {
	spawns := []struct {
		id         ecs.EntityId
		name       string
		components []ecs.Component
	}{
		{EntityExample, "ENTITY_EXAMPLE", []ecs.Component{
			sc.transform(vmath.Vec2{}),
			sc.projection(),
		}},
		{EntityBallRed, "ENTITY_BALL_RED", []ecs.Component{
			sc.transform(vmath.V(0, -0.5)),
			&component.Physics{Mass: 1},
			&component.Geometry{Shapes: []component.Shape{component.Circle{R: 2.0 / 12.0}}, Color: colorRed},
			sc.projection(),
		}},
		// Green has no geometry and is never drawn.
		{EntityBallGreen, "ENTITY_BALL_GREEN", []ecs.Component{
			sc.transform(vmath.Vec2{}),
			&component.Physics{},
			sc.projection(),
		}},
		{EntityBallBlue, "ENTITY_BALL_BLUE", []ecs.Component{
			sc.transform(vmath.Vec2{}),
			&component.Physics{Mass: 1, VMax: 0.01},
			&component.Geometry{Shapes: []component.Shape{component.Circle{R: 1.0 / 12.0}}, Color: colorWhite},
			sc.projection(),
		}},
	}

	for _, s := range spawns {
		if _, err := sc.Storage.Spawn(s.id, s.name, s.components...); err != nil {
			return fmt.Errorf("spawn %s: %w", s.name, err)
		}
	}
	return nil
}

// SpawnBall adds a drawn, physics driven ball. Used to load the scene with
// extra entities; ids must not collide with the fixed ones.
func (sc *Scene) SpawnBall(id ecs.EntityId, name string, at, velocity vmath.Vec2, radius float64, c color.RGBA) (*ecs.Entity, error) {
	return sc.Storage.Spawn(id, name,
		sc.transform(at),
		&component.Physics{Mass: 1, Velocity: velocity},
		&component.Geometry{Shapes: []component.Shape{component.Circle{R: radius}}, Color: c},
		sc.projection(),
	)
}

func (sc *Scene) registerSystems(logger *zap.Logger) error {
	policy, err := physics.PolicyByName(sc.settings.Physics.Policy)
	if err != nil {
		return err
	}
	colliderPolicy, err := physics.PolicyByName(sc.settings.Physics.ColliderPolicy)
	if err != nil {
		return err
	}
	constants := sc.settings.Constants()
	collides := func(id ecs.EntityId) bool { return id == EntityBallRed }

	sc.Example = NewExampleSystem(logger.Named("example"))
	sc.Physics = physics.New(SystemPhysics, "SYSTEM_PHYSICS_ENGINE", policy,
		physics.WithConstants(constants),
		physics.WithFilter(func(id ecs.EntityId) bool { return !collides(id) }),
		physics.WithLogger(logger.Named("physics")),
	)
	sc.Collider = physics.New(SystemCollider, "SYSTEM_COLLIDER", colliderPolicy,
		physics.WithConstants(constants),
		physics.WithFilter(collides),
		physics.WithLogger(logger.Named("collider")),
	)
	sc.Renderer = render.New(SystemRenderer, "SYSTEM_RENDERER", logger.Named("render"))

	for _, sys := range []ecs.System{sc.Example, sc.Physics, sc.Collider, sc.Renderer} {
		if err := sc.Scheduler.Register(sys); err != nil {
			return err
		}
	}
	return nil
}

// Players returns the entities steered by the default key bindings.
func (sc *Scene) Players() input.Players {
	return input.Players{
		Storage: sc.Storage,
		Blue:    EntityBallBlue,
		Red:     EntityBallRed,
		FireKey: sc.settings.FireKey(),
	}
}

// Options returns the live render options singleton.
func (sc *Scene) Options() *render.Options {
	return ecs.ReadSingleton[render.Options](sc.Storage)
}

// Describe writes the systems and entities of the scene.
func (sc *Scene) Describe(w io.Writer) error {
	return sc.Scheduler.Describe(w)
}
