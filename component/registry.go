package component

import "github.com/plus3/ecsloop/ecs"

// Identity ids given to the scene's component records.
const (
	IDTransform = iota
	IDPhysics
	IDProjection
	IDGeometry
)

// Types holds the component type ids issued by a registry.
type Types struct {
	Transform  ecs.ComponentType
	Physics    ecs.ComponentType
	Projection ecs.ComponentType
	Geometry   ecs.ComponentType
}

// Register registers every component record with r in a fixed order and
// returns the issued ids.
func Register(r *ecs.ComponentRegistry) Types {
	return Types{
		Transform:  ecs.RegisterComponent[Transform](r),
		Physics:    ecs.RegisterComponent[Physics](r),
		Projection: ecs.RegisterComponent[Projection](r),
		Geometry:   ecs.RegisterComponent[Geometry](r),
	}
}

// Motion is the capability set of the physics systems.
func (t Types) Motion() ecs.Bitmask {
	return ecs.MaskOf(t.Transform, t.Physics)
}

// Renderable is the capability set of the projection system.
func (t Types) Renderable() ecs.Bitmask {
	return ecs.MaskOf(t.Transform, t.Geometry, t.Projection)
}
