package scene

import (
	"go.uber.org/zap"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
)

// ExampleSystem visits every entity with a Transform and a Projection and
// logs where it is. It is the minimal shape of a system.
type ExampleSystem struct {
	ecs.SystemInfo

	Entities ecs.Query[struct {
		ecs.EntityId
		*component.Transform
		*component.Projection
	}]

	Visited int
	logger  *zap.Logger
}

func NewExampleSystem(logger *zap.Logger) *ExampleSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExampleSystem{
		SystemInfo: ecs.NewSystemInfo(SystemExample, "SYSTEM_EXAMPLE"),
		logger:     logger,
	}
}

func (s *ExampleSystem) Execute(frame *ecs.UpdateFrame) error {
	s.Visited = 0
	for e := range s.Entities.Values() {
		s.Visited++
		if ce := s.logger.Check(zap.DebugLevel, "example tick"); ce != nil {
			ce.Write(
				zap.Uint64("tick", frame.Tick),
				zap.Int("entity", int(e.EntityId)),
				zap.Stringer("translation", e.Transform.Translation),
				zap.Float64("layer", e.Projection.Layer),
			)
		}
	}
	return nil
}
