package physics

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
)

// ErrNonFinite is returned when an entity's state stops being a finite number.
var ErrNonFinite = errors.New("non-finite physics state")

// System applies a friction Policy to every enabled entity holding a
// Transform and a Physics component.
type System struct {
	ecs.SystemInfo

	Policy    Policy
	Constants Constants

	Entities ecs.Query[struct {
		ecs.EntityId
		*component.Transform
		*component.Physics
	}]

	filter func(ecs.EntityId) bool
	logger *zap.Logger
}

// Option configures a System.
type Option func(*System)

// WithConstants overrides the default tuning.
func WithConstants(c Constants) Option {
	return func(s *System) {
		s.Constants = c
	}
}

// WithFilter restricts the system to the entities accepted by keep, so that
// several systems with different policies can share the scene.
func WithFilter(keep func(ecs.EntityId) bool) Option {
	return func(s *System) {
		s.filter = keep
	}
}

// WithLogger sets the logger used for per-entity debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a physics system using policy.
func New(id int, name string, policy Policy, opts ...Option) *System {
	s := &System{
		SystemInfo: ecs.NewSystemInfo(id, name),
		Policy:     policy,
		Constants:  DefaultConstants(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute integrates every matching entity over the previous tick.
// Entities whose state turns non-finite are reported but do not stop the rest.
func (s *System) Execute(frame *ecs.UpdateFrame) error {
	if s.Policy == nil {
		return errors.New("physics: no friction policy")
	}
	t := frame.Millis()

	var errs []error
	for id, e := range s.Entities.Iter() {
		if s.filter != nil && !s.filter(id) {
			continue
		}
		s.Policy.Step(e.Transform, e.Physics, t, s.Constants)

		if !finite(e.Transform.Translation.X, e.Transform.Translation.Y, e.Physics.Acceleration.X, e.Physics.Acceleration.Y) {
			errs = append(errs, fmt.Errorf("entity %d: %w", id, ErrNonFinite))
			continue
		}

		if ce := s.logger.Check(zap.DebugLevel, "physics step"); ce != nil {
			ce.Write(
				zap.Int("entity", int(id)),
				zap.String("policy", s.Policy.Name()),
				zap.Stringer("translation", e.Transform.Translation),
				zap.Stringer("velocity", e.Physics.Velocity),
			)
		}
	}
	return errors.Join(errs...)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
