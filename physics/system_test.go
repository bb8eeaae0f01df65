package physics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/physics"
	"github.com/plus3/ecsloop/vmath"
)

func newWorld(t *testing.T) (*ecs.Storage, *ecs.Scheduler) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	component.Register(registry)
	storage := ecs.NewStorage(registry)
	return storage, ecs.NewScheduler(storage)
}

func TestSystem(t *testing.T) {
	t.Run("integrates matching entities only", func(t *testing.T) {
		storage, scheduler := newWorld(t)
		tr, ph := newBody()
		ph.Right = true
		_, err := storage.Spawn(1, "ball", tr, ph)
		require.NoError(t, err)

		still := component.NewTransform(vmath.Vec2{}, vmath.V(1, 1), [3]float64{}, vmath.Vec2{})
		_, err = storage.Spawn(2, "static", still)
		require.NoError(t, err)

		sys := physics.New(0, "SYSTEM_PHYSICS_ENGINE", physics.DirectionalAmplified{})
		require.NoError(t, scheduler.Register(sys))

		report := scheduler.Once(0)
		require.False(t, report.Failed())
		report = scheduler.Once(10 * time.Millisecond)
		require.False(t, report.Failed())

		assert.Greater(t, tr.Translation.X, 0.0)
		assert.Equal(t, vmath.Vec2{}, still.Translation)
	})

	t.Run("filter restricts the entities", func(t *testing.T) {
		storage, scheduler := newWorld(t)
		blueTr, blue := newBody()
		blue.Acceleration = vmath.V(1, 0)
		redTr, red := newBody()
		red.Acceleration = vmath.V(1, 0)
		_, err := storage.Spawn(1, "red", redTr, red)
		require.NoError(t, err)
		_, err = storage.Spawn(3, "blue", blueTr, blue)
		require.NoError(t, err)

		isRed := func(id ecs.EntityId) bool { return id == 1 }
		require.NoError(t, scheduler.Register(physics.New(2, "collider", physics.SymmetricClamped{},
			physics.WithFilter(isRed))))

		scheduler.Once(10 * time.Millisecond)

		assert.Greater(t, redTr.Translation.X, 0.0)
		assert.Equal(t, vmath.Vec2{}, blueTr.Translation)
		assert.Equal(t, vmath.V(1, 0), blue.Acceleration)
	})

	t.Run("disabled entities are left alone", func(t *testing.T) {
		storage, scheduler := newWorld(t)
		tr, ph := newBody()
		ph.Acceleration = vmath.V(1, 0)
		e, err := storage.Spawn(1, "ball", tr, ph)
		require.NoError(t, err)
		e.Enabled = false

		require.NoError(t, scheduler.Register(physics.New(0, "collider", physics.SymmetricClamped{})))
		scheduler.Once(10 * time.Millisecond)
		assert.Equal(t, vmath.Vec2{}, tr.Translation)
	})

	t.Run("non-finite state is reported", func(t *testing.T) {
		storage, scheduler := newWorld(t)
		tr, ph := newBody()
		ph.Acceleration = vmath.V(1e308, 0)
		_, err := storage.Spawn(1, "runaway", tr, ph)
		require.NoError(t, err)

		require.NoError(t, scheduler.Register(physics.New(0, "collider", physics.SymmetricClamped{})))
		report := scheduler.Once(time.Second)
		require.Len(t, report.SystemErrors, 1)
		assert.ErrorIs(t, report.Err(), physics.ErrNonFinite)
	})

	t.Run("missing policy fails the system", func(t *testing.T) {
		_, scheduler := newWorld(t)
		require.NoError(t, scheduler.Register(physics.New(0, "broken", nil)))
		assert.True(t, scheduler.Once(0).Failed())
	})
}
