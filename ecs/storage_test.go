package ecs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/ecs"
)

func TestEntityComponents(t *testing.T) {
	_, types := newTestRegistry()

	t.Run("add overwrites same type", func(t *testing.T) {
		e := ecs.NewEntity(1, "ball")
		e.AddComponent(types.Position, &Position{X: 1})
		e.AddComponent(types.Position, &Position{X: 2})

		c, ok := e.GetComponent(types.Position)
		require.True(t, ok)
		assert.Equal(t, float32(2), c.(*Position).X)
		assert.Len(t, e.ComponentTypes(), 1)
	})

	t.Run("absent component", func(t *testing.T) {
		e := ecs.NewEntity(1, "ball")
		c, ok := e.GetComponent(types.Health)
		assert.False(t, ok)
		assert.Nil(t, c)
	})

	t.Run("has components is a superset check", func(t *testing.T) {
		e := ecs.NewEntity(1, "ball")
		e.AddComponent(types.Position, &Position{})
		e.AddComponent(types.Velocity, &Velocity{})

		assert.True(t, e.HasComponents(ecs.MaskOf(types.Position)))
		assert.True(t, e.HasComponents(ecs.MaskOf(types.Position, types.Velocity)))
		assert.True(t, e.HasComponents(ecs.MaskOf(types.Velocity, types.Velocity, types.Velocity)))
		assert.True(t, e.HasComponents(nil))
		assert.False(t, e.HasComponents(ecs.MaskOf(types.Position, types.Health)))
	})

	t.Run("has components implies get component", func(t *testing.T) {
		e := ecs.NewEntity(7, "")
		e.AddComponent(types.Health, &Health{})
		e.AddComponent(types.Name, &Name{})
		required := ecs.MaskOf(types.Health, types.Name, types.Health)

		require.True(t, e.HasComponents(required))
		for _, typ := range required.Types() {
			_, ok := e.GetComponent(typ)
			assert.True(t, ok, "type %d", typ)
		}
	})
}

func TestStorage(t *testing.T) {
	t.Run("spawn and lookup", func(t *testing.T) {
		registry, types := newTestRegistry()
		storage := ecs.NewStorage(registry)

		e, err := storage.Spawn(10, "ENTITY_BALL_RED", &Position{X: 1, Y: 2}, &Velocity{DX: 3})
		require.NoError(t, err)
		assert.Equal(t, ecs.EntityId(10), e.Id())
		assert.True(t, e.Enabled)

		got, ok := storage.Entity(10)
		require.True(t, ok)
		assert.Same(t, e, got)

		c, ok := storage.GetComponent(10, types.Velocity)
		require.True(t, ok)
		assert.Equal(t, float32(3), c.(*Velocity).DX)

		pos := ecs.ReadComponent[Position](storage, 10)
		require.NotNil(t, pos)
		assert.Equal(t, float32(2), pos.Y)

		assert.Nil(t, ecs.ReadComponent[Health](storage, 10))
		assert.Nil(t, ecs.ReadComponent[Position](storage, 11))
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		registry, _ := newTestRegistry()
		storage := ecs.NewStorage(registry)

		mustSpawn(storage, 1, &Position{})
		_, err := storage.Spawn(1, "again", &Position{})
		assert.True(t, errors.Is(err, ecs.ErrDuplicateEntity))
		assert.Equal(t, 1, storage.Len())
	})

	t.Run("unregistered component types are rejected", func(t *testing.T) {
		registry := ecs.NewComponentRegistry()
		ecs.RegisterComponent[Position](registry)
		storage := ecs.NewStorage(registry)

		_, err := storage.Spawn(1, "", &Position{}, &Health{})
		assert.True(t, errors.Is(err, ecs.ErrUnregisteredComponent))
		assert.Equal(t, 0, storage.Len())

		mustSpawn(storage, 2, &Position{})
		assert.True(t, errors.Is(storage.AddComponent(2, &Health{}), ecs.ErrUnregisteredComponent))
		assert.True(t, errors.Is(storage.AddComponent(3, &Position{}), ecs.ErrUnknownEntity))
	})

	t.Run("entities iterate in insertion order", func(t *testing.T) {
		registry, _ := newTestRegistry()
		storage := ecs.NewStorage(registry)
		for _, id := range []ecs.EntityId{5, 1, 9, 3} {
			mustSpawn(storage, id, &Position{})
		}

		var ids []ecs.EntityId
		for e := range storage.Entities() {
			ids = append(ids, e.Id())
		}
		assert.Equal(t, []ecs.EntityId{5, 1, 9, 3}, ids)
	})

	t.Run("match follows structural changes", func(t *testing.T) {
		registry, types := newTestRegistry()
		storage := ecs.NewStorage(registry)
		mustSpawn(storage, 1, &Position{}, &Velocity{})
		mustSpawn(storage, 2, &Position{})

		required := ecs.MaskOf(types.Position, types.Velocity)
		assert.Len(t, storage.Match(required), 1)

		v := storage.Version()
		require.NoError(t, storage.AddComponent(2, &Velocity{}))
		assert.Greater(t, storage.Version(), v)
		assert.Len(t, storage.Match(required), 2)

		// overwriting an existing type is not structural
		v = storage.Version()
		require.NoError(t, storage.AddComponent(2, &Velocity{DX: 1}))
		assert.Equal(t, v, storage.Version())
	})
}

func TestStorageStats(t *testing.T) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)
	assert.Equal(t, 4, stats.ComponentTypeCount)
	assert.Equal(t, 0, stats.SingletonCount)

	mustSpawn(storage, 1, &Position{}, &Velocity{})
	mustSpawn(storage, 2, &Position{}, &Velocity{})
	disabled := mustSpawn(storage, 3, &Health{})
	disabled.Enabled = false

	ecs.NewSingleton[float64](storage, 3.14)
	ecs.NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()
	assert.Equal(t, 3, stats.EntityCount)
	assert.Equal(t, 2, stats.EnabledEntityCount)
	assert.Equal(t, 5, stats.TotalComponentCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"float64", "string"}, stats.SingletonTypes)

	require.Len(t, stats.CapabilityBreakdown, 2)
	assert.Equal(t, []string{"Position", "Velocity"}, stats.CapabilityBreakdown[0].Types)
	assert.Equal(t, 2, stats.CapabilityBreakdown[0].EntityCount)
	assert.Equal(t, 1, stats.CapabilityBreakdown[1].EntityCount)

	require.Len(t, stats.ComponentCounts, 4)
	assert.Equal(t, 2, stats.ComponentCounts[0].Count)
	assert.Equal(t, 0, stats.ComponentCounts[3].Count)
}

func TestSingleton(t *testing.T) {
	type Screen struct{ W, H int }

	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	assert.Nil(t, ecs.ReadSingleton[Screen](storage))

	s := ecs.NewSingleton[Screen](storage, Screen{W: 800, H: 600})
	require.True(t, s.Exists())
	s.Get().W = 1024

	assert.Equal(t, 1024, ecs.ReadSingleton[Screen](storage).W)

	// a second accessor sees the same value and does not reinitialize it
	again := ecs.NewSingleton[Screen](storage, Screen{})
	assert.Equal(t, 1024, again.Get().W)
}
