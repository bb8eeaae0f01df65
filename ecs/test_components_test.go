package ecs_test

import "github.com/plus3/ecsloop/ecs"

type Position struct {
	ecs.Identity
	X, Y float32
}

type Velocity struct {
	ecs.Identity
	DX, DY float32
}

type Health struct {
	ecs.Identity
	Current, Max int
}

type Name struct {
	ecs.Identity
	Value string
}

type testTypes struct {
	Position ecs.ComponentType
	Velocity ecs.ComponentType
	Health   ecs.ComponentType
	Name     ecs.ComponentType
}

func newTestRegistry() (*ecs.ComponentRegistry, testTypes) {
	registry := ecs.NewComponentRegistry()
	types := testTypes{
		Position: ecs.RegisterComponent[Position](registry),
		Velocity: ecs.RegisterComponent[Velocity](registry),
		Health:   ecs.RegisterComponent[Health](registry),
		Name:     ecs.RegisterComponent[Name](registry),
	}
	return registry, types
}

func mustSpawn(storage *ecs.Storage, id ecs.EntityId, components ...ecs.Component) *ecs.Entity {
	e, err := storage.Spawn(id, "", components...)
	if err != nil {
		panic(err)
	}
	return e
}
