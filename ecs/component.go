package ecs

import (
	"fmt"
	"reflect"
)

// ComponentType is the small integer id a ComponentRegistry assigns to a
// component type. Values are stable only for the registry that issued them.
type ComponentType uint16

// Component is implemented by every component record. Records get it by
// embedding Identity and being stored by pointer.
type Component interface {
	Ident() *Identity
}

// ComponentRegistry assigns component type ids for an ECS instance.
// Each Storage has its own registry, so ids depend only on the order in which
// types were registered against it.
type ComponentRegistry struct {
	ids   map[reflect.Type]ComponentType
	types []reflect.Type
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentType),
	}
}

// RegisterComponent registers T with the registry and returns its type id.
// Registering the same type twice returns the id issued the first time.
func RegisterComponent[T any, PT interface {
	*T
	Component
}](r *ComponentRegistry) ComponentType {
	return r.register(reflect.TypeOf((*T)(nil)).Elem())
}

func (r *ComponentRegistry) register(t reflect.Type) ComponentType {
	if id, ok := r.ids[t]; ok {
		return id
	}
	id := ComponentType(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

// TypeID returns the id registered for T.
func TypeID[T any](r *ComponentRegistry) (ComponentType, bool) {
	return r.TypeOf(reflect.TypeOf((*T)(nil)).Elem())
}

// MustTypeID is TypeID for configuration code; it panics on unregistered types.
func MustTypeID[T any](r *ComponentRegistry) ComponentType {
	id, ok := TypeID[T](r)
	if !ok {
		panic(fmt.Sprintf("component type %s is not registered", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return id
}

// TypeOf returns the id registered for the struct type t.
func (r *ComponentRegistry) TypeOf(t reflect.Type) (ComponentType, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	id, ok := r.ids[t]
	return id, ok
}

// TypeOfComponent returns the id of a component value's dynamic type.
func (r *ComponentRegistry) TypeOfComponent(c Component) (ComponentType, bool) {
	if c == nil {
		return 0, false
	}
	return r.TypeOf(reflect.TypeOf(c))
}

// Name returns the Go type name for id, or "" when the id was never issued.
func (r *ComponentRegistry) Name(id ComponentType) string {
	if int(id) >= len(r.types) {
		return ""
	}
	return r.types[id].Name()
}

// Type returns the reflect.Type registered for id.
func (r *ComponentRegistry) Type(id ComponentType) (reflect.Type, bool) {
	if int(id) >= len(r.types) {
		return nil, false
	}
	return r.types[id], true
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}
