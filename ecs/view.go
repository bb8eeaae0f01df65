package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeOf(EntityId(0))

// View matches entities against a combination of components described by T.
// T must be a struct whose fields are pointers to registered component types.
// Named fields can be marked optional with the `ecs:"optional"` struct tag.
// A field of type EntityId, embedded or named, receives the entity id.
type View[T any] struct {
	storage     *Storage
	types       []ComponentType
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
	required    Bitmask
}

// NewView creates a view for the struct type T. It panics if T is not a struct,
// a field is not a pointer, or a component type is not registered.
func NewView[T any](storage *Storage) *View[T] {
	var zero T
	structType := reflect.TypeOf(zero)

	if structType == nil || structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		componentType, ok := storage.registry.TypeOf(fieldType.Elem())
		if !ok {
			panic(fmt.Sprintf("View field %s: component type %s is not registered", field.Name, fieldType.Elem()))
		}

		// Embedded fields are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, componentType)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		if !isOptional {
			v.required = v.required.Set(componentType)
		}
	}

	return v
}

// Required returns the capability set an entity needs to match the view.
func (v *View[T]) Required() Bitmask {
	return v.required
}

// Fill populates ptr with the components of entity e.
// Returns false if e is missing any required component.
func (v *View[T]) Fill(e *Entity, ptr *T) bool {
	if !e.HasComponents(v.required) {
		return false
	}

	structPtr := unsafe.Pointer(ptr)
	if v.hasId {
		*(*EntityId)(unsafe.Add(structPtr, v.idOffset)) = e.Id()
	}

	for i, componentType := range v.types {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		component, ok := e.components[componentType]
		if !ok || component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Components are stored by pointer, so the interface data word is the
		// pointer the field expects.
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	return true
}

// Get returns the view of entity id, or nil if it does not match.
func (v *View[T]) Get(id EntityId) *T {
	e, ok := v.storage.Entity(id)
	if !ok {
		return nil
	}
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Iter yields every enabled matching entity in insertion order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var result T
		for _, e := range v.storage.Match(v.required) {
			if !e.Enabled || !v.Fill(e, &result) {
				continue
			}
			if !yield(e.Id(), result) {
				return
			}
		}
	}
}

// Values yields only the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
