package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides access to a value that is not attached to any entity,
// such as renderer options or the screen size.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton returns an accessor for the T singleton of storage, creating it
// from initializer (or the zero value) when it does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeOf((*T)(nil)).Elem()
	if storage.getSingleton(componentType) == nil {
		value := new(T)
		if len(initializer) > 0 {
			*value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init initializes the Singleton with a storage reference.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeOf((*T)(nil)).Elem()
	s.componentPtr = storage.getSingleton(s.componentType)
}

// Get returns a pointer to the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.storage != nil {
		s.componentPtr = s.storage.getSingleton(s.componentType)
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

// ReadSingleton returns the T singleton of storage, or nil.
func ReadSingleton[T any](storage *Storage) *T {
	return (*T)(storage.getSingleton(reflect.TypeOf((*T)(nil)).Elem()))
}
