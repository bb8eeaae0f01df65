package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the entity registry of an ECS instance.
// Entities are kept in insertion order and indexed by id. The registry never
// removes entities.
type Storage struct {
	registry   *ComponentRegistry
	entities   *intmap.Map[EntityId, *Entity]
	order      []*Entity
	singletons map[reflect.Type]unsafe.Pointer

	// version changes whenever an entity is added or a component is added to
	// or replaced on a registered entity; match and query results are cached
	// against it.
	version uint64
	matches map[uint64]*matchEntry
}

type matchEntry struct {
	mask     Bitmask
	version  uint64
	entities []*Entity
}

// NewStorage creates a new entity registry using the given component registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		entities:   intmap.New[EntityId, *Entity](1024),
		singletons: make(map[reflect.Type]unsafe.Pointer),
		matches:    make(map[uint64]*matchEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// AddEntity registers e. Ids must be unique within the storage.
func (s *Storage) AddEntity(e *Entity) error {
	if e == nil {
		return fmt.Errorf("add entity: nil entity")
	}
	if _, exists := s.entities.Get(e.Id()); exists {
		return fmt.Errorf("add entity %s: %w", e.Identity, ErrDuplicateEntity)
	}
	e.storage = s
	s.entities.Put(e.Id(), e)
	s.order = append(s.order, e)
	s.version++
	return nil
}

// Spawn creates an entity with the given id and components and registers it.
// Every component type must already be registered.
func (s *Storage) Spawn(id EntityId, name string, components ...Component) (*Entity, error) {
	e := NewEntity(id, name)
	for _, c := range components {
		typ, ok := s.registry.TypeOfComponent(c)
		if !ok {
			return nil, fmt.Errorf("spawn %s: %T: %w", e.Identity, c, ErrUnregisteredComponent)
		}
		e.AddComponent(typ, c)
	}
	if err := s.AddEntity(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Entity returns the entity registered under id.
func (s *Storage) Entity(id EntityId) (*Entity, bool) {
	return s.entities.Get(id)
}

// AddComponent attaches c to the entity id, resolving its type through the registry.
func (s *Storage) AddComponent(id EntityId, c Component) error {
	e, ok := s.entities.Get(id)
	if !ok {
		return fmt.Errorf("add component to #%d: %w", id, ErrUnknownEntity)
	}
	typ, ok := s.registry.TypeOfComponent(c)
	if !ok {
		return fmt.Errorf("add component to %s: %T: %w", e.Identity, c, ErrUnregisteredComponent)
	}
	e.AddComponent(typ, c)
	return nil
}

// GetComponent returns the component of type typ on entity id.
func (s *Storage) GetComponent(id EntityId, typ ComponentType) (Component, bool) {
	e, ok := s.entities.Get(id)
	if !ok {
		return nil, false
	}
	return e.GetComponent(typ)
}

// ReadComponent returns a typed pointer to the T component of entity id, or nil
// if the entity or the component is missing.
func ReadComponent[T any](s *Storage, id EntityId) *T {
	typ, ok := TypeID[T](s.registry)
	if !ok {
		return nil
	}
	c, ok := s.GetComponent(id, typ)
	if !ok {
		return nil
	}
	ptr, _ := any(c).(*T)
	return ptr
}

// Entities iterates over every entity in insertion order.
func (s *Storage) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, e := range s.order {
			if !yield(e) {
				return
			}
		}
	}
}

// Len returns the number of registered entities.
func (s *Storage) Len() int {
	return len(s.order)
}

// Version returns the structural version of the storage.
func (s *Storage) Version() uint64 {
	return s.version
}

// Match returns, in insertion order, every entity whose capability set is a
// superset of required. The returned slice is shared and must not be modified.
func (s *Storage) Match(required Bitmask) []*Entity {
	key := required.Hash()
	if entry, ok := s.matches[key]; ok && entry.version == s.version && entry.mask.Equal(required) {
		return entry.entities
	}

	matched := make([]*Entity, 0)
	for _, e := range s.order {
		if e.HasComponents(required) {
			matched = append(matched, e)
		}
	}
	s.matches[key] = &matchEntry{
		mask:     append(Bitmask(nil), required...),
		version:  s.version,
		entities: matched,
	}
	return matched
}

// AddSingleton stores value as the singleton of its type. Pointer values are
// stored as-is; other values are copied to the heap first.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Ptr {
		ptr := reflect.New(v.Type())
		ptr.Elem().Set(v)
		v = ptr
	}
	s.singletons[v.Type().Elem()] = v.UnsafePointer()
}

func (s *Storage) getSingleton(t reflect.Type) unsafe.Pointer {
	return s.singletons[t]
}

// StorageStats summarizes the contents of a Storage.
type StorageStats struct {
	EntityCount         int
	EnabledEntityCount  int
	ComponentTypeCount  int
	TotalComponentCount int
	SingletonCount      int
	SingletonTypes      []string
	ComponentCounts     []ComponentCount
	CapabilityBreakdown []CapabilityStats
}

// ComponentCount is the number of entities holding a component type.
type ComponentCount struct {
	Type  ComponentType
	Name  string
	Count int
}

// CapabilityStats groups entities that hold exactly the same component types.
type CapabilityStats struct {
	Types       []string
	EntityCount int
}

// CollectStats walks the storage and returns a summary.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		EntityCount:        len(s.order),
		ComponentTypeCount: s.registry.Len(),
		SingletonCount:     len(s.singletons),
	}

	counts := make([]int, s.registry.Len())
	groups := make(map[uint64]*CapabilityStats)
	var groupOrder []uint64

	for _, e := range s.order {
		if e.Enabled {
			stats.EnabledEntityCount++
		}
		types := e.ComponentTypes()
		stats.TotalComponentCount += len(types)
		for _, t := range types {
			if int(t) < len(counts) {
				counts[t]++
			}
		}

		key := e.mask.Hash()
		group, ok := groups[key]
		if !ok {
			names := make([]string, len(types))
			for i, t := range types {
				names[i] = s.registry.Name(t)
			}
			group = &CapabilityStats{Types: names}
			groups[key] = group
			groupOrder = append(groupOrder, key)
		}
		group.EntityCount++
	}

	for t, n := range counts {
		stats.ComponentCounts = append(stats.ComponentCounts, ComponentCount{
			Type:  ComponentType(t),
			Name:  s.registry.Name(ComponentType(t)),
			Count: n,
		})
	}
	for _, key := range groupOrder {
		stats.CapabilityBreakdown = append(stats.CapabilityBreakdown, *groups[key])
	}
	for t := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, t.Name())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
