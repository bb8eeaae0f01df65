package ecs

import "sort"

// EntityId is the caller-assigned id of an entity within a Storage.
type EntityId int

// Entity is an identity plus at most one component per component type.
type Entity struct {
	Identity
	Enabled bool

	components map[ComponentType]Component
	mask       Bitmask
	storage    *Storage
}

// NewEntity creates an enabled entity with no components.
func NewEntity(id EntityId, name string) *Entity {
	return &Entity{
		Identity:   Identity{ID: int(id), Name: name},
		Enabled:    true,
		components: make(map[ComponentType]Component),
	}
}

// Id returns the entity id.
func (e *Entity) Id() EntityId {
	return EntityId(e.ID)
}

// AddComponent inserts c under typ, overwriting any component already there.
func (e *Entity) AddComponent(typ ComponentType, c Component) {
	if e.components == nil {
		e.components = make(map[ComponentType]Component)
	}
	if _, exists := e.components[typ]; !exists {
		e.mask = e.mask.Set(typ)
	}
	e.components[typ] = c
	if e.storage != nil {
		e.storage.version++
	}
}

// GetComponent returns the component stored under typ. A missing component is
// a normal result and reported through the boolean.
func (e *Entity) GetComponent(typ ComponentType) (Component, bool) {
	c, ok := e.components[typ]
	return c, ok
}

// HasComponents reports whether the entity holds a component of every type in
// required. Repeated types in required count once.
func (e *Entity) HasComponents(required Bitmask) bool {
	return e.mask.Contains(required)
}

// Mask returns the capability set of the entity. The result must not be modified.
func (e *Entity) Mask() Bitmask {
	return e.mask
}

// ComponentTypes returns the entity's component types in ascending id order.
func (e *Entity) ComponentTypes() []ComponentType {
	types := make([]ComponentType, 0, len(e.components))
	for t := range e.components {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
