package ecs

import "fmt"

// Identity is the record shared by every entity, component and system.
// IDs are assigned by the caller before registration and are unique only
// within the registry that owns the object.
type Identity struct {
	ID     int
	Name   string
	Family int
	Owner  any
}

// Ident returns the identity itself. Embedding Identity in a struct gives the
// struct's pointer type this method, which is how components satisfy Component.
func (i *Identity) Ident() *Identity {
	return i
}

func (i Identity) String() string {
	if i.Name == "" {
		return fmt.Sprintf("#%d", i.ID)
	}
	return fmt.Sprintf("%s#%d", i.Name, i.ID)
}
