package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value holding a
// pointer: a type word followed by the pointer itself.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
