package ecs

// System is a behavior that operates on entities with specific components.
// Systems can include Query and Singleton fields, which the Scheduler
// initializes on registration, as well as state that persists between ticks.
// A returned error (or a panic) fails only this system for this tick.
type System interface {
	Execute(frame *UpdateFrame) error
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(frame *UpdateFrame) error

func (f SystemFunc) Execute(frame *UpdateFrame) error {
	return f(frame)
}

// SystemInfo carries the identity and enabled state of a system. Embed it to
// give a system a registry id and a name; disabled systems are skipped.
type SystemInfo struct {
	Identity
	Disabled bool
}

// NewSystemInfo returns an enabled SystemInfo.
func NewSystemInfo(id int, name string) SystemInfo {
	return SystemInfo{Identity: Identity{ID: id, Name: name}}
}

// Enabled reports whether the scheduler should run the system.
func (s *SystemInfo) Enabled() bool {
	return !s.Disabled
}

// SetEnabled enables or disables the system.
func (s *SystemInfo) SetEnabled(enabled bool) {
	s.Disabled = !enabled
}

type identified interface {
	Ident() *Identity
}

type toggleable interface {
	Enabled() bool
}
