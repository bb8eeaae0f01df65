package input

import (
	"github.com/plus3/ecsloop/command"
	"github.com/plus3/ecsloop/ecs"
)

// Players names the entities steered by the default bindings.
type Players struct {
	Storage *ecs.Storage
	Blue    ecs.EntityId
	Red     ecs.EntityId
	// FireKey defaults to KeyF.
	FireKey Key
}

// BindDefaults installs the standard controls. The blue ball is steered with
// the arrow keys, crouches while space is held and jumps on release. The red
// ball moves left and right with Q and E, stopping when either is released,
// and crouches on W. Escape stops the loop.
func BindDefaults(b *Binder, p Players, loop command.Stopper) {
	blue := command.Target{Storage: p.Storage, Entity: p.Blue}
	red := command.Target{Storage: p.Storage, Entity: p.Red}

	for key, dir := range map[Key]command.Direction{
		KeyLeft:  command.Left,
		KeyRight: command.Right,
		KeyUp:    command.Up,
		KeyDown:  command.Down,
	} {
		b.Bind(key, command.Move{Target: blue, Direction: dir}, command.Brake{Target: blue, Direction: dir})
	}
	b.Bind(KeySpace, command.Crouch{Target: blue}, command.Jump{Target: blue})

	b.Bind(KeyQ, command.Move{Target: red, Direction: command.Left}, command.BrakeAll{Target: red})
	b.Bind(KeyE, command.Move{Target: red, Direction: command.Right}, command.BrakeAll{Target: red})
	b.Bind(KeyW, command.Crouch{Target: red}, command.Jump{Target: red})

	fire := p.FireKey
	if fire == KeyNone {
		fire = KeyF
	}
	b.Bind(fire, command.Fire{Target: blue}, nil)
	b.Bind(KeyEscape, command.Exit{Loop: loop}, nil)
}
