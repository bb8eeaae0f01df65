// Package command holds the commands posted by input handlers. Each command
// targets one entity and looks its components up when it executes.
package command

import (
	"fmt"

	"github.com/plus3/ecsloop/component"
	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/vmath"
)

// Direction is one of the four steering flags.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// Target names the entity a command acts on.
type Target struct {
	Storage *ecs.Storage
	Entity  ecs.EntityId
}

func (t Target) physics() (*component.Physics, error) {
	if ph := ecs.ReadComponent[component.Physics](t.Storage, t.Entity); ph != nil {
		return ph, nil
	}
	return nil, fmt.Errorf("entity %d physics: %w", t.Entity, ecs.ErrMissingComponent)
}

func (t Target) transform() (*component.Transform, error) {
	if tr := ecs.ReadComponent[component.Transform](t.Storage, t.Entity); tr != nil {
		return tr, nil
	}
	return nil, fmt.Errorf("entity %d transform: %w", t.Entity, ecs.ErrMissingComponent)
}

func flag(ph *component.Physics, d Direction) (*bool, error) {
	switch d {
	case Up:
		return &ph.Up, nil
	case Down:
		return &ph.Down, nil
	case Left:
		return &ph.Left, nil
	case Right:
		return &ph.Right, nil
	}
	return nil, fmt.Errorf("unknown direction %d", uint8(d))
}

// Move sets the steering flag for Direction.
type Move struct {
	Target
	Direction Direction
}

func (c Move) Execute() error {
	return c.set(true)
}

func (c Move) set(v bool) error {
	ph, err := c.physics()
	if err != nil {
		return err
	}
	f, err := flag(ph, c.Direction)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Brake clears the steering flag for Direction.
type Brake struct {
	Target
	Direction Direction
}

func (c Brake) Execute() error {
	return Move(c).set(false)
}

// BrakeAll clears every steering flag.
type BrakeAll struct {
	Target
}

func (c BrakeAll) Execute() error {
	ph, err := c.physics()
	if err != nil {
		return err
	}
	ph.Brake()
	return nil
}

// Crouch multiplies the transform scale by Factor, 0.5 when unset.
type Crouch struct {
	Target
	Factor float64
}

func (c Crouch) Execute() error {
	tr, err := c.transform()
	if err != nil {
		return err
	}
	k := c.Factor
	if k == 0 {
		k = 0.5
	}
	tr.Scale = tr.Scale.Scale(k)
	return nil
}

// Jump restores the transform scale to 1.
type Jump struct {
	Target
}

func (c Jump) Execute() error {
	tr, err := c.transform()
	if err != nil {
		return err
	}
	tr.Scale = vmath.V(1, 1)
	return nil
}

// Fire is bound to the fire key; projectiles are not implemented yet.
type Fire struct {
	Target
}

func (c Fire) Execute() error {
	_, err := c.transform()
	return err
}

// Stopper is implemented by loops that can be asked to stop.
type Stopper interface {
	Stop()
}

// Exit stops the game loop; the loop notices at the start of its next tick.
type Exit struct {
	Loop Stopper
}

func (c Exit) Execute() error {
	if c.Loop == nil {
		return fmt.Errorf("exit: no loop")
	}
	c.Loop.Stop()
	return nil
}
