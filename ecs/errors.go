package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEntity       = errors.New("duplicate entity id")
	ErrDuplicateSystem       = errors.New("duplicate system id")
	ErrUnknownEntity         = errors.New("unknown entity")
	ErrUnregisteredComponent = errors.New("component type not registered")
	ErrMissingComponent      = errors.New("missing component")
)

// SystemError is a failure of one system during one tick.
type SystemError struct {
	System string
	Tick   uint64
	Err    error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("system %s (tick %d): %v", e.System, e.Tick, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}

// CommandError is a failure of one command during a flush.
type CommandError struct {
	// Index is the position of the command within its flush batch.
	Index   int
	Command Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %d (%T): %v", e.Index, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking system or command.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func recoverAsError(r any) error {
	if err, ok := r.(error); ok {
		return &PanicError{Value: err}
	}
	return &PanicError{Value: r}
}
