package debugui

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/render"
)

// SetField assigns Value to the component field at Path. It is posted by the
// component inspector and applied during the next command flush.
type SetField struct {
	Storage *ecs.Storage
	Entity  ecs.EntityId
	Type    ecs.ComponentType
	Path    []int
	Value   any
}

func (c SetField) Execute() error {
	component, ok := c.Storage.GetComponent(c.Entity, c.Type)
	if !ok {
		return fmt.Errorf("entity %d component %d: %w", c.Entity, c.Type, ecs.ErrMissingComponent)
	}
	if len(c.Path) == 0 {
		return errors.New("set field: empty path")
	}

	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	for _, idx := range c.Path {
		if val.Kind() == reflect.Ptr {
			if val.IsNil() {
				return errors.New("set field: nil pointer on path")
			}
			val = val.Elem()
		}
		if val.Kind() != reflect.Struct || idx < 0 || idx >= val.NumField() {
			return fmt.Errorf("set field: bad path %v", c.Path)
		}
		val = val.Field(idx)
	}
	if !val.CanSet() {
		return fmt.Errorf("set field: path %v is not settable", c.Path)
	}
	return assign(val, c.Value)
}

func assign(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, ok := asInt(value)
		if !ok || field.OverflowInt(v) {
			return fmt.Errorf("set field: %v does not fit %s", value, field.Type())
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, ok := asInt(value)
		if !ok || v < 0 || field.OverflowUint(uint64(v)) {
			return fmt.Errorf("set field: %v does not fit %s", value, field.Type())
		}
		field.SetUint(uint64(v))
	case reflect.Float32, reflect.Float64:
		v, ok := asFloat(value)
		if !ok {
			return fmt.Errorf("set field: %v is not a number", value)
		}
		field.SetFloat(v)
	case reflect.Bool:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("set field: %v is not a bool", value)
		}
		field.SetBool(v)
	case reflect.String:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("set field: %v is not a string", value)
		}
		field.SetString(v)
	default:
		return fmt.Errorf("set field: %s fields are read only", field.Kind())
	}
	return nil
}

func asInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// SetEntityEnabled enables or disables an entity.
type SetEntityEnabled struct {
	Storage *ecs.Storage
	Entity  ecs.EntityId
	Enabled bool
}

func (c SetEntityEnabled) Execute() error {
	e, ok := c.Storage.Entity(c.Entity)
	if !ok {
		return fmt.Errorf("entity %d: %w", c.Entity, ecs.ErrUnknownEntity)
	}
	e.Enabled = c.Enabled
	return nil
}

// SetSystemEnabled enables or disables the system at Index in registration
// order.
type SetSystemEnabled struct {
	Scheduler *ecs.Scheduler
	Index     int
	Enabled   bool
}

func (c SetSystemEnabled) Execute() error {
	systems := c.Scheduler.Systems()
	if c.Index < 0 || c.Index >= len(systems) {
		return fmt.Errorf("system index %d out of range", c.Index)
	}
	sys, ok := systems[c.Index].(interface{ SetEnabled(bool) })
	if !ok {
		return fmt.Errorf("system %d cannot be disabled", c.Index)
	}
	sys.SetEnabled(c.Enabled)
	return nil
}

// SetOptions replaces the render options singleton.
type SetOptions struct {
	Storage *ecs.Storage
	Options render.Options
}

func (c SetOptions) Execute() error {
	opts := ecs.ReadSingleton[render.Options](c.Storage)
	if opts == nil {
		ecs.NewSingleton[render.Options](c.Storage, c.Options)
		return nil
	}
	*opts = c.Options
	return nil
}
