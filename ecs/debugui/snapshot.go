package debugui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/plus3/ecsloop/ecs"
	"github.com/plus3/ecsloop/render"
)

const maxFieldDepth = 4

// Snapshot is a copy of the world taken on the loop goroutine, safe to read
// from the UI goroutine.
type Snapshot struct {
	Tick     uint64
	Elapsed  time.Duration
	Storage  *ecs.StorageStats
	Systems  []ecs.SystemStats
	Entities []EntityInfo
	Options  *render.Options
}

type EntityInfo struct {
	ID         ecs.EntityId
	Name       string
	Enabled    bool
	Capability uint64
	Components []ComponentInfo
}

// ComponentNames lists the names of the entity's component types.
func (e EntityInfo) ComponentNames() []string {
	names := make([]string, len(e.Components))
	for i, c := range e.Components {
		names[i] = c.Name
	}
	return names
}

type ComponentInfo struct {
	Type   ecs.ComponentType
	Name   string
	Fields []FieldValue
}

// FieldValue is a captured component field. Path holds the field indices from
// the component struct down to this field, as SetField expects them.
type FieldValue struct {
	Name     string
	Path     []int
	Kind     reflect.Kind
	Value    any
	Len      int
	Children []FieldValue
}

// Capture copies storage and scheduler state. scheduler may be nil.
func Capture(storage *ecs.Storage, scheduler *ecs.Scheduler, tick uint64, elapsed time.Duration) *Snapshot {
	snap := &Snapshot{
		Tick:    tick,
		Elapsed: elapsed,
		Storage: storage.CollectStats(),
	}
	if scheduler != nil {
		snap.Systems = scheduler.GetStats().Systems
	}
	if opts := ecs.ReadSingleton[render.Options](storage); opts != nil {
		copied := *opts
		snap.Options = &copied
	}

	registry := storage.Registry()
	for e := range storage.Entities() {
		info := EntityInfo{
			ID:         e.Id(),
			Name:       e.Name,
			Enabled:    e.Enabled,
			Capability: e.Mask().Hash(),
		}
		for _, t := range e.ComponentTypes() {
			c, _ := e.GetComponent(t)
			val := reflect.ValueOf(c)
			if val.Kind() == reflect.Ptr {
				val = val.Elem()
			}
			info.Components = append(info.Components, ComponentInfo{
				Type:   t,
				Name:   registry.Name(t),
				Fields: captureFields(val, nil, 0),
			})
		}
		snap.Entities = append(snap.Entities, info)
	}
	return snap
}

func captureFields(val reflect.Value, path []int, depth int) []FieldValue {
	if val.Kind() != reflect.Struct || depth >= maxFieldDepth {
		return nil
	}

	fields := globalReflectionCache.GetFields(val.Type())
	out := make([]FieldValue, 0, len(fields))
	for _, field := range fields {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				out = append(out, FieldValue{Name: field.Name, Path: appendPath(path, field.Index), Kind: reflect.Ptr})
				continue
			}
			fieldVal = fieldVal.Elem()
		}

		fv := FieldValue{
			Name: field.Name,
			Path: appendPath(path, field.Index),
			Kind: fieldVal.Kind(),
		}
		switch fieldVal.Kind() {
		case reflect.Struct:
			fv.Children = captureFields(fieldVal, fv.Path, depth+1)
		case reflect.Slice, reflect.Array, reflect.Map:
			fv.Len = fieldVal.Len()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fv.Value = fieldVal.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fv.Value = fieldVal.Uint()
		case reflect.Float32, reflect.Float64:
			fv.Value = fieldVal.Float()
		case reflect.Bool:
			fv.Value = fieldVal.Bool()
		case reflect.String:
			fv.Value = fieldVal.String()
		default:
			fv.Value = fmt.Sprintf("<%s>", fieldVal.Type())
		}
		out = append(out, fv)
	}
	return out
}

func appendPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}

// Entity returns the captured entity with id, if present.
func (s *Snapshot) Entity(id ecs.EntityId) (EntityInfo, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityInfo{}, false
}

// SnapshotSystem captures a Snapshot every Interval ticks and hands it to a
// sink. Register it after the systems it should observe.
type SnapshotSystem struct {
	ecs.SystemInfo

	Interval  uint64
	scheduler *ecs.Scheduler
	sink      func(*Snapshot)
}

func NewSnapshotSystem(id int, scheduler *ecs.Scheduler, sink func(*Snapshot)) *SnapshotSystem {
	return &SnapshotSystem{
		SystemInfo: ecs.NewSystemInfo(id, "SYSTEM_DEBUG_SNAPSHOT"),
		Interval:   1,
		scheduler:  scheduler,
		sink:       sink,
	}
}

func (s *SnapshotSystem) Execute(frame *ecs.UpdateFrame) error {
	if s.sink == nil {
		return nil
	}
	if s.Interval > 1 && frame.Tick%s.Interval != 0 {
		return nil
	}
	s.sink(Capture(frame.Storage, s.scheduler, frame.Tick, frame.Elapsed))
	return nil
}
