package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsloop/ecs"
)

func NewComponentInspectorPanel() ComponentInspectorPanel {
	return ComponentInspectorPanel{}
}

func (ci *ComponentInspectorPanel) Render(snap *Snapshot, selectedEntityId ecs.EntityId, storage *ecs.Storage, post func(ecs.Command)) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	entity, ok := snap.Entity(ci.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", ci.selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s#%d", entity.Name, entity.ID))
	imgui.Text(fmt.Sprintf("Capability: 0x%X", entity.Capability))
	enabled := entity.Enabled
	if imgui.Checkbox("Enabled", &enabled) {
		post(SetEntityEnabled{Storage: storage, Entity: entity.ID, Enabled: enabled})
	}
	imgui.Separator()

	for _, comp := range entity.Components {
		if imgui.TreeNodeStr(comp.Name) {
			edit := func(path []int, value any) {
				post(SetField{Storage: storage, Entity: entity.ID, Type: comp.Type, Path: path, Value: value})
			}
			for _, field := range comp.Fields {
				ci.renderField(field, edit)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorPanel) renderField(field FieldValue, edit func([]int, any)) {
	id := fmt.Sprintf("##%v", field.Path)

	switch field.Kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(field.Value.(int64))
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			edit(field.Path, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(field.Value.(uint64))
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			edit(field.Path, int64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(field.Value.(float64))
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			edit(field.Path, float64(v))
		}

	case reflect.Bool:
		v := field.Value.(bool)
		if imgui.Checkbox(field.Name+id, &v) {
			edit(field.Path, v)
		}

	case reflect.String:
		v := field.Value.(string)
		imgui.Text(fmt.Sprintf("%s:", field.Name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			edit(field.Path, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(field.Name) {
			for _, child := range field.Children {
				ci.renderField(child, edit)
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", field.Name, field.Len))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", field.Name, field.Len))

	case reflect.Ptr:
		imgui.Text(fmt.Sprintf("%s: nil", field.Name))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, field.Value))
	}
}
