package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewCapabilityMatcherPanel() CapabilityMatcherPanel {
	return CapabilityMatcherPanel{
		selectedComponentTypes: make(map[string]bool),
	}
}

// ComponentTypeNames lists every component type name held by an entity in
// the snapshot, sorted.
func ComponentTypeNames(entities []EntityInfo) []string {
	typeMap := make(map[string]bool)
	for _, e := range entities {
		for _, c := range e.Components {
			typeMap[c.Name] = true
		}
	}

	names := make([]string, 0, len(typeMap))
	for name := range typeMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MatchEntities returns the entities holding every component named in
// required. An entity with more components than required still matches.
func MatchEntities(entities []EntityInfo, required []string) []EntityInfo {
	matching := make([]EntityInfo, 0)
	for _, e := range entities {
		if hasAllComponents(e, required) {
			matching = append(matching, e)
		}
	}
	return matching
}

func hasAllComponents(e EntityInfo, required []string) bool {
	held := make(map[string]bool, len(e.Components))
	for _, c := range e.Components {
		held[c.Name] = true
	}
	for _, name := range required {
		if !held[name] {
			return false
		}
	}
	return true
}

// Selected returns the checked component type names, sorted.
func (cm *CapabilityMatcherPanel) Selected() []string {
	selected := make([]string, 0, len(cm.selectedComponentTypes))
	for name := range cm.selectedComponentTypes {
		selected = append(selected, name)
	}
	sort.Strings(selected)
	return selected
}

func (cm *CapabilityMatcherPanel) Render(snap *Snapshot) {
	if !imgui.BeginV("Capability Matcher", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		cm.selectedComponentTypes = make(map[string]bool)
	}

	for _, compType := range ComponentTypeNames(snap.Entities) {
		selected := cm.selectedComponentTypes[compType]
		if imgui.Checkbox(compType, &selected) {
			if selected {
				cm.selectedComponentTypes[compType] = true
			} else {
				delete(cm.selectedComponentTypes, compType)
			}
		}
	}

	imgui.Separator()

	required := cm.Selected()
	if len(required) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matching := MatchEntities(snap.Entities, required)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matching)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("MatchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Enabled")
			imgui.TableHeadersRow()

			for _, e := range matching {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%s#%d", e.Name, e.ID))

				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(e.ComponentNames(), ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%t", e.Enabled))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
