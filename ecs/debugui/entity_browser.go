package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsloop/ecs"
)

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastTick      uint64
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserPanel(maxEntitiesPerPage int) EntityBrowserPanel {
	return EntityBrowserPanel{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserPanel) Render(snap *Snapshot) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.Refresh(snap)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterCapability = nil
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Capability")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
		}

		filteredEntities := eb.Filtered()

		startIdx := eb.currentPage * eb.maxEntitiesPerPage
		endIdx := min(startIdx+eb.maxEntitiesPerPage, len(filteredEntities))

		for i := startIdx; i < endIdx; i++ {
			entity := filteredEntities[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.hasSelection && eb.selectedEntityId == entity.ID
			label := fmt.Sprintf("%s#%d", entity.Name, entity.ID)
			if !entity.Enabled {
				label += " (off)"
			}
			if imgui.SelectableBoolV(label, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
				eb.hasSelection = true
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", entity.Capability))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentNames(), ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Components)))
		}

		imgui.EndTable()
	}

	filteredEntities := eb.Filtered()

	if len(filteredEntities) > eb.maxEntitiesPerPage {
		totalPages := (len(filteredEntities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filteredEntities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filteredEntities)))
	}

	imgui.End()
}

// Refresh takes the entity list from snap when it is newer than the cache.
func (eb *EntityBrowserPanel) Refresh(snap *Snapshot) {
	if eb.cache.entities != nil && eb.cache.lastTick == snap.Tick {
		return
	}
	eb.cache.lastTick = snap.Tick
	eb.cache.entities = append(eb.cache.entities[:0], snap.Entities...)
	eb.sortEntities()
}

func (eb *EntityBrowserPanel) sortEntities() {
	sort.SliceStable(eb.cache.entities, func(i, j int) bool {
		a, b := eb.cache.entities[i], eb.cache.entities[j]
		var less bool

		switch eb.cache.sortColumn {
		case 0:
			less = a.ID < b.ID
		case 1:
			less = a.Capability < b.Capability
		case 2:
			less = strings.Join(a.ComponentNames(), ",") < strings.Join(b.ComponentNames(), ",")
		case 3:
			less = len(a.Components) < len(b.Components)
		default:
			less = a.ID < b.ID
		}

		if !eb.cache.sortAscending {
			return !less
		}
		return less
	})
}

// SetFilter sets the search text matched against ids, names and components.
func (eb *EntityBrowserPanel) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
}

// Filtered returns the cached entities that pass the current filters.
func (eb *EntityBrowserPanel) Filtered() []EntityInfo {
	if eb.filterText == "" && eb.filterCapability == nil {
		return eb.cache.entities
	}

	filtered := make([]EntityInfo, 0, len(eb.cache.entities))
	filterLower := strings.ToLower(eb.filterText)

	for _, entity := range eb.cache.entities {
		if eb.filterCapability != nil && entity.Capability != *eb.filterCapability {
			continue
		}

		if eb.filterText != "" {
			idStr := fmt.Sprintf("%d", entity.ID)
			nameStr := strings.ToLower(entity.Name)
			componentsStr := strings.ToLower(strings.Join(entity.ComponentNames(), " "))

			if !strings.Contains(idStr, filterLower) &&
				!strings.Contains(nameStr, filterLower) &&
				!strings.Contains(componentsStr, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// Select marks id as the selected entity.
func (eb *EntityBrowserPanel) Select(id ecs.EntityId) {
	eb.selectedEntityId = id
	eb.hasSelection = true
}

func (eb *EntityBrowserPanel) GetSelectedEntity() (ecs.EntityId, bool) {
	return eb.selectedEntityId, eb.hasSelection
}
