package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsloop/ecs"
)

// SystemRow is one system's stats with its registration index.
type SystemRow struct {
	Index int
	ecs.SystemStats
}

func NewSystemViewerPanel() SystemViewerPanel {
	return SystemViewerPanel{
		sortColumn:    0,
		sortAscending: true,
	}
}

// Rows returns the snapshot's systems in the panel's sort order.
func (sv *SystemViewerPanel) Rows(snap *Snapshot) []SystemRow {
	rows := make([]SystemRow, len(snap.Systems))
	for i, s := range snap.Systems {
		rows[i] = SystemRow{Index: i, SystemStats: s}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch sv.sortColumn {
		case 0:
			less = a.Index < b.Index
		case 1:
			less = a.Name < b.Name
		case 3:
			less = a.AvgDuration < b.AvgDuration
		case 4:
			less = a.FailureCount < b.FailureCount
		default:
			less = a.Index < b.Index
		}

		if !sv.sortAscending {
			return !less
		}
		return less
	})
	return rows
}

func (sv *SystemViewerPanel) Render(snap *Snapshot, scheduler *ecs.Scheduler, post func(ecs.Command)) {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	var maxAvg float64
	for _, s := range snap.Systems {
		maxAvg = max(maxAvg, float64(s.AvgDuration))
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("#")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Enabled")
		imgui.TableSetupColumn("Avg Time")
		imgui.TableSetupColumn("Failures")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		for _, row := range sv.Rows(snap) {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Index))

			imgui.TableNextColumn()
			imgui.Text(row.Name)

			imgui.TableNextColumn()
			enabled := row.Enabled
			if imgui.Checkbox(fmt.Sprintf("##enabled%d", row.Index), &enabled) {
				post(SetSystemEnabled{Scheduler: scheduler, Index: row.Index, Enabled: enabled})
			}

			imgui.TableNextColumn()
			imgui.Text(row.AvgDuration.String())
			if maxAvg > 0 {
				barWidth := float32(float64(row.AvgDuration)/maxAvg) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.FailureCount))
			if row.LastError != "" {
				imgui.SameLine()
				imgui.Text(row.LastError)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
