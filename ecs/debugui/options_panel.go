package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsloop/ecs"
)

func (op *OptionsPanel) Render(snap *Snapshot, storage *ecs.Storage, post func(ecs.Command)) {
	if !imgui.BeginV("Render Options", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if snap.Options == nil {
		imgui.Text("No render options")
		imgui.End()
		return
	}

	opts := *snap.Options
	changed := false

	changed = imgui.Checkbox("Rotation", &opts.Rotation) || changed
	changed = imgui.Checkbox("Scale", &opts.Scale) || changed
	changed = imgui.Checkbox("Geometry", &opts.GeometryVisible) || changed
	changed = imgui.Checkbox("History", &opts.HistoryVisible) || changed

	crosshair := float32(opts.CrosshairSize)
	imgui.SetNextItemWidth(150)
	if imgui.InputFloat("Crosshair", &crosshair) && crosshair >= 0 {
		opts.CrosshairSize = float64(crosshair)
		changed = true
	}

	if imgui.TreeNodeStr("Grid") {
		changed = imgui.Checkbox("Visible", &opts.Grid.Visible) || changed
		changed = imgui.Checkbox("Axis", &opts.Grid.AxisVisible) || changed
		changed = imgui.Checkbox("Major", &opts.Grid.MajorVisible) || changed
		changed = imgui.Checkbox("Minor", &opts.Grid.MinorVisible) || changed
		changed = inputSubdivision("Major X", &opts.Grid.MajorX) || changed
		changed = inputSubdivision("Major Y", &opts.Grid.MajorY) || changed
		changed = inputSubdivision("Minor X", &opts.Grid.MinorX) || changed
		changed = inputSubdivision("Minor Y", &opts.Grid.MinorY) || changed
		imgui.TreePop()
	}

	if changed {
		post(SetOptions{Storage: storage, Options: opts})
	}

	imgui.End()
}

func inputSubdivision(label string, n *int) bool {
	v := int32(*n)
	imgui.SetNextItemWidth(150)
	if imgui.InputInt(label, &v) && v > 0 {
		*n = int(v)
		return true
	}
	return false
}
