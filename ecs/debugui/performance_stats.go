package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewPerformanceStatsPanel(historyFrames int) PerformanceStatsPanel {
	return PerformanceStatsPanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// Record adds the tick time of snap to the history, once per tick.
func (ps *PerformanceStatsPanel) Record(snap *Snapshot) {
	if snap.Tick == ps.lastTick {
		return
	}
	ps.lastTick = snap.Tick
	ps.frameHistory[ps.frameIndex] = float32(snap.Elapsed.Seconds() * 1000.0)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
}

// AverageFrameTime returns the mean tick time in milliseconds over the history.
func (ps *PerformanceStatsPanel) AverageFrameTime() float32 {
	var avg float32
	for _, ft := range ps.frameHistory {
		avg += ft
	}
	return avg / float32(ps.historyFrames)
}

func (ps *PerformanceStatsPanel) Render(snap *Snapshot) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.Record(snap)
	stats := snap.Storage

	imgui.Text(fmt.Sprintf("Tick: %d", snap.Tick))
	imgui.Text(fmt.Sprintf("Entities: %d (%d enabled)", stats.EntityCount, stats.EnabledEntityCount))
	imgui.Text(fmt.Sprintf("Component Types: %d", stats.ComponentTypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.AverageFrameTime()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Tick Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Tick Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if imgui.TreeNodeStr("Capability Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("CapStatsTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, group := range stats.CapabilityBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%v", group.Types))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", group.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
