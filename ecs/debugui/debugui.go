// Package debugui provides a Dear ImGui overlay for inspecting a running
// world. The loop goroutine publishes Snapshots through a SnapshotSystem; the
// UI goroutine renders the latest one and turns edits into commands, so the
// overlay never touches the storage directly.
package debugui

import (
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ecsloop/ecs"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay holds the debug panels and the latest snapshot.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	queue     *ecs.CommandQueue

	mu      sync.Mutex
	snap    *Snapshot
	visible bool
	input   InputState

	stats     PerformanceStatsPanel
	browser   EntityBrowserPanel
	inspector ComponentInspectorPanel
	matcher   CapabilityMatcherPanel
	systems   SystemViewerPanel
	options   OptionsPanel
}

// NewOverlay creates a hidden overlay for the scheduler's world. Edits are
// posted to the scheduler's command queue.
func NewOverlay(scheduler *ecs.Scheduler) *Overlay {
	return &Overlay{
		storage:   scheduler.Storage(),
		scheduler: scheduler,
		queue:     scheduler.Commands(),
		stats:     NewPerformanceStatsPanel(120),
		browser:   NewEntityBrowserPanel(100),
		inspector: NewComponentInspectorPanel(),
		matcher:   NewCapabilityMatcherPanel(),
		systems:   NewSystemViewerPanel(),
	}
}

// SnapshotSystem returns a system that feeds this overlay. Register it last.
func (o *Overlay) SnapshotSystem(id int) *SnapshotSystem {
	return NewSnapshotSystem(id, o.scheduler, o.Publish)
}

// Publish stores s as the latest snapshot. Safe from any goroutine.
func (o *Overlay) Publish(s *Snapshot) {
	o.mu.Lock()
	o.snap = s
	o.mu.Unlock()
}

// Snapshot returns the latest published snapshot, or nil.
func (o *Overlay) Snapshot() *Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

func (o *Overlay) SetVisible(v bool) {
	o.mu.Lock()
	o.visible = v
	o.mu.Unlock()
}

// Toggle flips visibility and returns the new state.
func (o *Overlay) Toggle() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = !o.visible
	return o.visible
}

// InputState returns the capture state recorded by the last Render.
func (o *Overlay) InputState() InputState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.input
}

func (o *Overlay) post(cmd ecs.Command) {
	o.queue.Post(cmd)
}

// Render draws every panel. It must run on the UI goroutine between the
// backend's BeginFrame and EndFrame.
func (o *Overlay) Render() {
	io := imgui.CurrentIO()
	o.mu.Lock()
	o.input = InputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
	snap, visible := o.snap, o.visible
	o.mu.Unlock()

	if !visible || snap == nil {
		return
	}

	o.stats.Render(snap)
	o.browser.Render(snap)
	if id, ok := o.browser.GetSelectedEntity(); ok {
		o.inspector.Render(snap, id, o.storage, o.post)
	}
	o.matcher.Render(snap)
	o.systems.Render(snap, o.scheduler, o.post)
	o.options.Render(snap, o.storage, o.post)
}
