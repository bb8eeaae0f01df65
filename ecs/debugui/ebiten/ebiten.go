// Package ebiten runs the debug overlay on top of an Ebiten window.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ecsloop/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend and drives an
// Overlay from the window's Update and Draw callbacks.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend

	overlay *debugui.Overlay
}

// NewImguiBackend creates the Dear ImGui context for a window of the given
// size. Call it before ebiten.RunGame.
func NewImguiBackend(overlay *debugui.Overlay, title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend, overlay: overlay}
}

func (b *ImguiBackend) Overlay() *debugui.Overlay {
	return b.overlay
}

// Update builds the overlay's frame. Call it once from the game's Update.
func (b *ImguiBackend) Update() {
	b.BeginFrame()
	b.overlay.Render()
	b.EndFrame()
}

// DrawOver draws the overlay on top of screen.
func (b *ImguiBackend) DrawOver(screen *ebiten.Image) {
	if b.overlay.Visible() {
		b.Draw(screen)
	}
}
