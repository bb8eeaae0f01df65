package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ecsloop/input"
)

var ebitenKeys = map[input.Key]ebiten.Key{
	input.KeyLeft:   ebiten.KeyArrowLeft,
	input.KeyRight:  ebiten.KeyArrowRight,
	input.KeyUp:     ebiten.KeyArrowUp,
	input.KeyDown:   ebiten.KeyArrowDown,
	input.KeySpace:  ebiten.KeySpace,
	input.KeyQ:      ebiten.KeyQ,
	input.KeyE:      ebiten.KeyE,
	input.KeyW:      ebiten.KeyW,
	input.KeyF:      ebiten.KeyF,
	input.KeyEscape: ebiten.KeyEscape,
	input.KeyF1:     ebiten.KeyF1,
	input.KeyF2:     ebiten.KeyF2,
}

// EbitenKey maps k to the Ebiten key code.
func EbitenKey(k input.Key) (ebiten.Key, bool) {
	ek, ok := ebitenKeys[k]
	return ek, ok
}

// IsKeyPressed reports whether k is held down in the focused window.
func IsKeyPressed(k input.Key) bool {
	ek, ok := ebitenKeys[k]
	return ok && ebiten.IsKeyPressed(ek)
}
