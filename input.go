package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/overworld/ecs/system"
)

// Keyboard maps ebiten key state onto the game's logical keys. Update must
// run once per tick before the systems read it.
type Keyboard struct {
	inspect     bool
	toggleDebug bool
}

func (k *Keyboard) Update() {
	k.inspect = inpututil.IsKeyJustPressed(ebiten.KeyE)
	k.toggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF1)
}

func (k *Keyboard) Pressed(key system.Key) bool {
	switch key {
	case system.KeyRight:
		return ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	case system.KeyLeft:
		return ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	case system.KeyDown:
		return ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	case system.KeyUp:
		return ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	case system.KeyRun:
		return ebiten.IsKeyPressed(ebiten.KeyShift)
	case system.KeyInspect:
		return k.inspect
	}
	return false
}

// ToggleDebug reports whether F1 was pressed this tick.
func (k *Keyboard) ToggleDebug() bool {
	return k.toggleDebug
}
