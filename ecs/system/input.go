package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// Key is a logical game key. The host maps physical keys onto these.
type Key int

const (
	KeyRight Key = iota
	KeyLeft
	KeyDown
	KeyUp
	KeyRun
	KeyInspect
)

// Keyboard reports which logical keys are held this frame.
type Keyboard interface {
	Pressed(k Key) bool
}

// KeySet is a Keyboard backed by a set of held keys.
type KeySet map[Key]bool

func (s KeySet) Pressed(k Key) bool {
	return s[k]
}

type InputSystem struct {
	keys Keyboard
}

func NewInputSystem(keys Keyboard) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.keys == nil {
		return
	}

	right := i.keys.Pressed(KeyRight)
	left := i.keys.Pressed(KeyLeft)
	down := i.keys.Pressed(KeyDown)
	up := i.keys.Pressed(KeyUp)
	run := i.keys.Pressed(KeyRun)
	inspect := i.keys.Pressed(KeyInspect)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Right = right
		input.Left = left
		input.Down = down
		input.Up = up
		input.Run = run
		input.Inspect = inspect
	})
}
