package entity

import (
	"fmt"
	"image"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/prefabs"
)

// CharacterSource is the sheet rectangle for a facing; sheets hold one frame
// per facing in Facing order.
func CharacterSource(f component.Facing, frameW, frameH int) image.Rectangle {
	x := int(f) * frameW
	return image.Rect(x, 0, x+frameW, frameH)
}

// NewCharacter spawns the character for matrix code at cell (row, col) with
// its top-left corner at (x, y).
func NewCharacter(w *ecs.World, spec *prefabs.CharactersSpec, code, row, col int, x, y, size float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("character: nil spec")
	}
	kind, ok := spec.Kinds[code]
	if !ok {
		return 0, fmt.Errorf("character: unknown code %d", code)
	}
	facing, ok := component.ParseFacing(kind.Facing)
	if !ok && kind.Facing != "" {
		return 0, fmt.Errorf("character: %s: unknown facing %q", kind.Name, kind.Facing)
	}

	frameW, frameH := spec.FrameW, spec.FrameH
	if frameW <= 0 || frameH <= 0 {
		frameW, frameH = 16, 16
	}

	e := ecs.CreateEntity(w)
	fail := func(step string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("character: %s: %s: %w", kind.Name, step, err)
	}

	if err := addCell(w, e, component.TagCharacter, x, y, size, false); err != nil {
		return fail("cell", err)
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.ScaleX = size / float64(frameW)
		t.ScaleY = size / float64(frameH)
	}
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{
		Code:   code,
		Kind:   kind.Name,
		Facing: facing,
		Script: kind.Script,
		Row:    row,
		Col:    col,
		FrameW: frameW,
		FrameH: frameH,
	}); err != nil {
		return fail("add character", err)
	}

	sprite := &component.Sprite{
		Image:     kind.Sprite.Image,
		Source:    CharacterSource(facing, frameW, frameH),
		UseSource: true,
		OriginX:   kind.Sprite.OriginX,
		OriginY:   kind.Sprite.OriginY,
	}
	if kind.Tint != nil {
		sprite.Tint = kind.Tint.Color
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		return fail("add sprite", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return fail("add render layer", err)
	}

	if kind.Script != "" {
		period := spec.ScriptPeriod
		if period <= 0 {
			period = 60
		}
		if err := ecs.Add(w, e, component.ScriptedComponent.Kind(), &component.Scripted{Path: kind.Script, Period: period}); err != nil {
			return fail("add scripted", err)
		}
	}

	return e, nil
}
