package system

import (
	"image"

	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		def, ok := anim.Defs[anim.Current]
		if !ok || def.FrameCount <= 0 {
			return
		}

		if anim.Playing {
			advance(anim, def)
		}

		// Calculate subimage rect
		x := def.ColStart*def.FrameW + anim.Frame*def.FrameW
		y := def.Row * def.FrameH
		sprite.Image = anim.Sheet
		sprite.Source = image.Rect(x, y, x+def.FrameW, y+def.FrameH)
		sprite.UseSource = true
	})
}

// advance moves the clip forward by one tick scaled by anim.Speed.
func advance(anim *component.Animation, def component.AnimationDef) {
	if def.FPS <= 0 {
		return
	}
	ticksPerFrame := common.TicksPerSecond / def.FPS
	speed := anim.Speed
	if speed <= 0 {
		speed = 1
	}

	anim.FrameTimer += speed
	for anim.FrameTimer >= ticksPerFrame {
		anim.FrameTimer -= ticksPerFrame
		anim.Frame++
		if anim.Frame >= def.FrameCount {
			if def.Loop {
				anim.Frame = 0
			} else {
				anim.Frame = def.FrameCount - 1
				anim.Playing = false
				anim.FrameTimer = 0
				return
			}
		}
	}
}
