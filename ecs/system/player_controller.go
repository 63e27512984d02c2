package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/logger"
	"github.com/sirupsen/logrus"
)

type directionBinding struct {
	held   func(in component.Input) bool
	facing component.Facing
	dx, dy float64
}

// directionPriority is evaluated in order; the first held key wins and the
// rest are ignored, so movement never combines into a diagonal.
var directionPriority = []directionBinding{
	{held: func(in component.Input) bool { return in.Right }, facing: component.FacingRight, dx: 1},
	{held: func(in component.Input) bool { return in.Left }, facing: component.FacingLeft, dx: -1},
	{held: func(in component.Input) bool { return in.Down }, facing: component.FacingDown, dy: 1},
	{held: func(in component.Input) bool { return in.Up }, facing: component.FacingUp, dy: -1},
}

// ResolveLocomotion derives this frame's movement from the held keys. The
// previous facing is kept when no direction is held.
func ResolveLocomotion(in component.Input, tuning component.Player, prev component.Facing) component.Locomotion {
	loc := component.Locomotion{Facing: prev, State: component.LocomotionIdle, AnimSpeed: tuning.IdleAnimSpeed}

	for _, b := range directionPriority {
		if !b.held(in) {
			continue
		}
		loc.DirX, loc.DirY = b.dx, b.dy
		loc.Facing = b.facing
		if in.Run {
			loc.State = component.LocomotionRunning
			loc.Speed = tuning.RunSpeed
			loc.AnimSpeed = tuning.RunAnimSpeed
		} else {
			loc.State = component.LocomotionWalking
			loc.Speed = tuning.WalkSpeed
			loc.AnimSpeed = tuning.WalkAnimSpeed
		}
		break
	}

	return loc
}

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.LocomotionComponent.Kind(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		tuning, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		loc, ok := ecs.Get(w, e, component.LocomotionComponent.Kind())
		if !ok {
			continue
		}

		*loc = ResolveLocomotion(*input, *tuning, loc.Facing)

		if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok {
			anim.Play(component.ClipName(loc.Facing, loc.State))
			anim.Speed = loc.AnimSpeed
		}

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			body.VelX = loc.DirX * loc.Speed
			body.VelY = loc.DirY * loc.Speed
		}

		if input.Inspect {
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				logger.Log.WithFields(logrus.Fields{"x": t.X, "y": t.Y}).Info("player position")
			}
		}

		if loc.Moving() {
			w.Events().Push(ecs.Event{Type: ecs.EventPlayerMoved, Data: e})
		}
	}
}
