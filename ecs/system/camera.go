package system

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update puts the camera exactly on its target's transform. The renderer
// offsets by half the screen.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	if !w.IsAlive(cs.targetEntity) {
		camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
		if !ok {
			return
		}
		target, ok := findEntityByNameOrTag(w, camComp.TargetName)
		if !ok {
			return
		}
		cs.targetEntity = target
	}

	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	camTransform.X = targetTransform.X
	camTransform.Y = targetTransform.Y
}

func findEntityByNameOrTag(w *ecs.World, name string) (ecs.Entity, bool) {
	switch name {
	case "", component.TagPlayer:
		return w.First(component.PlayerTagComponent.Kind())
	}
	for _, e := range w.Query(component.CollisionTagComponent.Kind()) {
		if tag, ok := ecs.Get(w, e, component.CollisionTagComponent.Kind()); ok && tag.Name == name {
			return e, true
		}
	}
	return 0, false
}
