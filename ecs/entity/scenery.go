package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// NewScenery spawns one full-map art layer anchored at the world origin.
func NewScenery(w *ecs.World, image string, layer int, scale float64) (ecs.Entity, error) {
	if scale <= 0 {
		scale = 1
	}

	scenery := ecs.CreateEntity(w)
	if err := ecs.Add(w, scenery, component.SceneryTagComponent.Kind(), &component.SceneryTag{}); err != nil {
		return 0, fmt.Errorf("scenery: add scenery tag: %w", err)
	}
	if err := ecs.Add(w, scenery, component.TransformComponent.Kind(), &component.Transform{ScaleX: scale, ScaleY: scale}); err != nil {
		return 0, fmt.Errorf("scenery: add transform: %w", err)
	}
	if err := ecs.Add(w, scenery, component.SpriteComponent.Kind(), &component.Sprite{Image: image}); err != nil {
		return 0, fmt.Errorf("scenery: add sprite: %w", err)
	}
	if err := ecs.Add(w, scenery, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer}); err != nil {
		return 0, fmt.Errorf("scenery: add render layer: %w", err)
	}

	return scenery, nil
}
