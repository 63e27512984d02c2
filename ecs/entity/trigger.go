package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// addCell gives e a static one-cell collision volume with its top-left
// corner at (x, y). A sensor cell can be walked into.
func addCell(w *ecs.World, e ecs.Entity, tag string, x, y, size float64, sensor bool) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.CollisionTagComponent.Kind(), &component.CollisionTag{Name: tag}); err != nil {
		return fmt.Errorf("add collision tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:        size,
		Height:       size,
		Static:       true,
		AlignTopLeft: true,
		Sensor:       sensor,
	}); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	return nil
}

// NewDoor materializes a door volume at (x, y).
func NewDoor(w *ecs.World, door component.Door, x, y, size float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addCell(w, e, component.TagDoor, x, y, size, true); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("door: %w", err)
	}
	d := door
	if err := ecs.Add(w, e, component.DoorComponent.Kind(), &d); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("door: add door component: %w", err)
	}
	return e, nil
}

// NewBoundary materializes an impassable cell at (x, y).
func NewBoundary(w *ecs.World, boundary component.Boundary, x, y, size float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addCell(w, e, component.TagBoundary, x, y, size, false); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("boundary: %w", err)
	}
	b := boundary
	if err := ecs.Add(w, e, component.BoundaryComponent.Kind(), &b); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("boundary: add boundary component: %w", err)
	}
	return e, nil
}

// NewCullWindow creates the culling window centered on (x, y).
func NewCullWindow(w *ecs.World, halfExtent, x, y float64) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CullWindowComponent.Kind(), &component.CullWindow{HalfExtent: halfExtent}); err != nil {
		return 0, fmt.Errorf("cull window: add cull window: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("cull window: add transform: %w", err)
	}
	return e, nil
}
