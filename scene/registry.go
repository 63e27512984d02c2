package scene

import (
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/levels"
)

// Cell is the part every grid instance shares. Entity is set while the
// instance is materialized in the world.
type Cell struct {
	Row    int
	Col    int
	Pos    levels.Point
	Entity ecs.Entity
}

// Instance is a door or boundary the culling window can materialize.
type Instance interface {
	cell() *Cell
	materialize(w *ecs.World, size float64) (ecs.Entity, error)
}

type DoorInstance struct {
	Cell
	Target levels.Tag
	Spawn  levels.Point
}

func (d *DoorInstance) cell() *Cell { return &d.Cell }

func (d *DoorInstance) materialize(w *ecs.World, size float64) (ecs.Entity, error) {
	return entity.NewDoor(w, component.Door{
		To:     d.Target,
		SpawnX: d.Spawn.X,
		SpawnY: d.Spawn.Y,
		Row:    d.Row,
		Col:    d.Col,
	}, d.Pos.X, d.Pos.Y, size)
}

type BoundaryInstance struct {
	Cell
}

func (b *BoundaryInstance) cell() *Cell { return &b.Cell }

func (b *BoundaryInstance) materialize(w *ecs.World, size float64) (ecs.Entity, error) {
	return entity.NewBoundary(w, component.Boundary{Row: b.Row, Col: b.Col}, b.Pos.X, b.Pos.Y, size)
}

// Registry holds every door and boundary of a scene, materialized or not.
type Registry struct {
	Doors      []*DoorInstance
	Boundaries []*BoundaryInstance
}

// buildGrid walks grid row-major and keeps the instances build accepts.
func buildGrid[T any](s *levels.Scene, grid [][]int, build func(code int, c Cell) (T, bool)) []T {
	var out []T
	for row, cells := range grid {
		for col, code := range cells {
			if code == 0 {
				continue
			}
			c := Cell{Row: row, Col: col, Pos: s.CellPosition(row, col)}
			if inst, ok := build(code, c); ok {
				out = append(out, inst)
			}
		}
	}
	return out
}

// BuildRegistry creates one door per recognized door code and one boundary
// per solid cell. Door spawns come from the source scene's spawn table.
func BuildRegistry(s *levels.Scene) *Registry {
	doors := buildGrid(s, s.Doors.Grid, func(code int, c Cell) (*DoorInstance, bool) {
		target, ok := levels.TagForCode(levels.DoorCode(code))
		if !ok {
			return nil, false
		}
		spawn, ok := s.Doors.Spawns[levels.DoorCode(code)]
		if !ok {
			return nil, false
		}
		return &DoorInstance{Cell: c, Target: target, Spawn: spawn}, true
	})
	boundaries := buildGrid(s, s.Boundaries, func(code int, c Cell) (*BoundaryInstance, bool) {
		if code != 1 {
			return nil, false
		}
		return &BoundaryInstance{Cell: c}, true
	})
	return &Registry{Doors: doors, Boundaries: boundaries}
}

// Instances returns doors followed by boundaries.
func (r *Registry) Instances() []Instance {
	if r == nil {
		return nil
	}
	out := make([]Instance, 0, len(r.Doors)+len(r.Boundaries))
	for _, d := range r.Doors {
		out = append(out, d)
	}
	for _, b := range r.Boundaries {
		out = append(out, b)
	}
	return out
}
