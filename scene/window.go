package scene

import (
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/prefabs"
)

// Window is the square culling area around the player. Cell is the world
// size of one tile.
type Window struct {
	Size      float64
	Inflation string
	Cell      float64
}

func NewWindow(spec *prefabs.CullingSpec, cell float64) Window {
	w := Window{Size: 100, Inflation: prefabs.InflationSymmetric, Cell: cell}
	if spec != nil {
		if spec.WindowSize > 0 {
			w.Size = spec.WindowSize
		}
		if spec.Inflation != "" {
			w.Inflation = spec.Inflation
		}
	}
	if w.Cell <= 0 {
		w.Cell = common.CellSize
	}
	return w
}

// Bounds returns the window rectangle centered on (cx, cy).
func (w Window) Bounds(cx, cy float64) common.Rect {
	half := w.Size / 2
	return common.RectAround(cx, cy, half, half)
}

// objectBox is the box tested against the window for an object whose cell
// corner is (x, y).
func (w Window) objectBox(x, y float64) (minX, minY, maxX, maxY float64) {
	if w.Inflation == prefabs.InflationReference {
		return x, y, x + w.Cell, y + w.Cell
	}
	// The tile grown by half a tile on every side.
	half := w.Cell / 2
	return x - half, y - half, x + w.Cell + half, y + w.Cell + half
}

// Contains reports whether an object at (x, y) overlaps the window centered
// on (cx, cy). Edges count as inside.
func (w Window) Contains(cx, cy, x, y float64) bool {
	b := w.Bounds(cx, cy)
	minX, minY, maxX, maxY := w.objectBox(x, y)
	return maxX >= b.X && minX <= b.X+b.Width &&
		maxY >= b.Y && minY <= b.Y+b.Height
}
