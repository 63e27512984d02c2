package levels

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTileSize = 16
	DefaultScale    = 2.5
)

// Point is a world-space coordinate.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DoorConfig is a grid of DoorCode cells plus the spawn point used in the
// destination scene for each code.
type DoorConfig struct {
	Grid   [][]int
	Spawns map[DoorCode]Point
}

// BoundaryMatrix flags impassable cells with 1.
type BoundaryMatrix [][]int

// CharacterMatrix places characters by CharacterCode.
type CharacterMatrix [][]int

// Scene is the static configuration of one scene.
type Scene struct {
	Tag        Tag
	Width      int
	Height     int
	TileSize   float64
	Scale      float64
	Spawn      *Point
	Doors      DoorConfig
	Boundaries BoundaryMatrix
	Characters CharacterMatrix
}

// CellSize is the world size of one tile.
func (s *Scene) CellSize() float64 {
	if s == nil {
		return DefaultTileSize * DefaultScale
	}
	return s.TileSize * s.Scale
}

// CellPosition returns the world position of a cell's top-left corner.
func (s *Scene) CellPosition(row, col int) Point {
	size := s.CellSize()
	return Point{X: float64(col) * size, Y: float64(row) * size}
}

// Background and Foreground are the asset keys of the scene art.
func (s *Scene) Background() string {
	return fmt.Sprintf("maps/%s/background.png", s.Tag)
}

func (s *Scene) Foreground() string {
	return fmt.Sprintf("maps/%s/foreground.png", s.Tag)
}

type sceneFile struct {
	Tag      Tag     `yaml:"tag"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	TileSize float64 `yaml:"tile_size"`
	Scale    float64 `yaml:"scale"`
	Spawn    *Point  `yaml:"spawn"`
	Doors    struct {
		Grid   string        `yaml:"grid"`
		Spawns map[int]Point `yaml:"spawns"`
	} `yaml:"doors"`
	Boundaries string `yaml:"boundaries"`
	Characters string `yaml:"characters"`
}

// Parse decodes a scene YAML document. It does not validate; call Validate.
func Parse(data []byte) (*Scene, error) {
	var raw sceneFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("levels: unmarshal scene: %w", err)
	}

	s := &Scene{
		Tag:      raw.Tag,
		Width:    raw.Width,
		Height:   raw.Height,
		TileSize: raw.TileSize,
		Scale:    raw.Scale,
		Spawn:    raw.Spawn,
		Doors:    DoorConfig{Spawns: make(map[DoorCode]Point, len(raw.Doors.Spawns))},
	}
	if s.TileSize <= 0 {
		s.TileSize = DefaultTileSize
	}
	if s.Scale <= 0 {
		s.Scale = DefaultScale
	}
	for code, p := range raw.Doors.Spawns {
		s.Doors.Spawns[DoorCode(code)] = p
	}

	var err error
	if s.Doors.Grid, err = parseGrid(raw.Doors.Grid); err != nil {
		return nil, fmt.Errorf("levels: %s doors: %w", raw.Tag, err)
	}
	var bounds [][]int
	if bounds, err = parseGrid(raw.Boundaries); err != nil {
		return nil, fmt.Errorf("levels: %s boundaries: %w", raw.Tag, err)
	}
	s.Boundaries = bounds
	var chars [][]int
	if chars, err = parseGrid(raw.Characters); err != nil {
		return nil, fmt.Errorf("levels: %s characters: %w", raw.Tag, err)
	}
	s.Characters = chars

	return s, nil
}

// parseGrid reads whitespace separated rows of single digit cells.
func parseGrid(text string) ([][]int, error) {
	rows := strings.Fields(text)
	if len(rows) == 0 {
		return nil, nil
	}
	grid := make([][]int, len(rows))
	for r, row := range rows {
		cells := make([]int, len(row))
		for c, ch := range row {
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("row %d col %d: invalid cell %q", r, c, ch)
			}
			cells[c] = int(ch - '0')
		}
		grid[r] = cells
	}
	return grid, nil
}
