package common

const (
	BaseWidth  = 800
	BaseHeight = 600

	// TileSize is the authored tile size of every map, in pixels.
	TileSize = 16
	// WorldScale is applied to map art and grid coordinates.
	WorldScale = 2.5

	TicksPerSecond = 60
)

// CellSize is one tile in world units.
const CellSize = TileSize * WorldScale
