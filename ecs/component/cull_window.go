package component

// CullWindow is the square around the player that decides which doors and
// boundaries are materialized. Its Transform holds the center.
type CullWindow struct {
	HalfExtent float64
}

var CullWindowComponent = NewComponent[CullWindow]()
