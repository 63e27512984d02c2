package component

// Transform places an entity in world units. Scenery, doors and boundaries
// use the top-left corner; the player and camera use their center.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
