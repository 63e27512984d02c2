package component

import "github.com/jakecoffman/cp"

// PhysicsBody describes a collision volume. Body and Shape are filled in by
// the physics system once the entity has been synced into the space.
type PhysicsBody struct {
	Width        float64
	Height       float64
	OffsetX      float64
	OffsetY      float64
	Static       bool
	AlignTopLeft bool
	Friction     float64

	// Sensor volumes report contacts but never block movement.
	Sensor bool

	// VelX and VelY are the requested velocity of a dynamic body, applied
	// before each step.
	VelX float64
	VelY float64

	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
