package component

// Boundary is one impassable map cell.
type Boundary struct {
	Row int
	Col int
}

var BoundaryComponent = NewComponent[Boundary]()
