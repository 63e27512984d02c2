package component

// Character is a static NPC placed from a scene's character matrix.
type Character struct {
	Code   int
	Kind   string
	Facing Facing
	Script string
	Row    int
	Col    int
	FrameW int
	FrameH int
}

var CharacterComponent = NewComponent[Character]()
