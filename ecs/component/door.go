package component

import "github.com/milk9111/overworld/levels"

// Door is a trigger volume that moves the player to another scene.
type Door struct {
	To     levels.Tag
	SpawnX float64
	SpawnY float64
	Row    int
	Col    int
}

var DoorComponent = NewComponent[Door]()
