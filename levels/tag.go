package levels

// Tag identifies a scene. It doubles as the lookup key and as a door
// destination.
type Tag string

const (
	Overworld  Tag = "overworld"
	BlockA     Tag = "block-a"
	BlockB     Tag = "block-b"
	BlockC     Tag = "block-c"
	WestForest Tag = "west-forest"
	EastForest Tag = "east-forest"
)

// Tags lists every scene in door-code order.
var Tags = []Tag{Overworld, BlockA, BlockB, BlockC, WestForest, EastForest}

// DoorCode is the cell value used in door grids; codes map 1:1 to tags.
type DoorCode int

const (
	DoorNone DoorCode = iota
	DoorOverworld
	DoorBlockA
	DoorBlockB
	DoorBlockC
	DoorWestForest
	DoorEastForest
)

// TagForCode returns the destination tag for a door cell code.
func TagForCode(code DoorCode) (Tag, bool) {
	if code <= DoorNone || int(code) > len(Tags) {
		return "", false
	}
	return Tags[code-1], true
}

// CodeForTag is the inverse of TagForCode.
func CodeForTag(tag Tag) (DoorCode, bool) {
	for i, t := range Tags {
		if t == tag {
			return DoorCode(i + 1), true
		}
	}
	return DoorNone, false
}

// Valid reports whether t is a known scene.
func (t Tag) Valid() bool {
	_, ok := CodeForTag(t)
	return ok
}

func (t Tag) String() string {
	return string(t)
}
