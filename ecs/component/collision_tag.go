package component

const (
	TagPlayer    = "player"
	TagDoor      = "door"
	TagBoundary  = "boundary"
	TagCharacter = "character"
)

// CollisionTag names the group an entity belongs to for collision callbacks.
type CollisionTag struct {
	Name string
}

var CollisionTagComponent = NewComponent[CollisionTag]()
