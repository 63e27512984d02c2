package component

// Input stores per-frame key state for an entity.
type Input struct {
	Right   bool
	Left    bool
	Down    bool
	Up      bool
	Run     bool
	Inspect bool
}

var InputComponent = NewComponent[Input]()
