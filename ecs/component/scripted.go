package component

// Scripted runs a tengo script every Period ticks.
type Scripted struct {
	Path    string
	Period  int
	Elapsed int
}

var ScriptedComponent = NewComponent[Scripted]()
