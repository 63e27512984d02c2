package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// SceneryTag marks background/foreground art owned by the active scene.
type SceneryTag struct{}

var SceneryTagComponent = NewComponent[SceneryTag]()
