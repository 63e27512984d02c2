package component

const (
	LayerBackground = iota
	LayerGame
	LayerForeground
)

type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
