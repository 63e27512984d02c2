package component

import (
	"image"
	"image/color"
)

// Sprite references an image by asset key; the renderer resolves and caches
// the actual texture.
type Sprite struct {
	Image     string
	Source    image.Rectangle
	UseSource bool
	OriginX   float64
	OriginY   float64
	// Tint fills the placeholder when the image cannot be loaded.
	Tint color.Color
}

var SpriteComponent = NewComponent[Sprite]()
