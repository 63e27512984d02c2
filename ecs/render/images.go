package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/logger"
	"golang.org/x/image/colornames"
)

type cacheKey struct {
	key  string
	w, h int
}

// Images caches decoded textures by asset key. Missing assets are replaced
// by a tinted placeholder once and never retried.
type Images struct {
	loaded  map[string]*ebiten.Image
	missing map[string]bool
	holders map[cacheKey]*ebiten.Image
}

func NewImages() *Images {
	return &Images{
		loaded:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		holders: make(map[cacheKey]*ebiten.Image),
	}
}

// Get returns the texture for key, if the asset exists.
func (c *Images) Get(key string) (*ebiten.Image, bool) {
	if key == "" {
		return nil, false
	}
	if img, ok := c.loaded[key]; ok {
		return img, true
	}
	if c.missing[key] {
		return nil, false
	}
	src, err := assets.LoadImage(key)
	if err != nil {
		logger.Log.WithError(err).WithField("image", key).Warn("using placeholder")
		c.missing[key] = true
		return nil, false
	}
	img := ebiten.NewImageFromImage(src)
	c.loaded[key] = img
	return img, true
}

// Placeholder returns a solid w x h texture for key.
func (c *Images) Placeholder(key string, w, h int, tint color.Color) *ebiten.Image {
	if tint == nil {
		tint = colornames.Magenta
	}
	k := cacheKey{key: key, w: w, h: h}
	if img, ok := c.holders[k]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(assets.Placeholder(w, h, tint))
	c.holders[k] = img
	return img
}
