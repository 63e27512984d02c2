package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the asset root. Keys such as "maps/overworld/background.png" are
// resolved under it.
var Dir = "assets"

// LoadFile reads an asset by key.
func LoadFile(key string) ([]byte, error) {
	clean := cleanAssetPath(key)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty key")
	}
	b, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean)))
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", key, err)
	}
	return b, nil
}

// LoadImage decodes a PNG asset.
func LoadImage(key string) (image.Image, error) {
	b, err := LoadFile(key)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", key, err)
	}
	return img, nil
}

// Placeholder is a solid w x h image used when an asset is missing.
func Placeholder(w, h int, c color.Color) image.Image {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
