package render

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

// View maps world coordinates to the screen. The camera position lands in
// the middle of the screen.
type View struct {
	CamX, CamY   float64
	Zoom         float64
	HalfW, HalfH float64
}

func (v View) ToScreen(x, y float64) (float64, float64) {
	return (x-v.CamX)*v.Zoom + v.HalfW, (y-v.CamY)*v.Zoom + v.HalfH
}

type RenderSystem struct {
	images    *Images
	camEntity ecs.Entity
}

func NewRenderSystem(images *Images) *RenderSystem {
	if images == nil {
		images = NewImages()
	}
	return &RenderSystem{images: images}
}

// View returns the current camera view for a screen of the given size.
func (r *RenderSystem) View(w *ecs.World, screenW, screenH int) View {
	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}

	v := View{Zoom: 1, HalfW: float64(screenW) / 2, HalfH: float64(screenH) / 2}
	if t, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind()); ok {
		v.CamX, v.CamY = t.X, t.Y
	}
	if cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		v.Zoom = cam.Zoom
	}
	return v
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	view := r.View(w, b.Dx(), b.Dy())

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(w, entities[i]), layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}

		img := r.resolve(w, e, s)
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx, sy := t.ScaleX, t.ScaleY
		if sx == 0 {
			sx = 1
		}
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(view.Zoom, view.Zoom)
		x, y := view.ToScreen(t.X, t.Y)
		op.GeoM.Translate(x, y)

		screen.DrawImage(img, op)
	}
}

// resolve picks the texture for a sprite, falling back to a placeholder the
// size of one frame. Scenery without art is skipped.
func (r *RenderSystem) resolve(w *ecs.World, e ecs.Entity, s *component.Sprite) *ebiten.Image {
	img, ok := r.images.Get(s.Image)
	if ok {
		if s.UseSource && !s.Source.Empty() {
			if sub, ok := img.SubImage(s.Source).(*ebiten.Image); ok {
				return sub
			}
		}
		return img
	}

	if ecs.Has(w, e, component.SceneryTagComponent.Kind()) {
		return nil
	}
	fw, fh := 16, 16
	if s.UseSource && !s.Source.Empty() {
		fw, fh = s.Source.Dx(), s.Source.Dy()
	}
	return r.images.Placeholder(s.Image, fw, fh, s.Tint)
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}
