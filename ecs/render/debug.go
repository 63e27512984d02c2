package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var tagColors = map[string]color.Color{
	component.TagDoor:      colornames.Blue,
	component.TagBoundary:  colornames.Red,
	component.TagCharacter: colornames.Yellow,
	component.TagPlayer:    colornames.White,
}

// DebugInfo is the status line of the overlay.
type DebugInfo struct {
	Scene string
	X, Y  float64
	State string
	FPS   float64
}

// DebugOverlay outlines collision volumes and the culling window.
type DebugOverlay struct {
	Enabled bool
	face    *text.GoXFace
}

func NewDebugOverlay(enabled bool) *DebugOverlay {
	return &DebugOverlay{Enabled: enabled, face: text.NewGoXFace(basicfont.Face7x13)}
}

func (d *DebugOverlay) Toggle() {
	d.Enabled = !d.Enabled
}

func (d *DebugOverlay) Draw(w *ecs.World, screen *ebiten.Image, view View, info DebugInfo) {
	if d == nil || !d.Enabled || w == nil || screen == nil {
		return
	}

	ecs.ForEach3(w,
		component.TransformComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.CollisionTagComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, body *component.PhysicsBody, tag *component.CollisionTag) {
			clr, ok := tagColors[tag.Name]
			if !ok {
				return
			}
			x := t.X + body.OffsetX
			y := t.Y + body.OffsetY
			if !body.AlignTopLeft {
				x -= body.Width / 2
				y -= body.Height / 2
			}
			strokeWorldRect(screen, view, x, y, body.Width, body.Height, clr)
		})

	ecs.ForEach2(w,
		component.CullWindowComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, cw *component.CullWindow, t *component.Transform) {
			size := cw.HalfExtent * 2
			strokeWorldRect(screen, view, t.X-cw.HalfExtent, t.Y-cw.HalfExtent, size, size, colornames.Lime)
		})

	line := fmt.Sprintf("%s  (%.1f, %.1f)  %s  %.0f fps", info.Scene, info.X, info.Y, info.State, info.FPS)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(colornames.White)
	text.Draw(screen, line, d.face, op)
}

func strokeWorldRect(screen *ebiten.Image, view View, x, y, w, h float64, clr color.Color) {
	sx, sy := view.ToScreen(x, y)
	vector.StrokeRect(screen, float32(sx), float32(sy), float32(w*view.Zoom), float32(h*view.Zoom), 1, clr, false)
}
