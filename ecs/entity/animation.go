package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/prefabs"
)

var (
	facings = []component.Facing{component.FacingRight, component.FacingLeft, component.FacingDown, component.FacingUp}
	states  = []component.LocomotionState{component.LocomotionIdle, component.LocomotionWalking, component.LocomotionRunning}
)

// RequiredClips lists the 12 clips the player controller can select.
func RequiredClips() []string {
	clips := make([]string, 0, len(facings)*len(states))
	for _, s := range states {
		for _, f := range facings {
			clips = append(clips, component.ClipName(f, s))
		}
	}
	return clips
}

// BuildAnimationDefs turns a row-per-clip sheet into clip definitions and
// checks that every clip the controller selects is present.
func BuildAnimationDefs(sheet prefabs.SheetSpec) (map[string]component.AnimationDef, error) {
	if sheet.Columns <= 0 || sheet.Rows <= 0 || sheet.FrameW <= 0 || sheet.FrameH <= 0 {
		return nil, fmt.Errorf("animation: invalid sheet %dx%d of %dx%d frames", sheet.Columns, sheet.Rows, sheet.FrameW, sheet.FrameH)
	}
	if len(sheet.Clips) > sheet.Rows {
		return nil, fmt.Errorf("animation: %d clips for %d rows", len(sheet.Clips), sheet.Rows)
	}

	defs := make(map[string]component.AnimationDef, len(sheet.Clips))
	for row, name := range sheet.Clips {
		if _, dup := defs[name]; dup {
			return nil, fmt.Errorf("animation: duplicate clip %q", name)
		}
		defs[name] = component.AnimationDef{
			Name:       name,
			Row:        row,
			FrameCount: sheet.Columns,
			FrameW:     sheet.FrameW,
			FrameH:     sheet.FrameH,
			FPS:        sheet.FPS,
			Loop:       sheet.Loop,
		}
	}

	for _, name := range RequiredClips() {
		if _, ok := defs[name]; !ok {
			return nil, fmt.Errorf("animation: missing clip %q", name)
		}
	}
	return defs, nil
}
