package component

type AnimationDef struct {
	Name       string
	Row        int
	ColStart   int // start column (frame 0)
	FrameCount int
	FrameW     int
	FrameH     int
	FPS        float64
	Loop       bool
}

// Animation plays one clip of a sprite sheet. Speed scales the clip rate
// (1 = authored FPS).
type Animation struct {
	Sheet      string
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer float64
	Speed      float64
	Playing    bool
}

// Play switches to clip name and restarts it, unless it is already the
// current clip. It reports whether a switch happened.
func (a *Animation) Play(name string) bool {
	if a == nil || a.Current == name {
		return false
	}
	if _, ok := a.Defs[name]; !ok {
		return false
	}
	a.Current = name
	a.Frame = 0
	a.FrameTimer = 0
	a.Playing = true
	return true
}

var AnimationComponent = NewComponent[Animation]()
