package component

// Facing is one of the four directions the player or a character can face.
type Facing int

const (
	FacingRight Facing = iota
	FacingLeft
	FacingDown
	FacingUp
)

func (f Facing) String() string {
	switch f {
	case FacingRight:
		return "right"
	case FacingLeft:
		return "left"
	case FacingDown:
		return "down"
	case FacingUp:
		return "up"
	default:
		return "down"
	}
}

// ParseFacing maps "right"/"left"/"down"/"up" to a Facing.
func ParseFacing(s string) (Facing, bool) {
	switch s {
	case "right":
		return FacingRight, true
	case "left":
		return FacingLeft, true
	case "down":
		return FacingDown, true
	case "up":
		return FacingUp, true
	}
	return FacingDown, false
}

type LocomotionState int

const (
	LocomotionIdle LocomotionState = iota
	LocomotionWalking
	LocomotionRunning
)

func (s LocomotionState) String() string {
	switch s {
	case LocomotionWalking:
		return "walking"
	case LocomotionRunning:
		return "running"
	default:
		return "idle"
	}
}

// clip suffix per locomotion state, matching the sheet's row naming.
func (s LocomotionState) clipSuffix() string {
	switch s {
	case LocomotionWalking:
		return "Walk"
	case LocomotionRunning:
		return "Run"
	default:
		return "Idle"
	}
}

// ClipName returns the animation clip for a facing/state pair, for example
// "rightWalk" or "upIdle".
func ClipName(f Facing, s LocomotionState) string {
	return f.String() + s.clipSuffix()
}

// Locomotion is the per-frame movement state of the player.
type Locomotion struct {
	DirX      float64
	DirY      float64
	Facing    Facing
	State     LocomotionState
	Speed     float64
	AnimSpeed float64
}

// Moving reports whether a direction was held this frame.
func (l Locomotion) Moving() bool {
	return l.State != LocomotionIdle
}

var LocomotionComponent = NewComponent[Locomotion]()
