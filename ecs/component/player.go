package component

// Player holds the tuning constants of the player controller.
type Player struct {
	WalkSpeed     float64
	RunSpeed      float64
	IdleAnimSpeed float64
	WalkAnimSpeed float64
	RunAnimSpeed  float64
}

var PlayerComponent = NewComponent[Player]()
