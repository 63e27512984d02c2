package ecs

// Event is a generic per-frame event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventCollision carries a CollisionEvent.
	EventCollision = "collision"
	// EventPlayerMoved fires on every frame the player holds a direction.
	EventPlayerMoved = "move"
)

// CollisionEvent is emitted when Entity starts touching a tagged Other.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Tag    string
}

// EventQueue is a FIFO queue cleared at the end of every Scheduler.Update.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each visits queued events of the given type without consuming them.
// Events pushed from within fn are visited in the same pass.
func (q *EventQueue) Each(typ string, fn func(Event)) {
	if q == nil {
		return
	}
	for i := 0; i < len(q.items); i++ {
		if q.items[i].Type == typ {
			fn(q.items[i])
		}
	}
}

// Has reports whether an event of the given type is queued.
func (q *EventQueue) Has(typ string) bool {
	if q == nil {
		return false
	}
	for _, evt := range q.items {
		if evt.Type == typ {
			return true
		}
	}
	return false
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
