package system

import "github.com/milk9111/overworld/ecs"

// CollisionCallback receives the entity the subscriber started touching.
type CollisionCallback func(w *ecs.World, other ecs.Entity)

type subscription struct {
	id  int
	tag string
	fn  CollisionCallback
}

// CollisionDispatcher delivers collision begin events to per-entity
// subscribers filtered by tag.
type CollisionDispatcher struct {
	subs   map[ecs.Entity][]subscription
	nextID int
}

func NewCollisionDispatcher() *CollisionDispatcher {
	return &CollisionDispatcher{subs: make(map[ecs.Entity][]subscription)}
}

// Subscribe registers fn for begin events between e and entities tagged tag.
// The returned id can be passed to Cancel.
func (d *CollisionDispatcher) Subscribe(e ecs.Entity, tag string, fn CollisionCallback) int {
	if d == nil || fn == nil {
		return 0
	}
	if d.subs == nil {
		d.subs = make(map[ecs.Entity][]subscription)
	}
	d.nextID++
	d.subs[e] = append(d.subs[e], subscription{id: d.nextID, tag: tag, fn: fn})
	return d.nextID
}

// Cancel removes a single subscription.
func (d *CollisionDispatcher) Cancel(e ecs.Entity, id int) {
	if d == nil {
		return
	}
	subs := d.subs[e]
	for i, s := range subs {
		if s.id == id {
			d.subs[e] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Unsubscribe drops every subscription held by e.
func (d *CollisionDispatcher) Unsubscribe(e ecs.Entity) {
	if d == nil {
		return
	}
	delete(d.subs, e)
}

func (d *CollisionDispatcher) Update(w *ecs.World) {
	if d == nil || w == nil || len(d.subs) == 0 {
		return
	}

	w.Events().Each(ecs.EventCollision, func(evt ecs.Event) {
		ce, ok := evt.Data.(ecs.CollisionEvent)
		if !ok {
			return
		}
		// Callbacks may subscribe or unsubscribe; iterate a copy.
		subs := append([]subscription(nil), d.subs[ce.Entity]...)
		for _, s := range subs {
			if s.tag != ce.Tag {
				continue
			}
			s.fn(w, ce.Other)
		}
	})
}
