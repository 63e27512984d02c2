package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeTagged
	collisionTypeSolid
)

// sweepSlop keeps a body resting flush against a wall from counting as
// overlapping it.
const sweepSlop = 1e-6

type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	step          float64

	entities      map[ecs.Entity]*bodyInfo
	shapeEntities map[*cp.Shape]ecs.Entity
	contacts      []contact
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

// contact is a begin event captured inside the step and published after it.
type contact struct {
	a ecs.Entity
	b ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:         newSpace(),
		step:          1.0 / common.TicksPerSecond,
		entities:      make(map[ecs.Entity]*bodyInfo),
		shapeEntities: make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.applyVelocities(w)

	ps.contacts = ps.contacts[:0]
	ps.space.Step(ps.step)

	ps.syncTransforms(w)
	ps.publishContacts(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	handler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeTagged)
	handler.UserData = ps
	handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		a, okA := sys.shapeEntities[shapeA]
		b, okB := sys.shapeEntities[shapeB]
		if !okA || !okB {
			return true
		}
		// The space is not touched here; events are published after Step.
		sys.contacts = append(sys.contacts, contact{a: a, b: b})
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, exists := ps.entities[e]; exists {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		isTagged := ecs.Has(w, e, component.CollisionTagComponent.Kind())

		info := ps.createBodyInfo(transform, bodyComp, isPlayer, isTagged)
		if info == nil {
			continue
		}
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeEntities[shape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	}
}

// bodyBox returns the top-left corner and size of a body's collision box.
func bodyBox(transform *component.Transform, bodyComp *component.PhysicsBody) (x, y, w, h float64) {
	w, h = bodyComp.Width, bodyComp.Height
	if w <= 0 || h <= 0 {
		w, h = common.CellSize, common.CellSize
	}
	x = transform.X + bodyComp.OffsetX
	y = transform.Y + bodyComp.OffsetY
	if !bodyComp.AlignTopLeft {
		x -= w / 2
		y -= h / 2
	}
	return x, y, w, h
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody, isPlayer, isTagged bool) *bodyInfo {
	if ps.space == nil {
		return nil
	}

	x, y, width, height := bodyBox(transform, bodyComp)
	collisionType := collisionTypeSolid
	if isTagged {
		collisionType = collisionTypeTagged
	}

	if bodyComp.Static {
		bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
		shape := cp.NewBox2(ps.space.StaticBody, bb, 0)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionType)
		shape.SetSensor(bodyComp.Sensor)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	// Top-down bodies never rotate.
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x + width/2, Y: y + height/2})
	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionType)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

// applyVelocities moves every dynamic body by its requested velocity,
// clamped against solid static shapes. The step that follows only reports
// contacts.
func (ps *PhysicsSystem) applyVelocities(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		width, height := bodyComp.Width, bodyComp.Height
		if width <= 0 || height <= 0 {
			width, height = common.CellSize, common.CellSize
		}
		pos := info.body.Position()
		box := common.RectAround(pos.X, pos.Y, width/2, height/2)

		dx := ps.sweepX(box, bodyComp.VelX*ps.step)
		box.X += dx
		dy := ps.sweepY(box, bodyComp.VelY*ps.step)
		box.Y += dy

		cx, cy := box.Center()
		info.body.SetPosition(cp.Vector{X: cx, Y: cy})
		info.body.SetVelocity(0, 0)
		info.body.SetAngularVelocity(0)
	}
}

// blockers returns the solid static boxes touching area. Sensors never block.
func (ps *PhysicsSystem) blockers(area common.Rect) []common.Rect {
	var out []common.Rect
	bb := cp.BB{L: area.X, B: area.Y, R: area.X + area.Width, T: area.Y + area.Height}
	ps.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if shape.Sensor() || shape.Body() != ps.space.StaticBody {
			return
		}
		sb := shape.BB()
		out = append(out, common.Rect{X: sb.L, Y: sb.B, Width: sb.R - sb.L, Height: sb.T - sb.B})
	}, nil)
	return out
}

func inset(r common.Rect) common.Rect {
	return common.Rect{X: r.X + sweepSlop, Y: r.Y + sweepSlop, Width: r.Width - 2*sweepSlop, Height: r.Height - 2*sweepSlop}
}

// sweepX shortens a horizontal move of box so it stops at the first solid
// box in its path. The whole swept area is tested, so fast moves cannot
// tunnel. Boxes the body already overlaps are ignored so it can walk out.
func (ps *PhysicsSystem) sweepX(box common.Rect, dx float64) float64 {
	if dx == 0 {
		return 0
	}
	swept := box
	swept.Width += math.Abs(dx)
	if dx < 0 {
		swept.X += dx
	}
	for _, b := range ps.blockers(swept) {
		if !inset(swept).Intersects(b) || inset(box).Intersects(b) {
			continue
		}
		if dx > 0 {
			dx = common.Clamp(dx, 0, math.Max(0, b.X-(box.X+box.Width)))
		} else {
			dx = common.Clamp(dx, math.Min(0, b.X+b.Width-box.X), 0)
		}
	}
	return dx
}

func (ps *PhysicsSystem) sweepY(box common.Rect, dy float64) float64 {
	if dy == 0 {
		return 0
	}
	swept := box
	swept.Height += math.Abs(dy)
	if dy < 0 {
		swept.Y += dy
	}
	for _, b := range ps.blockers(swept) {
		if !inset(swept).Intersects(b) || inset(box).Intersects(b) {
			continue
		}
		if dy > 0 {
			dy = common.Clamp(dy, 0, math.Max(0, b.Y-(box.Y+box.Height)))
		} else {
			dy = common.Clamp(dy, math.Min(0, b.Y+b.Height-box.Y), 0)
		}
	}
	return dy
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static || info.body == nil {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		if bodyComp.AlignTopLeft {
			transform.X = pos.X - bodyComp.Width/2.0 - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.Height/2.0 - bodyComp.OffsetY
		} else {
			transform.X = pos.X - bodyComp.OffsetX
			transform.Y = pos.Y - bodyComp.OffsetY
		}
	}
}

func (ps *PhysicsSystem) publishContacts(w *ecs.World) {
	for _, c := range ps.contacts {
		player, other := c.a, c.b
		if !ecs.Has(w, player, component.PlayerTagComponent.Kind()) {
			player, other = other, player
		}
		if !w.IsAlive(player) || !w.IsAlive(other) {
			continue
		}
		tag, ok := ecs.Get(w, other, component.CollisionTagComponent.Kind())
		if !ok {
			continue
		}
		w.Events().Push(ecs.Event{
			Type: ecs.EventCollision,
			Data: ecs.CollisionEvent{Entity: player, Other: other, Tag: tag.Name},
		})
	}
	ps.contacts = ps.contacts[:0]
}

// Teleport moves e to (x, y) without sweeping and stops it.
func (ps *PhysicsSystem) Teleport(w *ecs.World, e ecs.Entity, x, y float64) bool {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	transform.X = x
	transform.Y = y

	bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return true
	}
	bodyComp.VelX, bodyComp.VelY = 0, 0

	info := ps.entities[e]
	if info == nil || info.static || info.body == nil {
		return true
	}
	bx, by, bw, bh := bodyBox(transform, bodyComp)
	info.body.SetPosition(cp.Vector{X: bx + bw/2, Y: by + bh/2})
	info.body.SetVelocity(0, 0)
	return true
}

// Shapes returns how many shapes are currently in the space for e.
func (ps *PhysicsSystem) Shapes(e ecs.Entity) int {
	if ps == nil {
		return 0
	}
	if info := ps.entities[e]; info != nil {
		return len(info.shapes)
	}
	return 0
}

// ShapeCount is the number of entity shapes in the space.
func (ps *PhysicsSystem) ShapeCount() int {
	if ps == nil {
		return 0
	}
	return len(ps.shapeEntities)
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			if shape == nil || ps.space == nil {
				continue
			}
			ps.space.RemoveShape(shape)
			delete(ps.shapeEntities, shape)
		}
		if info.body != nil && !info.static && ps.space != nil {
			ps.space.RemoveBody(info.body)
		}

		delete(ps.entities, e)
	}
}
