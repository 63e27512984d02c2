package entity

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/prefabs"
)

type collideHook struct {
	tag string
	fn  system.CollisionCallback
}

// Player owns the single player entity. Collision hooks registered with
// OnCollide survive Destroy and are re-attached by the next Load.
type Player struct {
	world      *ecs.World
	physics    *system.PhysicsSystem
	dispatcher *system.CollisionDispatcher
	spec       *prefabs.PlayerSpec
	defs       map[string]component.AnimationDef

	entity ecs.Entity
	loaded bool
	hooks  []collideHook
}

func NewPlayer(w *ecs.World, physics *system.PhysicsSystem, dispatcher *system.CollisionDispatcher, spec *prefabs.PlayerSpec) (*Player, error) {
	if w == nil {
		return nil, fmt.Errorf("player: nil world")
	}
	if spec == nil {
		loaded, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return nil, fmt.Errorf("player: load spec: %w", err)
		}
		spec = loaded
	}

	defs, err := BuildAnimationDefs(spec.Sheet)
	if err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	return &Player{
		world:      w,
		physics:    physics,
		dispatcher: dispatcher,
		spec:       spec,
		defs:       defs,
	}, nil
}

// Load materializes the player at (x, y), facing down and idle. Loading an
// already loaded player only moves it.
func (p *Player) Load(x, y float64) error {
	if p.loaded && p.world.IsAlive(p.entity) {
		p.SetPosition(x, y)
		return nil
	}

	e, err := p.build(x, y)
	if err != nil {
		return err
	}
	p.entity = e
	p.loaded = true

	if p.dispatcher != nil {
		for _, h := range p.hooks {
			p.dispatcher.Subscribe(e, h.tag, h.fn)
		}
	}
	return nil
}

func (p *Player) build(x, y float64) (ecs.Entity, error) {
	w := p.world
	spec := p.spec
	player := ecs.CreateEntity(w)

	fail := func(step string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, player)
		return 0, fmt.Errorf("player: add %s: %w", step, err)
	}

	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fail("player tag", err)
	}
	if err := ecs.Add(w, player, component.CollisionTagComponent.Kind(), &component.CollisionTag{Name: component.TagPlayer}); err != nil {
		return fail("collision tag", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fail("input", err)
	}
	if err := ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{
		WalkSpeed:     spec.WalkSpeed,
		RunSpeed:      spec.RunSpeed,
		IdleAnimSpeed: spec.AnimRates.Idle,
		WalkAnimSpeed: spec.AnimRates.Walk,
		RunAnimSpeed:  spec.AnimRates.Run,
	}); err != nil {
		return fail("player component", err)
	}
	if err := ecs.Add(w, player, component.LocomotionComponent.Kind(), &component.Locomotion{
		Facing:    component.FacingDown,
		AnimSpeed: spec.AnimRates.Idle,
	}); err != nil {
		return fail("locomotion", err)
	}

	scaleX, scaleY := spec.Transform.ScaleX, spec.Transform.ScaleY
	if scaleX == 0 {
		scaleX = 1
	}
	if scaleY == 0 {
		scaleY = 1
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{
		X:        x,
		Y:        y,
		ScaleX:   scaleX,
		ScaleY:   scaleY,
		Rotation: spec.Transform.Rotation,
	}); err != nil {
		return fail("transform", err)
	}

	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:   spec.Collider.Width,
		Height:  spec.Collider.Height,
		OffsetX: spec.Collider.OffsetX,
		OffsetY: spec.Collider.OffsetY,
	}); err != nil {
		return fail("physics body", err)
	}

	if err := ecs.Add(w, player, component.SpriteComponent.Kind(), &component.Sprite{
		Image:     spec.Sprite.Image,
		UseSource: spec.Sprite.UseSource,
		OriginX:   spec.Sprite.OriginX,
		OriginY:   spec.Sprite.OriginY,
	}); err != nil {
		return fail("sprite", err)
	}

	initial := spec.Sheet.Initial
	if _, ok := p.defs[initial]; !ok {
		initial = component.ClipName(component.FacingDown, component.LocomotionIdle)
	}
	anim := &component.Animation{
		Sheet: spec.Sheet.Image,
		Defs:  p.defs,
		Speed: spec.AnimRates.Idle,
	}
	anim.Play(initial)
	if err := ecs.Add(w, player, component.AnimationComponent.Kind(), anim); err != nil {
		return fail("animation", err)
	}

	if err := ecs.Add(w, player, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer.Index}); err != nil {
		return fail("render layer", err)
	}

	return player, nil
}

// SetPosition teleports the player; no interpolation, velocity is cleared.
func (p *Player) SetPosition(x, y float64) {
	if !p.Loaded() {
		return
	}
	if p.physics != nil {
		p.physics.Teleport(p.world, p.entity, x, y)
		return
	}
	if t, ok := ecs.Get(p.world, p.entity, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
}

// OnCollide calls fn for every collision begin between the player and an
// entity tagged tag.
func (p *Player) OnCollide(tag string, fn system.CollisionCallback) {
	if fn == nil {
		return
	}
	p.hooks = append(p.hooks, collideHook{tag: tag, fn: fn})
	if p.Loaded() && p.dispatcher != nil {
		p.dispatcher.Subscribe(p.entity, tag, fn)
	}
}

// Destroy removes the player entity from the world. The physics shape is
// released on the next physics update.
func (p *Player) Destroy() {
	if !p.loaded {
		return
	}
	if p.dispatcher != nil {
		p.dispatcher.Unsubscribe(p.entity)
	}
	ecs.DestroyEntity(p.world, p.entity)
	p.loaded = false
}

func (p *Player) Entity() ecs.Entity {
	return p.entity
}

func (p *Player) Loaded() bool {
	return p != nil && p.loaded && p.world.IsAlive(p.entity)
}

func (p *Player) Position() (x, y float64, ok bool) {
	if !p.Loaded() {
		return 0, 0, false
	}
	t, ok := ecs.Get(p.world, p.entity, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// Locomotion returns the latest resolved movement state.
func (p *Player) Locomotion() (component.Locomotion, bool) {
	if !p.Loaded() {
		return component.Locomotion{}, false
	}
	loc, ok := ecs.Get(p.world, p.entity, component.LocomotionComponent.Kind())
	if !ok {
		return component.Locomotion{}, false
	}
	return *loc, true
}
