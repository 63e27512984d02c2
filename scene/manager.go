package scene

import (
	"fmt"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
)

// DefaultSpawn is where the player starts in the overworld when neither the
// caller nor the scene file names a spawn point.
var DefaultSpawn = levels.Point{X: 1600, Y: 1990}

type Config struct {
	Characters *prefabs.CharactersSpec
	Culling    *prefabs.CullingSpec
}

// active is everything the current scene put into the world besides the
// player.
type active struct {
	scene      *levels.Scene
	registry   *Registry
	culler     *Culler
	scenery    []ecs.Entity
	characters []ecs.Entity
	window     ecs.Entity
}

// Manager owns which scene is current. Exactly one scene is active after
// the first successful Activate.
type Manager struct {
	world  *ecs.World
	player *entity.Player
	scenes map[levels.Tag]*levels.Scene

	characters *prefabs.CharactersSpec
	culling    *prefabs.CullingSpec

	current levels.Tag
	active  *active
}

func NewManager(w *ecs.World, player *entity.Player, cfg Config) *Manager {
	m := &Manager{
		world:      w,
		player:     player,
		scenes:     make(map[levels.Tag]*levels.Scene),
		characters: cfg.Characters,
		culling:    cfg.Culling,
	}
	player.OnCollide(component.TagDoor, m.onDoor)
	return m
}

// Register adds or replaces the configuration for one scene tag.
func (m *Manager) Register(s *levels.Scene) error {
	if s == nil {
		return fmt.Errorf("scene: register: nil scene")
	}
	if err := levels.Validate(s); err != nil {
		return fmt.Errorf("scene: register %s: %w", s.Tag, err)
	}
	m.scenes[s.Tag] = s
	return nil
}

// Activate tears down the current scene and builds tag with the player at
// spawn. A nil spawn uses the scene's own spawn point. If the build fails,
// whatever part of tag was created is torn down again and no scene is active.
func (m *Manager) Activate(tag levels.Tag, spawn *levels.Point) error {
	s, ok := m.scenes[tag]
	if !ok {
		return fmt.Errorf("scene: activate %s: %w", tag, levels.ErrUnknownScene)
	}
	pos := spawnFor(s, spawn)

	m.teardown()
	m.current = tag

	if err := m.player.Load(pos.X, pos.Y); err != nil {
		return fmt.Errorf("scene: activate %s: %w", tag, err)
	}

	a := &active{scene: s, registry: BuildRegistry(s)}
	m.active = a
	if err := m.build(a, pos); err != nil {
		m.teardown()
		return fmt.Errorf("scene: activate %s: %w", tag, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"scene":      tag,
		"x":          pos.X,
		"y":          pos.Y,
		"doors":      len(a.registry.Doors),
		"boundaries": len(a.registry.Boundaries),
		"characters": len(a.characters),
	}).Info("scene activated")
	return nil
}

func (m *Manager) build(a *active, pos levels.Point) error {
	s := a.scene
	for _, art := range []struct {
		image string
		layer int
	}{
		{s.Background(), component.LayerBackground},
		{s.Foreground(), component.LayerForeground},
	} {
		e, err := entity.NewScenery(m.world, art.image, art.layer, s.Scale)
		if err != nil {
			return err
		}
		a.scenery = append(a.scenery, e)
	}

	if err := m.spawnCharacters(a); err != nil {
		return err
	}

	culler := NewCuller(NewWindow(m.culling, s.CellSize()), a.registry)
	window, err := entity.NewCullWindow(m.world, culler.Window().Size/2, pos.X, pos.Y)
	if err != nil {
		return err
	}
	a.culler = culler
	a.window = window
	a.culler.Sync(m.world, pos.X, pos.Y)
	return nil
}

func spawnFor(s *levels.Scene, spawn *levels.Point) levels.Point {
	switch {
	case spawn != nil:
		return *spawn
	case s.Spawn != nil:
		return *s.Spawn
	case s.Tag == levels.Overworld:
		return DefaultSpawn
	default:
		return levels.Point{
			X: float64(s.Width) * s.CellSize() / 2,
			Y: float64(s.Height) * s.CellSize() / 2,
		}
	}
}

func (m *Manager) spawnCharacters(a *active) error {
	if m.characters == nil {
		return nil
	}
	s := a.scene
	for row, cells := range s.Characters {
		for col, code := range cells {
			if code == 0 {
				continue
			}
			if _, ok := m.characters.Kinds[code]; !ok {
				logger.Log.WithFields(logrus.Fields{"scene": s.Tag, "code": code}).Warn("no character kind for code")
				continue
			}
			p := s.CellPosition(row, col)
			e, err := entity.NewCharacter(m.world, m.characters, code, row, col, p.X, p.Y, s.CellSize())
			if err != nil {
				return err
			}
			a.characters = append(a.characters, e)
		}
	}
	return nil
}

func (m *Manager) teardown() {
	a := m.active
	if a == nil {
		return
	}
	if a.culler != nil {
		a.culler.Clear(m.world)
	}
	for _, e := range a.scenery {
		ecs.DestroyEntity(m.world, e)
	}
	for _, e := range a.characters {
		ecs.DestroyEntity(m.world, e)
	}
	if a.window.Valid() {
		ecs.DestroyEntity(m.world, a.window)
	}
	m.active = nil
}

// Update re-evaluates the culling window in frames where the player moved.
func (m *Manager) Update(w *ecs.World) {
	if m.active == nil || !w.Events().Has(ecs.EventPlayerMoved) {
		return
	}
	m.refresh()
}

func (m *Manager) refresh() {
	a := m.active
	x, y, ok := m.player.Position()
	if !ok || a == nil || a.culler == nil {
		return
	}
	if t, ok := ecs.Get(m.world, a.window, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
	a.culler.Sync(m.world, x, y)
}

func (m *Manager) onDoor(w *ecs.World, other ecs.Entity) {
	// Doors from a scene torn down earlier in this frame are already gone.
	if !w.IsAlive(other) {
		return
	}
	door, ok := ecs.Get(w, other, component.DoorComponent.Kind())
	if !ok {
		return
	}
	if door.To == m.current {
		return
	}
	to := door.To
	spawn := levels.Point{X: door.SpawnX, Y: door.SpawnY}
	if err := m.Activate(to, &spawn); err != nil {
		logger.Log.WithError(err).WithField("scene", to).Error("door transition failed")
	}
}

// Reload swaps in a new configuration for s.Tag. The current scene is
// rebuilt around the player's present position.
func (m *Manager) Reload(s *levels.Scene) error {
	if err := m.Register(s); err != nil {
		return err
	}
	logger.Log.WithField("scene", s.Tag).Info("scene config reloaded")
	if s.Tag != m.current || m.active == nil {
		return nil
	}
	return m.Activate(s.Tag, m.playerPoint())
}

// SetCulling replaces the culling parameters and re-evaluates the window.
func (m *Manager) SetCulling(spec *prefabs.CullingSpec) {
	m.culling = spec
	a := m.active
	if a == nil || a.culler == nil {
		return
	}
	a.culler.Clear(m.world)
	a.culler = NewCuller(NewWindow(spec, a.scene.CellSize()), a.registry)
	if cw, ok := ecs.Get(m.world, a.window, component.CullWindowComponent.Kind()); ok {
		cw.HalfExtent = a.culler.Window().Size / 2
	}
	m.refresh()
}

// SetCharacters replaces the character kinds and rebuilds the current scene.
func (m *Manager) SetCharacters(spec *prefabs.CharactersSpec) error {
	m.characters = spec
	if m.active == nil {
		return nil
	}
	return m.Activate(m.current, m.playerPoint())
}

func (m *Manager) playerPoint() *levels.Point {
	x, y, ok := m.player.Position()
	if !ok {
		return nil
	}
	return &levels.Point{X: x, Y: y}
}

func (m *Manager) Current() levels.Tag {
	return m.current
}

func (m *Manager) Scene() *levels.Scene {
	if m.active == nil {
		return nil
	}
	return m.active.scene
}

func (m *Manager) Registry() *Registry {
	if m.active == nil {
		return nil
	}
	return m.active.registry
}

func (m *Manager) Culler() *Culler {
	if m.active == nil {
		return nil
	}
	return m.active.culler
}

func (m *Manager) WindowEntity() (ecs.Entity, bool) {
	if m.active == nil {
		return 0, false
	}
	return m.active.window, true
}

func (m *Manager) Characters() []ecs.Entity {
	if m.active == nil {
		return nil
	}
	return m.active.characters
}

func (m *Manager) Player() *entity.Player {
	return m.player
}
