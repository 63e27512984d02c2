package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
	"github.com/milk9111/overworld/prefabs"
)

func init() {
	logger.Discard()
}

const selfDoorScene = `
tag: block-a
width: 4
height: 4
spawn:
  x: 60
  y: 60
doors:
  spawns:
    2:
      x: 60
      y: 60
  grid: |
    0000
    0200
    0000
    0000
boundaries: |
  1111
  1001
  1001
  1111
`

// walledRoomScene is a 6x6 room whose east wall spans x 200..240.
const walledRoomScene = `
tag: block-b
width: 6
height: 6
spawn:
  x: 120
  y: 120
doors:
  spawns: {}
  grid: |
    000000
    000000
    000000
    000000
    000000
    000000
boundaries: |
  111111
  100001
  100001
  100001
  100001
  111111
`

func TestWindowContains(t *testing.T) {
	tests := []struct {
		name      string
		inflation string
		x, y      float64
		want      bool
	}{
		{"reference right edge", prefabs.InflationReference, 50, 0, true},
		{"reference past right", prefabs.InflationReference, 51, 0, false},
		{"reference left edge", prefabs.InflationReference, -90, 0, true},
		{"reference past left", prefabs.InflationReference, -91, 0, false},
		{"reference bottom edge", prefabs.InflationReference, 0, 50, true},
		{"symmetric right edge", prefabs.InflationSymmetric, 70, 0, true},
		{"symmetric past right", prefabs.InflationSymmetric, 71, 0, false},
		{"symmetric left edge", prefabs.InflationSymmetric, -110, 0, true},
		{"symmetric past left", prefabs.InflationSymmetric, -111, 0, false},
		{"symmetric bottom edge", prefabs.InflationSymmetric, 0, 70, true},
		{"symmetric past top", prefabs.InflationSymmetric, 0, -111, false},
		{"symmetric corner", prefabs.InflationSymmetric, 70, -70, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(&prefabs.CullingSpec{WindowSize: 100, Inflation: tt.inflation}, 40)
			if got := w.Contains(0, 0, tt.x, tt.y); got != tt.want {
				t.Fatalf("Contains(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNewWindowDefaults(t *testing.T) {
	w := NewWindow(nil, 0)
	if w.Size != 100 || w.Inflation != prefabs.InflationSymmetric || w.Cell != 40 {
		t.Fatalf("unexpected defaults %+v", w)
	}
}

func TestBuildRegistry(t *testing.T) {
	s, err := levels.Parse([]byte(`
tag: block-a
width: 4
height: 3
doors:
  spawns:
    1:
      x: 1620
      y: 1500
  grid: |
    0000
    0007
    0100
boundaries: |
  1111
  1001
  1011
`))
	if err != nil {
		t.Fatal(err)
	}

	reg := BuildRegistry(s)
	if len(reg.Doors) != 1 {
		t.Fatalf("expected the unknown door code to be skipped, got %d doors", len(reg.Doors))
	}
	d := reg.Doors[0]
	if d.Target != levels.Overworld || d.Spawn.X != 1620 || d.Row != 2 || d.Col != 1 {
		t.Fatalf("unexpected door %+v", d)
	}
	if d.Pos.X != 40 || d.Pos.Y != 80 {
		t.Fatalf("expected door at (40,80), got %+v", d.Pos)
	}
	if len(reg.Boundaries) != 9 {
		t.Fatalf("expected 9 boundaries, got %d", len(reg.Boundaries))
	}
	if got := len(reg.Instances()); got != 10 {
		t.Fatalf("expected 10 instances, got %d", got)
	}
}

func TestBoundaryCellPosition(t *testing.T) {
	s := &levels.Scene{Tag: levels.BlockA, Width: 4, Height: 3, TileSize: 16, Scale: 2.5,
		Boundaries: levels.BoundaryMatrix{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 1}}}
	reg := BuildRegistry(s)
	if len(reg.Boundaries) != 1 {
		t.Fatalf("expected one boundary, got %d", len(reg.Boundaries))
	}
	if p := reg.Boundaries[0].Pos; p.X != 120 || p.Y != 80 {
		t.Fatalf("expected (120,80), got (%v,%v)", p.X, p.Y)
	}

	w := ecs.NewWorld()
	c := NewCuller(NewWindow(nil, 40), reg)
	c.Sync(w, 140, 100)
	e := reg.Boundaries[0].Entity
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Width != 40 || body.Height != 40 || !body.Static {
		t.Fatalf("unexpected boundary body %+v", body)
	}
}

func TestCullerSyncIsIdempotent(t *testing.T) {
	s, err := levels.Load(levels.Overworld)
	if err != nil {
		t.Fatal(err)
	}
	reg := BuildRegistry(s)
	w := ecs.NewWorld()
	c := NewCuller(NewWindow(nil, s.CellSize()), reg)

	added, _ := c.Sync(w, 20, 20)
	if added == 0 {
		t.Fatal("expected the corner boundaries to materialize")
	}
	live := c.Live()

	added, removed := c.Sync(w, 20, 20)
	if added != 0 || removed != 0 || c.Live() != live {
		t.Fatalf("second sync changed state: +%d -%d live %d->%d", added, removed, live, c.Live())
	}

	_, removed = c.Sync(w, 1300, 1300)
	if removed != live {
		t.Fatalf("expected all %d corner instances removed, got %d", live, removed)
	}
	for _, b := range reg.Boundaries[:3] {
		if c.IsLive(b) || w.IsAlive(b.Entity) {
			t.Fatalf("boundary %d,%d still live", b.Row, b.Col)
		}
	}
}

type harness struct {
	world    *ecs.World
	physics  *system.PhysicsSystem
	dispatch *system.CollisionDispatcher
	player   *entity.Player
	manager  *Manager
	keys     system.KeySet
	sched    *ecs.Scheduler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		world:    ecs.NewWorld(),
		physics:  system.NewPhysicsSystem(),
		dispatch: system.NewCollisionDispatcher(),
		keys:     system.KeySet{},
	}
	player, err := entity.NewPlayer(h.world, h.physics, h.dispatch, nil)
	if err != nil {
		t.Fatal(err)
	}
	h.player = player

	chars, err := prefabs.LoadCharactersSpec()
	if err != nil {
		t.Fatal(err)
	}
	h.manager = NewManager(h.world, player, Config{
		Characters: chars,
		Culling:    &prefabs.CullingSpec{WindowSize: 100, Inflation: prefabs.InflationSymmetric},
	})

	scenes, err := levels.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range scenes {
		if err := h.manager.Register(s); err != nil {
			t.Fatal(err)
		}
	}

	h.sched = ecs.NewScheduler(
		system.NewInputSystem(h.keys),
		system.NewPlayerControllerSystem(),
		h.physics,
		h.dispatch,
		system.NewCameraSystem(),
		h.manager,
	)
	return h
}

func (h *harness) position(t *testing.T) (float64, float64) {
	t.Helper()
	x, y, ok := h.player.Position()
	if !ok {
		t.Fatal("player not loaded")
	}
	return x, y
}

func TestActivateOverworldDefaultSpawn(t *testing.T) {
	h := newHarness(t)
	if err := h.manager.Activate(levels.Overworld, nil); err != nil {
		t.Fatal(err)
	}
	if h.manager.Current() != levels.Overworld {
		t.Fatalf("expected overworld, got %s", h.manager.Current())
	}
	if x, y := h.position(t); x != 1600 || y != 1990 {
		t.Fatalf("expected (1600,1990), got (%v,%v)", x, y)
	}
	if got := len(h.world.Query(component.SceneryTagComponent.Kind())); got != 2 {
		t.Fatalf("expected background and foreground, got %d", got)
	}
	if got := len(h.manager.Characters()); got != 3 {
		t.Fatalf("expected 3 overworld characters, got %d", got)
	}
}

func TestWalkRightOneFrame(t *testing.T) {
	h := newHarness(t)
	if err := h.manager.Activate(levels.Overworld, nil); err != nil {
		t.Fatal(err)
	}
	h.keys[system.KeyRight] = true
	h.sched.Update(h.world)

	x, y := h.position(t)
	if math.Abs(x-1602.5) > 1e-6 || math.Abs(y-1990) > 1e-6 {
		t.Fatalf("expected (1602.5,1990), got (%v,%v)", x, y)
	}
	loc, _ := h.player.Locomotion()
	if loc.Facing != component.FacingRight || loc.State != component.LocomotionWalking {
		t.Fatalf("unexpected locomotion %+v", loc)
	}

	we, _ := h.manager.WindowEntity()
	wt, ok := ecs.Get(h.world, we, component.TransformComponent.Kind())
	if !ok || wt.X != x || wt.Y != y {
		t.Fatalf("culling window did not follow the player: %+v", wt)
	}
}

func TestDoorTransition(t *testing.T) {
	h := newHarness(t)
	// Door code 2 sits at row 35, col 40 of the overworld.
	if err := h.manager.Activate(levels.Overworld, &levels.Point{X: 1620, Y: 1420}); err != nil {
		t.Fatal(err)
	}
	h.sched.Update(h.world)

	if h.manager.Current() != levels.BlockA {
		t.Fatalf("expected block-a, got %s", h.manager.Current())
	}
	if x, y := h.position(t); x != 420 || y != 540 {
		t.Fatalf("expected spawn (420,540), got (%v,%v)", x, y)
	}
	for _, e := range h.world.Query(component.DoorComponent.Kind()) {
		d, _ := ecs.Get(h.world, e, component.DoorComponent.Kind())
		if d.To != levels.Overworld {
			t.Fatalf("overworld door to %s survived the transition", d.To)
		}
	}
	if got := len(h.world.Query(component.PlayerTagComponent.Kind())); got != 1 {
		t.Fatalf("expected exactly one player, got %d", got)
	}

	for i := 0; i < 5; i++ {
		h.sched.Update(h.world)
	}
	if h.manager.Current() != levels.BlockA {
		t.Fatalf("scene changed without touching a door: %s", h.manager.Current())
	}
}

func TestSelfTransitionIsNoop(t *testing.T) {
	h := newHarness(t)
	s, err := levels.Parse([]byte(selfDoorScene))
	if err != nil {
		t.Fatal(err)
	}
	if err := h.manager.Register(s); err != nil {
		t.Fatal(err)
	}
	if err := h.manager.Activate(levels.BlockA, nil); err != nil {
		t.Fatal(err)
	}
	before := h.manager.active

	// The only door points back at block-a and the player spawns on it.
	for i := 0; i < 3; i++ {
		h.sched.Update(h.world)
	}
	if h.manager.active != before || h.manager.Current() != levels.BlockA {
		t.Fatal("self-targeting door reactivated the scene")
	}
}

func TestDeadDoorIsIgnored(t *testing.T) {
	h := newHarness(t)
	if err := h.manager.Activate(levels.Overworld, nil); err != nil {
		t.Fatal(err)
	}
	door, err := entity.NewDoor(h.world, component.Door{To: levels.BlockC}, 0, 0, 40)
	if err != nil {
		t.Fatal(err)
	}
	ecs.DestroyEntity(h.world, door)

	h.manager.onDoor(h.world, door)
	if h.manager.Current() != levels.Overworld {
		t.Fatalf("destroyed door triggered a transition to %s", h.manager.Current())
	}
}

func TestActivateUnknownScene(t *testing.T) {
	h := newHarness(t)
	err := h.manager.Activate(levels.Tag("cave"), nil)
	if !errors.Is(err, levels.ErrUnknownScene) {
		t.Fatalf("expected ErrUnknownScene, got %v", err)
	}
}

func TestReloadKeepsPlayerPosition(t *testing.T) {
	h := newHarness(t)
	if err := h.manager.Activate(levels.Overworld, nil); err != nil {
		t.Fatal(err)
	}
	h.keys[system.KeyLeft] = true
	h.sched.Update(h.world)
	h.keys[system.KeyLeft] = false
	x, y := h.position(t)

	s, err := levels.Load(levels.Overworld)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.manager.Reload(s); err != nil {
		t.Fatal(err)
	}
	if nx, ny := h.position(t); nx != x || ny != y {
		t.Fatalf("reload moved the player from (%v,%v) to (%v,%v)", x, y, nx, ny)
	}
	if got := len(h.world.Query(component.SceneryTagComponent.Kind())); got != 2 {
		t.Fatalf("expected scenery to be rebuilt once, got %d", got)
	}

	bad := *s
	bad.Width = 0
	if err := h.manager.Reload(&bad); !errors.Is(err, levels.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSetCullingReevaluates(t *testing.T) {
	h := newHarness(t)
	if err := h.manager.Activate(levels.Overworld, &levels.Point{X: 20, Y: 20}); err != nil {
		t.Fatal(err)
	}
	small := h.manager.Culler().Live()

	h.manager.SetCulling(&prefabs.CullingSpec{WindowSize: 400, Inflation: prefabs.InflationReference})
	if got := h.manager.Culler().Live(); got <= small {
		t.Fatalf("expected a larger window to materialize more, got %d <= %d", got, small)
	}
	we, _ := h.manager.WindowEntity()
	cw, _ := ecs.Get(h.world, we, component.CullWindowComponent.Kind())
	if cw.HalfExtent != 200 {
		t.Fatalf("expected half extent 200, got %v", cw.HalfExtent)
	}
}

func TestWallsBlockThroughManager(t *testing.T) {
	tests := []struct {
		name string
		run  bool
	}{
		{"walking", false},
		{"running", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			s, err := levels.Parse([]byte(walledRoomScene))
			if err != nil {
				t.Fatal(err)
			}
			if err := h.manager.Register(s); err != nil {
				t.Fatal(err)
			}
			if err := h.manager.Activate(levels.BlockB, nil); err != nil {
				t.Fatal(err)
			}

			h.keys[system.KeyRight] = true
			h.keys[system.KeyRun] = tt.run
			for i := 0; i < 120; i++ {
				h.sched.Update(h.world)
			}

			x, _ := h.position(t)
			body, _ := ecs.Get(h.world, h.player.Entity(), component.PhysicsBodyComponent.Kind())
			right := x + body.Width/2
			if right > 200+1e-6 {
				t.Fatalf("player crossed the east wall: right edge %v", right)
			}
			if right < 200-1e-6 {
				t.Fatalf("player stopped short of the east wall: right edge %v", right)
			}
			for _, b := range h.manager.Registry().Boundaries {
				if b.Row == 3 && b.Col == 5 && !h.manager.Culler().IsLive(b) {
					t.Fatal("east wall cell (3,5) is not materialized")
				}
			}
		})
	}
}

func TestFailedActivateLeavesNoScene(t *testing.T) {
	h := newHarness(t)
	if err := h.manager.Activate(levels.Overworld, nil); err != nil {
		t.Fatal(err)
	}

	good, err := prefabs.LoadCharactersSpec()
	if err != nil {
		t.Fatal(err)
	}
	bad := *good
	bad.Kinds = make(map[int]prefabs.CharacterKindSpec, len(good.Kinds))
	for code, kind := range good.Kinds {
		kind.Facing = "sideways"
		bad.Kinds[code] = kind
	}
	if err := h.manager.SetCharacters(&bad); err == nil {
		t.Fatal("expected an unknown facing to fail activation")
	}
	if h.manager.Culler() != nil || h.manager.Scene() != nil {
		t.Fatal("failed activation left a scene active")
	}
	if got := len(h.world.Query(component.CharacterComponent.Kind())); got != 0 {
		t.Fatalf("expected no characters left behind, got %d", got)
	}
	if got := len(h.world.Query(component.SceneryTagComponent.Kind())); got != 0 {
		t.Fatalf("expected no scenery left behind, got %d", got)
	}

	h.manager.SetCulling(&prefabs.CullingSpec{WindowSize: 200})

	if err := h.manager.SetCharacters(good); err != nil {
		t.Fatal(err)
	}
	if h.manager.Culler() == nil || len(h.manager.Characters()) != 3 {
		t.Fatal("scene did not rebuild with a valid character spec")
	}
}
