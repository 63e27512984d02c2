package ecs

import (
	"testing"

	"github.com/milk9111/overworld/ecs/component"
)

type testPos struct{ X, Y float64 }
type testDoor struct{ To string }
type testTag struct{}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should be a no-op")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledSlotInvalidatesStaleHandle(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponentKind[testPos]()

	old := CreateEntity(w)
	if err := Add(w, old, pos, &testPos{X: 1}); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got ids %d and %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if Has(w, fresh, pos) {
		t.Fatalf("components of a destroyed entity leaked into its slot")
	}
	if err := Add(w, old, pos, &testPos{}); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestComponentsTable(t *testing.T) {
	w := NewWorld()
	pos := component.NewComponentKind[testPos]()
	door := component.NewComponentKind[testDoor]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_pos_to_e1",
			setup: func() error { return Add(w, e1, pos, &testPos{X: 120, Y: 80}) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, pos)
				if !ok || v.X != 120 || v.Y != 80 {
					t.Fatalf("expected (120, 80), got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, pos) },
		},
		{
			name: "add_door_to_both",
			setup: func() error {
				if err := Add(w, e1, door, &testDoor{To: "block-a"}); err != nil {
					return err
				}
				return Add(w, e2, door, &testDoor{To: "overworld"})
			},
			check: func(t *testing.T) {
				if !Has(w, e1, door) || !Has(w, e2, door) {
					t.Fatalf("expected both entities to have a door")
				}
				if got := w.Query(door); len(got) != 2 {
					t.Fatalf("expected 2 doors, got %d", len(got))
				}
			},
			teardown: func() bool { return Remove(w, e1, door) },
		},
		{
			name: "mutation_through_pointer",
			setup: func() error {
				return Add(w, e2, pos, &testPos{})
			},
			check: func(t *testing.T) {
				v, _ := Get(w, e2, pos)
				v.X = 42
				again, _ := Get(w, e2, pos)
				if again.X != 42 {
					t.Fatalf("expected in-place mutation, got %v", again.X)
				}
			},
			teardown: func() bool { return Remove(w, e2, pos) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[testPos]{}, &testPos{}); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[testPos](w, e, component.NewComponentKind[testPos](), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEachVariants(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[testPos]()
	kb := component.NewComponentKind[testDoor]()
	kc := component.NewComponentKind[testTag]()
	kd := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	mustAdd := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	mustAdd(Add(w, e1, ka, &testPos{}))
	mustAdd(Add(w, e2, ka, &testPos{}))
	mustAdd(Add(w, e2, kb, &testDoor{}))
	mustAdd(Add(w, e2, kc, &testTag{}))
	four := 4
	mustAdd(Add(w, e2, kd, &four))
	mustAdd(Add(w, e3, kb, &testDoor{}))

	var one []Entity
	ForEach(w, ka, func(e Entity, _ *testPos) { one = append(one, e) })
	if len(one) != 2 {
		t.Fatalf("ForEach: expected 2, got %v", one)
	}

	var two []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *testPos, _ *testDoor) { two = append(two, e) })
	if len(two) != 1 || two[0] != e2 {
		t.Fatalf("ForEach2: expected only e2, got %v", two)
	}

	var three []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _ *testPos, _ *testDoor, _ *testTag) { three = append(three, e) })
	if len(three) != 1 || three[0] != e2 {
		t.Fatalf("ForEach3: expected only e2, got %v", three)
	}

	var four4 []Entity
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *testPos, _ *testDoor, _ *testTag, _ *int) { four4 = append(four4, e) })
	if len(four4) != 1 || four4[0] != e2 {
		t.Fatalf("ForEach4: expected only e2, got %v", four4)
	}

	DestroyEntity(w, e2)
	var afterDestroy []Entity
	ForEach2(w, ka, kb, func(e Entity, _ *testPos, _ *testDoor) { afterDestroy = append(afterDestroy, e) })
	if len(afterDestroy) != 0 {
		t.Fatalf("expected no results after destroy, got %v", afterDestroy)
	}
}

func TestForEachAllowsDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[testTag]()
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, k, &testTag{}); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, k, func(e Entity, _ *testTag) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 5 {
		t.Fatalf("expected 5 visits, got %d", visited)
	}
	if got := w.Query(k); len(got) != 0 {
		t.Fatalf("expected empty store, got %v", got)
	}
}

func TestFirstAndMissingStore(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[testTag]()
	if _, ok := w.First(k); ok {
		t.Fatalf("expected no entity for empty store")
	}
	if got := w.Query(k, component.NewComponentKind[testPos]()); got != nil {
		t.Fatalf("expected nil query for missing store, got %v", got)
	}

	e := CreateEntity(w)
	if err := Add(w, e, k, &testTag{}); err != nil {
		t.Fatal(err)
	}
	got, ok := w.First(k)
	if !ok || got != e {
		t.Fatalf("expected %v, got %v ok=%v", e, got, ok)
	}
}

type recordSystem struct {
	name  string
	trace *[]string
	push  bool
}

func (r recordSystem) Update(w *World) {
	*r.trace = append(*r.trace, r.name)
	if r.push {
		w.Events().Push(Event{Type: EventPlayerMoved})
	}
	if !r.push && w.Events().Has(EventPlayerMoved) {
		*r.trace = append(*r.trace, r.name+":saw-move")
	}
}

func TestSchedulerOrderAndEventFlush(t *testing.T) {
	w := NewWorld()
	var trace []string
	s := NewScheduler(recordSystem{name: "a", trace: &trace, push: true}, recordSystem{name: "b", trace: &trace}, nil)

	s.Update(w)
	want := []string{"a", "b", "b:saw-move"}
	if len(trace) != len(want) {
		t.Fatalf("expected %v, got %v", want, trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, trace)
		}
	}
	if w.Events().Has(EventPlayerMoved) {
		t.Fatalf("events must be flushed after the frame")
	}
}

func TestEventQueueEachSeesEventsPushedDuringIteration(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventCollision, Data: 1})
	seen := 0
	q.Each(EventCollision, func(evt Event) {
		seen++
		if evt.Data == 1 {
			q.Push(Event{Type: EventCollision, Data: 2})
		}
	})
	if seen != 2 {
		t.Fatalf("expected 2 collision events, got %d", seen)
	}
	if !q.Has(EventCollision) {
		t.Fatal("Each must not consume events")
	}
	q.flush()
	if q.Has(EventCollision) {
		t.Fatal("flush left events queued")
	}
}
