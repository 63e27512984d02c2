package system

import (
	"fmt"
	"image"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/component"
	"github.com/milk9111/overworld/logger"
	"github.com/milk9111/overworld/prefabs"
	"github.com/sirupsen/logrus"
)

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

const characterDispatchScript = `
update(__engine, __state)
`

// CharacterSystem keeps character sprites on their facing frame and runs
// the scripts of scripted characters.
type CharacterSystem struct {
	load     ScriptLoader
	compiled map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*characterRuntime
}

type characterRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
}

func NewCharacterSystem(load ScriptLoader) *CharacterSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &CharacterSystem{
		load:     load,
		compiled: make(map[string]*tengo.Compiled),
		runtimes: make(map[ecs.Entity]*characterRuntime),
	}
}

// Invalidate drops cached scripts so the next run recompiles them.
func (cs *CharacterSystem) Invalidate() {
	if cs == nil {
		return
	}
	cs.compiled = make(map[string]*tengo.Compiled)
	cs.runtimes = make(map[ecs.Entity]*characterRuntime)
}

func (cs *CharacterSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}

	for e := range cs.runtimes {
		if !w.IsAlive(e) {
			delete(cs.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.ScriptedComponent.Kind(), func(e ecs.Entity, ch *component.Character, sc *component.Scripted) {
		sc.Elapsed++
		period := sc.Period
		if period <= 0 {
			period = 1
		}
		if sc.Elapsed < period {
			return
		}
		sc.Elapsed = 0
		if err := cs.run(e, ch, sc.Path); err != nil {
			logger.Log.WithFields(logrus.Fields{"path": sc.Path, "kind": ch.Kind}).WithError(err).Warn("character script failed")
		}
	})

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, ch *component.Character, sprite *component.Sprite) {
		if ch.FrameW <= 0 || ch.FrameH <= 0 {
			return
		}
		x := int(ch.Facing) * ch.FrameW
		sprite.Source = image.Rect(x, 0, x+ch.FrameW, ch.FrameH)
		sprite.UseSource = true
	})
}

func (cs *CharacterSystem) run(e ecs.Entity, ch *component.Character, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s: %v", path, r)
		}
	}()

	rt, err := cs.runtime(e, path)
	if err != nil {
		return err
	}

	next := ch.Facing
	engine := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"facing": &tengo.String{Value: ch.Facing.String()},
		"kind":   &tengo.String{Value: ch.Kind},
		"set_facing": &tengo.UserFunction{Name: "set_facing", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return tengo.FalseValue, nil
			}
			s, _ := tengo.ToString(args[0])
			f, ok := component.ParseFacing(strings.TrimSpace(s))
			if !ok {
				return tengo.FalseValue, nil
			}
			next = f
			return tengo.TrueValue, nil
		}},
	}}

	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Run(); err != nil {
		return err
	}
	ch.Facing = next
	return nil
}

func (cs *CharacterSystem) runtime(e ecs.Entity, path string) (*characterRuntime, error) {
	if rt, ok := cs.runtimes[e]; ok && rt.path == path {
		return rt, nil
	}

	base, ok := cs.compiled[path]
	if !ok {
		src, err := cs.load(path)
		if err != nil {
			return nil, fmt.Errorf("load script %s: %w", path, err)
		}
		script := tengo.NewScript(append(append([]byte(nil), src...), []byte(characterDispatchScript)...))
		_ = script.Add("__engine", map[string]any{})
		_ = script.Add("__state", map[string]any{})
		script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

		base, err = script.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile script %s: %w", path, err)
		}
		cs.compiled[path] = base
	}

	rt := &characterRuntime{
		path:     path,
		compiled: base.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	cs.runtimes[e] = rt
	return rt, nil
}
