package main

import (
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/ecs"
	"github.com/milk9111/overworld/ecs/entity"
	"github.com/milk9111/overworld/ecs/render"
	"github.com/milk9111/overworld/ecs/system"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
	"github.com/milk9111/overworld/prefabs"
	"github.com/milk9111/overworld/scene"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

type Options struct {
	Scene levels.Tag
	Spawn *levels.Point
	Debug bool
	Watch bool
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	keyboard  *Keyboard

	characters *system.CharacterSystem
	player     *entity.Player
	scenes     *scene.Manager

	renderer *render.RenderSystem
	debug    *render.DebugOverlay
	watcher  *prefabs.Watcher
}

func NewGame(opts Options) (*Game, error) {
	w := ecs.NewWorld()
	keyboard := &Keyboard{}
	physics := system.NewPhysicsSystem()
	dispatcher := system.NewCollisionDispatcher()

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	player, err := entity.NewPlayer(w, physics, dispatcher, playerSpec)
	if err != nil {
		return nil, err
	}
	if _, err := entity.NewCamera(w, nil); err != nil {
		return nil, err
	}

	charSpec, err := prefabs.LoadCharactersSpec()
	if err != nil {
		return nil, err
	}
	cullSpec, err := prefabs.LoadCullingSpec()
	if err != nil {
		return nil, err
	}

	scenes := scene.NewManager(w, player, scene.Config{Characters: charSpec, Culling: cullSpec})
	all, err := levels.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if err := scenes.Register(s); err != nil {
			return nil, err
		}
	}

	start := opts.Scene
	if start == "" {
		start = levels.Overworld
	}
	if err := scenes.Activate(start, opts.Spawn); err != nil {
		return nil, err
	}

	characters := system.NewCharacterSystem(nil)
	g := &Game{
		world:    w,
		keyboard: keyboard,
		scheduler: ecs.NewScheduler(
			system.NewInputSystem(keyboard),
			system.NewPlayerControllerSystem(),
			physics,
			dispatcher,
			system.NewCameraSystem(),
			scenes,
			characters,
			system.NewAnimationSystem(),
		),
		characters: characters,
		player:     player,
		scenes:     scenes,
		renderer:   render.NewRenderSystem(render.NewImages()),
		debug:      render.NewDebugOverlay(opts.Debug),
	}

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(levels.DiskDir, prefabs.DiskDir, filepath.Join(prefabs.DiskDir, "scripts"))
		if err != nil {
			return nil, fmt.Errorf("watch: %w", err)
		}
		g.watcher = watcher
		logger.Log.WithField("dirs", []string{levels.DiskDir, prefabs.DiskDir}).Info("hot reload enabled")
	}

	return g, nil
}

func (g *Game) Update() error {
	g.keyboard.Update()
	if g.keyboard.ToggleDebug() {
		g.debug.Toggle()
	}
	g.pollReloads()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Log.WithError(err).Warn("watch error")
		default:
			return
		}
	}
}

// reload applies one changed file. Invalid edits are logged and the running
// configuration is kept.
func (g *Game) reload(path string) {
	log := logger.Log.WithField("path", path)

	switch {
	case levels.IsSceneFile(path):
		s, err := levels.LoadFile(path)
		if err != nil {
			log.WithError(err).Warn("scene reload rejected")
			return
		}
		if err := g.scenes.Reload(s); err != nil {
			log.WithError(err).Error("scene reload failed")
		}
	case prefabs.IsScript(path):
		g.characters.Invalidate()
		log.Info("scripts reloaded")
	default:
		g.reloadPrefab(log, filepath.Base(path))
	}
}

func (g *Game) reloadPrefab(log *logrus.Entry, name string) {
	switch name {
	case "culling.yaml":
		spec, err := prefabs.LoadCullingSpec()
		if err != nil {
			log.WithError(err).Warn("culling reload rejected")
			return
		}
		g.scenes.SetCulling(spec)
		log.Info("culling reloaded")
	case "characters.yaml":
		spec, err := prefabs.LoadCharactersSpec()
		if err != nil {
			log.WithError(err).Warn("characters reload rejected")
			return
		}
		if err := g.scenes.SetCharacters(spec); err != nil {
			log.WithError(err).Error("characters reload failed")
			return
		}
		log.Info("characters reloaded")
	default:
		log.Info("prefab changed; restart to apply")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkolivegreen)
	g.renderer.Draw(g.world, screen)

	if !g.debug.Enabled {
		return
	}
	b := screen.Bounds()
	info := render.DebugInfo{Scene: g.scenes.Current().String(), FPS: ebiten.ActualFPS()}
	if x, y, ok := g.player.Position(); ok {
		info.X, info.Y = x, y
	}
	if loc, ok := g.player.Locomotion(); ok {
		info.State = fmt.Sprintf("%s %s", loc.Facing, loc.State)
	}
	g.debug.Draw(g.world, screen, g.renderer.View(g.world, b.Dx(), b.Dy()), info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
