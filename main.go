package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overworld/assets"
	"github.com/milk9111/overworld/common"
	"github.com/milk9111/overworld/levels"
	"github.com/milk9111/overworld/logger"
)

func main() {
	sceneName := flag.String("scene", string(levels.Overworld), "scene to start in")
	flag.Float64("x", 0, "spawn x; needs -y too (default: the scene's spawn point)")
	flag.Float64("y", 0, "spawn y; needs -x too (default: the scene's spawn point)")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	watch := flag.Bool("watch", false, "reload level and prefab files when they change")
	assetDir := flag.String("assets", assets.Dir, "asset root directory")
	logLevel := flag.String("log-level", "", "log level (default $LOG_LEVEL or info)")
	logFormat := flag.String("log-format", "", "log format: text or json (default $LOG_FORMAT or text)")
	flag.Parse()

	logger.Init(*logLevel, *logFormat)
	assets.Dir = *assetDir

	opts := Options{
		Scene: levels.Tag(*sceneName),
		Debug: *debug,
		Watch: *watch,
		Spawn: levels.SpawnFlag(flag.CommandLine, "x", "y"),
	}

	game, err := NewGame(opts)
	if err != nil {
		logger.Log.WithError(err).Fatal("start game")
	}

	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("overworld")
	ebiten.SetTPS(common.TicksPerSecond)

	err = ebiten.RunGame(game)
	// Fatal exits without running defers.
	if cerr := game.Close(); cerr != nil {
		logger.Log.WithError(cerr).Warn("close watcher")
	}
	if err != nil {
		logger.Log.WithError(err).Fatal("run game")
	}
}
