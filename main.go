package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/levels"
	"github.com/milk9111/sandpit/sandbox"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the built-in config; reloaded on change")
	debug := flag.Bool("debug", false, "overlay the physics engine's debug drawing (chipmunk only)")
	seed := flag.Uint64("seed", 0, "first level seed, 0 picks one")
	backend := flag.String("backend", "", "physics backend: chipmunk or box2d (default from config)")
	levelScript := flag.String("level-script", "", "tengo level script: a file path or a built-in name ("+strings.Join(levels.Names(), ", ")+")")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg := config.Default()
	var watcher *config.Watcher
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
		if watcher, err = config.Watch(*configPath); err != nil {
			log.Printf("config: hot reload disabled: %v", err)
		}
	}
	if *levelScript != "" {
		cfg.Level.Script = *levelScript
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(cfg, sandbox.Options{Backend: *backend, Seed: *seed}, watcher, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
