package main

import (
	"log"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/sandpit/canvas/ebitencanvas"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs/system"
	"github.com/milk9111/sandpit/physics/chipmunk"
	"github.com/milk9111/sandpit/sandbox"
	"golang.design/x/clipboard"
)

type Game struct {
	session *sandbox.Session
	canvas  *ebitencanvas.Canvas
	watcher *config.Watcher
	hud     *HUD

	showHUD     bool
	debug       bool
	clipboardOK bool

	width, height float64
}

func NewGame(cfg *config.Config, opts sandbox.Options, watcher *config.Watcher, debug bool) (*Game, error) {
	opts.ViewportW, opts.ViewportH = float64(cfg.Window.Width), float64(cfg.Window.Height)
	session, err := sandbox.NewSession(cfg, opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		session: session,
		canvas:  ebitencanvas.New(),
		watcher: watcher,
		showHUD: true,
		debug:   debug,
	}
	g.hud = NewHUD(func() { g.session.TriggerReset() })

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable, seed copy disabled: %v", err)
	} else {
		g.clipboardOK = true
	}
	return g, nil
}

func (g *Game) Update() error {
	g.session.DrainConfig(g.watcher)
	g.pollInput()
	if g.showHUD {
		g.hud.SetStats(g.session.Stats())
		g.hud.Update()
	}
	g.session.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Begin(screen)
	g.session.Draw(g.canvas)

	if g.debug {
		if cw, ok := g.session.PhysicsWorld().(*chipmunk.World); ok {
			system.DrawPhysicsDebug(cw.Space(), g.session.World(), g.canvas, g.session.Config().Camera.InitialZoom)
		}
	}

	if g.showHUD {
		g.hud.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) copySeed() {
	seed := strconv.FormatUint(g.session.Seed(), 10)
	if !g.clipboardOK {
		log.Printf("seed %s (clipboard unavailable)", seed)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(seed))
	log.Printf("copied seed %s", seed)
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("config: close watcher: %v", err)
		}
	}
	g.session.Close()
}
