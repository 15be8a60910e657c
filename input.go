package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/sandpit/ecs/component"
)

var keyActions = []struct {
	keys   []ebiten.Key
	action component.Action
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, component.ActionPanUp},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, component.ActionPanDown},
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, component.ActionPanLeft},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, component.ActionPanRight},
	{[]ebiten.Key{ebiten.KeyQ}, component.ActionZoomOut},
	{[]ebiten.Key{ebiten.KeyE}, component.ActionZoomIn},
}

// pollInput forwards this frame's keyboard and mouse state to the session.
func (g *Game) pollInput() {
	for _, ka := range keyActions {
		held := false
		for _, k := range ka.keys {
			held = held || ebiten.IsKeyPressed(k)
		}
		if held {
			g.session.KeyDown(ka.action)
		} else {
			g.session.KeyUp(ka.action)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.TriggerReset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copySeed()
	}

	mx, my := ebiten.CursorPosition()
	g.session.PointerMove(float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !(g.showHUD && g.hud.Contains(mx, my)) {
		g.session.PointerDown(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.session.PointerUp()
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.session.Wheel(wy)
	}
}
