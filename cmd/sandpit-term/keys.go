package main

import (
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/timer"
)

// keyRelease is how long a key counts as held after its last repeat.
// Terminals only report presses.
const keyRelease = 150 * time.Millisecond

// heldKeys turns terminal key repeats into held actions with synthetic
// releases.
type heldKeys struct {
	sched   *timer.Scheduler
	down    func(component.Action)
	up      func(component.Action)
	pending map[component.Action]timer.ID
}

func newHeldKeys(sched *timer.Scheduler, down, up func(component.Action)) *heldKeys {
	return &heldKeys{
		sched:   sched,
		down:    down,
		up:      up,
		pending: make(map[component.Action]timer.ID),
	}
}

// Press holds a and pushes its release back.
func (h *heldKeys) Press(a component.Action) {
	if id, ok := h.pending[a]; ok {
		h.sched.Cancel(id)
	}
	h.down(a)
	h.pending[a] = h.sched.After(keyRelease, func(time.Time) {
		delete(h.pending, a)
		h.up(a)
	})
}

func (h *heldKeys) Held(a component.Action) bool {
	_, ok := h.pending[a]
	return ok
}

func actionForKey(ev *tcell.EventKey) (component.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return component.ActionPanUp, true
	case tcell.KeyDown:
		return component.ActionPanDown, true
	case tcell.KeyLeft:
		return component.ActionPanLeft, true
	case tcell.KeyRight:
		return component.ActionPanRight, true
	case tcell.KeyRune:
	default:
		return 0, false
	}

	switch ev.Rune() {
	case 'w', 'W':
		return component.ActionPanUp, true
	case 's', 'S':
		return component.ActionPanDown, true
	case 'a', 'A':
		return component.ActionPanLeft, true
	case 'd', 'D':
		return component.ActionPanRight, true
	case 'q', 'Q':
		return component.ActionZoomOut, true
	case 'e', 'E':
		return component.ActionZoomIn, true
	}
	return 0, false
}

func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}
