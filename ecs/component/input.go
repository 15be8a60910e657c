package component

import (
	"image/color"
	"time"
)

type Action int

const (
	ActionPanUp Action = iota
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
)

// Input is the pointer and held-action state fed by the frontend.
type Input struct {
	Held        map[Action]bool
	PointerX    float64
	PointerY    float64
	PointerDown bool
	PressStart  time.Time
	// StreamColor is picked on each press and shared by the particles of
	// that stream.
	StreamColor color.Color
}

var InputComponent = NewComponent[Input]()
