package entity

import (
	"fmt"

	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
)

// NewCamera creates the camera entity at the origin with the given zoom.
func NewCamera(w *ecs.World, zoom, viewportW, viewportH float64) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent, &component.Camera{
		Zoom:      zoom,
		ViewportW: viewportW,
		ViewportH: viewportH,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}

// NewInput creates the entity holding frontend input state.
func NewInput(w *ecs.World) (ecs.Entity, error) {
	input := ecs.CreateEntity(w)
	if err := ecs.Add(w, input, component.InputComponent, &component.Input{
		Held: make(map[component.Action]bool),
	}); err != nil {
		return 0, fmt.Errorf("input: add input component: %w", err)
	}
	return input, nil
}
