package system

import (
	"github.com/milk9111/sandpit/common"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
)

// CameraSystem pans and zooms the camera from held input actions.
type CameraSystem struct {
	cfg       *config.Config
	camEntity ecs.Entity
	inEntity  ecs.Entity
}

func NewCameraSystem(cfg *config.Config) *CameraSystem {
	return &CameraSystem{cfg: cfg}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if !ecs.IsAlive(w, cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraComponent)
	}
	if !ecs.IsAlive(w, cs.inEntity) {
		cs.inEntity, _ = ecs.First(w, component.InputComponent)
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return
	}
	input, ok := ecs.Get(w, cs.inEntity, component.InputComponent)
	if !ok {
		return
	}

	c := cs.cfg.Camera
	if input.Held[component.ActionPanUp] {
		cam.Y -= c.MoveSpeed
	}
	if input.Held[component.ActionPanDown] {
		cam.Y += c.MoveSpeed
	}
	if input.Held[component.ActionPanLeft] {
		cam.X -= c.MoveSpeed
	}
	if input.Held[component.ActionPanRight] {
		cam.X += c.MoveSpeed
	}

	if input.Held[component.ActionZoomOut] {
		cam.Zoom -= c.ZoomSpeed
	}
	if input.Held[component.ActionZoomIn] {
		cam.Zoom += c.ZoomSpeed
	}
	cam.Zoom = ClampZoom(cam.Zoom, c)
}

// ClampZoom keeps zoom within the configured bounds.
func ClampZoom(zoom float64, c config.CameraConfig) float64 {
	return common.Clamp(zoom, c.MinZoom, c.MaxZoom)
}

// WheelZoom applies wheel notches to the camera immediately. Positive
// notches zoom in.
func WheelZoom(cam *component.Camera, notches float64, c config.CameraConfig) {
	switch {
	case notches > 0:
		cam.Zoom += c.WheelZoomSpeed
	case notches < 0:
		cam.Zoom -= c.WheelZoomSpeed
	}
	cam.Zoom = ClampZoom(cam.Zoom, c)
}
