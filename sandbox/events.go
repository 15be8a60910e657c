package sandbox

import (
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/ecs/system"
)

func (s *Session) inputState() *component.Input {
	in, _ := ecs.Get(s.world, s.input, component.InputComponent)
	return in
}

func (s *Session) KeyDown(a component.Action) {
	if in := s.inputState(); in != nil {
		in.Held[a] = true
	}
}

func (s *Session) KeyUp(a component.Action) {
	if in := s.inputState(); in != nil {
		delete(in.Held, a)
	}
}

// Held reports whether a is currently held.
func (s *Session) Held(a component.Action) bool {
	in := s.inputState()
	return in != nil && in.Held[a]
}

// PointerMove records the pointer in canvas pixels.
func (s *Session) PointerMove(x, y float64) {
	if in := s.inputState(); in != nil {
		in.PointerX, in.PointerY = x, y
	}
}

// PointerDown starts a particle stream at (x, y).
func (s *Session) PointerDown(x, y float64) {
	s.PointerMove(x, y)
	s.stream.Start(s.world)
}

func (s *Session) PointerUp() {
	s.stream.Stop(s.world)
}

func (s *Session) Streaming() bool {
	return s.stream.Active()
}

// Wheel zooms immediately. Positive notches zoom in.
func (s *Session) Wheel(notches float64) {
	if cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent); ok {
		system.WheelZoom(cam, notches, s.cfg.Camera)
	}
}

// Resize sets the viewport used to map the pointer into the world.
func (s *Session) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent); ok {
		cam.ViewportW, cam.ViewportH = w, h
	}
}
