package sandbox

import (
	"log"

	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/ecs/system"
)

// ApplyConfig copies next into the live config so every system sees it on
// the next tick. Physics settings and the backend take effect at the next
// reset; a -backend override stays in force.
func (s *Session) ApplyConfig(next *config.Config) error {
	if s.adjust != nil {
		s.adjust(next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s.cfg = *next
	if cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent); ok {
		cam.Zoom = system.ClampZoom(cam.Zoom, s.cfg.Camera)
	}
	return nil
}

// DrainConfig applies any reloads the watcher has queued without blocking.
// Invalid reloads are logged and the current config is kept.
func (s *Session) DrainConfig(w *config.Watcher) {
	if w == nil {
		return
	}
	for {
		select {
		case next, ok := <-w.Updates:
			if !ok {
				return
			}
			if err := s.ApplyConfig(next); err != nil {
				log.Printf("sandbox: rejected config reload: %v", err)
				continue
			}
			log.Printf("sandbox: config reloaded")
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("sandbox: config reload: %v", err)
		default:
			return
		}
	}
}
