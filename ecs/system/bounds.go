package system

import (
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/ecs/entity"
)

// BoundsSystem removes particles that fell below the kill plane.
type BoundsSystem struct {
	cfg     *config.Config
	removed int
}

func NewBoundsSystem(cfg *config.Config) *BoundsSystem {
	return &BoundsSystem{cfg: cfg}
}

func (bs *BoundsSystem) Update(w *ecs.World) {
	limit := bs.cfg.Particles.KillPlaneY
	ecs.ForEach2(w, component.ParticleComponent, component.PhysicsBodyComponent, func(e ecs.Entity, _ *component.Particle, pb *component.PhysicsBody) {
		if pb.Body == nil || pb.Body.Position().Y() <= limit {
			return
		}
		entity.DestroyWithBody(w, e)
		bs.removed++
	})
}

// Removed is the total number of particles culled so far.
func (bs *BoundsSystem) Removed() int {
	return bs.removed
}
