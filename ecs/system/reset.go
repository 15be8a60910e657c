package system

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/physics"
	"github.com/milk9111/sandpit/timer"
)

// ResetController blows every dynamic body away from the camera, then
// rebuilds the world after the configured delay.
type ResetController struct {
	cfg    *config.Config
	sched  *timer.Scheduler
	rng    *rand.Rand
	reinit func() error

	pending timer.ID
}

// NewResetController calls reinit from the scheduler when the delay expires.
func NewResetController(cfg *config.Config, sched *timer.Scheduler, rng *rand.Rand, reinit func() error) *ResetController {
	return &ResetController{cfg: cfg, sched: sched, rng: rng, reinit: reinit}
}

// Trigger starts a reset. It returns false, and does nothing, while an
// earlier reset is still waiting to rebuild.
func (rc *ResetController) Trigger(w *ecs.World) bool {
	if rc.Pending() {
		log.Printf("reset: already pending, ignoring trigger")
		return false
	}

	var center mgl64.Vec2
	if e, ok := ecs.First(w, component.CameraComponent); ok {
		cam, _ := ecs.Get(w, e, component.CameraComponent)
		center = mgl64.Vec2{cam.X, cam.Y}
	}

	pushed, skipped := Explode(physics.DynamicBodies(w.PhysicsWorld()), center, rc.cfg.Reset, rc.rng)
	if skipped > 0 {
		log.Printf("reset: skipped %d bodies at the camera position", skipped)
	}
	log.Printf("reset: pushed %d bodies, rebuilding in %v", pushed, rc.cfg.Reset.Delay)

	rc.pending = rc.sched.After(rc.cfg.Reset.Delay, func(time.Time) {
		rc.pending = 0
		if err := rc.reinit(); err != nil {
			log.Printf("reset: reinit: %v", err)
		}
	})
	return true
}

func (rc *ResetController) Pending() bool {
	return rc.pending != 0 && rc.sched.Pending(rc.pending)
}

// Cancel drops a pending rebuild.
func (rc *ResetController) Cancel() {
	if rc.pending != 0 {
		rc.sched.Cancel(rc.pending)
		rc.pending = 0
	}
}

// Explode applies an outward force from center to each body, with a
// magnitude drawn uniformly from the configured range. Bodies exactly at
// center have no direction and are skipped.
func Explode(bodies []physics.Body, center mgl64.Vec2, rc config.ResetConfig, rng *rand.Rand) (pushed, skipped int) {
	for _, b := range bodies {
		dir := b.Position().Sub(center)
		if dir.Len() == 0 {
			skipped++
			continue
		}
		magnitude := rc.MinForce + rng.Float64()*(rc.MaxForce-rc.MinForce)
		b.ApplyForceToCenter(dir.Normalize().Mul(magnitude))
		pushed++
	}
	return pushed, skipped
}
