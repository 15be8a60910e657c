package system

import "github.com/milk9111/sandpit/ecs"

// FixedStep is the simulated time per frame, independent of real frame time.
const FixedStep = 1.0 / 60.0

type PhysicsSystem struct {
	step float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{step: FixedStep}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(ps.step)
}
