package system

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/ecs/entity"
	"github.com/milk9111/sandpit/physics"
	"github.com/milk9111/sandpit/physics/physicstest"
	"github.com/milk9111/sandpit/timer"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	w     *ecs.World
	pw    *physicstest.World
	cfg   *config.Config
	clock *timer.ManualClock
	sched *timer.Scheduler
	rng   *rand.Rand
	cam   ecs.Entity
	input ecs.Entity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		w:     ecs.NewWorld(),
		pw:    physicstest.New(physics.Settings{}),
		cfg:   config.Default(),
		clock: timer.NewManualClock(epoch),
		rng:   rand.New(rand.NewPCG(1, 2)),
	}
	f.sched = timer.NewScheduler(f.clock)
	f.w.SetPhysicsWorld(f.pw)

	var err error
	if f.cam, err = entity.NewCamera(f.w, f.cfg.Camera.InitialZoom, 800, 600); err != nil {
		t.Fatal(err)
	}
	if f.input, err = entity.NewInput(f.w); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) camera(t *testing.T) *component.Camera {
	t.Helper()
	cam, ok := ecs.Get(f.w, f.cam, component.CameraComponent)
	if !ok {
		t.Fatal("camera missing")
	}
	return cam
}

func (f *fixture) inputState(t *testing.T) *component.Input {
	t.Helper()
	in, ok := ecs.Get(f.w, f.input, component.InputComponent)
	if !ok {
		t.Fatal("input missing")
	}
	return in
}

// advance moves the clock in frame-sized steps, polling timers each frame.
func (f *fixture) advance(d, frame time.Duration) {
	for d > 0 {
		step := frame
		if d < step {
			step = d
		}
		f.clock.Advance(step)
		f.sched.Poll()
		d -= step
	}
}
