package system

import (
	"image/color"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/ecs/entity"
	"github.com/milk9111/sandpit/physics"
	"github.com/milk9111/sandpit/timer"
	"github.com/milk9111/sandpit/viewport"
)

// ParticleStream spawns particles under the pointer on a fixed cadence while
// the pointer is held. At most one spawn timer exists at a time.
type ParticleStream struct {
	cfg   *config.Config
	sched *timer.Scheduler
	rng   *rand.Rand

	timerID timer.ID
	spawned int
}

func NewParticleStream(cfg *config.Config, sched *timer.Scheduler, rng *rand.Rand) *ParticleStream {
	return &ParticleStream{cfg: cfg, sched: sched, rng: rng}
}

// Start begins a new stream: it stamps the press time, picks the stream
// color and replaces any running spawn timer.
func (ps *ParticleStream) Start(w *ecs.World) {
	input := firstInput(w)
	if input == nil {
		return
	}
	input.PointerDown = true
	input.PressStart = ps.sched.Now()
	input.StreamColor = StreamColor(ps.rng, ps.cfg.Particles)

	ps.cancel()
	ps.timerID = ps.sched.Every(ps.cfg.Particles.SpawnInterval, func(due time.Time) {
		ps.spawn(w, due)
	})
}

// Stop ends the stream on release.
func (ps *ParticleStream) Stop(w *ecs.World) {
	if input := firstInput(w); input != nil {
		input.PointerDown = false
	}
	ps.cancel()
}

func (ps *ParticleStream) Active() bool {
	return ps.timerID != 0 && ps.sched.Pending(ps.timerID)
}

// Spawned is the total number of particles created.
func (ps *ParticleStream) Spawned() int {
	return ps.spawned
}

func (ps *ParticleStream) cancel() {
	if ps.timerID != 0 {
		ps.sched.Cancel(ps.timerID)
		ps.timerID = 0
	}
}

func (ps *ParticleStream) spawn(w *ecs.World, due time.Time) {
	input := firstInput(w)
	camEntity, ok := ecs.First(w, component.CameraComponent)
	if input == nil || !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent)

	pos := viewport.ScreenToWorld(
		mgl64.Vec2{input.PointerX, input.PointerY},
		mgl64.Vec2{cam.ViewportW, cam.ViewportH},
		mgl64.Vec2{cam.X, cam.Y},
		cam.Zoom,
	)
	p := ps.cfg.Particles
	size := ParticleSize(due.Sub(input.PressStart), p)
	mat := physics.Material{Density: p.Density, Friction: p.Friction, Restitution: p.Restitution}

	if _, err := entity.NewParticle(w, pos, size, input.StreamColor, mat); err != nil {
		log.Printf("particle stream: spawn at %v: %v", pos, err)
		return
	}
	ps.spawned++
}

// ParticleSize is max(MinSize, InitialSize - elapsedMs*ShrinkRate).
func ParticleSize(elapsed time.Duration, p config.ParticleConfig) float64 {
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	return math.Max(p.MinSize, p.InitialSize-ms*p.ShrinkRate)
}

// StreamColor picks a random hue at the configured saturation and lightness.
func StreamColor(rng *rand.Rand, p config.ParticleConfig) color.Color {
	c := colorful.Hsl(rng.Float64()*360, p.Saturation, p.Lightness)
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func firstInput(w *ecs.World) *component.Input {
	e, ok := ecs.First(w, component.InputComponent)
	if !ok {
		return nil
	}
	input, _ := ecs.Get(w, e, component.InputComponent)
	return input
}
