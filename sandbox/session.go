// Package sandbox owns one running simulation: the ECS world, its physics
// world, timers, randomness and configuration. Frontends feed it input
// events, call Tick once per frame and Draw onto a canvas.
package sandbox

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/milk9111/sandpit/canvas"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/ecs/entity"
	"github.com/milk9111/sandpit/ecs/system"
	"github.com/milk9111/sandpit/level"
	"github.com/milk9111/sandpit/levels"
	"github.com/milk9111/sandpit/physics"
	"github.com/milk9111/sandpit/timer"
)

type Options struct {
	// Backend overrides cfg.Physics.Backend when set.
	Backend string
	// Physics replaces the named backend entirely.
	Physics PhysicsFactory
	// Seed is the first level seed. Zero picks one at random.
	Seed uint64
	// Level overrides cfg.Level.Script when set.
	Level level.Source
	Clock timer.Clock
	// Adjust rewrites every config the session adopts, including reloads.
	Adjust func(*config.Config)

	ViewportW, ViewportH float64
}

type Session struct {
	cfg      *config.Config
	world    *ecs.World
	systems  *ecs.Scheduler
	sched    *timer.Scheduler
	rng      *rand.Rand
	// physics is set only when injected; otherwise each rebuild resolves
	// the backend by name.
	physics  PhysicsFactory
	override string
	backend  string
	level    level.Source
	adjust   func(*config.Config)

	camera ecs.Entity
	input  ecs.Entity

	stream *system.ParticleStream
	reset  *system.ResetController
	bounds *system.BoundsSystem
	render *system.RenderSystem

	seed   uint64
	frames int
	resets int
}

// NewSession builds the world and generates the first level. cfg is owned
// by the session from here on; ApplyConfig updates it in place.
func NewSession(cfg *config.Config, opts Options) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Adjust != nil {
		opts.Adjust(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	backend := cfg.Physics.Backend
	if opts.Backend != "" {
		backend = opts.Backend
	}

	src := opts.Level
	if src == nil {
		src = level.Random{}
		if cfg.Level.Script != "" {
			script, err := levels.Load(cfg.Level.Script)
			if err != nil {
				return nil, fmt.Errorf("sandbox: %w", err)
			}
			src = script
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = timer.SystemClock{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	vw, vh := opts.ViewportW, opts.ViewportH
	if vw <= 0 || vh <= 0 {
		vw, vh = float64(cfg.Window.Width), float64(cfg.Window.Height)
	}

	s := &Session{
		cfg:      cfg,
		world:    ecs.NewWorld(),
		sched:    timer.NewScheduler(clock),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		physics:  opts.Physics,
		override: opts.Backend,
		backend:  backend,
		level:    src,
		adjust:   opts.Adjust,
		seed:     seed,
	}

	var err error
	if s.camera, err = entity.NewCamera(s.world, cfg.Camera.InitialZoom, vw, vh); err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}
	if s.input, err = entity.NewInput(s.world); err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	s.stream = system.NewParticleStream(cfg, s.sched, s.rng)
	s.reset = system.NewResetController(cfg, s.sched, s.rng, s.reinit)
	s.bounds = system.NewBoundsSystem(cfg)
	s.render = system.NewRenderSystem(cfg)
	s.systems = ecs.NewScheduler(
		system.NewPhysicsSystem(),
		system.NewCameraSystem(cfg),
		s.bounds,
	)

	if err := s.rebuild(); err != nil {
		return nil, err
	}
	log.Printf("sandbox: started with %s backend, seed %d", s.backend, seed)
	return s, nil
}

// rebuild swaps in an empty physics world, homes the camera and generates
// a level from the current seed. The backend named by the live config is
// picked up here, so a reloaded backend applies at the next reset.
func (s *Session) rebuild() error {
	factory, err := s.factory()
	if err != nil {
		return err
	}
	entity.ClearBodies(s.world)
	s.world.SetPhysicsWorld(factory(physicsSettings(s.cfg.Physics)))

	if cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent); ok {
		cam.X, cam.Y = 0, 0
		cam.Zoom = s.cfg.Camera.InitialZoom
	}

	layout := s.layout()
	if err := entity.BuildLevel(s.world, level.Features(layout)); err != nil {
		return fmt.Errorf("sandbox: build level: %w", err)
	}
	return nil
}

func (s *Session) factory() (PhysicsFactory, error) {
	if s.physics != nil {
		return s.physics, nil
	}
	name := s.cfg.Physics.Backend
	if s.override != "" {
		name = s.override
	}
	f, err := Backend(name)
	if err != nil {
		return nil, err
	}
	if name != s.backend {
		log.Printf("sandbox: switching physics backend %s -> %s", s.backend, name)
	}
	s.backend = name
	return f, nil
}

func (s *Session) layout() level.Layout {
	rng := rand.New(rand.NewPCG(s.seed, s.seed))
	l, err := s.level.Layout(context.Background(), rng)
	if err == nil {
		return l
	}
	log.Printf("sandbox: level source failed, using random layout: %v", err)
	return level.RandomLayout(rand.New(rand.NewPCG(s.seed, s.seed)))
}

// reinit runs when a reset's delay expires. Each reset moves to a new seed.
func (s *Session) reinit() error {
	s.seed = s.rng.Uint64()
	if err := s.rebuild(); err != nil {
		return err
	}
	s.resets++
	log.Printf("sandbox: reset %d done, seed %d", s.resets, s.seed)
	return nil
}

// Tick advances one frame: due timers, then physics, camera and bounds.
func (s *Session) Tick() {
	s.sched.Poll()
	s.systems.Update(s.world)
	s.frames++
}

func (s *Session) Draw(c canvas.Canvas) {
	s.render.Draw(s.world, c)
}

// TriggerReset starts a reset. It reports false while one is pending.
func (s *Session) TriggerReset() bool {
	return s.reset.Trigger(s.world)
}

func (s *Session) ResetPending() bool {
	return s.reset.Pending()
}

func (s *Session) World() *ecs.World {
	return s.world
}

func (s *Session) PhysicsWorld() physics.World {
	return s.world.PhysicsWorld()
}

func (s *Session) Config() *config.Config {
	return s.cfg
}

// Seed is the seed of the level currently on screen.
func (s *Session) Seed() uint64 {
	return s.seed
}

// Camera returns a copy of the camera state.
func (s *Session) Camera() component.Camera {
	if cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent); ok {
		return *cam
	}
	return component.Camera{}
}

type Stats struct {
	Frames       int
	Bodies       int
	Particles    int
	Spawned      int
	Removed      int
	Resets       int
	ResetPending bool
	Zoom         float64
	Seed         uint64
	Backend      string
}

func (s *Session) Stats() Stats {
	st := Stats{
		Frames:       s.frames,
		Particles:    len(ecs.Query(s.world, component.ParticleComponent)),
		Spawned:      s.stream.Spawned(),
		Removed:      s.bounds.Removed(),
		Resets:       s.resets,
		ResetPending: s.reset.Pending(),
		Zoom:         s.Camera().Zoom,
		Seed:         s.seed,
		Backend:      s.backend,
	}
	if pw := s.world.PhysicsWorld(); pw != nil {
		st.Bodies = pw.BodyCount()
	}
	return st
}

func (st Stats) String() string {
	return fmt.Sprintf("bodies %d  particles %d  spawned %d  culled %d  resets %d  zoom %.1f  seed %d  (%s)",
		st.Bodies, st.Particles, st.Spawned, st.Removed, st.Resets, st.Zoom, st.Seed, st.Backend)
}

// Close cancels pending timers.
func (s *Session) Close() {
	s.sched.Clear()
}
