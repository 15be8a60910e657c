package sandbox

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sort"
	"testing"
	"time"

	"github.com/milk9111/sandpit/canvas/canvastest"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/level"
	"github.com/milk9111/sandpit/physics"
	"github.com/milk9111/sandpit/physics/box2d"
	"github.com/milk9111/sandpit/physics/chipmunk"
	"github.com/milk9111/sandpit/physics/physicstest"
	"github.com/milk9111/sandpit/timer"
)

const frame = 10 * time.Millisecond

type harness struct {
	s     *Session
	clock *timer.ManualClock
	fakes []*physicstest.World
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{clock: timer.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	opts.Clock = h.clock
	if opts.Physics == nil {
		opts.Physics = func(s physics.Settings) physics.World {
			pw := physicstest.New(s)
			h.fakes = append(h.fakes, pw)
			return pw
		}
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	opts.ViewportW, opts.ViewportH = 800, 600

	s, err := NewSession(config.Default(), opts)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(s.Close)
	h.s = s
	return h
}

func (h *harness) run(d time.Duration) {
	for ; d > 0; d -= frame {
		h.clock.Advance(frame)
		h.s.Tick()
	}
}

func TestSessionStartsWithLevel(t *testing.T) {
	h := newHarness(t, Options{})
	st := h.s.Stats()
	if st.Bodies != level.BodyCount || st.Particles != 0 {
		t.Fatalf("expected %d bodies and no particles, got %+v", level.BodyCount, st)
	}
	cam := h.s.Camera()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 30 {
		t.Fatalf("unexpected initial camera %+v", cam)
	}
	if h.s.Seed() != 42 {
		t.Fatalf("expected seed 42, got %d", h.s.Seed())
	}
}

func TestStreamScenario(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.PointerDown(400, 300)
	h.run(500 * time.Millisecond)
	h.s.PointerUp()

	var sizes []float64
	ecs.ForEach2(h.s.World(), component.ParticleComponent, component.PhysicsBodyComponent, func(_ ecs.Entity, p *component.Particle, pb *component.PhysicsBody) {
		sizes = append(sizes, p.Size)
		if pos := pb.Body.Position(); pos.Len() > 1e-9 {
			t.Fatalf("particle spawned at %v, expected the origin", pos)
		}
	})
	if len(sizes) != 25 {
		t.Fatalf("expected 25 particles, got %d", len(sizes))
	}

	sum := 0.0
	for _, s := range sizes {
		sum += s
	}
	// Sizes are 0.5 - 0.0005*20k for k = 1..25.
	want := 25*0.5 - 0.0005*20*(25*26/2)
	if math.Abs(sum-want) > 1e-9 {
		t.Fatalf("expected size sum %g, got %g", want, sum)
	}

	h.run(200 * time.Millisecond)
	if st := h.s.Stats(); st.Particles != 25 || st.Bodies != level.BodyCount+25 {
		t.Fatalf("stream kept spawning after release: %+v", st)
	}
}

func TestResetScenario(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.PointerDown(400, 300)
	h.run(100 * time.Millisecond)
	h.s.PointerUp()

	h.s.KeyDown(component.ActionPanRight)
	h.run(50 * time.Millisecond)
	h.s.KeyUp(component.ActionPanRight)
	h.s.Wheel(1)

	first := h.fakes[len(h.fakes)-1]
	if !h.s.TriggerReset() {
		t.Fatal("first reset should start")
	}
	if h.s.TriggerReset() {
		t.Fatal("second reset during the delay should be ignored")
	}
	for _, b := range physics.DynamicBodies(first) {
		fb := b.(*physicstest.Body)
		if len(fb.Forces) != 1 || fb.Forces[0].X() >= 0 {
			t.Fatalf("expected one leftward push, got %v", fb.Forces)
		}
	}

	h.run(1490 * time.Millisecond)
	if !h.s.ResetPending() {
		t.Fatal("reset finished early")
	}
	h.run(frame)
	if h.s.ResetPending() {
		t.Fatal("reset still pending after the delay")
	}

	if len(h.fakes) != 2 || h.s.PhysicsWorld() != h.fakes[1] {
		t.Fatalf("expected a fresh physics world, have %d", len(h.fakes))
	}
	st := h.s.Stats()
	if st.Bodies != level.BodyCount || st.Particles != 0 || st.Resets != 1 {
		t.Fatalf("unexpected stats after reset %+v", st)
	}
	cam := h.s.Camera()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 30 {
		t.Fatalf("camera not reset: %+v", cam)
	}
	if h.s.Seed() == 42 {
		t.Fatal("reset should move to a new seed")
	}
	if !h.s.TriggerReset() {
		t.Fatal("reset should be allowed again once the first completes")
	}
}

func TestStreamSurvivesReset(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.TriggerReset()
	h.clock.Advance(5 * time.Millisecond)
	h.s.PointerDown(400, 300)
	h.run(1595 * time.Millisecond)
	if !h.s.Streaming() {
		t.Fatal("stream stopped by reset")
	}
	// Spawns at 1505..1585 ms land in the rebuilt world.
	if st := h.s.Stats(); st.Particles != 5 {
		t.Fatalf("expected 5 particles in the rebuilt world, got %d", st.Particles)
	}
}

func TestStallSpawnsBoundedBurst(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.PointerDown(400, 300)
	h.clock.Advance(10 * time.Second)
	h.s.Tick()
	if st := h.s.Stats(); st.Particles != timer.MaxCatchUp {
		t.Fatalf("expected %d particles after a stall, got %d", timer.MaxCatchUp, st.Particles)
	}
	h.run(100 * time.Millisecond)
	if st := h.s.Stats(); st.Particles != timer.MaxCatchUp+5 {
		t.Fatalf("expected the stream to resume at its interval, got %d", st.Particles)
	}
}

func TestZoomStaysClamped(t *testing.T) {
	h := newHarness(t, Options{})
	rng := rand.New(rand.NewPCG(3, 4))
	cfg := h.s.Config().Camera
	for i := 0; i < 500; i++ {
		switch rng.IntN(4) {
		case 0:
			h.s.Wheel(float64(rng.IntN(7) - 3))
		case 1:
			h.s.KeyDown(component.ActionZoomIn)
		case 2:
			h.s.KeyDown(component.ActionZoomOut)
		case 3:
			h.s.KeyUp(component.ActionZoomIn)
			h.s.KeyUp(component.ActionZoomOut)
		}
		h.run(frame)
		if z := h.s.Camera().Zoom; z < cfg.MinZoom || z > cfg.MaxZoom {
			t.Fatalf("step %d: zoom %g out of range", i, z)
		}
	}
}

func TestResizeMovesSpawnPoint(t *testing.T) {
	h := newHarness(t, Options{})
	h.s.Resize(1000, 1000)
	h.s.PointerDown(500, 500)
	h.run(20 * time.Millisecond)
	h.s.PointerUp()

	ecs.ForEach2(h.s.World(), component.ParticleComponent, component.PhysicsBodyComponent, func(_ ecs.Entity, _ *component.Particle, pb *component.PhysicsBody) {
		if pos := pb.Body.Position(); pos.Len() > 1e-9 {
			t.Fatalf("expected origin after resize, got %v", pos)
		}
	})
}

type failingSource struct{}

func (failingSource) Layout(context.Context, *rand.Rand) (level.Layout, error) {
	return level.Layout{}, errors.New("broken")
}

func TestLevelSourceFallback(t *testing.T) {
	h := newHarness(t, Options{Level: failingSource{}})
	if n := h.s.Stats().Bodies; n != level.BodyCount {
		t.Fatalf("expected fallback level with %d bodies, got %d", level.BodyCount, n)
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewSession(config.Default(), Options{Backend: "havok"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestRealBackends(t *testing.T) {
	for _, name := range []string{config.BackendChipmunk, config.BackendBox2D} {
		t.Run(name, func(t *testing.T) {
			clock := timer.NewManualClock(time.Unix(0, 0))
			s, err := NewSession(config.Default(), Options{Backend: name, Seed: 7, Clock: clock})
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()

			s.PointerDown(640, 360)
			for i := 0; i < 30; i++ {
				clock.Advance(frame)
				s.Tick()
			}
			s.PointerUp()
			st := s.Stats()
			if st.Particles != 15 || st.Bodies != level.BodyCount+15 {
				t.Fatalf("unexpected stats %+v", st)
			}
		})
	}
}

func TestApplyConfig(t *testing.T) {
	h := newHarness(t, Options{})

	bad := config.Default()
	bad.Camera.MinZoom, bad.Camera.MaxZoom = 50, 20
	if err := h.s.ApplyConfig(bad); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	next := config.Default()
	next.Camera.MoveSpeed = 1
	next.Camera.MaxZoom = 20
	next.Camera.InitialZoom = 20
	if err := h.s.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if z := h.s.Camera().Zoom; z != 20 {
		t.Fatalf("expected zoom clamped to the new max, got %g", z)
	}
	h.s.KeyDown(component.ActionPanDown)
	h.run(frame)
	if y := h.s.Camera().Y; y != 1 {
		t.Fatalf("expected new move speed to apply, got y=%g", y)
	}
}

func TestReloadSwitchesBackendOnReset(t *testing.T) {
	clock := timer.NewManualClock(time.Unix(0, 0))
	s, err := NewSession(config.Default(), Options{Seed: 3, Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, ok := s.PhysicsWorld().(*chipmunk.World); !ok {
		t.Fatalf("expected chipmunk by default, got %T", s.PhysicsWorld())
	}

	next := config.Default()
	next.Physics.Backend = config.BackendBox2D
	if err := s.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.PhysicsWorld().(*chipmunk.World); !ok || s.Stats().Backend != config.BackendChipmunk {
		t.Fatal("backend must not change before the next reset")
	}

	s.TriggerReset()
	for s.ResetPending() {
		clock.Advance(frame)
		s.Tick()
	}
	if _, ok := s.PhysicsWorld().(*box2d.World); !ok {
		t.Fatalf("expected box2d after reset, got %T", s.PhysicsWorld())
	}
	if st := s.Stats(); st.Backend != config.BackendBox2D || st.Bodies != level.BodyCount {
		t.Fatalf("unexpected stats after switch %+v", st)
	}
}

func TestBackendOverrideSurvivesReload(t *testing.T) {
	clock := timer.NewManualClock(time.Unix(0, 0))
	s, err := NewSession(config.Default(), Options{Backend: config.BackendBox2D, Seed: 3, Clock: clock})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.ApplyConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	s.TriggerReset()
	for s.ResetPending() {
		clock.Advance(frame)
		s.Tick()
	}
	if _, ok := s.PhysicsWorld().(*box2d.World); !ok || s.Stats().Backend != config.BackendBox2D {
		t.Fatalf("override lost on reset, got %T", s.PhysicsWorld())
	}
}

func TestDraw(t *testing.T) {
	h := newHarness(t, Options{})
	rec := canvastest.New(800, 600)
	h.s.Draw(rec)
	if rec.Count("FillRect") != 1 {
		t.Fatalf("expected one background fill, got ops %v", rec.Names())
	}
	if rec.Count("Stroke") != 8 || rec.Count("Fill") != 5 {
		t.Fatalf("expected 8 strokes and 5 fills, got %d and %d", rec.Count("Stroke"), rec.Count("Fill"))
	}
}

func TestAdjustRewritesConfigs(t *testing.T) {
	double := func(c *config.Config) { c.Camera.MoveSpeed *= 2 }
	h := newHarness(t, Options{Adjust: double})
	if got := h.s.Config().Camera.MoveSpeed; got != 0.4 {
		t.Fatalf("expected adjusted move speed 0.4, got %g", got)
	}
	next := config.Default()
	next.Camera.MoveSpeed = 1
	if err := h.s.ApplyConfig(next); err != nil {
		t.Fatal(err)
	}
	if got := h.s.Config().Camera.MoveSpeed; got != 2 {
		t.Fatalf("expected reload to be adjusted to 2, got %g", got)
	}
}

func TestBuiltinLevelScript(t *testing.T) {
	cfg := config.Default()
	cfg.Level.Script = "funnel"
	s, err := NewSession(cfg, Options{
		Seed:    3,
		Clock:   timer.NewManualClock(time.Unix(0, 0)),
		Physics: func(st physics.Settings) physics.World { return physicstest.New(st) },
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var pitX []float64
	ecs.ForEach2(s.World(), component.TerrainComponent, component.PhysicsBodyComponent, func(_ ecs.Entity, tr *component.Terrain, pb *component.PhysicsBody) {
		if tr.Kind == level.KindPit {
			chain := pb.Body.Fixtures()[0].Shape.(physics.Chain)
			pitX = append(pitX, chain.Vertices[1].X())
		}
	})
	sort.Float64s(pitX)
	if len(pitX) != 5 || pitX[0] != -14 || pitX[2] != 0 {
		t.Fatalf("expected the funnel layout, got pit tips %v", pitX)
	}

	cfg = config.Default()
	cfg.Level.Script = "no-such-level"
	if _, err := NewSession(cfg, Options{}); err == nil {
		t.Fatal("expected an error for an unknown level script")
	}
}
