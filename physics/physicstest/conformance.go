package physicstest

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/physics"
)

// Factory builds a fresh engine for one subtest.
type Factory func(physics.Settings) physics.World

// RunWorldTests checks the behavior every physics.World must share.
func RunWorldTests(t *testing.T, newWorld Factory) {
	settings := physics.Settings{Gravity: mgl64.Vec2{0, 10}, Iterations: 10}
	crate := physics.Fixture{
		Shape:    physics.Box{HalfWidth: 0.5, HalfHeight: 0.5},
		Material: physics.Material{Density: 4, Friction: 0.5, Restitution: 0.75},
	}
	floor := terrainFloor

	t.Run("create_keeps_def", func(t *testing.T) {
		w := newWorld(settings)
		b, err := w.CreateBody(physics.BodyDef{
			Type:     physics.DynamicBody,
			Position: mgl64.Vec2{3, -4},
			Angle:    0.25,
			UserData: "crate",
		}, crate)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if b.Type() != physics.DynamicBody || b.UserData() != "crate" {
			t.Fatalf("unexpected body %v %v", b.Type(), b.UserData())
		}
		if !b.Position().ApproxEqualThreshold(mgl64.Vec2{3, -4}, 1e-9) {
			t.Fatalf("unexpected position %v", b.Position())
		}
		if d := b.Angle() - 0.25; d > 1e-9 || d < -1e-9 {
			t.Fatalf("unexpected angle %v", b.Angle())
		}
		if len(b.Fixtures()) != 1 || b.Fixtures()[0].Shape.Kind() != physics.ShapeBox {
			t.Fatalf("unexpected fixtures %v", b.Fixtures())
		}
	})

	t.Run("rejects_invalid", func(t *testing.T) {
		w := newWorld(settings)
		if _, err := w.CreateBody(physics.BodyDef{}); !errors.Is(err, physics.ErrNoFixtures) {
			t.Fatalf("expected ErrNoFixtures, got %v", err)
		}
		bad := physics.Fixture{Shape: physics.Box{HalfWidth: -1, HalfHeight: 1}}
		if _, err := w.CreateBody(physics.BodyDef{}, bad); !errors.Is(err, physics.ErrInvalidShape) {
			t.Fatalf("expected ErrInvalidShape, got %v", err)
		}
		if w.BodyCount() != 0 {
			t.Fatalf("failed creates must not leave bodies, got %d", w.BodyCount())
		}
	})

	t.Run("all_shape_kinds", func(t *testing.T) {
		w := newWorld(settings)
		static := []physics.Fixture{
			floor,
			{Shape: physics.Chain{Vertices: []mgl64.Vec2{{-2, 5}, {0, 9}, {2, 5}}}},
			{Shape: physics.Box{HalfWidth: 2, HalfHeight: 0.2}},
			{Shape: physics.Polygon{Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}}},
		}
		for i, f := range static {
			if _, err := w.CreateBody(physics.BodyDef{Type: physics.StaticBody}, f); err != nil {
				t.Fatalf("fixture %d: %v", i, err)
			}
		}
		if w.BodyCount() != len(static) {
			t.Fatalf("expected %d bodies, got %d", len(static), w.BodyCount())
		}
		w.Step(1.0 / 60.0)
	})

	t.Run("destroy_and_clear", func(t *testing.T) {
		w := newWorld(settings)
		var bodies []physics.Body
		for i := 0; i < 3; i++ {
			b, err := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Position: mgl64.Vec2{float64(i), 0}}, crate)
			if err != nil {
				t.Fatal(err)
			}
			bodies = append(bodies, b)
		}
		if err := w.DestroyBody(bodies[1]); err != nil {
			t.Fatalf("destroy: %v", err)
		}
		if err := w.DestroyBody(bodies[1]); !errors.Is(err, physics.ErrForeignBody) {
			t.Fatalf("second destroy: expected ErrForeignBody, got %v", err)
		}
		got := w.Bodies()
		if len(got) != 2 || got[0] != bodies[0] || got[1] != bodies[2] {
			t.Fatalf("unexpected bodies after destroy: %v", got)
		}

		other := newWorld(settings)
		if err := other.DestroyBody(bodies[0]); !errors.Is(err, physics.ErrForeignBody) {
			t.Fatalf("expected ErrForeignBody from another world, got %v", err)
		}

		w.Clear()
		if w.BodyCount() != 0 || len(w.Bodies()) != 0 {
			t.Fatalf("expected empty world after Clear, got %d", w.BodyCount())
		}
		w.Step(1.0 / 60.0)
	})

	t.Run("forces_only_move_dynamic", func(t *testing.T) {
		w := newWorld(settings)
		dyn, err := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody}, crate)
		if err != nil {
			t.Fatal(err)
		}
		st, err := w.CreateBody(physics.BodyDef{Type: physics.StaticBody}, floor)
		if err != nil {
			t.Fatal(err)
		}
		dyn.ApplyForceToCenter(mgl64.Vec2{100, 0})
		st.ApplyForceToCenter(mgl64.Vec2{100, 0})
		if f, ok := dyn.(interface{ Force() mgl64.Vec2 }); ok {
			if !f.Force().ApproxEqualThreshold(mgl64.Vec2{100, 0}, 1e-9) {
				t.Fatalf("expected accumulated force, got %v", f.Force())
			}
		}
		if f, ok := st.(interface{ Force() mgl64.Vec2 }); ok {
			if f.Force().Len() != 0 {
				t.Fatalf("static body accumulated force %v", f.Force())
			}
		}
		start := st.Position()
		for i := 0; i < 10; i++ {
			w.Step(1.0 / 60.0)
		}
		if st.Position() != start {
			t.Fatalf("static body moved from %v to %v", start, st.Position())
		}
	})
}

var terrainFloor = physics.Fixture{
	Shape:    physics.Edge{A: mgl64.Vec2{-40, 20}, B: mgl64.Vec2{40, 20}},
	Material: physics.Material{Friction: 0.2},
}

// RunContactTests checks how an engine resolves contacts against terrain.
// Only engines with collision response run it.
func RunContactTests(t *testing.T, newWorld Factory) {
	settings := physics.Settings{Gravity: mgl64.Vec2{0, 10}, Iterations: 10}
	floor := terrainFloor
	pebble := physics.Fixture{
		Shape:    physics.Box{HalfWidth: 0.25, HalfHeight: 0.25},
		Material: physics.Material{Density: 4, Friction: 0.5, Restitution: 0.75},
	}

	t.Run("bounces_off_terrain", func(t *testing.T) {
		w := newWorld(settings)
		if _, err := w.CreateBody(physics.BodyDef{Type: physics.StaticBody}, floor); err != nil {
			t.Fatal(err)
		}
		b, err := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Position: mgl64.Vec2{0, 15}}, pebble)
		if err != nil {
			t.Fatal(err)
		}
		landed := false
		peak := 20.0
		for i := 0; i < 240; i++ {
			w.Step(1.0 / 60.0)
			y := b.Position().Y()
			if !landed && y > 19.5 {
				landed = true
			}
			if landed && y < peak {
				peak = y
			}
		}
		if !landed {
			t.Fatalf("body never reached the floor, y=%v", b.Position().Y())
		}
		// An elastic drop of 4.75 at restitution 0.75 rebounds about 2.6.
		if rise := 19.75 - peak; rise < 1 {
			t.Fatalf("expected a rebound of at least 1, got %v", rise)
		}
	})

	t.Run("friction_stops_sliding", func(t *testing.T) {
		w := newWorld(settings)
		if _, err := w.CreateBody(physics.BodyDef{Type: physics.StaticBody}, floor); err != nil {
			t.Fatal(err)
		}
		flat := pebble
		flat.Material.Restitution = 0
		b, err := w.CreateBody(physics.BodyDef{Type: physics.DynamicBody, Position: mgl64.Vec2{0, 19.7}}, flat)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 60; i++ {
			w.Step(1.0 / 60.0)
		}
		start := b.Position().X()
		b.ApplyForceToCenter(mgl64.Vec2{60, 0})
		for i := 0; i < 120; i++ {
			w.Step(1.0 / 60.0)
		}
		settled := b.Position().X()
		for i := 0; i < 30; i++ {
			w.Step(1.0 / 60.0)
		}
		if moved := settled - start; moved <= 0.01 {
			t.Fatalf("push did not move the body, moved %v", moved)
		}
		if drift := b.Position().X() - settled; math.Abs(drift) > 1e-3 {
			t.Fatalf("body still sliding after 2s, drift %v", drift)
		}
	})
}
