// Package physicstest provides an in-memory physics.World for tests. Bodies
// do not move unless a test calls SetPosition; Step only counts calls and
// clears accumulated forces.
package physicstest

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/physics"
)

type World struct {
	Settings physics.Settings
	Steps    int
	Elapsed  float64

	bodies []*Body
}

type Body struct {
	world    *World
	kind     physics.BodyType
	position mgl64.Vec2
	angle    float64
	fixtures []physics.Fixture
	userData any

	// Forces records every ApplyForceToCenter call since creation.
	Forces []mgl64.Vec2
	force  mgl64.Vec2
}

func New(settings physics.Settings) *World {
	return &World{Settings: settings}
}

func (w *World) CreateBody(def physics.BodyDef, fixtures ...physics.Fixture) (physics.Body, error) {
	if err := physics.ValidateFixtures(fixtures); err != nil {
		return nil, err
	}
	b := &Body{
		world:    w,
		kind:     def.Type,
		position: def.Position,
		angle:    def.Angle,
		fixtures: physics.CopyFixtures(fixtures),
		userData: def.UserData,
	}
	w.bodies = append(w.bodies, b)
	return b, nil
}

func (w *World) DestroyBody(pb physics.Body) error {
	b, ok := pb.(*Body)
	if !ok || b.world != w {
		return physics.ErrForeignBody
	}
	for i, candidate := range w.bodies {
		if candidate == b {
			b.world = nil
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return nil
		}
	}
	return physics.ErrForeignBody
}

func (w *World) Clear() {
	for _, b := range w.bodies {
		b.world = nil
	}
	w.bodies = nil
}

func (w *World) Bodies() []physics.Body {
	out := make([]physics.Body, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = b
	}
	return out
}

func (w *World) BodyCount() int {
	return len(w.bodies)
}

func (w *World) Step(dt float64) {
	w.Steps++
	w.Elapsed += dt
	for _, b := range w.bodies {
		b.force = mgl64.Vec2{}
	}
}

func (b *Body) Type() physics.BodyType      { return b.kind }
func (b *Body) Position() mgl64.Vec2        { return b.position }
func (b *Body) Angle() float64              { return b.angle }
func (b *Body) Fixtures() []physics.Fixture { return b.fixtures }
func (b *Body) UserData() any               { return b.userData }

func (b *Body) ApplyForceToCenter(f mgl64.Vec2) {
	b.Forces = append(b.Forces, f)
	if b.kind == physics.DynamicBody {
		b.force = b.force.Add(f)
	}
}

// Force reports the force accumulated since the last step.
func (b *Body) Force() mgl64.Vec2 { return b.force }

func (b *Body) SetPosition(p mgl64.Vec2) { b.position = p }
