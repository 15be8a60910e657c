// Package box2d adapts github.com/ByteArena/box2d to physics.World.
package box2d

import (
	"fmt"

	b2 "github.com/ByteArena/box2d"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/physics"
)

const (
	velocityIterations = 8
	positionIterations = 3
	maxPolygonVertices = 8
)

type World struct {
	world      b2.B2World
	bodies     []*Body
	velocityIt int
}

type Body struct {
	world    *World
	body     *b2.B2Body
	kind     physics.BodyType
	fixtures []physics.Fixture
	userData any
	force    mgl64.Vec2
}

func New(settings physics.Settings) *World {
	it := velocityIterations
	if settings.Iterations > 0 {
		it = settings.Iterations
	}
	return &World{
		world:      b2.MakeB2World(toVec(settings.Gravity)),
		velocityIt: it,
	}
}

func (w *World) CreateBody(def physics.BodyDef, fixtures ...physics.Fixture) (physics.Body, error) {
	if err := physics.ValidateFixtures(fixtures); err != nil {
		return nil, err
	}

	bd := b2.MakeB2BodyDef()
	bd.Type = b2.B2BodyType.B2_staticBody
	if def.Type == physics.DynamicBody {
		bd.Type = b2.B2BodyType.B2_dynamicBody
	}
	bd.Position = toVec(def.Position)
	bd.Angle = def.Angle

	b := &Body{
		world:    w,
		kind:     def.Type,
		fixtures: physics.CopyFixtures(fixtures),
		userData: def.UserData,
	}
	bd.UserData = b
	b.body = w.world.CreateBody(&bd)

	for i, f := range b.fixtures {
		fd := b2.MakeB2FixtureDef()
		shape, err := newShape(f.Shape)
		if err != nil {
			w.world.DestroyBody(b.body)
			return nil, fmt.Errorf("box2d: fixture %d: %w", i, err)
		}
		fd.Shape = shape
		fd.Density = f.Material.Density
		fd.Friction = f.Material.Friction
		fd.Restitution = f.Material.Restitution
		b.body.CreateFixtureFromDef(&fd)
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
		if candidate != b {
			continue
		}
		w.world.DestroyBody(b.body)
		b.world = nil
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		return nil
	}
	return fmt.Errorf("box2d: destroy body: %w", physics.ErrForeignBody)
}

func (w *World) Clear() {
	for _, b := range w.bodies {
		w.world.DestroyBody(b.body)
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
	w.world.Step(dt, w.velocityIt, positionIterations)
	for _, b := range w.bodies {
		b.force = mgl64.Vec2{}
	}
}

func (b *Body) Type() physics.BodyType { return b.kind }

func (b *Body) Position() mgl64.Vec2 {
	p := b.body.GetPosition()
	return mgl64.Vec2{p.X, p.Y}
}

func (b *Body) Angle() float64 { return b.body.GetAngle() }

func (b *Body) Fixtures() []physics.Fixture { return b.fixtures }

func (b *Body) UserData() any { return b.userData }

func (b *Body) ApplyForceToCenter(f mgl64.Vec2) {
	if b.kind != physics.DynamicBody {
		return
	}
	b.force = b.force.Add(f)
	b.body.ApplyForceToCenter(toVec(f), true)
}

// Force reports the force accumulated since the last step.
func (b *Body) Force() mgl64.Vec2 {
	return b.force
}

func newShape(s physics.Shape) (b2.B2ShapeInterface, error) {
	switch s := s.(type) {
	case physics.Box:
		shape := b2.MakeB2PolygonShape()
		shape.SetAsBox(s.HalfWidth, s.HalfHeight)
		return &shape, nil
	case physics.Polygon:
		if len(s.Vertices) > maxPolygonVertices {
			return nil, fmt.Errorf("polygon with %d vertices: %w", len(s.Vertices), physics.ErrInvalidShape)
		}
		verts := toVecs(s.Vertices)
		shape := b2.MakeB2PolygonShape()
		shape.Set(verts, len(verts))
		return &shape, nil
	case physics.Chain:
		verts := toVecs(s.Vertices)
		shape := b2.MakeB2ChainShape()
		shape.CreateChain(verts, len(verts))
		return &shape, nil
	case physics.Edge:
		shape := b2.MakeB2EdgeShape()
		shape.Set(toVec(s.A), toVec(s.B))
		return &shape, nil
	}
	return nil, physics.ErrInvalidShape
}

func toVec(v mgl64.Vec2) b2.B2Vec2 {
	return b2.MakeB2Vec2(v.X(), v.Y())
}

func toVecs(vs []mgl64.Vec2) []b2.B2Vec2 {
	out := make([]b2.B2Vec2, len(vs))
	for i, v := range vs {
		out[i] = toVec(v)
	}
	return out
}
