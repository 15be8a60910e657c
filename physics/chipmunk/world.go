// Package chipmunk adapts github.com/jakecoffman/cp to physics.World.
package chipmunk

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sandpit/physics"
)

// Radius of terrain segments, in world units.
const segmentRadius = 0.02

type World struct {
	space  *cp.Space
	bodies []*Body
}

type Body struct {
	world    *World
	body     *cp.Body
	shapes   []*cp.Shape
	kind     physics.BodyType
	fixtures []physics.Fixture
	userData any
}

func New(settings physics.Settings) *World {
	space := cp.NewSpace()
	space.SetGravity(toVec(settings.Gravity))
	if settings.Iterations > 0 {
		space.Iterations = uint(settings.Iterations)
	}
	return &World{space: space}
}

// Space exposes the underlying space for debug drawing.
func (w *World) Space() *cp.Space {
	return w.space
}

func (w *World) CreateBody(def physics.BodyDef, fixtures ...physics.Fixture) (physics.Body, error) {
	if err := physics.ValidateFixtures(fixtures); err != nil {
		return nil, err
	}

	var body *cp.Body
	if def.Type == physics.DynamicBody {
		mass, moment := massProperties(fixtures)
		body = cp.NewBody(mass, moment)
	} else {
		body = cp.NewStaticBody()
	}
	body.SetPosition(toVec(def.Position))
	body.SetAngle(def.Angle)

	b := &Body{
		world:    w,
		body:     body,
		kind:     def.Type,
		fixtures: physics.CopyFixtures(fixtures),
		userData: def.UserData,
	}
	body.UserData = b

	w.space.AddBody(body)
	for _, f := range b.fixtures {
		for _, shape := range newShapes(body, f.Shape) {
			shape.SetFriction(surfaceFriction(f.Material))
			shape.SetElasticity(surfaceElasticity(def.Type, f.Material))
			w.space.AddShape(shape)
			b.shapes = append(b.shapes, shape)
		}
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
		w.remove(b)
		w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
		return nil
	}
	return fmt.Errorf("chipmunk: destroy body: %w", physics.ErrForeignBody)
}

func (w *World) remove(b *Body) {
	for _, shape := range b.shapes {
		w.space.RemoveShape(shape)
	}
	w.space.RemoveBody(b.body)
	b.shapes = nil
	b.world = nil
}

func (w *World) Clear() {
	for _, b := range w.bodies {
		w.remove(b)
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
	w.space.Step(dt)
}

func (b *Body) Type() physics.BodyType { return b.kind }

func (b *Body) Position() mgl64.Vec2 {
	p := b.body.Position()
	return mgl64.Vec2{p.X, p.Y}
}

func (b *Body) Angle() float64 { return b.body.Angle() }

func (b *Body) Fixtures() []physics.Fixture { return b.fixtures }

func (b *Body) UserData() any { return b.userData }

func (b *Body) ApplyForceToCenter(f mgl64.Vec2) {
	if b.kind != physics.DynamicBody {
		return
	}
	center := b.body.LocalToWorld(b.body.CenterOfGravity())
	b.body.ApplyForceAtWorldPoint(toVec(f), center)
}

// Force reports the force accumulated since the last step.
func (b *Body) Force() mgl64.Vec2 {
	f := b.body.Force()
	return mgl64.Vec2{f.X, f.Y}
}

func newShapes(body *cp.Body, s physics.Shape) []*cp.Shape {
	switch s := s.(type) {
	case physics.Box:
		return []*cp.Shape{cp.NewBox(body, 2*s.HalfWidth, 2*s.HalfHeight, 0)}
	case physics.Polygon:
		verts := toVecs(s.Vertices)
		return []*cp.Shape{cp.NewPolyShapeRaw(body, len(verts), verts, 0)}
	case physics.Chain:
		var out []*cp.Shape
		for _, e := range s.Segments() {
			out = append(out, cp.NewSegment(body, toVec(e.A), toVec(e.B), segmentRadius))
		}
		return out
	case physics.Edge:
		return []*cp.Shape{cp.NewSegment(body, toVec(s.A), toVec(s.B), segmentRadius)}
	}
	return nil
}

// cp multiplies both coefficients at a contact. Shapes store sqrt(friction)
// so pairs mix to sqrt(a*b), and static shapes have elasticity 1 so the
// dynamic body's restitution applies against terrain.
func surfaceFriction(m physics.Material) float64 {
	return math.Sqrt(math.Max(m.Friction, 0))
}

func surfaceElasticity(kind physics.BodyType, m physics.Material) float64 {
	if kind == physics.StaticBody {
		return 1
	}
	return m.Restitution
}

func massProperties(fixtures []physics.Fixture) (mass, moment float64) {
	for _, f := range fixtures {
		switch s := f.Shape.(type) {
		case physics.Box:
			w, h := 2*s.HalfWidth, 2*s.HalfHeight
			m := f.Material.Density * w * h
			mass += m
			moment += cp.MomentForBox(m, w, h)
		case physics.Polygon:
			verts := toVecs(s.Vertices)
			m := f.Material.Density * cp.AreaForPoly(len(verts), verts, 0)
			mass += m
			moment += cp.MomentForPoly(m, len(verts), verts, cp.Vector{}, 0)
		}
	}
	if mass <= 0 {
		mass = 1
	}
	if moment <= 0 {
		moment = cp.MomentForBox(mass, 1, 1)
	}
	return mass, moment
}

func toVec(v mgl64.Vec2) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Y()}
}

func toVecs(vs []mgl64.Vec2) []cp.Vector {
	out := make([]cp.Vector, len(vs))
	for i, v := range vs {
		out[i] = toVec(v)
	}
	return out
}
