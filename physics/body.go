package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidShape = errors.New("physics: invalid shape")
	ErrNoFixtures   = errors.New("physics: body has no fixtures")
	ErrForeignBody  = errors.New("physics: body belongs to another world")
)

type BodyType int

const (
	StaticBody BodyType = iota
	DynamicBody
)

func (t BodyType) String() string {
	if t == DynamicBody {
		return "dynamic"
	}
	return "static"
}

// Material is the surface response of a fixture. Static fixtures ignore
// Density.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

type Fixture struct {
	Shape    Shape
	Material Material
}

type BodyDef struct {
	Type     BodyType
	Position mgl64.Vec2
	Angle    float64
	// UserData is opaque to the engine; the sandbox stores the owning entity.
	UserData any
}

type Settings struct {
	Gravity    mgl64.Vec2
	Iterations int
}

// Body is a rigid body owned by a World.
type Body interface {
	Type() BodyType
	Position() mgl64.Vec2
	Angle() float64
	Fixtures() []Fixture
	UserData() any
	// ApplyForceToCenter accumulates a force at the center of mass for the
	// next Step.
	ApplyForceToCenter(f mgl64.Vec2)
}

// World is a physics engine instance.
type World interface {
	CreateBody(def BodyDef, fixtures ...Fixture) (Body, error)
	DestroyBody(b Body) error
	// Clear destroys every body.
	Clear()
	// Bodies returns the live bodies in creation order.
	Bodies() []Body
	BodyCount() int
	Step(dt float64)
}

// ValidateFixtures checks a body's fixture list before an engine sees it.
func ValidateFixtures(fixtures []Fixture) error {
	if len(fixtures) == 0 {
		return ErrNoFixtures
	}
	for i, f := range fixtures {
		if f.Shape == nil {
			return fmt.Errorf("physics: fixture %d: nil shape: %w", i, ErrInvalidShape)
		}
		if err := f.Shape.Validate(); err != nil {
			return fmt.Errorf("physics: fixture %d: %w", i, err)
		}
	}
	return nil
}

// CopyFixtures deep-copies vertex slices.
func CopyFixtures(fixtures []Fixture) []Fixture {
	out := make([]Fixture, len(fixtures))
	for i, f := range fixtures {
		out[i] = Fixture{Shape: cloneShape(f.Shape), Material: f.Material}
	}
	return out
}

func cloneShape(s Shape) Shape {
	switch s := s.(type) {
	case Polygon:
		return Polygon{Vertices: append([]mgl64.Vec2(nil), s.Vertices...)}
	case Chain:
		return Chain{Vertices: append([]mgl64.Vec2(nil), s.Vertices...)}
	}
	return s
}

// DynamicBodies filters a body list down to dynamic bodies.
func DynamicBodies(w World) []Body {
	if w == nil {
		return nil
	}
	var out []Body
	for _, b := range w.Bodies() {
		if b.Type() == DynamicBody {
			out = append(out, b)
		}
	}
	return out
}
