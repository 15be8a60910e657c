package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestShapeValidate(t *testing.T) {
	tests := []struct {
		name    string
		shape   Shape
		wantErr bool
	}{
		{"box", Box{HalfWidth: 0.5, HalfHeight: 0.5}, false},
		{"box_zero_width", Box{HalfWidth: 0, HalfHeight: 1}, true},
		{"box_negative", Box{HalfWidth: 1, HalfHeight: -1}, true},
		{"triangle", Polygon{Vertices: []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}}, false},
		{"polygon_two_points", Polygon{Vertices: []mgl64.Vec2{{0, 0}, {1, 0}}}, true},
		{"polygon_nan", Polygon{Vertices: []mgl64.Vec2{{0, 0}, {1, math.NaN()}, {0, 1}}}, true},
		{"chain_v_notch", Chain{Vertices: []mgl64.Vec2{{-1, 5}, {0, 8}, {1, 5}}}, false},
		{"chain_single", Chain{Vertices: []mgl64.Vec2{{0, 0}}}, true},
		{"edge", Edge{A: mgl64.Vec2{-40, 20}, B: mgl64.Vec2{40, 20}}, false},
		{"edge_degenerate", Edge{A: mgl64.Vec2{1, 1}, B: mgl64.Vec2{1, 1}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.shape.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidShape) {
					t.Fatalf("expected ErrInvalidShape, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestShapeKinds(t *testing.T) {
	shapes := map[ShapeKind]Shape{
		ShapeBox:     Box{},
		ShapePolygon: Polygon{},
		ShapeChain:   Chain{},
		ShapeEdge:    Edge{},
	}
	for want, s := range shapes {
		if s.Kind() != want {
			t.Fatalf("%T: expected kind %v, got %v", s, want, s.Kind())
		}
	}
}

func TestChainSegments(t *testing.T) {
	c := Chain{Vertices: []mgl64.Vec2{{-2, 5}, {0, 9}, {2, 5}}}
	segs := c.Segments()
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].B != segs[1].A {
		t.Fatalf("segments should share the middle vertex: %v", segs)
	}
}

func TestValidateFixtures(t *testing.T) {
	if err := ValidateFixtures(nil); !errors.Is(err, ErrNoFixtures) {
		t.Fatalf("expected ErrNoFixtures, got %v", err)
	}
	if err := ValidateFixtures([]Fixture{{}}); !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape for nil shape, got %v", err)
	}
	ok := []Fixture{{Shape: Box{HalfWidth: 1, HalfHeight: 1}}}
	if err := ValidateFixtures(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCopyFixturesDetachesVertices(t *testing.T) {
	verts := []mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}}
	src := []Fixture{{Shape: Polygon{Vertices: verts}}}
	dst := CopyFixtures(src)
	verts[0] = mgl64.Vec2{9, 9}
	got := dst[0].Shape.(Polygon).Vertices[0]
	if got != (mgl64.Vec2{0, 0}) {
		t.Fatalf("copy shares storage with source: %v", got)
	}
}
