package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapePolygon
	ShapeChain
	ShapeEdge
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapePolygon:
		return "polygon"
	case ShapeChain:
		return "chain"
	case ShapeEdge:
		return "edge"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Shape is immutable body-local geometry. The set of implementations is
// closed: Box, Polygon, Chain and Edge.
type Shape interface {
	Kind() ShapeKind
	Validate() error
	sealed()
}

// Box is an axis-aligned rectangle centered on the body origin.
type Box struct {
	HalfWidth, HalfHeight float64
}

// Polygon is a closed convex outline, counter-clockwise.
type Polygon struct {
	Vertices []mgl64.Vec2
}

// Chain is an open polyline. It has no area and is used for static terrain.
type Chain struct {
	Vertices []mgl64.Vec2
}

// Edge is a single segment.
type Edge struct {
	A, B mgl64.Vec2
}

func (Box) Kind() ShapeKind     { return ShapeBox }
func (Polygon) Kind() ShapeKind { return ShapePolygon }
func (Chain) Kind() ShapeKind   { return ShapeChain }
func (Edge) Kind() ShapeKind    { return ShapeEdge }

func (Box) sealed()     {}
func (Polygon) sealed() {}
func (Chain) sealed()   {}
func (Edge) sealed()    {}

func (b Box) Validate() error {
	if !positive(b.HalfWidth) || !positive(b.HalfHeight) {
		return fmt.Errorf("physics: box %gx%g: %w", b.HalfWidth, b.HalfHeight, ErrInvalidShape)
	}
	return nil
}

// Outline returns the four corners counter-clockwise from the bottom-left.
func (b Box) Outline() []mgl64.Vec2 {
	return []mgl64.Vec2{
		{-b.HalfWidth, -b.HalfHeight},
		{b.HalfWidth, -b.HalfHeight},
		{b.HalfWidth, b.HalfHeight},
		{-b.HalfWidth, b.HalfHeight},
	}
}

func (p Polygon) Validate() error {
	if len(p.Vertices) < 3 {
		return fmt.Errorf("physics: polygon with %d vertices: %w", len(p.Vertices), ErrInvalidShape)
	}
	if !finite(p.Vertices...) {
		return fmt.Errorf("physics: polygon: non-finite vertex: %w", ErrInvalidShape)
	}
	return nil
}

func (c Chain) Validate() error {
	if len(c.Vertices) < 2 {
		return fmt.Errorf("physics: chain with %d vertices: %w", len(c.Vertices), ErrInvalidShape)
	}
	if !finite(c.Vertices...) {
		return fmt.Errorf("physics: chain: non-finite vertex: %w", ErrInvalidShape)
	}
	return nil
}

// Segments returns the chain as consecutive edges.
func (c Chain) Segments() []Edge {
	if len(c.Vertices) < 2 {
		return nil
	}
	out := make([]Edge, 0, len(c.Vertices)-1)
	for i := 0; i+1 < len(c.Vertices); i++ {
		out = append(out, Edge{A: c.Vertices[i], B: c.Vertices[i+1]})
	}
	return out
}

func (e Edge) Validate() error {
	if !finite(e.A, e.B) || e.A.ApproxEqual(e.B) {
		return fmt.Errorf("physics: edge %v-%v: %w", e.A, e.B, ErrInvalidShape)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func finite(vs ...mgl64.Vec2) bool {
	for _, v := range vs {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}
