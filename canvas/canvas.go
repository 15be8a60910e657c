// Package canvas defines the immediate-mode 2D surface the renderer draws
// on. Coordinates passed to path and rect calls are transformed by the
// current matrix, which Save and Restore push and pop.
package canvas

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Canvas interface {
	Size() mgl64.Vec2

	// FillRect fills an untransformed device-space rectangle.
	FillRect(x, y, w, h float64, c color.Color)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(x, y float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill(c color.Color)
	// Stroke draws the current path with a line width in current units.
	Stroke(c color.Color, width float64)
}

// Subpath is one MoveTo-started run of device-space points.
type Subpath struct {
	Points []mgl64.Vec2
	Closed bool
}

// State implements the transform stack and path building shared by every
// Canvas. Implementations embed it and read Path when filling or stroking.
type State struct {
	matrix mgl64.Mat3
	stack  []mgl64.Mat3
	path   []Subpath
}

func NewState() State {
	return State{matrix: mgl64.Ident3()}
}

func (s *State) Matrix() mgl64.Mat3 {
	return s.matrix
}

func (s *State) Save() {
	s.stack = append(s.stack, s.matrix)
}

// Restore pops the last saved matrix. An unbalanced Restore is a no-op.
func (s *State) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.matrix = s.stack[n-1]
	s.stack = s.stack[:n-1]
}

func (s *State) Depth() int {
	return len(s.stack)
}

// ResetTransform clears the stack and path at the start of a frame.
func (s *State) ResetTransform() {
	s.matrix = mgl64.Ident3()
	s.stack = s.stack[:0]
	s.path = s.path[:0]
}

func (s *State) Translate(x, y float64) {
	s.matrix = s.matrix.Mul3(mgl64.Translate2D(x, y))
}

func (s *State) Rotate(radians float64) {
	s.matrix = s.matrix.Mul3(mgl64.HomogRotate2D(radians))
}

func (s *State) Scale(x, y float64) {
	s.matrix = s.matrix.Mul3(mgl64.Scale2D(x, y))
}

// Transform maps a point in current units to device space.
func (s *State) Transform(x, y float64) mgl64.Vec2 {
	return s.matrix.Mul3x1(mgl64.Vec3{x, y, 1}).Vec2()
}

// LineScale is the device length of one current unit, used for widths.
func (s *State) LineScale() float64 {
	m := s.matrix
	det := m.At(0, 0)*m.At(1, 1) - m.At(0, 1)*m.At(1, 0)
	if det < 0 {
		det = -det
	}
	return math.Sqrt(det)
}

func (s *State) BeginPath() {
	s.path = s.path[:0]
}

func (s *State) MoveTo(x, y float64) {
	s.path = append(s.path, Subpath{Points: []mgl64.Vec2{s.Transform(x, y)}})
}

// LineTo without a preceding MoveTo starts a subpath at the point.
func (s *State) LineTo(x, y float64) {
	if len(s.path) == 0 {
		s.MoveTo(x, y)
		return
	}
	last := &s.path[len(s.path)-1]
	last.Points = append(last.Points, s.Transform(x, y))
}

func (s *State) ClosePath() {
	if len(s.path) == 0 {
		return
	}
	s.path[len(s.path)-1].Closed = true
}

func (s *State) Path() []Subpath {
	return s.path
}

// Segments lists the device-space line segments of a subpath, including the
// closing segment of a closed subpath.
func (sp Subpath) Segments() [][2]mgl64.Vec2 {
	n := len(sp.Points)
	if n < 2 {
		return nil
	}
	out := make([][2]mgl64.Vec2, 0, n)
	for i := 0; i+1 < n; i++ {
		out = append(out, [2]mgl64.Vec2{sp.Points[i], sp.Points[i+1]})
	}
	if sp.Closed && n > 2 {
		out = append(out, [2]mgl64.Vec2{sp.Points[n-1], sp.Points[0]})
	}
	return out
}

// SegmentQuad returns the four corners of a segment thickened to width.
// ok is false for zero-length segments.
func SegmentQuad(a, b mgl64.Vec2, width float64) (quad [4]mgl64.Vec2, ok bool) {
	d := b.Sub(a)
	if d.Len() == 0 {
		return quad, false
	}
	n := mgl64.Vec2{-d.Y(), d.X()}.Normalize().Mul(width / 2)
	return [4]mgl64.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, true
}
