// Package canvastest records canvas calls for assertions.
package canvastest

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/canvas"
)

// Op is one recorded call. Args holds the raw numeric arguments.
type Op struct {
	Name  string
	Args  []float64
	Color color.Color
}

func (o Op) String() string {
	if len(o.Args) == 0 {
		return o.Name
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%g", a)
	}
	return o.Name + "(" + strings.Join(parts, ",") + ")"
}

// Recorder is a Canvas that keeps the transform state and logs every call.
type Recorder struct {
	canvas.State

	W, H float64
	Ops  []Op
}

var _ canvas.Canvas = (*Recorder)(nil)

func New(w, h float64) *Recorder {
	return &Recorder{State: canvas.NewState(), W: w, H: h}
}

func (r *Recorder) record(name string, c color.Color, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Color: c})
}

func (r *Recorder) Size() mgl64.Vec2 { return mgl64.Vec2{r.W, r.H} }

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.record("FillRect", c, x, y, w, h)
}

func (r *Recorder) Save() {
	r.State.Save()
	r.record("Save", nil)
}

func (r *Recorder) Restore() {
	r.State.Restore()
	r.record("Restore", nil)
}

func (r *Recorder) Translate(x, y float64) {
	r.State.Translate(x, y)
	r.record("Translate", nil, x, y)
}

func (r *Recorder) Rotate(a float64) {
	r.State.Rotate(a)
	r.record("Rotate", nil, a)
}

func (r *Recorder) Scale(x, y float64) {
	r.State.Scale(x, y)
	r.record("Scale", nil, x, y)
}

func (r *Recorder) BeginPath() {
	r.State.BeginPath()
	r.record("BeginPath", nil)
}

func (r *Recorder) MoveTo(x, y float64) {
	r.State.MoveTo(x, y)
	r.record("MoveTo", nil, x, y)
}

func (r *Recorder) LineTo(x, y float64) {
	r.State.LineTo(x, y)
	r.record("LineTo", nil, x, y)
}

func (r *Recorder) ClosePath() {
	r.State.ClosePath()
	r.record("ClosePath", nil)
}

func (r *Recorder) Fill(c color.Color) {
	r.record("Fill", c)
}

func (r *Recorder) Stroke(c color.Color, width float64) {
	r.record("Stroke", c, width)
}

// Names returns the op names in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Name
	}
	return out
}

// Count returns how many ops have the given name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}
