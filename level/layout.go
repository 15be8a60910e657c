// Package level describes the arena: three static boundary edges plus five
// V-notch pits and five tilted terraces whose placement comes from a Source.
package level

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/common"
)

const (
	PitCount     = 5
	TerraceCount = 5
	// BodyCount is the number of bodies a generated level always holds.
	BodyCount = 3 + PitCount + TerraceCount

	TerraceHalfHeight = 0.2
)

var ErrFeatureCount = errors.New("level: wrong feature count")

// Range is a closed interval.
type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return common.Clamp(v, r.Min, r.Max)
}

func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

var (
	PitX         = Range{-15, 15}
	PitY         = Range{5, 15}
	PitHalfWidth = Range{1, 2.5}
	PitDepth     = Range{2, 5}

	TerraceX         = Range{-15, 15}
	TerraceY         = Range{-7.5, 7.5}
	TerraceHalfWidth = Range{1.5, 3.5}
	TerraceAngle     = Range{-math.Pi / 8, math.Pi / 8}
)

// Boundaries are the floor and two side walls of the 80x40 arena. Y grows
// downward, so the y=20 edge is the floor.
var Boundaries = [3][2]mgl64.Vec2{
	{{-40, 20}, {40, 20}},
	{{-20, -20}, {-20, 20}},
	{{20, -20}, {20, 20}},
}

// Pit is a V-notch: its rim sits at Y and its tip Depth below.
type Pit struct {
	X, Y      float64
	HalfWidth float64
	Depth     float64
}

// Vertices returns rim-left, tip, rim-right in world space.
func (p Pit) Vertices() []mgl64.Vec2 {
	return []mgl64.Vec2{
		{p.X - p.HalfWidth, p.Y},
		{p.X, p.Y + p.Depth},
		{p.X + p.HalfWidth, p.Y},
	}
}

func (p Pit) clamp() Pit {
	return Pit{
		X:         PitX.Clamp(p.X),
		Y:         PitY.Clamp(p.Y),
		HalfWidth: PitHalfWidth.Clamp(p.HalfWidth),
		Depth:     PitDepth.Clamp(p.Depth),
	}
}

// Terrace is a thin static plank centered at X, Y.
type Terrace struct {
	X, Y      float64
	HalfWidth float64
	Angle     float64
}

func (t Terrace) clamp() Terrace {
	return Terrace{
		X:         TerraceX.Clamp(t.X),
		Y:         TerraceY.Clamp(t.Y),
		HalfWidth: TerraceHalfWidth.Clamp(t.HalfWidth),
		Angle:     TerraceAngle.Clamp(t.Angle),
	}
}

type Layout struct {
	Pits     []Pit
	Terraces []Terrace
}

// Clamped returns a copy with every value forced into its range.
func (l Layout) Clamped() Layout {
	out := Layout{
		Pits:     make([]Pit, len(l.Pits)),
		Terraces: make([]Terrace, len(l.Terraces)),
	}
	for i, p := range l.Pits {
		out.Pits[i] = p.clamp()
	}
	for i, t := range l.Terraces {
		out.Terraces[i] = t.clamp()
	}
	return out
}

func (l Layout) Validate() error {
	if len(l.Pits) != PitCount || len(l.Terraces) != TerraceCount {
		return fmt.Errorf("%w: %d pits, %d terraces", ErrFeatureCount, len(l.Pits), len(l.Terraces))
	}
	return nil
}

// Source produces a layout from a random stream.
type Source interface {
	Layout(ctx context.Context, rng *rand.Rand) (Layout, error)
}

// Random is the built-in layout source.
type Random struct{}

func (Random) Layout(_ context.Context, rng *rand.Rand) (Layout, error) {
	return RandomLayout(rng), nil
}

// RandomLayout draws a pit then a terrace per round, five rounds.
func RandomLayout(rng *rand.Rand) Layout {
	l := Layout{
		Pits:     make([]Pit, 0, PitCount),
		Terraces: make([]Terrace, 0, TerraceCount),
	}
	for i := 0; i < PitCount; i++ {
		l.Pits = append(l.Pits, Pit{
			X:         PitX.Sample(rng),
			Y:         PitY.Sample(rng),
			HalfWidth: PitHalfWidth.Sample(rng),
			Depth:     PitDepth.Sample(rng),
		})
		l.Terraces = append(l.Terraces, Terrace{
			X:         TerraceX.Sample(rng),
			Y:         TerraceY.Sample(rng),
			HalfWidth: TerraceHalfWidth.Sample(rng),
			Angle:     TerraceAngle.Sample(rng),
		})
	}
	return l
}
