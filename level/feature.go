package level

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/physics"
)

type Kind int

const (
	KindBoundary Kind = iota
	KindPit
	KindTerrace
)

func (k Kind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindPit:
		return "pit"
	case KindTerrace:
		return "terrace"
	}
	return "unknown"
}

// TerrainMaterial is the surface of every level body.
var TerrainMaterial = physics.Material{Friction: 0.2}

// Feature is one static body ready to hand to a physics world.
type Feature struct {
	Kind    Kind
	Def     physics.BodyDef
	Fixture physics.Fixture
}

// Features expands a layout into boundaries, then pits and terraces in
// draw order. The layout is clamped first; the count is not checked here.
func Features(l Layout) []Feature {
	l = l.Clamped()
	out := make([]Feature, 0, BodyCount)
	for _, b := range Boundaries {
		out = append(out, Feature{
			Kind:    KindBoundary,
			Def:     physics.BodyDef{Type: physics.StaticBody},
			Fixture: physics.Fixture{Shape: physics.Edge{A: b[0], B: b[1]}, Material: TerrainMaterial},
		})
	}
	for i := range l.Pits {
		p := l.Pits[i]
		out = append(out, Feature{
			Kind:    KindPit,
			Def:     physics.BodyDef{Type: physics.StaticBody},
			Fixture: physics.Fixture{Shape: physics.Chain{Vertices: p.Vertices()}, Material: TerrainMaterial},
		})
		if i < len(l.Terraces) {
			out = append(out, terraceFeature(l.Terraces[i]))
		}
	}
	for i := len(l.Pits); i < len(l.Terraces); i++ {
		out = append(out, terraceFeature(l.Terraces[i]))
	}
	return out
}

func terraceFeature(t Terrace) Feature {
	return Feature{
		Kind: KindTerrace,
		Def: physics.BodyDef{
			Type:     physics.StaticBody,
			Position: mgl64.Vec2{t.X, t.Y},
			Angle:    t.Angle,
		},
		Fixture: physics.Fixture{
			Shape:    physics.Box{HalfWidth: t.HalfWidth, HalfHeight: TerraceHalfHeight},
			Material: TerrainMaterial,
		},
	}
}
