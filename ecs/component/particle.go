package component

import "image/color"

// Particle is a player-spawned dynamic square. Size is its half-extent.
type Particle struct {
	Color color.Color
	Size  float64
}

var ParticleComponent = NewComponent[Particle]()
