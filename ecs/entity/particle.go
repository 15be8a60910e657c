package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/physics"
)

var ErrNoPhysicsWorld = errors.New("entity: no physics world attached")

// NewParticle creates a dynamic square of half-extent size at pos.
func NewParticle(w *ecs.World, pos mgl64.Vec2, size float64, col color.Color, mat physics.Material) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysicsWorld
	}

	e := ecs.CreateEntity(w)
	body, err := pw.CreateBody(physics.BodyDef{
		Type:     physics.DynamicBody,
		Position: pos,
		UserData: e,
	}, physics.Fixture{
		Shape:    physics.Box{HalfWidth: size, HalfHeight: size},
		Material: mat,
	})
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("particle: create body: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body}); err != nil {
		return 0, fmt.Errorf("particle: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.ParticleComponent, &component.Particle{Color: col, Size: size}); err != nil {
		return 0, fmt.Errorf("particle: add particle: %w", err)
	}
	return e, nil
}
