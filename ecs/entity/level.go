package entity

import (
	"fmt"

	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/level"
)

// BuildLevel clears every body and its entity, then creates one static
// terrain entity per feature.
func BuildLevel(w *ecs.World, features []level.Feature) error {
	if w.PhysicsWorld() == nil {
		return ErrNoPhysicsWorld
	}
	ClearBodies(w)
	for i, f := range features {
		if _, err := NewTerrain(w, f); err != nil {
			return fmt.Errorf("level: feature %d (%s): %w", i, f.Kind, err)
		}
	}
	return nil
}

func NewTerrain(w *ecs.World, f level.Feature) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysicsWorld
	}

	e := ecs.CreateEntity(w)
	def := f.Def
	def.UserData = e
	body, err := pw.CreateBody(def, f.Fixture)
	if err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("terrain: create body: %w", err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{Body: body}); err != nil {
		return 0, fmt.Errorf("terrain: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.TerrainComponent, &component.Terrain{Kind: f.Kind}); err != nil {
		return 0, fmt.Errorf("terrain: add terrain: %w", err)
	}
	return e, nil
}
