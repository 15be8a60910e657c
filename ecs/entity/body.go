package entity

import (
	"log"

	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
)

// DestroyWithBody removes e's physics body, if any, then the entity.
func DestroyWithBody(w *ecs.World, e ecs.Entity) {
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && pb.Body != nil {
		if pw := w.PhysicsWorld(); pw != nil {
			if err := pw.DestroyBody(pb.Body); err != nil {
				log.Printf("entity: destroy body of %v: %v", e, err)
			}
		}
	}
	ecs.DestroyEntity(w, e)
}

// ClearBodies destroys every body-carrying entity and empties the physics
// world, including bodies no entity owns.
func ClearBodies(w *ecs.World) {
	for _, e := range ecs.Query(w, component.PhysicsBodyComponent) {
		ecs.DestroyEntity(w, e)
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.Clear()
	}
}
