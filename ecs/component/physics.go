package component

import "github.com/milk9111/sandpit/physics"

// PhysicsBody links an entity to its body in the session's physics world.
type PhysicsBody struct {
	Body physics.Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
