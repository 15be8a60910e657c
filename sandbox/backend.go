package sandbox

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/physics"
	"github.com/milk9111/sandpit/physics/box2d"
	"github.com/milk9111/sandpit/physics/chipmunk"
)

var ErrUnknownBackend = errors.New("sandbox: unknown physics backend")

// PhysicsFactory builds an empty physics world.
type PhysicsFactory func(settings physics.Settings) physics.World

// Backend resolves a backend name to its factory.
func Backend(name string) (PhysicsFactory, error) {
	switch name {
	case config.BackendChipmunk:
		return func(s physics.Settings) physics.World { return chipmunk.New(s) }, nil
	case config.BackendBox2D:
		return func(s physics.Settings) physics.World { return box2d.New(s) }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
}

func physicsSettings(pc config.PhysicsConfig) physics.Settings {
	return physics.Settings{
		Gravity:    mgl64.Vec2{pc.GravityX, pc.GravityY},
		Iterations: pc.Iterations,
	}
}
