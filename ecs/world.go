package ecs

import (
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/physics"
)

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store

	physicsWorld physics.World
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw physics.World) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() physics.World {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity drops the entity and every component attached to it.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in creation-slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// EntityCount is the number of live entities.
func EntityCount(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

func storeFor[T any](w *World, h component.ComponentHandle[T], create bool) *sparseSet[T] {
	if w == nil || !h.Valid() {
		return nil
	}
	if s, ok := w.stores[h.ID()]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s := newSparseSet[T]()
	w.stores[h.ID()] = s
	return s
}

// Add attaches value to e, replacing any existing component of the same handle.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value *T) error {
	if !h.Valid() {
		return component.ErrInvalidHandle
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, h, true).set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, h, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	_, ok := Get(w, e, h)
	return ok
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, h, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}
