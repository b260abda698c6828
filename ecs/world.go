package ecs

import "github.com/milk9111/doodler/ecs/component"

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// World owns entities, their components, the system order and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	systems  []System
	events   EventQueue
	tick     uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return NoEntity
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
// It reports false when e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Clear destroys every entity and drops pending events. Systems are kept.
func (w *World) Clear() {
	if w == nil {
		return
	}
	for _, s := range w.stores {
		s.clear()
	}
	w.entities.reset()
	w.events.flush()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once in insertion order. Events emitted during the
// update stay queued until the caller drains them.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.tick++
	for _, s := range w.systems {
		s.Update(w)
	}
}

// Tick returns the number of updates run since the world was created.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Census counts live components per component name, skipping empty stores.
func Census(w *World) map[string]int {
	out := map[string]int{}
	if w == nil {
		return out
	}
	for id, s := range w.stores {
		if n := s.Len(); n > 0 {
			out[component.NameOf(id)] = n
		}
	}
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
