package ecs

import "github.com/milk9111/doodler/ecs/component"

// Query returns the live entities carrying kind, in storage order.
func Query[T any](w *World, kind component.ComponentKind[T]) []Entity {
	s := storeFor(w, kind, false)
	if s == nil {
		return nil
	}
	out := s.Entities()
	n := 0
	for _, e := range out {
		if IsAlive(w, e) {
			out[n] = e
			n++
		}
	}
	return out[:n]
}

// DestroyAll destroys every entity in ents and returns how many were alive.
// Passes collect handles first and apply removals here afterwards.
func DestroyAll(w *World, ents []Entity) int {
	n := 0
	for _, e := range ents {
		if DestroyEntity(w, e) {
			n++
		}
	}
	return n
}
