package system

import (
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
)

// KinematicsSystem moves platforms and hazards.
type KinematicsSystem struct {
	viewport Viewport
}

func NewKinematicsSystem(viewport Viewport) *KinematicsSystem {
	return &KinematicsSystem{viewport: viewport}
}

func (s *KinematicsSystem) Update(w *ecs.World) {
	width := s.viewport.Width

	ecs.ForEach(w, component.PlatformComponent.Kind(), func(e ecs.Entity, p *component.Platform) {
		t, v, b, ok := kinematic(w, e)
		if !ok {
			return
		}
		p.Step(t, v, b, width)
	})

	ecs.ForEach(w, component.HazardComponent.Kind(), func(e ecs.Entity, h *component.Hazard) {
		t, v, b, ok := kinematic(w, e)
		if !ok {
			return
		}
		h.Step(t, v, b, width)
	})
}

// kinematic fetches the shared movement components. Entities without a
// velocity get a zero one so static hazards step like the rest.
func kinematic(w *ecs.World, e ecs.Entity) (*component.Transform, *component.Velocity, *component.Body, bool) {
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	b, okB := ecs.Get(w, e, component.BodyComponent.Kind())
	if !okT || !okB {
		return nil, nil, nil, false
	}
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		v = &component.Velocity{}
	}
	return t, v, b, true
}
