package system

import (
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
)

// ParticleSystem ages particles and removes the expired ones.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	var expired []ecs.Entity
	ecs.ForEach2(w, component.ParticleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Particle, t *component.Transform) {
		v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			v = &component.Velocity{}
		}
		p.Step(t, v)
		if p.Expired() {
			expired = append(expired, e)
		}
	})
	ecs.DestroyAll(w, expired)
}
