package system

import (
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
)

// ProjectileSystem moves projectiles and purges the ones past the ceiling.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	var dead []ecs.Entity
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
		v, okV := ecs.Get(w, e, component.VelocityComponent.Kind())
		if okT && okV {
			p.Step(t, v)
		}
		if p.Dead {
			dead = append(dead, e)
		}
	})
	ecs.DestroyAll(w, dead)
}
