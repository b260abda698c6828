package system

import (
	"log"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/sound"
)

// DoodlerSystem steps the player and fires the propeller's automatic shots.
type DoodlerSystem struct {
	viewport Viewport
	factory  *entity.Factory
}

func NewDoodlerSystem(viewport Viewport, factory *entity.Factory) *DoodlerSystem {
	return &DoodlerSystem{viewport: viewport, factory: factory}
}

func (s *DoodlerSystem) Update(w *ecs.World) {
	_, d, t, v, b, ok := player(w)
	if !ok {
		return
	}

	d.Step(t, v, b, s.viewport.Width)

	if d.TickAutoFire() {
		FireProjectile(w, s.factory)
	}
}

// FireProjectile launches a projectile from the top centre of the player and
// plays the shoot cue.
func FireProjectile(w *ecs.World, factory *entity.Factory) bool {
	_, _, t, _, b, ok := player(w)
	if !ok || factory == nil {
		return false
	}
	if _, err := factory.NewProjectile(w, component.Bounds(t, b)); err != nil {
		log.Printf("doodler: fire projectile: %v", err)
		return false
	}
	pushCue(w, sound.CueShoot)
	return true
}
