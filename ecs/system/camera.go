package system

import (
	"log"
	"math"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
)

// CameraSystem keeps the player at or below the viewport midline by moving
// the whole world down. The shift is added to the score, entities that leave
// the bottom are culled and the generator refills the top.
type CameraSystem struct {
	viewport  Viewport
	generator *Generator
}

func NewCameraSystem(viewport Viewport, generator *Generator) *CameraSystem {
	return &CameraSystem{viewport: viewport, generator: generator}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	pe, _, t, _, _, ok := player(w)
	if !ok || Over(w) {
		return
	}

	mid := cs.viewport.Height / 2
	if t.Y >= mid {
		return
	}
	diff := mid - t.Y

	addScore(w, int(math.Floor(diff)))

	var culled []ecs.Entity
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, tr *component.Transform) {
		tr.Y += diff
		if e != pe && tr.Y >= cs.viewport.Height {
			culled = append(culled, e)
		}
	})
	ecs.DestroyAll(w, culled)

	if cs.generator == nil {
		return
	}
	cs.generator.Shift(diff)
	if _, err := cs.generator.Refill(w, Score(w)); err != nil {
		log.Printf("camera: refill: %v", err)
	}
}
