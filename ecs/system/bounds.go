package system

import (
	"github.com/milk9111/doodler/ecs"
)

// BoundsSystem ends the round when the player falls below the viewport.
type BoundsSystem struct {
	viewport Viewport
}

func NewBoundsSystem(viewport Viewport) *BoundsSystem {
	return &BoundsSystem{viewport: viewport}
}

func (s *BoundsSystem) Update(w *ecs.World) {
	_, _, t, _, _, ok := player(w)
	if !ok {
		return
	}
	if t.Y > s.viewport.Height {
		EndRound(w, CauseFell)
	}
}
