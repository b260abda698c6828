package system

import (
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/prefabs"
)

// Viewport is the fixed logical play area.
type Viewport struct {
	Width  float64
	Height float64
}

func ViewportFromSpec(spec *prefabs.WorldSpec) Viewport {
	if spec == nil {
		return Viewport{Width: 400, Height: 600}
	}
	return Viewport{Width: spec.Width, Height: spec.Height}
}

// player returns the doodler entity with the components every system needs.
func player(w *ecs.World) (ecs.Entity, *component.Doodler, *component.Transform, *component.Velocity, *component.Body, bool) {
	e, ok := ecs.First(w, component.DoodlerComponent.Kind())
	if !ok {
		return ecs.NoEntity, nil, nil, nil, nil, false
	}
	d, _ := ecs.Get(w, e, component.DoodlerComponent.Kind())
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	v, okV := ecs.Get(w, e, component.VelocityComponent.Kind())
	b, okB := ecs.Get(w, e, component.BodyComponent.Kind())
	if !okT || !okV || !okB {
		return ecs.NoEntity, nil, nil, nil, nil, false
	}
	return e, d, t, v, b, true
}

func progress(w *ecs.World) *component.Progress {
	e, ok := ecs.First(w, component.ProgressComponent.Kind())
	if !ok {
		return nil
	}
	p, _ := ecs.Get(w, e, component.ProgressComponent.Kind())
	return p
}

// Score returns the current round score, zero when no round exists.
func Score(w *ecs.World) int {
	if p := progress(w); p != nil {
		return p.Score
	}
	return 0
}

// EndRound latches game over and pushes the event once per round.
func EndRound(w *ecs.World, cause string) bool {
	p := progress(w)
	if p == nil || !p.End(cause) {
		return false
	}
	ecs.Emit(w, EventGameOver, GameOver{Cause: cause, Score: p.Score})
	return true
}

// Over reports whether the current round has ended.
func Over(w *ecs.World) bool {
	p := progress(w)
	return p != nil && p.Over
}
