package component

import "fmt"

type HazardKind int

const (
	HazardMonster HazardKind = iota
	HazardBlackHole
	HazardUFO
)

func (k HazardKind) String() string {
	switch k {
	case HazardMonster:
		return "monster"
	case HazardBlackHole:
		return "black_hole"
	case HazardUFO:
		return "ufo"
	default:
		return fmt.Sprintf("HazardKind(%d)", int(k))
	}
}

// Hazard marks an entity as lethal on deep overlap.
type Hazard struct {
	Kind HazardKind

	// KillScore is awarded when a projectile or a stomp destroys the hazard.
	KillScore int

	// Spin is the per-tick rotation of a black hole.
	Spin float64

	// Lights is the UFO light phase; LightSpeed is its per-tick advance.
	Lights     float64
	LightSpeed float64
}

var HazardComponent = NewComponent[Hazard]("hazard")

// Destructible reports whether projectiles can destroy the hazard.
func (h *Hazard) Destructible() bool {
	return h.Kind != HazardBlackHole
}

// Stompable reports whether landing on the hazard destroys it.
func (h *Hazard) Stompable() bool {
	return h.Kind == HazardMonster
}

func (h *Hazard) Step(t *Transform, v *Velocity, b *Body, viewportWidth float64) {
	switch h.Kind {
	case HazardMonster:
		bounceHorizontal(t, v, b, viewportWidth)
	case HazardUFO:
		bounceHorizontal(t, v, b, viewportWidth)
		h.Lights += h.LightSpeed
	case HazardBlackHole:
		t.Rotation += h.Spin
	}
}
