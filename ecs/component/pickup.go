package component

import "fmt"

type PickupKind int

const (
	PickupTrampoline PickupKind = iota
	PickupJetpack
	PickupPropellerHat
)

func (k PickupKind) String() string {
	switch k {
	case PickupTrampoline:
		return "trampoline"
	case PickupJetpack:
		return "jetpack"
	case PickupPropellerHat:
		return "propeller_hat"
	default:
		return fmt.Sprintf("PickupKind(%d)", int(k))
	}
}

// Pickup is a one-shot collectible. Spent gates both the effect and any
// further collision; spent pickups stay in the world until culled.
type Pickup struct {
	Kind  PickupKind
	Spent bool

	// Boost is the vertical velocity a trampoline launches the player with.
	Boost float64
}

var PickupComponent = NewComponent[Pickup]("pickup")

// Take marks the pickup spent and reports whether it was still available.
func (p *Pickup) Take() bool {
	if p.Spent {
		return false
	}
	p.Spent = true
	return true
}
