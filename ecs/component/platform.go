package component

import "fmt"

type PlatformKind int

const (
	PlatformStatic PlatformKind = iota
	PlatformMoving
	PlatformBreaking
	PlatformDisappearing
)

var platformKindNames = map[PlatformKind]string{
	PlatformStatic:       "static",
	PlatformMoving:       "moving",
	PlatformBreaking:     "breaking",
	PlatformDisappearing: "disappearing",
}

func (k PlatformKind) String() string {
	if s, ok := platformKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("PlatformKind(%d)", int(k))
}

// ParsePlatformKind maps a prefab name to a kind.
func ParsePlatformKind(s string) (PlatformKind, error) {
	for k, name := range platformKindNames {
		if name == s {
			return k, nil
		}
	}
	return PlatformStatic, fmt.Errorf("component: unknown platform kind %q", s)
}

// Platform is a landable surface. Broken platforms are no longer solid and
// fall under their own gravity until culled.
type Platform struct {
	Kind   PlatformKind
	Broken bool

	MoveSpeed     float64
	BreakVelocity float64
	FallGravity   float64
}

var PlatformComponent = NewComponent[Platform]("platform")

func (p *Platform) Solid() bool {
	return !p.Broken
}

// Break switches the platform to its falling state.
func (p *Platform) Break(v *Velocity) {
	p.Broken = true
	v.Y = p.BreakVelocity
}

func (p *Platform) Step(t *Transform, v *Velocity, b *Body, viewportWidth float64) {
	if p.Kind == PlatformMoving {
		bounceHorizontal(t, v, b, viewportWidth)
	}
	if p.Broken {
		t.Y += v.Y
		v.Y += p.FallGravity
	}
}
