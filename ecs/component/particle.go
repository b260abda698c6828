package component

import "image/color"

// Particle is a short-lived shrinking square spawned in bursts.
type Particle struct {
	Color   color.RGBA
	Life    int
	MaxLife int
	Size    float64
	Shrink  float64
	Gravity float64
}

var ParticleComponent = NewComponent[Particle]("particle")

func (p *Particle) Step(t *Transform, v *Velocity) {
	t.Integrate(v)
	v.Y += p.Gravity
	p.Life--
	p.Size *= p.Shrink
}

func (p *Particle) Expired() bool {
	return p.Life <= 0
}

// Alpha is the remaining life fraction in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 || p.Life <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}
