package component

// Projectile flies straight up until it leaves the viewport or hits a hazard.
type Projectile struct {
	Dead bool

	// Ceiling is the y below which the projectile is considered off screen.
	Ceiling float64
}

var ProjectileComponent = NewComponent[Projectile]("projectile")

func (p *Projectile) Step(t *Transform, v *Velocity) {
	t.Integrate(v)
	if t.Y < p.Ceiling {
		p.Dead = true
	}
}
