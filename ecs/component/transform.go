package component

import "github.com/jakecoffman/cp"

// Transform is the top-left world position of an entity. Rotation is only
// used when drawing.
type Transform struct {
	cp.Vector
	Rotation float64
}

var TransformComponent = NewComponent[Transform]("transform")

// Velocity is the per-tick displacement of an entity.
type Velocity struct {
	cp.Vector
}

var VelocityComponent = NewComponent[Velocity]("velocity")

// NewTransform returns a transform positioned at (x, y).
func NewTransform(x, y float64) *Transform {
	return &Transform{Vector: cp.Vector{X: x, Y: y}}
}

// Integrate advances t by one tick of v.
func (t *Transform) Integrate(v *Velocity) {
	if t == nil || v == nil {
		return
	}
	t.Vector = t.Vector.Add(v.Vector)
}

// bounceHorizontal reverses v.X when the body touches either viewport edge.
func bounceHorizontal(t *Transform, v *Velocity, b *Body, viewportWidth float64) {
	t.X += v.X
	if t.X <= 0 || t.X+b.Width >= viewportWidth {
		v.X = -v.X
	}
}
