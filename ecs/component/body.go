package component

// Body is the fixed collision size of an entity.
type Body struct {
	Width  float64
	Height float64
}

var BodyComponent = NewComponent[Body]("body")

// AABB is an axis-aligned box with a top-left origin.
type AABB struct {
	X, Y          float64
	Width, Height float64
}

// Bounds returns the world-space box of an entity.
func Bounds(t *Transform, b *Body) AABB {
	if t == nil || b == nil {
		return AABB{}
	}
	return AABB{X: t.X, Y: t.Y, Width: b.Width, Height: b.Height}
}

// Overlaps is the strict four-inequality rectangle test. Touching edges do
// not overlap.
func (r AABB) Overlaps(other AABB) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Inset shrinks the box by the given margins.
func (r AABB) Inset(left, right, top, bottom float64) AABB {
	return AABB{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  r.Width - left - right,
		Height: r.Height - top - bottom,
	}
}

func (r AABB) Right() float64  { return r.X + r.Width }
func (r AABB) Bottom() float64 { return r.Y + r.Height }

func (r AABB) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
