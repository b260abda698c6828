package render

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// wobble is the maximum jitter, in pixels, applied to hand-drawn strokes.
const wobble = 1.0

// roughSegmentLength is the length of one jittered segment in a rough line.
const roughSegmentLength = 10

// Jitter returns an offset in [-wobble, wobble).
func Jitter(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 2 * wobble
}

// RoughLinePoints splits a line into roughly 10 px segments and displaces
// every interior vertex by the same jitter on both axes. The first and last
// points are exact.
func RoughLinePoints(rng *rand.Rand, a, b cp.Vector) []cp.Vector {
	segments := max(1, int(math.Floor(a.Distance(b)/roughSegmentLength)))
	pts := make([]cp.Vector, 0, segments+2)
	pts = append(pts, a)
	for i := 0; i < segments; i++ {
		target := a.Lerp(b, float64(i+1)/float64(segments))
		off := Jitter(rng)
		pts = append(pts, cp.Vector{X: target.X + off, Y: target.Y + off})
	}
	return append(pts, b)
}

// ArcPoints samples an arc from start to end (radians) with a jittered
// radius per vertex. segments+1 points are returned.
func ArcPoints(rng *rand.Rand, c cp.Vector, radius, start, end float64, segments int) []cp.Vector {
	segments = max(1, segments)
	pts := make([]cp.Vector, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := start + (end-start)*float64(i)/float64(segments)
		r := radius
		if rng != nil {
			r += Jitter(rng)
		}
		pts = append(pts, c.Add(cp.ForAngle(angle).Mult(r)))
	}
	return pts
}

// EllipsePoints samples a closed ellipse without jitter.
func EllipsePoints(c cp.Vector, rx, ry float64, segments int) []cp.Vector {
	segments = max(3, segments)
	pts := make([]cp.Vector, 0, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, cp.Vector{X: c.X + math.Cos(angle)*rx, Y: c.Y + math.Sin(angle)*ry})
	}
	return pts
}

// RoughQuad is a rectangle with each corner jittered independently, used for
// imperfect fills.
func RoughQuad(rng *rand.Rand, x, y, w, h float64) []cp.Vector {
	return []cp.Vector{
		{X: x + Jitter(rng), Y: y + Jitter(rng)},
		{X: x + w + Jitter(rng), Y: y + Jitter(rng)},
		{X: x + w + Jitter(rng), Y: y + h + Jitter(rng)},
		{X: x + Jitter(rng), Y: y + h + Jitter(rng)},
	}
}

// RoundedRectPoints outlines a rounded rectangle, jittering the straight
// edges slightly. Corners use quarter arcs.
func RoundedRectPoints(rng *rand.Rand, x, y, w, h, radius float64) []cp.Vector {
	radius = math.Min(radius, math.Min(w, h)/2)
	const cornerSegments = 4
	var pts []cp.Vector
	corner := func(cx, cy, start float64) {
		pts = append(pts, ArcPoints(nil, cp.Vector{X: cx, Y: cy}, radius, start, start+math.Pi/2, cornerSegments)...)
	}
	corner(x+w-radius, y+radius, -math.Pi/2)
	corner(x+w-radius, y+h-radius, 0)
	corner(x+radius, y+h-radius, math.Pi/2)
	corner(x+radius, y+radius, math.Pi)
	for i := range pts {
		pts[i].X += Jitter(rng) / 2
		pts[i].Y += Jitter(rng) / 2
	}
	return pts
}

// CubicPoints samples a cubic Bezier from p0 to p3, excluding p0.
func CubicPoints(p0, p1, p2, p3 cp.Vector, segments int) []cp.Vector {
	segments = max(1, segments)
	pts := make([]cp.Vector, 0, segments)
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		u := 1 - t
		pts = append(pts, cp.Vector{
			X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
			Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
		})
	}
	return pts
}
