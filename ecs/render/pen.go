package render

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/doodler/common"
)

const defaultStrokeWidth = 2

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 white source for filled triangles. The one-pixel border
// of the backing image keeps edge sampling clean.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Pen draws hand-sketched shapes onto an image. Coordinates pass through a
// save/restore transform stack, so entity drawing code works in local space.
type Pen struct {
	dst   *ebiten.Image
	rng   *rand.Rand
	geo   ebiten.GeoM
	alpha float64
	stack []penState
}

type penState struct {
	geo   ebiten.GeoM
	alpha float64
}

func NewPen(dst *ebiten.Image, rng *rand.Rand) *Pen {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Pen{dst: dst, rng: rng, alpha: 1}
}

// Reset points the pen at a new target and clears the transform stack.
func (p *Pen) Reset(dst *ebiten.Image) {
	p.dst = dst
	p.geo.Reset()
	p.alpha = 1
	p.stack = p.stack[:0]
}

func (p *Pen) Save() {
	p.stack = append(p.stack, penState{geo: p.geo, alpha: p.alpha})
}

func (p *Pen) Restore() {
	if len(p.stack) == 0 {
		return
	}
	s := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.geo = s.geo
	p.alpha = s.alpha
}

// Translate, Rotate and Scale apply in local space, like a canvas context.
func (p *Pen) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(p.geo)
	p.geo = m
}

func (p *Pen) Rotate(theta float64) {
	var m ebiten.GeoM
	m.Rotate(theta)
	m.Concat(p.geo)
	p.geo = m
}

func (p *Pen) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	m.Concat(p.geo)
	p.geo = m
}

// SetAlpha multiplies every colour drawn until the next Restore.
func (p *Pen) SetAlpha(a float64) {
	p.alpha = common.Clamp(a, 0, 1)
}

func (p *Pen) apply(v cp.Vector) (float32, float32) {
	x, y := p.geo.Apply(v.X, v.Y)
	return float32(x), float32(y)
}

func (p *Pen) fade(c color.Color, extra float64) color.Color {
	a := p.alpha * extra
	if a >= 1 {
		return c
	}
	r, g, b, ca := c.RGBA()
	return color.NRGBA64{
		R: uint16(unpremultiply(r, ca)),
		G: uint16(unpremultiply(g, ca)),
		B: uint16(unpremultiply(b, ca)),
		A: uint16(float64(ca) * a),
	}
}

func unpremultiply(v, a uint32) uint32 {
	if a == 0 {
		return 0
	}
	return v * 0xffff / a
}

// Line draws a straight segment.
func (p *Pen) Line(x1, y1, x2, y2, width float64, c color.Color) {
	p.polyline([]cp.Vector{{X: x1, Y: y1}, {X: x2, Y: y2}}, width, c, 1, false)
}

func (p *Pen) polyline(pts []cp.Vector, width float64, c color.Color, alpha float64, closed bool) {
	if len(pts) < 2 {
		return
	}
	clr := p.fade(c, alpha)
	w := float32(width * p.lineScale())
	for i := 0; i+1 < len(pts); i++ {
		x0, y0 := p.apply(pts[i])
		x1, y1 := p.apply(pts[i+1])
		vector.StrokeLine(p.dst, x0, y0, x1, y1, w, clr, true)
	}
	if closed {
		x0, y0 := p.apply(pts[len(pts)-1])
		x1, y1 := p.apply(pts[0])
		vector.StrokeLine(p.dst, x0, y0, x1, y1, w, clr, true)
	}
}

// lineScale approximates the current transform's uniform scale.
func (p *Pen) lineScale() float64 {
	a := p.geo.Element(0, 0)
	b := p.geo.Element(1, 0)
	return math.Hypot(a, b)
}

// FillPolygon fills a convex polygon.
func (p *Pen) FillPolygon(pts []cp.Vector, c color.Color) {
	if len(pts) < 3 {
		return
	}
	r, g, b, a := p.fade(c, 1).RGBA()
	var cr, cg, cb, ca float32
	if a > 0 {
		cr = float32(r) / float32(a)
		cg = float32(g) / float32(a)
		cb = float32(b) / float32(a)
		ca = float32(a) / 0xffff
	}

	vs := make([]ebiten.Vertex, len(pts))
	for i, pt := range pts {
		x, y := p.apply(pt)
		vs[i] = ebiten.Vertex{DstX: x, DstY: y, SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca}
	}
	is := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i+1 < len(pts); i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	p.dst.DrawTriangles(vs, is, white(), op)
}

func (p *Pen) FillRect(x, y, w, h float64, c color.Color) {
	p.FillPolygon([]cp.Vector{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, c)
}

func (p *Pen) FillEllipse(cx, cy, rx, ry float64, c color.Color) {
	p.FillPolygon(EllipsePoints(cp.Vector{X: cx, Y: cy}, rx, ry, 24), c)
}

func (p *Pen) StrokeEllipse(cx, cy, rx, ry, width float64, c color.Color) {
	p.polyline(EllipsePoints(cp.Vector{X: cx, Y: cy}, rx, ry, 24), width, c, 1, true)
}

func (p *Pen) FillCircle(cx, cy, r float64, c color.Color) {
	p.FillEllipse(cx, cy, r, r, c)
}

// RoughLine draws a jittered stroke and then a fainter straight pass over it.
func (p *Pen) RoughLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	if width <= 0 {
		width = defaultStrokeWidth
	}
	a, b := cp.Vector{X: x1, Y: y1}, cp.Vector{X: x2, Y: y2}
	p.polyline(RoughLinePoints(p.rng, a, b), width, c, 1, false)
	p.polyline([]cp.Vector{a, b}, width, c, 0.5, false)
}

// RoughRect outlines a rectangle with rough lines. A nil fill leaves it hollow.
func (p *Pen) RoughRect(x, y, w, h float64, stroke, fill color.Color) {
	if fill != nil {
		p.FillPolygon(RoughQuad(p.rng, x, y, w, h), fill)
	}
	p.RoughLine(x, y, x+w, y, stroke, 0)
	p.RoughLine(x+w, y, x+w, y+h, stroke, 0)
	p.RoughLine(x+w, y+h, x, y+h, stroke, 0)
	p.RoughLine(x, y+h, x, y, stroke, 0)
}

func (p *Pen) RoughCircle(cx, cy, r float64, stroke, fill color.Color) {
	c := cp.Vector{X: cx, Y: cy}
	if fill != nil {
		p.FillPolygon(EllipsePoints(c, r, r, 24), fill)
	}
	pts := ArcPoints(p.rng, c, r, 0, 2*math.Pi, 16)
	p.polyline(pts[:len(pts)-1], defaultStrokeWidth, stroke, 1, true)
}

// RoughArc strokes an arc twice, the second pass at half opacity.
func (p *Pen) RoughArc(cx, cy, r, start, end float64, c color.Color) {
	center := cp.Vector{X: cx, Y: cy}
	p.polyline(ArcPoints(p.rng, center, r, start, end, 8), defaultStrokeWidth, c, 1, false)
	p.polyline(ArcPoints(p.rng, center, r, start, end, 8), defaultStrokeWidth, c, 0.5, false)
}

func (p *Pen) RoughRoundedRect(x, y, w, h, radius float64, stroke, fill color.Color) {
	pts := RoundedRectPoints(p.rng, x, y, w, h, radius)
	if fill != nil {
		p.FillPolygon(pts, fill)
	}
	p.polyline(pts, defaultStrokeWidth, stroke, 1, true)
}
