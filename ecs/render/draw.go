package render

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doodler/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	ink = colornames.Black

	doodlerGreen  = hex(0xa5c944)
	platformGreen = hex(0x57e048)
	movingBlue    = hex(0x6b9be3)
	woodBrown     = hex(0x7d5538)
	monsterPurple = hex(0xa335ee)
	holeCore      = hex(0x2a0a3b)
	holeSwirl     = colornames.Indigo
	domeGlass     = colornames.Skyblue
	alienGreen    = hex(0x39ff14)
	saucerGrey    = hex(0x555555)
	lightOff      = hex(0x222222)
	springUsed    = hex(0x888888)
)

var ufoLights = [3]color.RGBA{colornames.Red, colornames.Yellow, colornames.Blue}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// doodlerBody is the organic body outline in local space, centred on the
// player box.
var doodlerBody = func() []cp.Vector {
	pts := []cp.Vector{{X: -15, Y: 15}, {X: 15, Y: 15}}
	pts = append(pts, CubicPoints(cp.Vector{X: 15, Y: 15}, cp.Vector{X: 20, Y: 15}, cp.Vector{X: 20, Y: -15}, cp.Vector{X: 15, Y: -20}, 8)...)
	pts = append(pts, CubicPoints(cp.Vector{X: 15, Y: -20}, cp.Vector{X: 0, Y: -25}, cp.Vector{X: -20, Y: -15}, cp.Vector{X: -15, Y: 15}, 10)...)
	return pts
}()

// doodlerSnout is the tubular snout ending in a half circle.
var doodlerSnout = func() []cp.Vector {
	pts := []cp.Vector{{X: 15, Y: -10}, {X: 25, Y: -10}}
	pts = append(pts, ArcPoints(nil, cp.Vector{X: 25, Y: -4}, 6, -math.Pi/2, math.Pi/2, 6)...)
	return append(pts, cp.Vector{X: 15, Y: 2})
}()

func drawDoodler(p *Pen, d *component.Doodler, box component.AABB, frame int) {
	p.Save()
	defer p.Restore()

	cx, cy := box.Center()
	p.Translate(cx, cy)
	if d.FacingLeft {
		p.Scale(-1, 1)
	}

	p.RoughLine(-10, 15, -12, 25, ink, 2)
	p.RoughLine(-12, 25, -18, 25, ink, 2)
	p.RoughLine(10, 15, 12, 25, ink, 2)
	p.RoughLine(12, 25, 18, 25, ink, 2)
	p.RoughLine(0, 15, 0, 23, ink, 2)
	p.RoughLine(0, 23, 5, 23, ink, 2)

	p.FillPolygon(doodlerBody, doodlerGreen)
	p.polyline(doodlerBody, 2, ink, 1, true)

	p.FillPolygon(doodlerSnout, doodlerGreen)
	p.polyline(doodlerSnout, 2, ink, 1, false)

	p.FillCircle(5, -5, 5, colornames.White)
	p.StrokeEllipse(5, -5, 5, 5, 2, ink)
	p.FillCircle(7, -5, 2, ink)

	switch d.Flight {
	case component.FlightJetpack:
		p.RoughRect(-22, -10, 10, 25, ink, colornames.Gray)
		flame := 35 + p.rng.Float64()*10
		p.FillPolygon([]cp.Vector{{X: -20, Y: 15}, {X: -17, Y: flame}, {X: -14, Y: 15}}, colornames.Orange)
	case component.FlightPropeller:
		p.RoughArc(0, -20, 16, math.Pi, 2*math.Pi, colornames.Blue)
		p.RoughLine(-16, -20, 16, -20, colornames.Yellow, 0)
		p.RoughCircle(0, -36, 2, colornames.Red, colornames.Red)

		const blade = 25
		p.Save()
		p.Translate(0, -35)
		p.Rotate(float64(frame) / 3)
		p.RoughLine(-blade, 0, blade, 0, colornames.Red, 3)
		p.RoughLine(0, -blade/2, 0, blade/2, colornames.Red, 3)
		p.Restore()
	}
}

func drawPlatform(p *Pen, pl *component.Platform, box component.AABB) {
	x, y, w, h := box.X, box.Y, box.Width, box.Height
	if pl.Broken {
		p.RoughRect(x, y, w/2-2, h, ink, woodBrown)
		p.RoughRect(x+w/2+2, y+5, w/2-2, h, ink, woodBrown)
		return
	}

	fill := platformGreen
	switch pl.Kind {
	case component.PlatformMoving:
		fill = movingBlue
	case component.PlatformBreaking:
		fill = woodBrown
	case component.PlatformDisappearing:
		fill = colornames.White
	}
	p.RoughRoundedRect(x, y, w, h, 5, ink, fill)

	if pl.Kind == component.PlatformBreaking {
		p.RoughLine(x+10, y, x+20, y+10, ink, 0)
		p.RoughLine(x+20, y+10, x+30, y, ink, 0)
	}
}

func drawHazard(p *Pen, h *component.Hazard, box component.AABB, rotation float64) {
	switch h.Kind {
	case component.HazardMonster:
		drawMonster(p, box)
	case component.HazardBlackHole:
		drawBlackHole(p, box, rotation)
	case component.HazardUFO:
		drawUFO(p, h, box)
	}
}

func drawMonster(p *Pen, box component.AABB) {
	x, y, w := box.X, box.Y, box.Width
	p.RoughRect(x, y, w, box.Height, ink, monsterPurple)

	p.RoughCircle(x+w/2, y+15, 8, ink, colornames.White)
	p.RoughCircle(x+w/2, y+15, 3, ink, ink)
	p.RoughLine(x+10, y+30, x+30, y+30, ink, 0)

	for _, side := range []struct{ base, tip float64 }{{x, x - 8}, {x + w, x + w + 8}} {
		p.FillPolygon([]cp.Vector{{X: side.base, Y: y + 8}, {X: side.tip, Y: y - 4}, {X: side.base, Y: y + 16}}, monsterPurple)
		p.RoughLine(side.base, y+8, side.tip, y-4, ink, 0)
		p.RoughLine(side.tip, y-4, side.base, y+16, ink, 0)
	}
}

func drawBlackHole(p *Pen, box component.AABB, rotation float64) {
	p.Save()
	defer p.Restore()

	cx, cy := box.Center()
	p.Translate(cx, cy)
	p.Rotate(rotation)
	p.RoughCircle(0, 0, box.Width/2, ink, holeCore)
	for i := 0; i < 4; i++ {
		p.Rotate(math.Pi / 2)
		p.RoughLine(10, 0, box.Width/2, 0, holeSwirl, 0)
	}
}

func drawUFO(p *Pen, h *component.Hazard, box component.AABB) {
	cx, cy := box.Center()

	dome := ArcPoints(nil, cp.Vector{X: cx, Y: cy - 5}, 15, math.Pi, 2*math.Pi, 12)
	p.FillPolygon(dome, domeGlass)
	p.RoughCircle(cx, cy-5, 15, ink, nil)
	p.RoughCircle(cx, cy-10, 5, ink, alienGreen)

	p.FillEllipse(cx, cy+5, 30, 10, saucerGrey)
	p.StrokeEllipse(cx, cy+5, 30, 10, 2, ink)

	active := int(math.Floor(h.Lights)) % len(ufoLights)
	for i, c := range ufoLights {
		if i != active {
			c = lightOff
		}
		p.RoughCircle(cx-20+float64(i)*20, cy+5, 3, ink, c)
	}
}

func drawPickup(p *Pen, pk *component.Pickup, box component.AABB, frame int) {
	x, y := box.X, box.Y
	switch pk.Kind {
	case component.PickupTrampoline:
		p.RoughLine(x+5, y+15, x+5, y+5, ink, 2)
		p.RoughLine(x+25, y+15, x+25, y+5, ink, 2)
		top := colornames.Blue
		if pk.Spent {
			top = springUsed
		}
		p.RoughRect(x, y+5, box.Width, 5, ink, top)
		p.Line(x+5, y+5, x+25, y+10, 1, ink)
		p.Line(x+25, y+5, x+5, y+10, 1, ink)

	case component.PickupJetpack:
		if pk.Spent {
			return
		}
		p.RoughRect(x, y, 8, 25, ink, colornames.Gray)
		p.RoughRect(x+12, y, 8, 25, ink, colornames.Gray)
		p.RoughLine(x+4, y+5, x+16, y+5, ink, 2)
		p.RoughLine(x+4, y+20, x+16, y+20, ink, 2)
		p.FillPolygon([]cp.Vector{{X: x, Y: y + 25}, {X: x + 4, Y: y + 35}, {X: x + 8, Y: y + 25}}, colornames.Orange)
		p.FillPolygon([]cp.Vector{{X: x + 12, Y: y + 25}, {X: x + 16, Y: y + 35}, {X: x + 20, Y: y + 25}}, colornames.Orange)

	case component.PickupPropellerHat:
		if pk.Spent {
			return
		}
		p.RoughArc(x+15, y+15, 15, math.Pi, 2*math.Pi, colornames.Blue)
		p.RoughLine(x, y+15, x+30, y+15, colornames.Yellow, 0)
		p.RoughCircle(x+15, y, 2, colornames.Red, colornames.Red)
		p.RoughLine(x+15, y, x+15, y-8, ink, 0)

		blade := math.Abs(math.Sin(float64(frame)/6)) * 22
		p.RoughLine(x+15-blade, y-8, x+15+blade, y-8, colornames.Red, 0)
		p.RoughLine(x+15, y-8-blade/4, x+15, y-8+blade/4, colornames.Red, 0)
	}
}

func drawProjectile(p *Pen, box component.AABB) {
	cx, cy := box.Center()
	p.RoughCircle(cx, cy, box.Width/2, ink, colornames.Red)
}

func drawParticle(p *Pen, pt *component.Particle, pos cp.Vector) {
	p.Save()
	defer p.Restore()

	p.SetAlpha(pt.Alpha())
	p.FillRect(pos.X, pos.Y, pt.Size, pt.Size, pt.Color)
}
