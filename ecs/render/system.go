package render

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/prefabs"
	"golang.org/x/image/font/basicfont"
)

// HUD is the text drawn over the play area.
type HUD struct {
	Score     int
	HighScore int
	// User is the signed-in display name, empty when signed out.
	User string
}

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// RenderSystem draws the world in the hand-sketched style: a paper background
// with a rough grid, entities by render layer, then the HUD.
type RenderSystem struct {
	spec       *prefabs.WorldSpec
	pen        *Pen
	background *ebiten.Image
	frame      int
}

func NewRenderSystem(spec *prefabs.WorldSpec, rng *rand.Rand) *RenderSystem {
	return &RenderSystem{spec: spec, pen: NewPen(nil, rng)}
}

// SetWorld swaps the world spec and drops the cached background.
func (r *RenderSystem) SetWorld(spec *prefabs.WorldSpec) {
	r.spec = spec
	if r.background != nil {
		r.background.Deallocate()
		r.background = nil
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image, hud HUD) {
	if r == nil || r.spec == nil {
		return
	}
	r.frame++

	screen.DrawImage(r.paper(), nil)

	r.pen.Reset(screen)
	for _, e := range sortedByLayer(w) {
		r.drawEntity(w, e)
	}

	drawText(screen, fmt.Sprintf("Score: %d", hud.Score), 10, 10)
	if hud.HighScore > 0 {
		drawText(screen, fmt.Sprintf("Best: %d", hud.HighScore), 10, 26)
	}
	if hud.User != "" {
		label := hud.User
		width, _ := text.Measure(label, hudFace, 0)
		drawText(screen, label, r.spec.Width-10-width, 10)
	}
}

func drawText(dst *ebiten.Image, s string, x, y float64) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(ink)
	text.Draw(dst, s, hudFace, op)
}

// paper renders the background once; the grid jitter is part of the look and
// stays stable between frames.
func (r *RenderSystem) paper() *ebiten.Image {
	if r.background != nil {
		return r.background
	}
	width, height := int(r.spec.Width), int(r.spec.Height)
	img := ebiten.NewImage(width, height)
	img.Fill(colorOr(r.spec.Background, color.White))

	grid := r.spec.GridSize
	if grid > 0 {
		r.pen.Reset(img)
		c := colorOr(r.spec.GridColor, ink)
		for x := 0.0; x < r.spec.Width; x += grid {
			r.pen.RoughLine(x, 0, x, r.spec.Height, c, 1)
		}
		for y := 0.0; y < r.spec.Height; y += grid {
			r.pen.RoughLine(0, y, r.spec.Width, y, c, 1)
		}
	}
	r.background = img
	return img
}

func colorOr(c prefabs.YAMLColor, fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func sortedByLayer(w *ecs.World) []ecs.Entity {
	ents := ecs.Query(w, component.RenderLayerComponent.Kind())
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(ents, func(i, j int) bool {
		li, lj := layer(ents[i]), layer(ents[j])
		if li != lj {
			return li < lj
		}
		return uint64(ents[i]) < uint64(ents[j])
	})
	return ents
}

func (r *RenderSystem) drawEntity(w *ecs.World, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if pt, ok := ecs.Get(w, e, component.ParticleComponent.Kind()); ok {
		drawParticle(r.pen, pt, t.Vector)
		return
	}

	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return
	}
	box := component.Bounds(t, b)

	if d, ok := ecs.Get(w, e, component.DoodlerComponent.Kind()); ok {
		drawDoodler(r.pen, d, box, r.frame)
		return
	}
	if pl, ok := ecs.Get(w, e, component.PlatformComponent.Kind()); ok {
		drawPlatform(r.pen, pl, box)
		return
	}
	if h, ok := ecs.Get(w, e, component.HazardComponent.Kind()); ok {
		drawHazard(r.pen, h, box, t.Rotation)
		return
	}
	if pk, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok {
		drawPickup(r.pen, pk, box, r.frame)
		return
	}
	if ecs.Has(w, e, component.ProjectileComponent.Kind()) {
		drawProjectile(r.pen, box)
	}
}

// Dim washes the screen with a translucent layer behind overlays.
func Dim(screen *ebiten.Image) {
	b := screen.Bounds()
	pen := NewPen(screen, nil)
	pen.FillRect(0, 0, float64(b.Dx()), float64(b.Dy()), color.NRGBA{A: 0x80})
}
