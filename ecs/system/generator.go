package system

import (
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/milk9111/doodler/common"
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/prefabs"
)

type platformRule struct {
	kind   component.PlatformKind
	chance prefabs.ChanceSpec
}

// Generator fills the world above the camera with platforms, hazards and
// pickups. The cursor is the y of the most recently placed platform row, in
// the current camera frame.
type Generator struct {
	viewport Viewport
	spec     *prefabs.GeneratorSpec
	factory  *entity.Factory
	rng      *rand.Rand
	curve    DifficultyCurve

	rules  []platformRule
	forced map[component.PlatformKind]bool
	cursor float64
}

func NewGenerator(viewport Viewport, spec *prefabs.GeneratorSpec, factory *entity.Factory, curve DifficultyCurve) (*Generator, error) {
	if spec == nil {
		return nil, fmt.Errorf("generator: spec is nil")
	}
	if factory == nil {
		return nil, fmt.Errorf("generator: factory is nil")
	}
	if curve == nil {
		curve = LinearDifficulty{SaturateAt: spec.Difficulty.SaturateAt}
	}

	g := &Generator{
		viewport: viewport,
		spec:     spec,
		factory:  factory,
		rng:      factory.RNG,
		curve:    curve,
		forced:   make(map[component.PlatformKind]bool),
	}
	for _, r := range spec.PlatformRules {
		kind, err := component.ParsePlatformKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("generator: platform rule: %w", err)
		}
		g.rules = append(g.rules, platformRule{kind: kind, chance: r.Chance})
	}
	for _, name := range spec.Buddy.ForceFor {
		kind, err := component.ParsePlatformKind(name)
		if err != nil {
			return nil, fmt.Errorf("generator: buddy: %w", err)
		}
		g.forced[kind] = true
	}
	for _, r := range spec.SpawnRules {
		if r.Anchor != "platform" && r.Anchor != "random" {
			return nil, fmt.Errorf("generator: spawn rule %s: unknown anchor %q", r.Prefab, r.Anchor)
		}
	}
	return g, nil
}

func (g *Generator) Cursor() float64 {
	return g.cursor
}

// Difficulty returns the factor used for the given score.
func (g *Generator) Difficulty(score int) float64 {
	return g.curve.Factor(score)
}

// SetCurve swaps the difficulty curve, e.g. after the script was edited.
func (g *Generator) SetCurve(curve DifficultyCurve) {
	if curve != nil {
		g.curve = curve
	}
}

// GenerateInitialLevel resets the cursor to the bottom of the viewport, places
// the starting platform under the player and fills the screen.
func (g *Generator) GenerateInitialLevel(w *ecs.World, score int) error {
	g.cursor = g.viewport.Height
	x := g.viewport.Width/2 - g.spec.PlatformWidth/2
	if _, err := g.factory.NewPlatform(w, x, g.viewport.Height-g.spec.FirstOffset, component.PlatformStatic); err != nil {
		return fmt.Errorf("generator: initial platform: %w", err)
	}
	for g.cursor > 0 {
		if err := g.GenerateSingleLevel(w, score); err != nil {
			return err
		}
	}
	return nil
}

// GenerateSingleLevel advances the cursor by one gap and populates the new row.
func (g *Generator) GenerateSingleLevel(w *ecs.World, score int) error {
	g.cursor -= common.Lerp(g.spec.GapMin, g.spec.GapMax, g.rng.Float64())

	x := common.Lerp(0, g.viewport.Width-g.spec.PlatformWidth, g.rng.Float64())
	factor := g.curve.Factor(score)
	kind := g.pickKind(factor)

	if _, err := g.factory.NewPlatform(w, x, g.cursor, kind); err != nil {
		return fmt.Errorf("generator: platform: %w", err)
	}

	if g.forced[kind] || g.rng.Float64() < g.spec.Buddy.Chance {
		bx := math.Mod(x+g.viewport.Width/2, g.viewport.Width-g.spec.PlatformWidth)
		by := g.cursor + (g.rng.Float64()*2-1)*g.spec.Buddy.Jitter
		if _, err := g.factory.NewPlatform(w, bx, by, component.PlatformStatic); err != nil {
			return fmt.Errorf("generator: buddy platform: %w", err)
		}
	}

	g.spawnExtras(w, x, factor)
	return nil
}

// pickKind evaluates the platform rules in priority order; the first rule
// whose independent draw succeeds decides the kind.
func (g *Generator) pickKind(factor float64) component.PlatformKind {
	for _, r := range g.rules {
		if g.rng.Float64() < r.chance.At(factor) {
			return r.kind
		}
	}
	return component.PlatformStatic
}

// spawnExtras places at most one hazard or pickup; the first rule whose draw
// succeeds wins.
func (g *Generator) spawnExtras(w *ecs.World, platformX, factor float64) {
	for _, r := range g.spec.SpawnRules {
		if g.rng.Float64() >= r.Chance.At(factor) {
			continue
		}
		x := platformX + r.OffsetX
		if r.Anchor == "random" {
			x = g.rng.Float64()*(g.viewport.Width-r.Margin) + r.OffsetX
		}
		if _, err := g.factory.Spawn(w, r.Prefab, x, g.cursor+r.OffsetY); err != nil {
			log.Printf("generator: spawn %s: %v", r.Prefab, err)
		}
		return
	}
}

// Shift moves the cursor down with the rest of the world.
func (g *Generator) Shift(dy float64) {
	g.cursor += dy
}

// Refill generates rows until the cursor is past the refill margin above the
// top of the viewport. It returns the number of rows generated.
func (g *Generator) Refill(w *ecs.World, score int) (int, error) {
	n := 0
	for g.cursor > -g.spec.RefillMargin {
		if err := g.GenerateSingleLevel(w, score); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Stats counts what the generator produced, by platform kind and prefab.
type Stats struct {
	Rows      int
	Platforms map[string]int
	Extras    map[string]int
}

// Sample runs rows generation steps into a scratch world and tallies the
// result. The generator's cursor is restored afterwards.
func (g *Generator) Sample(rows, score int) (Stats, error) {
	saved := g.cursor
	defer func() { g.cursor = saved }()

	w := ecs.NewWorld()
	stats := Stats{Platforms: map[string]int{}, Extras: map[string]int{}}
	for i := 0; i < rows; i++ {
		if err := g.GenerateSingleLevel(w, score); err != nil {
			return stats, err
		}
		stats.Rows++
	}

	ecs.ForEach(w, component.PlatformComponent.Kind(), func(_ ecs.Entity, p *component.Platform) {
		stats.Platforms[p.Kind.String()]++
	})
	ecs.ForEach(w, component.HazardComponent.Kind(), func(_ ecs.Entity, h *component.Hazard) {
		stats.Extras[h.Kind.String()]++
	})
	ecs.ForEach(w, component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
		stats.Extras[p.Kind.String()]++
	})
	return stats, nil
}

// Kinds returns the names in a stats map in a stable order.
func Kinds(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
