package entity

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/doodler/common"
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/prefabs"
)

type buildContext struct {
	PrefabPath string
	RNG        *rand.Rand
	X, Y       float64
	// Color tints particles; nil leaves the prefab colour.
	Color *color.RGBA
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"velocity":     addVelocity,
	"body":         addBody,
	"render_layer": addRenderLayer,
	"doodler":      addDoodler,
	"platform":     addPlatform,
	"hazard":       addHazard,
	"pickup":       addPickup,
	"projectile":   addProjectile,
	"particle":     addParticle,
}

// velocity precedes platform so moving platforms can set their speed on it.
var componentBuildOrder = []string{
	"transform",
	"velocity",
	"body",
	"render_layer",
	"doodler",
	"platform",
	"hazard",
	"pickup",
	"projectile",
	"particle",
}

// BuildEntity creates one entity from a prefab placed at (ctx.X, ctx.Y).
// The entity is destroyed again if any component fails to build.
func BuildEntity(w *ecs.World, cache *prefabs.SpecCache, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return ecs.NoEntity, fmt.Errorf("build entity: world is nil")
	}
	if cache == nil {
		cache = prefabs.NewSpecCache()
	}

	spec, err := cache.Get(ctx.PrefabPath)
	if err != nil {
		return ecs.NoEntity, fmt.Errorf("build entity: load %q: %w", ctx.PrefabPath, err)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if _, ok := remaining["transform"]; !ok {
		remaining["transform"] = nil
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return ecs.NoEntity, fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return ecs.NoEntity, fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, names[0])
	}

	return e, nil
}

// transform offsets are relative to the spawn point.
func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(ctx.X+spec.X, ctx.Y+spec.Y)
	t.Rotation = spec.Rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addVelocity(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VelocityComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	x := spec.X
	if spec.RandomSignX && ctx.RNG != nil && ctx.RNG.Float64() <= 0.5 {
		x = -x
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Vector: cp.Vector{X: x, Y: spec.Y}})
}

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("body size must be positive, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{Width: spec.Width, Height: spec.Height})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addDoodler(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DoodlerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode doodler spec: %w", err)
	}
	return ecs.Add(w, e, component.DoodlerComponent.Kind(), &component.Doodler{
		Gravity:         spec.Gravity,
		JumpImpulse:     spec.JumpImpulse,
		MoveSpeed:       spec.MoveSpeed,
		JetpackSpeed:    spec.JetpackSpeed,
		JetpackFrames:   spec.JetpackFrames,
		PropellerSpeed:  spec.PropellerSpeed,
		PropellerFrames: spec.PropellerFrames,
		FireInterval:    spec.FireInterval,
	})
}

func addPlatform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlatformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode platform spec: %w", err)
	}
	kind := component.PlatformStatic
	if spec.Kind != "" {
		kind, err = component.ParsePlatformKind(spec.Kind)
		if err != nil {
			return err
		}
	}
	p := &component.Platform{
		Kind:          kind,
		MoveSpeed:     spec.MoveSpeed,
		BreakVelocity: spec.BreakVelocity,
		FallGravity:   spec.FallGravity,
	}
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), p); err != nil {
		return err
	}
	return applyPlatformKind(w, e, p, kind)
}

// applyPlatformKind sets the kind and the matching horizontal speed.
func applyPlatformKind(w *ecs.World, e ecs.Entity, p *component.Platform, kind component.PlatformKind) error {
	p.Kind = kind
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		v = &component.Velocity{}
		if err := ecs.Add(w, e, component.VelocityComponent.Kind(), v); err != nil {
			return err
		}
	}
	if kind == component.PlatformMoving {
		v.X = p.MoveSpeed
	} else {
		v.X = 0
	}
	return nil
}

func parseHazardKind(s string) (component.HazardKind, error) {
	for _, k := range []component.HazardKind{component.HazardMonster, component.HazardBlackHole, component.HazardUFO} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown hazard kind %q", s)
}

func addHazard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HazardComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode hazard spec: %w", err)
	}
	kind, err := parseHazardKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
		Kind:       kind,
		KillScore:  spec.KillScore,
		Spin:       spec.Spin,
		LightSpeed: spec.LightSpeed,
	})
}

func parsePickupKind(s string) (component.PickupKind, error) {
	for _, k := range []component.PickupKind{component.PickupTrampoline, component.PickupJetpack, component.PickupPropellerHat} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pickup kind %q", s)
}

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PickupComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	kind, err := parsePickupKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: kind, Boost: spec.Boost})
}

func addProjectile(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ProjectileComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projectile spec: %w", err)
	}
	return ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{Ceiling: spec.Ceiling})
}

// addParticle rolls a random direction, speed, life and size within the
// prefab ranges and overwrites the velocity with the resulting vector.
func addParticle(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParticleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode particle spec: %w", err)
	}
	rng := ctx.RNG
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	angle := rng.Float64() * 2 * math.Pi
	speed := between(rng, spec.SpeedMin, spec.SpeedMax)
	life := spec.LifeMin
	if spec.LifeMax > spec.LifeMin {
		life += rng.IntN(spec.LifeMax - spec.LifeMin)
	}
	if life <= 0 {
		life = 1
	}

	p := &component.Particle{
		Color:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Life:    life,
		MaxLife: life,
		Size:    between(rng, spec.SizeMin, spec.SizeMax),
		Shrink:  spec.Shrink,
		Gravity: spec.Gravity,
	}
	if ctx.Color != nil {
		p.Color = *ctx.Color
	}
	if p.Shrink == 0 {
		p.Shrink = 1
	}

	vel := &component.Velocity{Vector: cp.ForAngle(angle).Mult(speed)}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), vel); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ParticleComponent.Kind(), p)
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return common.Lerp(lo, hi, rng.Float64())
}
