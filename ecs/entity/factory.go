package entity

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/prefabs"
)

// Prefab file names used by the game.
const (
	DoodlerPrefab    = "doodler.yaml"
	PlatformPrefab   = "platform.yaml"
	ProjectilePrefab = "projectile.yaml"
	ParticlePrefab   = "particle.yaml"
)

// Factory builds game entities from prefabs with a shared random source.
type Factory struct {
	Cache *prefabs.SpecCache
	RNG   *rand.Rand
}

func NewFactory(cache *prefabs.SpecCache, rng *rand.Rand) *Factory {
	if cache == nil {
		cache = prefabs.NewSpecCache()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Factory{Cache: cache, RNG: rng}
}

// Spawn builds any prefab with its top-left corner at (x, y).
func (f *Factory) Spawn(w *ecs.World, prefab string, x, y float64) (ecs.Entity, error) {
	return BuildEntity(w, f.Cache, &buildContext{PrefabPath: prefab, RNG: f.RNG, X: x, Y: y})
}

// NewDoodler builds the player and the per-round progress singleton.
func (f *Factory) NewDoodler(w *ecs.World, x, y float64) (ecs.Entity, error) {
	e, err := f.Spawn(w, DoodlerPrefab, x, y)
	if err != nil {
		return ecs.NoEntity, err
	}
	if _, ok := ecs.First(w, component.ProgressComponent.Kind()); !ok {
		holder := ecs.CreateEntity(w)
		if err := ecs.Add(w, holder, component.ProgressComponent.Kind(), &component.Progress{}); err != nil {
			return ecs.NoEntity, err
		}
	}
	return e, nil
}

func (f *Factory) NewPlatform(w *ecs.World, x, y float64, kind component.PlatformKind) (ecs.Entity, error) {
	e, err := f.Spawn(w, PlatformPrefab, x, y)
	if err != nil {
		return ecs.NoEntity, err
	}
	p, ok := ecs.Get(w, e, component.PlatformComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return ecs.NoEntity, fmt.Errorf("entity: %s has no platform component", PlatformPrefab)
	}
	if err := applyPlatformKind(w, e, p, kind); err != nil {
		ecs.DestroyEntity(w, e)
		return ecs.NoEntity, err
	}
	return e, nil
}

// NewProjectile spawns a projectile centred horizontally on the shooter's
// top edge.
func (f *Factory) NewProjectile(w *ecs.World, shooter component.AABB) (ecs.Entity, error) {
	b, err := f.prefabBody(ProjectilePrefab)
	if err != nil {
		return ecs.NoEntity, err
	}
	return f.Spawn(w, ProjectilePrefab, shooter.X+shooter.Width/2-b.Width/2, shooter.Y)
}

// SpawnBurst emits count particles of one colour at (x, y). Failures stop
// the burst early; particles are cosmetic.
func (f *Factory) SpawnBurst(w *ecs.World, x, y float64, c color.RGBA, count int) int {
	n := 0
	for i := 0; i < count; i++ {
		if _, err := BuildEntity(w, f.Cache, &buildContext{PrefabPath: ParticlePrefab, RNG: f.RNG, X: x, Y: y, Color: &c}); err != nil {
			break
		}
		n++
	}
	return n
}

func (f *Factory) prefabBody(prefab string) (prefabs.BodyComponentSpec, error) {
	spec, err := f.Cache.Get(prefab)
	if err != nil {
		return prefabs.BodyComponentSpec{}, err
	}
	return prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](spec.Components["body"])
}
