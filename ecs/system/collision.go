package system

import (
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/prefabs"
	"github.com/milk9111/doodler/sound"
)

// Burst names in effects.yaml.
const (
	BurstMonsterKilled    = "monster_killed"
	BurstUFOKilled        = "ufo_killed"
	BurstPlatformBroken   = "platform_broken"
	BurstPlatformVanished = "platform_vanished"
	BurstJetpackTaken     = "jetpack_taken"
	BurstPropellerTaken   = "propeller_taken"
	BurstMonsterStomped   = "monster_stomped"
)

// CollisionSystem resolves every player, projectile and hazard interaction
// for one tick. Passes run in a fixed order; each pass collects the entities
// it destroys and removes them once the pass is over, so later checks in the
// same pass skip them.
type CollisionSystem struct {
	factory     *entity.Factory
	effects     *prefabs.EffectsSpec
	lethalInset float64
}

func NewCollisionSystem(factory *entity.Factory, effects *prefabs.EffectsSpec, lethalInset float64) *CollisionSystem {
	return &CollisionSystem{factory: factory, effects: effects, lethalInset: lethalInset}
}

// SetEffects swaps the burst table after effects.yaml changed.
func (s *CollisionSystem) SetEffects(effects *prefabs.EffectsSpec) {
	s.effects = effects
}

type body struct {
	e   ecs.Entity
	box component.AABB
}

// removals is the per-pass set of entities scheduled for destruction.
type removals map[ecs.Entity]struct{}

func (r removals) add(e ecs.Entity) { r[e] = struct{}{} }

func (r removals) has(e ecs.Entity) bool {
	_, ok := r[e]
	return ok
}

func (r removals) apply(w *ecs.World) {
	for e := range r {
		ecs.DestroyEntity(w, e)
	}
}

func (s *CollisionSystem) Update(w *ecs.World) {
	if Over(w) {
		return
	}

	s.projectilesVsHazards(w)

	_, d, t, v, b, ok := player(w)
	if !ok {
		return
	}

	// the descending gate is evaluated once for passes 2, 3 and 5
	descending := v.Y > 0 && !d.Flying()

	if descending {
		s.landOnPlatforms(w, d, t, v, b)
		s.bounceOnTrampolines(w, t, v, b)
	}
	s.collectFlightPickups(w, d, t, b)
	if descending {
		s.stompMonsters(w, d, t, v, b)
	}
	if !d.Flying() {
		s.lethalContacts(w, t, v, b)
	}
}

// projectilesVsHazards is pass 1.
func (s *CollisionSystem) projectilesVsHazards(w *ecs.World) {
	hazards := boxes(w, component.HazardComponent.Kind())
	if len(hazards) == 0 {
		return
	}

	gone := removals{}
	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(pe ecs.Entity, _ *component.Projectile) {
		pbox, ok := boxOf(w, pe)
		if !ok {
			return
		}
		for _, hz := range hazards {
			if gone.has(hz.e) || gone.has(pe) {
				continue
			}
			h, ok := ecs.Get(w, hz.e, component.HazardComponent.Kind())
			if !ok || !h.Destructible() || !pbox.Overlaps(hz.box) {
				continue
			}
			gone.add(hz.e)
			gone.add(pe)

			cx, cy := hz.box.Center()
			burst := BurstMonsterKilled
			if h.Kind == component.HazardUFO {
				burst = BurstUFOKilled
			}
			s.burst(w, burst, cx, cy)
			addScore(w, h.KillScore)
			pushCue(w, sound.CueExplosion)
		}
	})
	gone.apply(w)
}

// landOnPlatforms is pass 2. A platform is landed on when the player's bottom
// edge lies inside the platform's band extended down by the fall speed.
func (s *CollisionSystem) landOnPlatforms(w *ecs.World, d *component.Doodler, t *component.Transform, v *component.Velocity, b *component.Body) {
	gone := removals{}
	for _, pl := range boxes(w, component.PlatformComponent.Kind()) {
		if gone.has(pl.e) {
			continue
		}
		p, ok := ecs.Get(w, pl.e, component.PlatformComponent.Kind())
		if !ok || !p.Solid() {
			continue
		}
		if !landing(component.Bounds(t, b), pl.box, v.Y) {
			continue
		}

		t.Y = pl.box.Y - b.Height
		d.Jump(v)
		pushCue(w, sound.CueJump)

		switch p.Kind {
		case component.PlatformBreaking:
			if pv, ok := ecs.Get(w, pl.e, component.VelocityComponent.Kind()); ok {
				p.Break(pv)
			} else {
				p.Broken = true
			}
			s.burst(w, BurstPlatformBroken, pl.box.X+pl.box.Width/2, pl.box.Y)
			pushCue(w, sound.CueBreak)
		case component.PlatformDisappearing:
			gone.add(pl.e)
			s.burst(w, BurstPlatformVanished, pl.box.X+pl.box.Width/2, pl.box.Y)
			pushCue(w, sound.CueBreak)
		}
	}
	gone.apply(w)
}

// bounceOnTrampolines is pass 3.
func (s *CollisionSystem) bounceOnTrampolines(w *ecs.World, t *component.Transform, v *component.Velocity, b *component.Body) {
	for _, tr := range boxes(w, component.PickupComponent.Kind()) {
		p, ok := ecs.Get(w, tr.e, component.PickupComponent.Kind())
		if !ok || p.Kind != component.PickupTrampoline || p.Spent {
			continue
		}
		if !landing(component.Bounds(t, b), tr.box, v.Y) {
			continue
		}
		p.Take()
		v.Y = p.Boost
		pushCue(w, sound.CuePowerup)
	}
}

// collectFlightPickups is pass 4. Plain overlap, no descending gate.
func (s *CollisionSystem) collectFlightPickups(w *ecs.World, d *component.Doodler, t *component.Transform, b *component.Body) {
	for _, pk := range boxes(w, component.PickupComponent.Kind()) {
		p, ok := ecs.Get(w, pk.e, component.PickupComponent.Kind())
		if !ok || p.Spent || p.Kind == component.PickupTrampoline {
			continue
		}
		box := component.Bounds(t, b)
		if !box.Overlaps(pk.box) {
			continue
		}
		p.Take()
		pushCue(w, sound.CuePowerup)
		switch p.Kind {
		case component.PickupJetpack:
			d.ActivateJetpack()
			s.burst(w, BurstJetpackTaken, box.X, box.Bottom())
		case component.PickupPropellerHat:
			d.ActivatePropellerHat()
			s.burst(w, BurstPropellerTaken, box.X, box.Y)
		}
	}
}

// stompMonsters is pass 5.
func (s *CollisionSystem) stompMonsters(w *ecs.World, d *component.Doodler, t *component.Transform, v *component.Velocity, b *component.Body) {
	gone := removals{}
	for _, hz := range boxes(w, component.HazardComponent.Kind()) {
		h, ok := ecs.Get(w, hz.e, component.HazardComponent.Kind())
		if !ok || !h.Stompable() || gone.has(hz.e) {
			continue
		}
		if !landing(component.Bounds(t, b), hz.box, v.Y) {
			continue
		}
		gone.add(hz.e)
		cx, cy := hz.box.Center()
		s.burst(w, BurstMonsterStomped, cx, cy)
		d.Jump(v)
		addScore(w, h.KillScore)
		pushCue(w, sound.CueExplosion)
		pushCue(w, sound.CueJump)
	}
	gone.apply(w)
}

// lethalContacts is pass 6. Hazard boxes are inset on the left, right and
// top so only deep overlaps kill.
func (s *CollisionSystem) lethalContacts(w *ecs.World, t *component.Transform, v *component.Velocity, b *component.Body) {
	box := component.Bounds(t, b)
	in := s.lethalInset
	for _, hz := range boxes(w, component.HazardComponent.Kind()) {
		h, ok := ecs.Get(w, hz.e, component.HazardComponent.Kind())
		if !ok {
			continue
		}
		if !box.Overlaps(hz.box.Inset(in, in, in, 0)) {
			continue
		}
		switch h.Kind {
		case component.HazardMonster:
			// a falling player at or above the monster's top is stomping it
			if v.Y <= 0 || box.Y > hz.box.Y {
				EndRound(w, CauseMonster)
			}
		case component.HazardBlackHole:
			EndRound(w, CauseBlackHole)
		case component.HazardUFO:
			EndRound(w, CauseUFO)
		}
	}
}

// landing is the look-ahead landing test: horizontal overlap and the bottom
// edge strictly inside [top, top+height+fallSpeed].
func landing(p, target component.AABB, fallSpeed float64) bool {
	return p.X < target.Right() &&
		p.Right() > target.X &&
		p.Bottom() > target.Y &&
		p.Bottom() < target.Bottom()+fallSpeed
}

func boxOf(w *ecs.World, e ecs.Entity) (component.AABB, bool) {
	t, okT := ecs.Get(w, e, component.TransformComponent.Kind())
	b, okB := ecs.Get(w, e, component.BodyComponent.Kind())
	if !okT || !okB {
		return component.AABB{}, false
	}
	return component.Bounds(t, b), true
}

// boxes snapshots the bounds of every live entity carrying kind.
func boxes[T any](w *ecs.World, kind component.ComponentKind[T]) []body {
	ents := ecs.Query(w, kind)
	out := make([]body, 0, len(ents))
	for _, e := range ents {
		if box, ok := boxOf(w, e); ok {
			out = append(out, body{e: e, box: box})
		}
	}
	return out
}

func (s *CollisionSystem) burst(w *ecs.World, name string, x, y float64) {
	if s.factory == nil {
		return
	}
	b := s.effects.Burst(name)
	s.factory.SpawnBurst(w, x, y, b.Color.RGBA8(), b.Count)
}

func addScore(w *ecs.World, n int) {
	if p := progress(w); p != nil {
		p.AddScore(n)
	}
}
