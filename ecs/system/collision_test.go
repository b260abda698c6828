package system

import (
	"testing"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/sound"
)

func TestLandingOnPlatforms(t *testing.T) {
	cases := []struct {
		name       string
		kind       component.PlatformKind
		vy         float64
		wantLand   bool
		wantGone   bool
		wantBroken bool
	}{
		{"static", component.PlatformStatic, 5, true, false, false},
		{"moving", component.PlatformMoving, 5, true, false, false},
		{"breaking", component.PlatformBreaking, 5, true, false, true},
		{"disappearing", component.PlatformDisappearing, 5, true, true, false},
		{"rising_passes_through", component.PlatformStatic, -3, false, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fx := newFixture(t, 100, 262)
			fx.setVelocity(0, c.vy)
			pe := fx.platform(t, 100, 300, c.kind)

			fx.collide()

			_, tr, v := fx.doodler()
			cues, _ := fx.drain()
			if c.wantLand {
				if v.Y != -10 || tr.Y != 260 {
					t.Fatalf("expected bounce to y 260 vy -10, got y %v vy %v", tr.Y, v.Y)
				}
				if !hasCue(cues, sound.CueJump) {
					t.Fatalf("expected jump cue, got %v", cues)
				}
			} else if v.Y != c.vy || tr.Y != 262 {
				t.Fatalf("expected no landing, got y %v vy %v", tr.Y, v.Y)
			}

			if alive := ecs.IsAlive(fx.w, pe); alive == c.wantGone {
				t.Fatalf("platform alive=%v, want gone=%v", alive, c.wantGone)
			}
			if c.wantGone && len(ecs.Query(fx.w, component.PlatformComponent.Kind())) != 0 {
				t.Fatal("disappearing platform still queryable")
			}
			if c.wantGone || c.wantBroken {
				if !hasCue(cues, sound.CueBreak) {
					t.Fatalf("expected break cue, got %v", cues)
				}
				if ecs.Count(fx.w, component.ParticleComponent.Kind()) != 5 {
					t.Fatalf("expected 5 debris particles, got %d", ecs.Count(fx.w, component.ParticleComponent.Kind()))
				}
			}
			if c.wantBroken {
				p, _ := ecs.Get(fx.w, pe, component.PlatformComponent.Kind())
				pv, _ := ecs.Get(fx.w, pe, component.VelocityComponent.Kind())
				if !p.Broken || pv.Y != 2 {
					t.Fatalf("expected broken platform falling at 2, got %+v vy %v", p, pv.Y)
				}
			}
		})
	}
}

func TestBrokenPlatformNotSolid(t *testing.T) {
	fx := newFixture(t, 100, 262)
	fx.setVelocity(0, 5)
	fx.platform(t, 100, 300, component.PlatformBreaking)
	fx.collide()

	_, tr, _ := fx.doodler()
	tr.Y = 262
	fx.setVelocity(0, 5)
	fx.collide()

	_, _, v := fx.doodler()
	if v.Y != 5 {
		t.Fatalf("broken platform must not bounce the player, vy=%v", v.Y)
	}
}

func TestLandingLookAhead(t *testing.T) {
	// the bottom edge is past the 15-unit platform but within the fall speed
	fx := newFixture(t, 100, 278)
	fx.setVelocity(0, 12)
	fx.platform(t, 100, 300, component.PlatformStatic)
	fx.collide()

	if _, _, v := fx.doodler(); v.Y != -10 {
		t.Fatalf("expected landing with look-ahead, vy=%v", v.Y)
	}
}

func TestFlyingPlayerIgnoresPlatforms(t *testing.T) {
	fx := newFixture(t, 100, 262)
	fx.setVelocity(0, 5)
	d, _, _ := fx.doodler()
	d.ActivateJetpack()
	fx.platform(t, 100, 300, component.PlatformStatic)
	fx.collide()

	if _, _, v := fx.doodler(); v.Y != 5 {
		t.Fatalf("flying player should not land, vy=%v", v.Y)
	}
}

func TestTrampolineOneShot(t *testing.T) {
	fx := newFixture(t, 100, 262)
	fx.setVelocity(0, 5)
	te := fx.spawn(t, "trampoline.yaml", 100, 300)

	fx.collide()
	_, _, v := fx.doodler()
	if v.Y != -25 {
		t.Fatalf("expected trampoline boost -25, got %v", v.Y)
	}
	cues, _ := fx.drain()
	if !hasCue(cues, sound.CuePowerup) {
		t.Fatalf("expected powerup cue, got %v", cues)
	}

	fx.setVelocity(0, 5)
	fx.collide()
	if _, _, v := fx.doodler(); v.Y != 5 {
		t.Fatalf("spent trampoline applied twice, vy=%v", v.Y)
	}
	p, _ := ecs.Get(fx.w, te, component.PickupComponent.Kind())
	if !p.Spent || !ecs.IsAlive(fx.w, te) {
		t.Fatalf("spent trampoline should stay in the world, spent=%v", p.Spent)
	}
}

func TestFlightPickups(t *testing.T) {
	cases := []struct {
		prefab    string
		mode      component.FlightMode
		particles int
	}{
		{"jetpack.yaml", component.FlightJetpack, 20},
		{"propeller_hat.yaml", component.FlightPropeller, 10},
	}

	for _, c := range cases {
		t.Run(c.prefab, func(t *testing.T) {
			fx := newFixture(t, 100, 300)
			// rising: flight pickups have no descending gate
			fx.setVelocity(0, -4)
			pe := fx.spawn(t, c.prefab, 110, 310)

			fx.collide()
			d, _, _ := fx.doodler()
			if d.Flight != c.mode {
				t.Fatalf("expected %v, got %v", c.mode, d.Flight)
			}
			if n := ecs.Count(fx.w, component.ParticleComponent.Kind()); n != c.particles {
				t.Fatalf("expected %d particles, got %d", c.particles, n)
			}

			d.Flight = component.FlightNone
			fx.collide()
			if d.Flight != component.FlightNone {
				t.Fatal("taken pickup applied twice")
			}
			p, _ := ecs.Get(fx.w, pe, component.PickupComponent.Kind())
			if !p.Spent {
				t.Fatal("pickup should be spent")
			}
		})
	}
}

func TestStompMonster(t *testing.T) {
	fx := newFixture(t, 100, 262)
	fx.setVelocity(0, 5)
	me := fx.spawn(t, "monster.yaml", 100, 300)

	fx.collide()

	if ecs.IsAlive(fx.w, me) {
		t.Fatal("stomped monster should be removed")
	}
	if got := Score(fx.w); got != 100 {
		t.Fatalf("expected score 100, got %d", got)
	}
	_, _, v := fx.doodler()
	if v.Y != -10 {
		t.Fatalf("expected jump after stomp, vy=%v", v.Y)
	}
	cues, overs := fx.drain()
	if !hasCue(cues, sound.CueExplosion) || !hasCue(cues, sound.CueJump) {
		t.Fatalf("expected explosion and jump cues, got %v", cues)
	}
	if len(overs) != 0 {
		t.Fatalf("stomp must not be lethal, got %v", overs)
	}
}

func TestLethalContacts(t *testing.T) {
	cases := []struct {
		name   string
		prefab string
		x, y   float64
		vy     float64
		flying bool
		cause  string
	}{
		{"monster_rising_into_it", "monster.yaml", 100, 310, -2, false, CauseMonster},
		{"monster_falling_from_below_top", "monster.yaml", 100, 315, 2, false, CauseMonster},
		{"black_hole", "black_hole.yaml", 110, 310, 3, false, CauseBlackHole},
		{"ufo", "ufo.yaml", 110, 305, -1, false, CauseUFO},
		{"flying_is_immune", "black_hole.yaml", 110, 310, -8, true, ""},
		{"shallow_overlap", "black_hole.yaml", 100, 265, -1, false, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fx := newFixture(t, c.x, c.y)
			fx.setVelocity(0, c.vy)
			if c.flying {
				d, _, _ := fx.doodler()
				d.ActivatePropellerHat()
			}
			fx.spawn(t, c.prefab, 100, 300)

			fx.collide()
			_, overs := fx.drain()
			if c.cause == "" {
				if len(overs) != 0 || Over(fx.w) {
					t.Fatalf("expected survival, got %v", overs)
				}
				return
			}
			if len(overs) != 1 || overs[0].Cause != c.cause {
				t.Fatalf("expected one game over by %s, got %v", c.cause, overs)
			}
		})
	}
}

func TestGameOverOncePerRound(t *testing.T) {
	fx := newFixture(t, 110, 310)
	fx.setVelocity(0, -1)
	fx.spawn(t, "black_hole.yaml", 100, 300)
	fx.spawn(t, "ufo.yaml", 100, 300)

	fx.collide()
	fx.collide()
	EndRound(fx.w, CauseFell)

	_, overs := fx.drain()
	if len(overs) != 1 {
		t.Fatalf("expected exactly one game over, got %v", overs)
	}
}

func TestProjectileHits(t *testing.T) {
	cases := []struct {
		prefab    string
		score     int
		destroyed bool
	}{
		{"monster.yaml", 100, true},
		{"ufo.yaml", 200, true},
		{"black_hole.yaml", 0, false},
	}

	for _, c := range cases {
		t.Run(c.prefab, func(t *testing.T) {
			fx := newFixture(t, 300, 500)
			he := fx.spawn(t, c.prefab, 0, 0)
			pe := fx.spawn(t, "projectile.yaml", 5, 5)

			fx.collide()

			if got := Score(fx.w); got != c.score {
				t.Fatalf("expected score %d, got %d", c.score, got)
			}
			if ecs.IsAlive(fx.w, he) == c.destroyed {
				t.Fatalf("hazard alive=%v, want destroyed=%v", ecs.IsAlive(fx.w, he), c.destroyed)
			}
			if ecs.IsAlive(fx.w, pe) == c.destroyed {
				t.Fatalf("projectile alive=%v, want consumed=%v", ecs.IsAlive(fx.w, pe), c.destroyed)
			}
			cues, _ := fx.drain()
			if hasCue(cues, sound.CueExplosion) != c.destroyed {
				t.Fatalf("unexpected cues %v", cues)
			}
		})
	}
}

func TestProjectileHitsOnlyOneHazard(t *testing.T) {
	fx := newFixture(t, 300, 500)
	fx.spawn(t, "monster.yaml", 0, 0)
	fx.spawn(t, "monster.yaml", 0, 0)
	fx.spawn(t, "projectile.yaml", 5, 5)

	fx.collide()

	if n := ecs.Count(fx.w, component.HazardComponent.Kind()); n != 1 {
		t.Fatalf("one projectile should destroy one monster, %d left", n)
	}
	if got := Score(fx.w); got != 100 {
		t.Fatalf("expected score 100, got %d", got)
	}
}

func TestProjectileMissesDistantMonster(t *testing.T) {
	fx := newFixture(t, 300, 500)
	fx.spawn(t, "monster.yaml", 0, 0)
	fx.spawn(t, "projectile.yaml", 100, 5)
	fx.collide()
	if n := ecs.Count(fx.w, component.HazardComponent.Kind()); n != 1 {
		t.Fatalf("monster should survive, %d left", n)
	}
}
