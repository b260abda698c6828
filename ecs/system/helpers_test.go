package system

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/prefabs"
	"github.com/milk9111/doodler/sound"
)

var testViewport = Viewport{Width: 400, Height: 600}

type fixture struct {
	w       *ecs.World
	factory *entity.Factory
	player  ecs.Entity
}

func newFixture(t *testing.T, x, y float64) *fixture {
	t.Helper()
	w := ecs.NewWorld()
	f := entity.NewFactory(prefabs.NewSpecCache(), rand.New(rand.NewPCG(7, 11)))
	p, err := f.NewDoodler(w, x, y)
	if err != nil {
		t.Fatalf("NewDoodler: %v", err)
	}
	return &fixture{w: w, factory: f, player: p}
}

func (fx *fixture) spawn(t *testing.T, prefab string, x, y float64) ecs.Entity {
	t.Helper()
	e, err := fx.factory.Spawn(fx.w, prefab, x, y)
	if err != nil {
		t.Fatalf("Spawn %s: %v", prefab, err)
	}
	return e
}

func (fx *fixture) platform(t *testing.T, x, y float64, kind component.PlatformKind) ecs.Entity {
	t.Helper()
	e, err := fx.factory.NewPlatform(fx.w, x, y, kind)
	if err != nil {
		t.Fatalf("NewPlatform: %v", err)
	}
	return e
}

func (fx *fixture) doodler() (*component.Doodler, *component.Transform, *component.Velocity) {
	d, _ := ecs.Get(fx.w, fx.player, component.DoodlerComponent.Kind())
	t, _ := ecs.Get(fx.w, fx.player, component.TransformComponent.Kind())
	v, _ := ecs.Get(fx.w, fx.player, component.VelocityComponent.Kind())
	return d, t, v
}

func (fx *fixture) setVelocity(vx, vy float64) {
	_, _, v := fx.doodler()
	v.X, v.Y = vx, vy
}

func (fx *fixture) collide() {
	effects, err := prefabs.LoadEffectsSpec()
	if err != nil {
		panic(err)
	}
	NewCollisionSystem(fx.factory, effects, 10).Update(fx.w)
}

// drain splits queued events into cues and game-over payloads.
func (fx *fixture) drain() ([]sound.Cue, []GameOver) {
	var cues []sound.Cue
	var overs []GameOver
	for _, ev := range fx.w.Events().Drain() {
		switch ev.Type {
		case EventCue:
			cues = append(cues, ev.Data.(sound.Cue))
		case EventGameOver:
			overs = append(overs, ev.Data.(GameOver))
		}
	}
	return cues, overs
}

func hasCue(cues []sound.Cue, c sound.Cue) bool {
	for _, got := range cues {
		if got == c {
			return true
		}
	}
	return false
}

func (fx *fixture) effectsColor() color.RGBA {
	return color.RGBA{R: 0xff, A: 0xff}
}
