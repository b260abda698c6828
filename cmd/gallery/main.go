// Command gallery pages through every prefab drawn in the sketch style, with
// kinematics running so moving platforms, spinning black holes and UFO lights
// animate.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/ecs/render"
	"github.com/milk9111/doodler/ecs/system"
	"github.com/milk9111/doodler/prefabs"
)

type page struct {
	name  string
	build func(w *ecs.World, f *entity.Factory) error
}

type galleryGame struct {
	spec     *prefabs.WorldSpec
	factory  *entity.Factory
	renderer *render.RenderSystem
	world    *ecs.World

	pages        []page
	current      int
	tick         int
	ticksPerPage int
}

func (g *galleryGame) Update() error {
	g.tick++
	next := inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
	prev := inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft)
	if g.ticksPerPage > 0 && g.tick >= g.ticksPerPage {
		next = true
	}
	switch {
	case next:
		g.show((g.current + 1) % len(g.pages))
	case prev:
		g.show((g.current + len(g.pages) - 1) % len(g.pages))
	}

	g.world.Update()
	g.world.Events().Drain()
	return nil
}

func (g *galleryGame) show(i int) {
	g.current = i
	g.tick = 0
	g.world.Clear()
	if err := g.pages[i].build(g.world, g.factory); err != nil {
		log.Printf("gallery: %s: %v", g.pages[i].name, err)
	}
}

func (g *galleryGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen, render.HUD{})
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d %s", g.current+1, len(g.pages), g.pages[g.current].name), 10, int(g.spec.Height)-20)
}

func (g *galleryGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.spec.Width), int(g.spec.Height)
}

func spawnAll(prefab string, positions ...[2]float64) func(*ecs.World, *entity.Factory) error {
	return func(w *ecs.World, f *entity.Factory) error {
		for _, p := range positions {
			if _, err := f.Spawn(w, prefab, p[0], p[1]); err != nil {
				return err
			}
		}
		return nil
	}
}

func platforms(w *ecs.World, f *entity.Factory) error {
	kinds := []component.PlatformKind{component.PlatformStatic, component.PlatformMoving, component.PlatformBreaking, component.PlatformDisappearing}
	for i, k := range kinds {
		if _, err := f.NewPlatform(w, 170, 120+float64(i)*80, k); err != nil {
			return err
		}
	}
	e, err := f.NewPlatform(w, 170, 440, component.PlatformBreaking)
	if err != nil {
		return err
	}
	p, _ := ecs.Get(w, e, component.PlatformComponent.Kind())
	p.Broken = true
	return nil
}

func doodlers(w *ecs.World, f *entity.Factory) error {
	modes := []func(*component.Doodler){
		func(d *component.Doodler) {},
		func(d *component.Doodler) { d.FacingLeft = true },
		func(d *component.Doodler) { d.Flight = component.FlightJetpack },
		func(d *component.Doodler) { d.Flight = component.FlightPropeller },
	}
	for i, mode := range modes {
		e, err := f.Spawn(w, entity.DoodlerPrefab, 60+float64(i%2)*240, 180+float64(i/2)*220)
		if err != nil {
			return err
		}
		d, _ := ecs.Get(w, e, component.DoodlerComponent.Kind())
		mode(d)
	}
	return nil
}

func trampolines(w *ecs.World, f *entity.Factory) error {
	if err := spawnAll("trampoline.yaml", [2]float64{120, 300}, [2]float64{250, 300})(w, f); err != nil {
		return err
	}
	// the second one is spent
	ents := ecs.Query(w, component.PickupComponent.Kind())
	if len(ents) == 2 {
		p, _ := ecs.Get(w, ents[1], component.PickupComponent.Kind())
		p.Take()
	}
	return nil
}

func bursts(w *ecs.World, f *entity.Factory) error {
	effects, err := prefabs.LoadEffectsSpec()
	if err != nil {
		return err
	}
	y := 100.0
	for _, name := range []string{system.BurstMonsterKilled, system.BurstUFOKilled, system.BurstPlatformBroken, system.BurstJetpackTaken, system.BurstPropellerTaken} {
		b := effects.Burst(name)
		f.SpawnBurst(w, 200, y, b.Color.RGBA8(), b.Count*3)
		y += 90
	}
	return nil
}

func main() {
	seconds := flag.Float64("page", 4, "seconds per page (0 waits for the arrow keys)")
	flag.Parse()

	spec, err := prefabs.LoadWorldSpec()
	if err != nil {
		log.Fatal(err)
	}
	viewport := system.ViewportFromSpec(spec)

	world := ecs.NewWorld()
	world.AddSystem(system.NewKinematicsSystem(viewport))
	world.AddSystem(system.NewParticleSystem())

	g := &galleryGame{
		spec:         spec,
		factory:      entity.NewFactory(prefabs.NewSpecCache(), rand.New(rand.NewPCG(1, 1))),
		renderer:     render.NewRenderSystem(spec, nil),
		world:        world,
		ticksPerPage: int(*seconds * 60),
		pages: []page{
			{"platforms", platforms},
			{"doodler", doodlers},
			{"monster", spawnAll("monster.yaml", [2]float64{180, 280})},
			{"black hole", spawnAll("black_hole.yaml", [2]float64{170, 270})},
			{"ufo", spawnAll("ufo.yaml", [2]float64{170, 280})},
			{"trampoline", trampolines},
			{"jetpack", spawnAll("jetpack.yaml", [2]float64{190, 280})},
			{"propeller hat", spawnAll("propeller_hat.yaml", [2]float64{185, 290})},
			{"projectile", spawnAll(entity.ProjectilePrefab, [2]float64{195, 300})},
			{"particles", bursts},
		},
	}
	g.show(0)

	ebiten.SetWindowSize(int(spec.Width), int(spec.Height))
	ebiten.SetWindowTitle("doodler gallery")
	ebiten.SetScreenClearedEveryFrame(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
