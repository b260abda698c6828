package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/ecs/render"
	"github.com/milk9111/doodler/ecs/system"
	"github.com/milk9111/doodler/identity"
	"github.com/milk9111/doodler/leaderboard"
	"github.com/milk9111/doodler/prefabs"
	"github.com/milk9111/doodler/save"
	"github.com/milk9111/doodler/session"
	"github.com/milk9111/doodler/sound"
)

type Options struct {
	Debug   bool
	User    string
	Avatar  string
	Seed    uint64
	Mute    bool
	AppName string
}

type Game struct {
	opts Options

	worldSpec *prefabs.WorldSpec
	cache     *prefabs.SpecCache
	session   *session.Session
	renderer  *render.RenderSystem
	input     *Input
	mixer     *sound.Mixer

	identity *identity.LocalProvider
	board    *leaderboard.Client
	top      []leaderboard.Entry

	overlay *Overlay
	ui      *ebitenui.UI
	watcher *prefabs.Watcher
	status  string
	frames  int
}

func NewGame(opts Options) (*Game, error) {
	worldSpec, err := prefabs.LoadWorldSpec()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	log.Printf("game: seed %d", seed)

	cache := prefabs.NewSpecCache()
	factory := entity.NewFactory(cache, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))

	storage := save.Open(opts.AppName)
	board := leaderboard.NewClient(leaderboard.NewGdataStore(storage), leaderboard.DefaultTop)
	ident := identity.NewLocalProvider(opts.User)
	ident.SetAvatar(opts.Avatar)
	mixer := sound.NewMixer(opts.Mute)

	sess, err := session.New(session.Config{
		World:     worldSpec,
		Factory:   factory,
		Sound:     mixer,
		HighScore: save.LoadHighScore(storage),
		Identity:  ident,
		Board:     board,
	})
	if err != nil {
		board.Close()
		return nil, err
	}

	g := &Game{
		opts:      opts,
		worldSpec: worldSpec,
		cache:     cache,
		session:   sess,
		renderer:  render.NewRenderSystem(worldSpec, rand.New(rand.NewPCG(seed+1, seed))),
		input:     NewInput(),
		mixer:     mixer,
		identity:  ident,
		board:     board,
	}
	g.overlay, g.ui = NewOverlayUI(g)

	ident.OnChange(func(u *identity.User) {
		if u == nil {
			g.setStatus("signed out")
		} else {
			g.setStatus("signed in as " + u.Name)
		}
		board.Refresh()
	})
	if opts.User != "" {
		g.signIn()
	}

	if opts.Debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("game: prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	board.Refresh()
	return g, nil
}

func (g *Game) Size() (float64, float64) {
	return g.worldSpec.Width, g.worldSpec.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.board.Close()
}

func (g *Game) Update() error {
	g.frames++

	g.reloadPrefabs()
	g.pollLeaderboard()

	g.input.Update(g)
	g.session.Tick()

	g.overlay.Refresh(g)
	if g.session.State() != session.StatePlaying {
		g.ui.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	hud := render.HUD{Score: g.session.Score(), HighScore: g.session.HighScore()}
	if u := g.identity.Current(); u != nil {
		hud.User = u.Name
	}
	g.renderer.Draw(g.session.World(), screen, hud)

	if g.session.State() != session.StatePlaying {
		render.Dim(screen)
		g.ui.Draw(screen)
	}

	if g.opts.Debug {
		factor := g.session.Generator().Difficulty(g.session.Score())
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.0f  difficulty: %.2f", ebiten.ActualTPS(), factor), 10, int(g.worldSpec.Height)-36)
		ebitenutil.DebugPrintAt(screen, census(g.session.World()), 10, int(g.worldSpec.Height)-20)
	}
}

// census lists live component counts, e.g. "platform:14 hazard:1".
func census(w *ecs.World) string {
	counts := ecs.Census(w)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%d", name, counts[name])
	}
	return b.String()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.worldSpec.Width, g.worldSpec.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) start() {
	if err := g.session.Start(); err != nil {
		log.Printf("game: start: %v", err)
	}
}

func (g *Game) signIn() {
	if err := g.identity.SignIn(context.Background()); err != nil {
		log.Printf("game: sign in: %v", err)
		g.setStatus("start with -user NAME to sign in")
	}
}

func (g *Game) signOut() {
	if err := g.identity.SignOut(context.Background()); err != nil {
		log.Printf("game: sign out: %v", err)
	}
}

func (g *Game) toggleMute() {
	g.mixer.SetMuted(!g.mixer.Muted())
	if g.mixer.Muted() {
		g.setStatus("sound off")
	} else {
		g.setStatus("sound on")
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
}

func (g *Game) pollLeaderboard() {
	for {
		select {
		case list := <-g.board.Updates():
			g.top = list
		default:
			return
		}
	}
}

// reloadPrefabs applies prefab edits picked up by the debug watcher.
func (g *Game) reloadPrefabs() {
	for _, name := range g.watcher.Poll() {
		log.Printf("game: reloading %s", name)
		if prefabs.IsScript(name) {
			g.reloadDifficulty()
			continue
		}
		switch name {
		case "effects.yaml":
			effects, err := prefabs.LoadEffectsSpec()
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			g.session.SetEffects(effects)
		case "generator.yaml":
			g.reloadDifficulty()
		case "world.yaml":
			spec, err := prefabs.LoadWorldSpec()
			if err != nil {
				log.Printf("game: reload %s: %v", name, err)
				continue
			}
			// only the look is applied live; the viewport is fixed for the session
			spec.Width, spec.Height = g.worldSpec.Width, g.worldSpec.Height
			g.renderer.SetWorld(spec)
		default:
			g.cache.Invalidate(name)
		}
	}
}

func (g *Game) reloadDifficulty() {
	spec, err := prefabs.LoadGeneratorSpec()
	if err != nil {
		log.Printf("game: reload generator: %v", err)
		return
	}
	curve, err := system.LoadScriptDifficulty(spec.Difficulty)
	if err != nil {
		log.Printf("game: reload difficulty: %v", err)
	}
	g.session.SetCurve(curve)
}
