package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/ecs/component"
	"github.com/milk9111/doodler/ecs/entity"
	"github.com/milk9111/doodler/ecs/system"
	"github.com/milk9111/doodler/identity"
	"github.com/milk9111/doodler/leaderboard"
	"github.com/milk9111/doodler/prefabs"
	"github.com/milk9111/doodler/save"
	"github.com/milk9111/doodler/sound"
)

type State int

const (
	StateMenu State = iota
	StatePlaying
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrAlreadyPlaying = errors.New("session: round already in progress")

// Scoreboard receives final scores. *leaderboard.Client satisfies it.
type Scoreboard interface {
	Submit(e leaderboard.Entry)
	Refresh()
}

// Config wires a session to its collaborators. Nil specs are loaded from
// prefabs; nil collaborators are replaced by inert ones.
type Config struct {
	World     *prefabs.WorldSpec
	Generator *prefabs.GeneratorSpec
	Effects   *prefabs.EffectsSpec
	Curve     system.DifficultyCurve
	Factory   *entity.Factory

	Sound     sound.Player
	HighScore *save.HighScore
	Identity  identity.Provider
	Board     Scoreboard
}

// Session drives one player's rounds: it owns the world and its systems, maps
// input onto the player and reacts to the end of a round.
type Session struct {
	cfg      Config
	viewport system.Viewport

	state     State
	world     *ecs.World
	generator *system.Generator
	collision *system.CollisionSystem
	result    system.GameOver
	rounds    int
}

func New(cfg Config) (*Session, error) {
	var err error
	if cfg.World == nil {
		if cfg.World, err = prefabs.LoadWorldSpec(); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}
	if cfg.Generator == nil {
		if cfg.Generator, err = prefabs.LoadGeneratorSpec(); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}
	if cfg.Effects == nil {
		if cfg.Effects, err = prefabs.LoadEffectsSpec(); err != nil {
			log.Printf("session: effects: %v", err)
		}
	}
	if cfg.Curve == nil {
		if cfg.Curve, err = system.LoadScriptDifficulty(cfg.Generator.Difficulty); err != nil {
			log.Printf("session: %v (using linear difficulty)", err)
		}
	}
	if cfg.Factory == nil {
		cfg.Factory = entity.NewFactory(nil, nil)
	}
	if cfg.Sound == nil {
		cfg.Sound = sound.Silent{}
	}
	if cfg.HighScore == nil {
		cfg.HighScore = save.LoadHighScore(nil)
	}

	s := &Session{cfg: cfg, viewport: system.ViewportFromSpec(cfg.World), world: ecs.NewWorld()}
	if s.generator, err = system.NewGenerator(s.viewport, cfg.Generator, cfg.Factory, cfg.Curve); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.collision = system.NewCollisionSystem(cfg.Factory, cfg.Effects, cfg.World.LethalInset)

	s.world.AddSystem(system.NewDoodlerSystem(s.viewport, cfg.Factory))
	s.world.AddSystem(system.NewKinematicsSystem(s.viewport))
	s.world.AddSystem(system.NewParticleSystem())
	s.world.AddSystem(system.NewProjectileSystem())
	s.world.AddSystem(s.collision)
	s.world.AddSystem(system.NewCameraSystem(s.viewport, s.generator))
	s.world.AddSystem(system.NewBoundsSystem(s.viewport))
	return s, nil
}

func (s *Session) State() State              { return s.state }
func (s *Session) World() *ecs.World         { return s.world }
func (s *Session) Viewport() system.Viewport { return s.viewport }
func (s *Session) Score() int                { return system.Score(s.world) }
func (s *Session) HighScore() int            { return s.cfg.HighScore.Best() }

// Result is the outcome of the last finished round.
func (s *Session) Result() system.GameOver { return s.result }

// Generator exposes the level generator, e.g. for difficulty readouts.
func (s *Session) Generator() *system.Generator { return s.generator }

// SetCurve and SetEffects apply reloaded prefab data to the running session.
func (s *Session) SetCurve(c system.DifficultyCurve) {
	s.cfg.Curve = c
	s.generator.SetCurve(c)
}

func (s *Session) SetEffects(e *prefabs.EffectsSpec) {
	s.cfg.Effects = e
	s.collision.SetEffects(e)
}

// Start begins a round from the menu or the game-over screen. Restarting
// plays the powerup cue.
func (s *Session) Start() error {
	if s.state == StatePlaying {
		return ErrAlreadyPlaying
	}
	restart := s.state == StateGameOver

	s.world.Clear()
	if err := s.spawnPlayer(); err != nil {
		return err
	}
	if err := s.generator.GenerateInitialLevel(s.world, 0); err != nil {
		s.world.Clear()
		return fmt.Errorf("session: start: %w", err)
	}

	s.state = StatePlaying
	s.result = system.GameOver{}
	s.rounds++
	if restart {
		s.cfg.Sound.Play(sound.CuePowerup)
	}
	return nil
}

// spawnPlayer centres the player horizontally, spawn_offset_y above the
// bottom of the viewport.
func (s *Session) spawnPlayer() error {
	e, err := s.cfg.Factory.NewDoodler(s.world, s.viewport.Width/2, s.viewport.Height-s.cfg.World.SpawnOffsetY)
	if err != nil {
		return fmt.Errorf("session: spawn player: %w", err)
	}
	t, _ := ecs.Get(s.world, e, component.TransformComponent.Kind())
	if b, ok := ecs.Get(s.world, e, component.BodyComponent.Kind()); ok {
		t.X -= b.Width / 2
	}
	return nil
}

// Tick advances a running round by one fixed step. Outside PLAYING the
// world is frozen.
func (s *Session) Tick() {
	if s.state != StatePlaying {
		return
	}
	s.world.Update()
	s.drain()
}

func (s *Session) drain() {
	for _, evt := range s.world.Events().Drain() {
		switch evt.Type {
		case system.EventCue:
			if c, ok := evt.Data.(sound.Cue); ok {
				s.cfg.Sound.Play(c)
			}
		case system.EventGameOver:
			if g, ok := evt.Data.(system.GameOver); ok {
				s.gameOver(g)
			}
		}
	}
}

func (s *Session) gameOver(g system.GameOver) {
	if s.state != StatePlaying {
		return
	}
	s.state = StateGameOver
	s.result = g
	log.Printf("session: round %d over: %s, score %d", s.rounds, g.Cause, g.Score)

	if _, err := s.cfg.HighScore.Record(g.Score); err != nil {
		log.Printf("session: %v", err)
	}
	s.cfg.Sound.Play(sound.CueExplosion)

	if s.cfg.Board == nil {
		return
	}
	if s.cfg.Identity == nil {
		s.cfg.Board.Refresh()
		return
	}
	u := s.cfg.Identity.Current()
	if u == nil {
		s.cfg.Board.Refresh()
		return
	}
	s.cfg.Board.Submit(leaderboard.Entry{UserID: u.ID, Name: u.Name, Score: g.Score, Avatar: u.Avatar, UpdatedAt: time.Now()})
}

func (s *Session) doodler() (*component.Doodler, *component.Velocity, bool) {
	e, ok := ecs.First(s.world, component.DoodlerComponent.Kind())
	if !ok {
		return nil, nil, false
	}
	d, _ := ecs.Get(s.world, e, component.DoodlerComponent.Kind())
	v, ok := ecs.Get(s.world, e, component.VelocityComponent.Kind())
	return d, v, ok
}

func (s *Session) PressLeft() {
	if d, v, ok := s.control(); ok {
		d.MoveLeft(v)
	}
}

func (s *Session) PressRight() {
	if d, v, ok := s.control(); ok {
		d.MoveRight(v)
	}
}

// ReleaseLeft stops the player only if it is still moving left.
func (s *Session) ReleaseLeft() {
	if d, v, ok := s.control(); ok && v.X < 0 {
		d.Stop(v)
	}
}

func (s *Session) ReleaseRight() {
	if d, v, ok := s.control(); ok && v.X > 0 {
		d.Stop(v)
	}
}

// Shoot fires a projectile unless a flight mode is active.
func (s *Session) Shoot() bool {
	d, _, ok := s.control()
	if !ok || d.Flying() {
		return false
	}
	fired := system.FireProjectile(s.world, s.cfg.Factory)
	s.drain()
	return fired
}

func (s *Session) control() (*component.Doodler, *component.Velocity, bool) {
	if s.state != StatePlaying {
		return nil, nil, false
	}
	return s.doodler()
}
