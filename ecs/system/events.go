package system

import (
	"github.com/milk9111/doodler/ecs"
	"github.com/milk9111/doodler/sound"
)

// Event types pushed onto the world queue during a tick.
const (
	EventCue      = "cue"
	EventGameOver = "game_over"
)

// Game-over causes.
const (
	CauseFell      = "fell"
	CauseMonster   = "monster"
	CauseBlackHole = "black_hole"
	CauseUFO       = "ufo"
)

// GameOver is the payload of an EventGameOver event.
type GameOver struct {
	Cause string
	Score int
}

func pushCue(w *ecs.World, c sound.Cue) {
	ecs.Emit(w, EventCue, c)
}
