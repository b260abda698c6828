package sound

import (
	"fmt"
	"time"
)

// Cue names one fire-and-forget sound effect.
type Cue string

const (
	CueJump      Cue = "jump"
	CueShoot     Cue = "shoot"
	CueExplosion Cue = "explosion"
	CueBreak     Cue = "break"
	CuePowerup   Cue = "powerup"
)

// Cues lists every cue in a stable order.
var Cues = []Cue{CueJump, CueShoot, CueExplosion, CueBreak, CuePowerup}

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

func (w Wave) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	case WaveTriangle:
		return "triangle"
	default:
		return fmt.Sprintf("Wave(%d)", int(w))
	}
}

// Tone is one fixed-frequency note. Delay is measured from the start of the
// cue; the gain decays exponentially from Volume to near silence over
// Duration.
type Tone struct {
	Freq     float64
	Wave     Wave
	Delay    time.Duration
	Duration time.Duration
	Volume   float64
}

const defaultVolume = 0.1

var sequences = map[Cue][]Tone{
	CueJump: {
		{Freq: 400, Wave: WaveSine, Duration: 100 * time.Millisecond, Volume: defaultVolume},
		{Freq: 600, Wave: WaveSine, Delay: 50 * time.Millisecond, Duration: 200 * time.Millisecond, Volume: defaultVolume},
	},
	CueShoot: {
		{Freq: 800, Wave: WaveSquare, Duration: 100 * time.Millisecond, Volume: 0.05},
		{Freq: 600, Wave: WaveSquare, Delay: 50 * time.Millisecond, Duration: 100 * time.Millisecond, Volume: 0.05},
	},
	CueExplosion: {
		{Freq: 100, Wave: WaveSawtooth, Duration: 300 * time.Millisecond, Volume: defaultVolume},
		{Freq: 50, Wave: WaveSawtooth, Delay: 100 * time.Millisecond, Duration: 300 * time.Millisecond, Volume: defaultVolume},
	},
	CueBreak: {
		{Freq: 150, Wave: WaveSquare, Duration: 100 * time.Millisecond, Volume: defaultVolume},
		{Freq: 100, Wave: WaveSquare, Delay: 50 * time.Millisecond, Duration: 100 * time.Millisecond, Volume: defaultVolume},
	},
	CuePowerup: {
		{Freq: 600, Wave: WaveSine, Duration: 100 * time.Millisecond, Volume: defaultVolume},
		{Freq: 800, Wave: WaveSine, Delay: 100 * time.Millisecond, Duration: 100 * time.Millisecond, Volume: defaultVolume},
		{Freq: 1200, Wave: WaveSine, Delay: 200 * time.Millisecond, Duration: 200 * time.Millisecond, Volume: defaultVolume},
	},
}

// Sequence returns the tones of a cue, or nil for an unknown cue.
func Sequence(c Cue) []Tone {
	tones := sequences[c]
	if tones == nil {
		return nil
	}
	return append([]Tone(nil), tones...)
}

// Length is the time from the start of the first tone to the end of the last.
func Length(tones []Tone) time.Duration {
	var end time.Duration
	for _, t := range tones {
		end = max(end, t.Delay+t.Duration)
	}
	return end
}
