package sound

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate = 44100

	// bytesPerFrame is two channels of signed 16-bit little-endian samples,
	// the format audio.NewPlayerFromBytes expects.
	bytesPerFrame = 4

	// envelopeFloor is the gain each tone decays to by the end of its duration.
	envelopeFloor = 0.01
)

// oscillate returns one sample in [-1, 1] at the given phase in cycles.
func oscillate(w Wave, phase float64) float64 {
	_, frac := math.Modf(phase)
	switch w {
	case WaveSquare:
		if frac < 0.5 {
			return 1
		}
		return -1
	case WaveSawtooth:
		return 2*frac - 1
	case WaveTriangle:
		return 1 - 4*math.Abs(frac-0.5)
	default:
		return math.Sin(2 * math.Pi * frac)
	}
}

// envelope is the exponential decay from volume to envelopeFloor over the
// tone's duration.
func envelope(volume, elapsed, duration float64) float64 {
	if volume <= 0 || duration <= 0 {
		return 0
	}
	if volume <= envelopeFloor {
		return volume
	}
	return volume * math.Pow(envelopeFloor/volume, elapsed/duration)
}

// Synthesize mixes tones into interleaved stereo 16-bit PCM.
func Synthesize(tones []Tone, sampleRate int) []byte {
	if sampleRate <= 0 || len(tones) == 0 {
		return nil
	}
	frames := int(math.Ceil(Length(tones).Seconds() * float64(sampleRate)))
	if frames <= 0 {
		return nil
	}

	mix := make([]float64, frames)
	for _, t := range tones {
		start := int(t.Delay.Seconds() * float64(sampleRate))
		n := int(t.Duration.Seconds() * float64(sampleRate))
		dur := t.Duration.Seconds()
		for i := 0; i < n && start+i < frames; i++ {
			elapsed := float64(i) / float64(sampleRate)
			mix[start+i] += oscillate(t.Wave, t.Freq*elapsed) * envelope(t.Volume, elapsed, dur)
		}
	}

	out := make([]byte, frames*bytesPerFrame)
	for i, v := range mix {
		s := int16(math.Round(max(-1, min(1, v)) * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+2:], uint16(s))
	}
	return out
}
