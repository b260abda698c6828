package sound

import (
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Player plays named cues without blocking the caller.
type Player interface {
	Play(c Cue)
}

// Mixer renders every cue once and plays it through the shared ebiten audio
// context. The context is created on the first Play and lives for the rest of
// the process.
type Mixer struct {
	mu      sync.Mutex
	once    sync.Once
	ctx     *audio.Context
	pcm     map[Cue][]byte
	muted   bool
	playing []*audio.Player
}

func NewMixer(muted bool) *Mixer {
	return &Mixer{muted: muted}
}

func (m *Mixer) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

func (m *Mixer) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

func (m *Mixer) init() {
	m.ctx = audio.CurrentContext()
	if m.ctx == nil {
		m.ctx = audio.NewContext(SampleRate)
	}
	m.pcm = make(map[Cue][]byte, len(Cues))
	for _, c := range Cues {
		m.pcm[c] = Synthesize(Sequence(c), m.ctx.SampleRate())
	}
}

// Play starts a cue. Unknown cues and a muted mixer are silently ignored.
func (m *Mixer) Play(c Cue) {
	if m == nil || m.Muted() {
		return
	}
	m.once.Do(m.init)

	data := m.pcm[c]
	if len(data) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// players that finished are released before starting a new one
	live := m.playing[:0]
	for _, p := range m.playing {
		if p.IsPlaying() {
			live = append(live, p)
			continue
		}
		if err := p.Close(); err != nil {
			log.Printf("sound: close player: %v", err)
		}
	}
	m.playing = live

	p := m.ctx.NewPlayerFromBytes(data)
	p.Play()
	m.playing = append(m.playing, p)
}

// Silent discards every cue. It is used by headless tools and tests.
type Silent struct{}

func (Silent) Play(Cue) {}

// Recorder remembers played cues in order.
type Recorder struct {
	mu     sync.Mutex
	Played []Cue
}

func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	r.Played = append(r.Played, c)
	r.mu.Unlock()
}
