package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/dungeon/system"
	"github.com/rs/zerolog"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps how many effects play at once; extra cues are dropped.
const maxVoices = 8

// Player plays cue sounds through the speaker. A muted or uninitialized
// Player accepts cues and does nothing.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	logger      zerolog.Logger
	muted       bool
	initialized bool
}

func NewPlayer(logger zerolog.Logger, muted bool) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
		muted:  muted,
	}
}

// Init opens the speaker. Failing to open it is not fatal to a game; the
// caller may keep the Player around and it will stay silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.muted {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the sounds for one frame of cues. Repeats within a frame play
// once.
func (p *Player) Play(cues []system.Cue) {
	if p == nil || len(cues) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	for _, cue := range unique(cues) {
		if p.mixer.Len() >= maxVoices {
			p.logger.Debug().Stringer("cue", cue).Msg("voice limit reached")
			return
		}
		if s := Sound(cue, sampleRate); s != nil {
			p.mixer.Add(s)
		}
	}
}

// SetMuted toggles output. Muting drops everything currently playing.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = muted
	if muted && p.initialized {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops all sounds.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}

func unique(cues []system.Cue) []system.Cue {
	seen := make(map[system.Cue]bool, len(cues))
	out := cues[:0:0]
	for _, c := range cues {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
