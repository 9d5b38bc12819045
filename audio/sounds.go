package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/milk9111/dungeon/system"
)

// tone is one note of a cue.
type tone struct {
	freq float64
	dur  time.Duration
	wave WaveType
	vol  float64
}

const (
	attack  = 5 * time.Millisecond
	release = 40 * time.Millisecond
)

var cueTones = map[system.Cue][]tone{
	system.CueShotFired: {{0, 60 * time.Millisecond, WaveNoise, 0.25}},
	system.CueHitLanded: {{180, 80 * time.Millisecond, WaveSquare, 0.2}},
	system.CueCoinCollected: {
		{988, 70 * time.Millisecond, WaveSine, 0.4},
		{1319, 120 * time.Millisecond, WaveSine, 0.4},
	},
	system.CuePotionUsed: {
		{523, 80 * time.Millisecond, WaveSine, 0.35},
		{659, 80 * time.Millisecond, WaveSine, 0.35},
		{784, 140 * time.Millisecond, WaveSine, 0.35},
	},
	system.CueEnemyDied:  {{110, 200 * time.Millisecond, WaveSaw, 0.3}},
	system.CuePlayerHurt: {{90, 150 * time.Millisecond, WaveSquare, 0.3}},
	system.CuePlayerDied: {
		{392, 180 * time.Millisecond, WaveSine, 0.4},
		{330, 180 * time.Millisecond, WaveSine, 0.4},
		{262, 360 * time.Millisecond, WaveSine, 0.4},
	},
	system.CueLevelComplete: {
		{523, 100 * time.Millisecond, WaveSquare, 0.2},
		{659, 100 * time.Millisecond, WaveSquare, 0.2},
		{784, 100 * time.Millisecond, WaveSquare, 0.2},
		{1047, 250 * time.Millisecond, WaveSquare, 0.2},
	},
}

// Sound synthesizes the effect for a cue, or returns nil for a cue with no
// sound.
func Sound(cue system.Cue, rate beep.SampleRate) beep.Streamer {
	tones, ok := cueTones[cue]
	if !ok {
		return nil
	}
	notes := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		osc := NewOscillator(t.freq, t.dur, t.wave, rate)
		notes = append(notes, newVolume(NewEnvelope(osc, t.dur, attack, release, rate), t.vol))
	}
	if len(notes) == 1 {
		return notes[0]
	}
	return beep.Seq(notes...)
}

// Duration is the length of the sound for cue.
func Duration(cue system.Cue) time.Duration {
	var d time.Duration
	for _, t := range cueTones[cue] {
		d += t.dur
	}
	return d
}
