package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/milk9111/dungeon/system"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain reads s to the end and returns the sample count and peak amplitude.
func drain(s beep.Streamer) (int, float64) {
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for _, v := range smp {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []struct {
		name string
		wave WaveType
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"saw", WaveSaw},
		{"noise", WaveNoise},
	}
	for _, w := range waves {
		t.Run(w.name, func(t *testing.T) {
			osc := NewOscillator(440, 100*time.Millisecond, w.wave, rate)
			n, peak := drain(osc)
			assert.Equal(t, rate.N(100*time.Millisecond), n)
			assert.LessOrEqual(t, peak, 1.0)
			assert.Positive(t, peak)
			assert.NoError(t, osc.Err())
		})
	}
}

func TestSquareWaveLevels(t *testing.T) {
	osc := NewOscillator(220, 10*time.Millisecond, WaveSquare, 44100)
	buf := make([][2]float64, 100)
	n, ok := osc.Stream(buf)
	require.True(t, ok)
	for _, s := range buf[:n] {
		assert.Contains(t, []float64{-1, 1}, s[0])
		assert.Equal(t, s[0], s[1])
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate)
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 100*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	require.Equal(t, 1000, n)
	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	assert.InDelta(t, 0.5, buf[50][0], 1e-9)
	assert.Equal(t, 1.0, buf[500][0])
	assert.InDelta(t, 0.5, buf[950][0], 1e-9)
}

func TestCueSounds(t *testing.T) {
	cues := []system.Cue{
		system.CueShotFired, system.CueHitLanded, system.CueCoinCollected, system.CuePotionUsed,
		system.CueEnemyDied, system.CuePlayerHurt, system.CuePlayerDied, system.CueLevelComplete,
	}
	for _, cue := range cues {
		t.Run(cue.String(), func(t *testing.T) {
			s := Sound(cue, sampleRate)
			require.NotNil(t, s)
			n, peak := drain(s)
			assert.InDelta(t, sampleRate.N(Duration(cue)), n, float64(len(cueTones[cue])))
			assert.LessOrEqual(t, peak, 1.0)
		})
	}
	assert.Nil(t, Sound(system.Cue(99), sampleRate))
}

func TestPlayerWithoutSpeaker(t *testing.T) {
	p := NewPlayer(zerolog.Nop(), true)
	require.NoError(t, p.Init(), "muted players never open the device")
	assert.NotPanics(t, func() { p.Play([]system.Cue{system.CueShotFired}) })
	assert.Equal(t, 0, p.mixer.Len())
	assert.True(t, p.Muted())
	p.Close()

	var nilPlayer *Player
	assert.NotPanics(t, func() { nilPlayer.Play([]system.Cue{system.CueHitLanded}) })
}

func TestUnique(t *testing.T) {
	in := []system.Cue{system.CueHitLanded, system.CueHitLanded, system.CueEnemyDied, system.CueHitLanded}
	assert.Equal(t, []system.Cue{system.CueHitLanded, system.CueEnemyDied}, unique(in))
	assert.Equal(t, []system.Cue{system.CueHitLanded, system.CueHitLanded, system.CueEnemyDied, system.CueHitLanded}, in)
}
