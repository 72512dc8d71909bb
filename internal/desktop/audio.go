package desktop

import (
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

type sound int

const (
	soundHit sound = iota
	soundMiss
	soundRoundEnd
)

type toneCue struct {
	freq     float64
	duration time.Duration
	release  time.Duration
	volume   float64
}

var tones = map[sound]toneCue{
	soundHit:      {freq: 880, duration: 60 * time.Millisecond, release: 40 * time.Millisecond, volume: 0.4},
	soundMiss:     {freq: 220, duration: 80 * time.Millisecond, release: 60 * time.Millisecond, volume: 0.25},
	soundRoundEnd: {freq: 440, duration: 400 * time.Millisecond, release: 250 * time.Millisecond, volume: 0.4},
}

// audio plays short synthesised cues. A nil *audio is silent.
type audio struct {
	rate beep.SampleRate
}

// newAudio opens the speaker. On failure the game runs without sound.
func newAudio() *audio {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[Desktop] audio disabled: %v", err)
		return nil
	}
	return &audio{rate: sampleRate}
}

func (a *audio) play(s sound) {
	if a == nil {
		return
	}
	cue, ok := tones[s]
	if !ok {
		return
	}
	st, err := tone(a.rate, cue)
	if err != nil {
		log.Printf("[Desktop] tone: %v", err)
		return
	}
	speaker.Play(st)
}

// tone builds a finite sine cue with a linear fade-out.
func tone(rate beep.SampleRate, cue toneCue) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, cue.freq)
	if err != nil {
		return nil, err
	}
	total := rate.N(cue.duration)
	faded := &fadeOut{
		streamer: beep.Take(total, sine),
		total:    total,
		release:  rate.N(cue.release),
	}
	return volume(faded, cue.volume), nil
}

// fadeOut ramps the last release samples of a stream down to silence.
type fadeOut struct {
	streamer beep.Streamer
	pos      int
	total    int
	release  int
}

func (f *fadeOut) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.streamer.Stream(samples)
	start := f.total - f.release
	for i := 0; i < n; i++ {
		if f.release > 0 && f.pos >= start {
			gain := float64(f.total-f.pos) / float64(f.release)
			gain = math.Max(0, gain)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		f.pos++
	}
	return n, ok
}

func (f *fadeOut) Err() error { return f.streamer.Err() }

// volume scales linearly; beep's Volume effect works in powers of Base.
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}
