// Package audio plays the short chirp that announces a new reminder.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the output rate of the speaker.
const SampleRate = beep.SampleRate(44100)

// note is one tone of the chirp.
type note struct {
	freq     float64
	duration time.Duration
}

// Two quick rising whistles.
var chirpNotes = []note{
	{freq: 1760, duration: 70 * time.Millisecond},
	{freq: 2349.32, duration: 110 * time.Millisecond},
}

const (
	overtoneGain = 0.25
	attack       = 8 * time.Millisecond
	release      = 40 * time.Millisecond
)

// ChirpLength returns the chirp duration in samples at rate.
func ChirpLength(rate beep.SampleRate) int {
	n := 0
	for _, nt := range chirpNotes {
		n += rate.N(nt.duration)
	}
	return n
}

// NewChirp builds the chirp streamer at the given linear volume.
func NewChirp(rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(chirpNotes))
	for _, nt := range chirpNotes {
		s, err := tone(rate, nt)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// tone is a sine with a quieter octave overtone, shaped by a short
// attack and release.
func tone(rate beep.SampleRate, nt note) (beep.Streamer, error) {
	fund, err := generators.SineTone(rate, nt.freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create %.0f Hz tone: %w", nt.freq, err)
	}
	over, err := generators.SineTone(rate, math.Min(nt.freq*2, float64(rate)/2-1))
	if err != nil {
		return nil, fmt.Errorf("failed to create overtone: %w", err)
	}

	n := rate.N(nt.duration)
	mixed := beep.Mix(
		newVolume(beep.Take(n, fund), 1-overtoneGain),
		newVolume(beep.Take(n, over), overtoneGain),
	)
	return &envelope{
		streamer: mixed,
		total:    n,
		attack:   rate.N(attack),
		release:  rate.N(release),
	}, nil
}

// newVolume wraps s in a linear gain. Zero or less is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// envelope applies a linear fade in and out.
type envelope struct {
	streamer beep.Streamer
	pos      int
	total    int
	attack   int
	release  int
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = math.Min(gain, math.Max(float64(left)/float64(e.release), 0))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
