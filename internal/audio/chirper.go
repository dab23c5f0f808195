package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Chirper owns the speaker and plays chirps through a shared mixer. Before
// Init succeeds, and after Close, Chirp does nothing.
type Chirper struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewChirper creates a chirper at the given linear volume.
func NewChirper(volume float64) *Chirper {
	return &Chirper{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the audio device.
func (c *Chirper) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Chirp queues one chirp.
func (c *Chirper) Chirp() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}

	s, err := NewChirp(SampleRate, c.volume)
	if err != nil {
		return fmt.Errorf("failed to build chirp: %w", err)
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// Close stops playback and releases the device.
func (c *Chirper) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
}
