// Package sound plays short tones for catches and game over.
package sound

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/ayusman/bananarush/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a sound event.
type Cue int

const (
	CueBanana Cue = iota
	CueCoconut
	CueBomb
	CueGameOver
)

type tone struct {
	freq float64
	dur  time.Duration
}

var tones = map[Cue][]tone{
	CueBanana:   {{freq: 880, dur: 80 * time.Millisecond}},
	CueCoconut:  {{freq: 330, dur: 120 * time.Millisecond}},
	CueBomb:     {{freq: 110, dur: 250 * time.Millisecond}},
	CueGameOver: {{freq: 523, dur: 150 * time.Millisecond}, {freq: 392, dur: 150 * time.Millisecond}, {freq: 262, dur: 300 * time.Millisecond}},
}

// CueFor returns the cue of catching an object of kind k.
func CueFor(k game.Kind) Cue {
	switch k {
	case game.Coconut:
		return CueCoconut
	case game.Bomb:
		return CueBomb
	default:
		return CueBanana
	}
}

// Streamer builds the finite tone sequence of a cue.
func Streamer(c Cue) (beep.Streamer, error) {
	seq, ok := tones[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", c)
	}

	parts := make([]beep.Streamer, 0, len(seq))
	for _, t := range seq {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("sine %.0fHz: %w", t.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(t.dur), sine))
	}
	return beep.Seq(parts...), nil
}

// Player sends cues to the speaker. Until Initialize succeeds, Play is a no-op.
type Player struct {
	mu          sync.Mutex
	initialized bool
}

// NewPlayer creates a Player with no audio device attached.
func NewPlayer() *Player {
	return &Player{}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	p.initialized = true
	return nil
}

// Play queues a cue without blocking.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Streamer(c)
	if err != nil {
		log.Printf("sound: %v", err)
		return
	}
	speaker.Play(s)
}

// Close releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
