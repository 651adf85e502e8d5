// Package audio plays the sound-timer tone through the system speaker.
package audio

import (
	"context"
	"fmt"
	"time"

	"github.com/bradford-hamilton/chipvm/internal/tone"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneHz     = 440
)

// Player turns beep signals into short bursts of a square wave.
type Player struct {
	burst time.Duration
}

// NewPlayer initialises the speaker. burst is how much tone each signal
// plays; it should match the rate signals arrive at.
func NewPlayer(burst time.Duration) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initialising speaker: %w", err)
	}
	return &Player{burst: burst}, nil
}

// Serve plays a burst for every value received on beeps until ctx is done.
func (p *Player) Serve(ctx context.Context, beeps <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			speaker.Clear()
			return
		case <-beeps:
			speaker.Play(beep.Take(sampleRate.N(p.burst), tone.SquareWave(sampleRate, toneHz)))
		}
	}
}
