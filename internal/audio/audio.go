// Package audio plays the sound timer tone through the system audio device.
package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/retroenv/retrochip8/internal/sound"
	"github.com/retroenv/retrogolib/log"
)

// Beeper plays a square wave tone while it is active. A disabled beeper
// accepts all calls without producing output.
type Beeper struct {
	mu     sync.Mutex
	ctx    *oto.Context
	player *oto.Player
	tone   *sound.Square
}

// NewBeeper opens the audio device and starts the tone player with a closed gate.
func NewBeeper() (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sound.DefaultSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	tone := sound.NewSquare(sound.DefaultSampleRate, sound.DefaultFrequency, sound.DefaultAmplitude)
	player := ctx.NewPlayer(tone)
	player.Play()

	return &Beeper{
		ctx:    ctx,
		player: player,
		tone:   tone,
	}, nil
}

// NewDisabled returns a beeper without audio output.
func NewDisabled() *Beeper {
	return &Beeper{}
}

// Open returns an enabled beeper unless muted, failures to open the audio
// device are logged and result in a disabled beeper.
func Open(logger *log.Logger, mute bool) *Beeper {
	if mute {
		return NewDisabled()
	}

	beeper, err := NewBeeper()
	if err != nil {
		logger.Warn("Audio disabled", log.Err(err))
		return NewDisabled()
	}
	return beeper
}

// SetActive starts or stops the tone.
func (b *Beeper) SetActive(active bool) {
	if b.tone == nil {
		return
	}
	b.tone.SetActive(active)
}

// Close stops the player.
func (b *Beeper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
