// Package sound generates the tone played while the sound timer is active.
package sound

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Default tone settings.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440
	DefaultAmplitude  = 0.2
)

// bytesPerSample is the size of a mono float32 sample.
const bytesPerSample = 4

// Square is an io.Reader producing a gated square wave as little endian
// float32 mono samples. The gate can be toggled from any goroutine.
type Square struct {
	gate atomic.Bool

	amplitude float32
	period    float64 // samples per wave cycle
	phase     float64 // position within the current cycle in samples
}

// NewSquare returns a new generator, zero values select the defaults.
func NewSquare(sampleRate, frequency int, amplitude float32) *Square {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if frequency <= 0 {
		frequency = DefaultFrequency
	}
	if amplitude <= 0 {
		amplitude = DefaultAmplitude
	}

	return &Square{
		amplitude: amplitude,
		period:    float64(sampleRate) / float64(frequency),
	}
}

// SetActive opens or closes the tone gate.
func (s *Square) SetActive(active bool) {
	s.gate.Store(active)
}

// Active returns whether the tone gate is open.
func (s *Square) Active() bool {
	return s.gate.Load()
}

// Read fills p with samples, silence is produced while the gate is closed.
// Only whole samples are written.
func (s *Square) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	active := s.gate.Load()

	for i := range samples {
		var value float32
		if active {
			value = s.amplitude
			if s.phase >= s.period/2 {
				value = -s.amplitude
			}
		}
		s.phase = math.Mod(s.phase+1, s.period)
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(value))
	}
	return samples * bytesPerSample, nil
}
