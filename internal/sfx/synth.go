// Package sfx synthesizes the short tones used as sound effects.
package sfx

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate = 44100

	bytesPerSample = 2
	channels       = 2
	frameBytes     = bytesPerSample * channels

	startGain = 0.1
	endGain   = 0.01
)

// Wave is an oscillator shape.
type Wave int

const (
	Sine Wave = iota
	Square
	Sawtooth
	Triangle
)

func (w Wave) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Tone describes one synthesized effect.
type Tone struct {
	Freq     float64 // Hz
	Wave     Wave
	Duration float64 // seconds
}

// Frames is the number of stereo frames the tone renders to.
func (t Tone) Frames() int {
	if t.Duration <= 0 {
		return 0
	}
	return int(math.Round(t.Duration * SampleRate))
}

// oscillate returns the raw waveform in [-1,1] at the given phase, where one
// period spans phase [0,1).
func oscillate(w Wave, phase float64) float64 {
	phase -= math.Floor(phase)
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope decays exponentially from startGain to endGain over the tone.
func envelope(i, n int) float64 {
	if n <= 1 {
		return startGain
	}
	frac := float64(i) / float64(n-1)
	return startGain * math.Pow(endGain/startGain, frac)
}

// Sample returns the enveloped mono sample for frame i.
func (t Tone) Sample(i int) float64 {
	phase := t.Freq * float64(i) / SampleRate
	return oscillate(t.Wave, phase) * envelope(i, t.Frames())
}

// PCM renders the tone as 16-bit little-endian stereo.
func (t Tone) PCM() []byte {
	n := t.Frames()
	out := make([]byte, n*frameBytes)
	for i := 0; i < n; i++ {
		v := uint16(int16(t.Sample(i) * math.MaxInt16))
		off := i * frameBytes
		binary.LittleEndian.PutUint16(out[off:], v)
		binary.LittleEndian.PutUint16(out[off+bytesPerSample:], v)
	}
	return out
}
