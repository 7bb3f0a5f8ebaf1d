package signal

import (
	"fmt"
	"math"
)

const twoPi = 2 * math.Pi

// Oscillator is a phase-accumulating sine source running at a fixed sample
// rate. Each call to Next returns one sample and advances the phase by
// 2*pi*f/fs, wrapped into [0, 2*pi).
//
// Frequencies at or below zero, or above fs/2, are accepted and alias; this
// is observable behavior, not a fault.
//
// An Oscillator is not safe for concurrent use.
type Oscillator struct {
	sampleRate float64
	phase      float64
}

// NewOscillator returns an oscillator at phase 0 for the given sample rate.
func NewOscillator(sampleRate float64) (*Oscillator, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("oscillator sample rate must be > 0 and finite: %f", sampleRate)
	}
	return &Oscillator{sampleRate: sampleRate}, nil
}

// Next returns amplitude*sin(phase) and advances the phase for freqHz.
func (o *Oscillator) Next(freqHz, amplitude float64) float64 {
	y := amplitude * math.Sin(o.phase)
	o.phase = wrapPhase(o.phase + twoPi*freqHz/o.sampleRate)
	return y
}

// Phase returns the current phase in radians, in [0, 2*pi).
func (o *Oscillator) Phase() float64 { return o.phase }

// SetPhase sets the phase in radians. The value is wrapped into [0, 2*pi).
func (o *Oscillator) SetPhase(rad float64) {
	o.phase = wrapPhase(rad)
}

// Reset returns the oscillator to phase 0.
func (o *Oscillator) Reset() { o.phase = 0 }

// SampleRate returns the sample rate in Hz.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

func wrapPhase(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	p = math.Mod(p, twoPi)
	if p < 0 {
		p += twoPi
	}
	return p
}
