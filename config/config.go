// Package config holds the pipeline configuration surface: acquisition mode,
// per-effect enable flags, numeric parameters, the tap set selection and the
// binding of the external toggle line.
//
// A [Config] is a plain value. The running pipeline reads it through a
// [Store], which hands out one consistent snapshot per tick and applies
// changes only through [Store.Update] and [Store.SetFlag].
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

const (
	minBitsPerSample = 1
	maxBitsPerSample = 32
)

// Config is the complete pipeline configuration.
type Config struct {
	Mode Mode `json:"mode"`

	Noise    bool `json:"noise"`
	Rectify  bool `json:"rectify"`
	Saturate bool `json:"saturate"`
	Filter   bool `json:"filter"`

	NoiseCenterHz  float64 `json:"noise_center_hz"`
	SNR            float64 `json:"snr"`
	EmulatorFreqHz float64 `json:"emulator_freq_hz"`
	SampleRate     float64 `json:"sample_rate"`
	Threshold      float64 `json:"threshold"`
	VPP            float64 `json:"vpp"`
	BitsPerSample  int     `json:"bits_per_sample"`

	TapCount int    `json:"tap_count"`
	Taps     TapSet `json:"taps"`
	TapFile  string `json:"tap_file,omitempty"`

	Toggle ToggleTarget `json:"toggle"`
}

// Default returns the configuration of a bench setup: a 5 Hz synthetic sine
// sampled at 1 kHz on a 5 V, 10-bit channel, every effect off, a 10-tap
// moving average selected, and the toggle line bound to the filter.
func Default() Config {
	return Config{
		Mode:           ModeSynthetic,
		NoiseCenterHz:  150,
		SNR:            10,
		EmulatorFreqHz: 5,
		SampleRate:     1000,
		Threshold:      2.5,
		VPP:            5,
		BitsPerSample:  10,
		TapCount:       10,
		Taps:           TapsMovingAverage,
		Toggle:         ToggleFilter,
	}
}

// Flag returns the enable flag bound to target. ToggleNone reports false.
func (c Config) Flag(target ToggleTarget) bool {
	switch target {
	case ToggleNoise:
		return c.Noise
	case ToggleRectify:
		return c.Rectify
	case ToggleSaturate:
		return c.Saturate
	case ToggleFilter:
		return c.Filter
	default:
		return false
	}
}

// SetFlag sets the enable flag bound to target. ToggleNone is a no-op.
func (c *Config) SetFlag(target ToggleTarget, on bool) {
	switch target {
	case ToggleNoise:
		c.Noise = on
	case ToggleRectify:
		c.Rectify = on
	case ToggleSaturate:
		c.Saturate = on
	case ToggleFilter:
		c.Filter = on
	}
}

// Validate reports the first configuration error.
//
//nolint:cyclop
func (c Config) Validate() error {
	if !c.Mode.valid() {
		return fmt.Errorf("%w: acquisition mode is invalid: %d", ErrInvalidConfig, c.Mode)
	}
	if !positiveFinite(c.SampleRate) {
		return fmt.Errorf("%w: sample rate must be > 0 and finite: %f", ErrInvalidConfig, c.SampleRate)
	}
	if !positiveFinite(c.VPP) {
		return fmt.Errorf("%w: vpp must be > 0 and finite: %f", ErrInvalidConfig, c.VPP)
	}
	if c.BitsPerSample < minBitsPerSample || c.BitsPerSample > maxBitsPerSample {
		return fmt.Errorf("%w: bits per sample must be in [%d, %d]: %d",
			ErrInvalidConfig, minBitsPerSample, maxBitsPerSample, c.BitsPerSample)
	}
	if c.SNR < 0 || !finite(c.SNR) {
		return fmt.Errorf("%w: snr must be >= 0 and finite: %f", ErrInvalidConfig, c.SNR)
	}
	if !finite(c.NoiseCenterHz) {
		return fmt.Errorf("%w: noise centre frequency must be finite: %f", ErrInvalidConfig, c.NoiseCenterHz)
	}
	if !finite(c.EmulatorFreqHz) {
		return fmt.Errorf("%w: emulator frequency must be finite: %f", ErrInvalidConfig, c.EmulatorFreqHz)
	}
	if !finite(c.Threshold) {
		return fmt.Errorf("%w: threshold must be finite: %f", ErrInvalidConfig, c.Threshold)
	}
	if c.TapCount < 1 {
		return fmt.Errorf("%w: tap count must be >= 1: %d", ErrInvalidConfig, c.TapCount)
	}
	if !c.Taps.valid() {
		return fmt.Errorf("%w: tap set is invalid: %d", ErrInvalidConfig, c.Taps)
	}
	if c.Taps == TapsFile && c.TapFile == "" {
		return fmt.Errorf("%w: tap set %q needs a tap file", ErrInvalidConfig, c.Taps)
	}
	if !c.Toggle.valid() {
		return fmt.Errorf("%w: toggle target is invalid: %d", ErrInvalidConfig, c.Toggle)
	}
	return nil
}

// Warnings lists accepted but degraded settings, such as frequencies that
// alias at the configured sample rate.
func (c Config) Warnings() []string {
	var w []string
	nyquist := c.SampleRate / 2
	if c.Mode == ModeSynthetic && (c.EmulatorFreqHz <= 0 || c.EmulatorFreqHz > nyquist) {
		w = append(w, fmt.Sprintf("emulator frequency %g Hz is outside (0, %g] and will alias", c.EmulatorFreqHz, nyquist))
	}
	if c.SNR > 0 && (c.NoiseCenterHz <= 0 || c.NoiseCenterHz*1.2 > nyquist) {
		w = append(w, fmt.Sprintf("noise band around %g Hz reaches beyond %g Hz and will alias", c.NoiseCenterHz, nyquist))
	}
	return w
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func positiveFinite(x float64) bool {
	return x > 0 && finite(x)
}
