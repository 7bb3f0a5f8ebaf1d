package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sensorpipe/dsp/buffer"
)

var (
	// ErrNoTaps is returned when a filter is built from an empty tap set.
	ErrNoTaps = errors.New("fir: empty tap set")

	// ErrTapCountMismatch is returned when the tap set length differs from
	// the declared tap count.
	ErrTapCountMismatch = errors.New("fir: tap count mismatch")
)

// Filter is a moving-window FIR engine. It keeps the N most recent inputs
// in a ring and convolves them with N taps:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
//
// Until N inputs have been received the filter is warming up and outputs 0.
// The N-th input already produces a full convolution.
//
// Outputs are ordinary float64 sums. A moving average over a constant v is
// exactly v when N is a power of two; for other N it may land a few ulps
// above or below v (N=10, v=3.3 gives 3.3000000000000003). Callers
// comparing the output against a threshold equal to v see that rounding.
type Filter struct {
	taps   []float64
	window *buffer.Ring
}

// New creates a filter declaring tapCount taps. The coefficients are copied.
// A tap set whose length differs from tapCount is rejected rather than
// truncated or padded.
func New(tapCount int, taps []float64) (*Filter, error) {
	if len(taps) == 0 {
		return nil, ErrNoTaps
	}
	if tapCount != len(taps) {
		return nil, fmt.Errorf("%w: declared %d, got %d coefficients", ErrTapCountMismatch, tapCount, len(taps))
	}
	for i, c := range taps {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("fir tap %d must be finite: %f", i, c)
		}
	}

	window, err := buffer.NewRing(tapCount)
	if err != nil {
		return nil, err
	}

	c := make([]float64, len(taps))
	copy(c, taps)
	return &Filter{taps: c, window: window}, nil
}

// ProcessSample pushes x into the window and returns the filtered sample,
// or 0 while the window is still filling.
func (f *Filter) ProcessSample(x float64) float64 {
	f.window.Push(x)
	if !f.window.Full() {
		return 0
	}
	return vecmath.DotProduct(f.window.Window(), f.taps)
}

// ProcessBlock filters a block of samples in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Warm reports whether the window is full and outputs are convolutions.
func (f *Filter) Warm() bool {
	return f.window.Full()
}

// Reset empties the window; the filter warms up again.
func (f *Filter) Reset() {
	f.window.Reset()
}

// TapCount returns N.
func (f *Filter) TapCount() int {
	return len(f.taps)
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	c := make([]float64, len(f.taps))
	copy(c, f.taps)
	return c
}

// Response computes the complex frequency response H(e^{-jw}) at the given
// frequency (Hz) and sample rate (Hz).
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	return response(f.taps, freqHz, sampleRate)
}

// MagnitudeDB returns the magnitude response in dB at the given frequency.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

func response(taps []float64, freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	var h complex128
	for k, c := range taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}
	return h
}
