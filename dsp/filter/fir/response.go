package fir

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ResponsePoint is one bin of a tap set's frequency response.
type ResponsePoint struct {
	FreqHz      float64
	Magnitude   float64
	MagnitudeDB float64
	PhaseRad    float64
}

// FrequencyResponse evaluates taps on fftSize/2+1 bins from DC to Nyquist
// by zero-padding them into an FFT of fftSize points. fftSize must be at
// least len(taps).
func FrequencyResponse(taps []float64, fftSize int, sampleRate float64) ([]ResponsePoint, error) {
	if len(taps) == 0 {
		return nil, ErrNoTaps
	}
	if fftSize < len(taps) || fftSize < 2 {
		return nil, fmt.Errorf("fir response fft size must be >= %d: %d", max(len(taps), 2), fftSize)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("fir response sample rate must be > 0 and finite: %f", sampleRate)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("fir response: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, c := range taps {
		in[i] = complex(c, 0)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("fir response: %w", err)
	}

	bins := fftSize/2 + 1
	points := make([]ResponsePoint, bins)
	for k := range points {
		mag := cmplx.Abs(out[k])
		points[k] = ResponsePoint{
			FreqHz:      float64(k) * sampleRate / float64(fftSize),
			Magnitude:   mag,
			MagnitudeDB: 20 * math.Log10(mag),
			PhaseRad:    cmplx.Phase(out[k]),
		}
	}
	return points, nil
}
