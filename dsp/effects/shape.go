package effects

import "github.com/cwbudde/algo-sensorpipe/dsp/core"

// Rectify replaces a negative sample with its absolute value and returns any
// other sample unchanged. Rectify is idempotent and never negative for
// non-NaN input.
func Rectify(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Saturate clamps x into [0, vpp]. Saturate is idempotent.
func Saturate(x, vpp float64) float64 {
	return core.Clamp(x, 0, vpp)
}
