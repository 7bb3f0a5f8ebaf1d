package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Resolution returns the number of distinct codes of a digitizer with the
// given bit depth (2^bits).
func Resolution(bits int) float64 {
	return math.Ldexp(1, bits)
}

// CountsToVolts converts a raw digitizer count to volts:
//
//	v = count * vpp / 2^bits
func CountsToVolts(count uint32, bits int, vpp float64) float64 {
	return float64(count) * vpp / Resolution(bits)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
