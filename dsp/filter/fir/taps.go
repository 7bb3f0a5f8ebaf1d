package fir

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// HighPassTapCount is the length of the [HighPass20] tap set.
const HighPassTapCount = 20

// highPass20 is a Hamming-windowed sinc high-pass designed offline for a
// 1 kHz sample rate: cutoff near 60 Hz, DC gain 0, unity passband from
// roughly 150 Hz to 400 Hz. Even length forces a zero at Nyquist.
var highPass20 = [HighPassTapCount]float64{
	-0.0014146877, 0.0042028539, -0.0100864758, 0.0041386311, -0.0487394133,
	-0.0041028100, -0.1367256504, 0.0111373060, -0.3195605848, 0.5011508309,
	0.5011508309, -0.3195605848, 0.0111373060, -0.1367256504, -0.0041028100,
	-0.0487394133, 0.0041386311, -0.0100864758, 0.0042028539, -0.0014146877,
}

// MovingAverage returns n taps equal to 1/n.
func MovingAverage(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("moving average tap count must be > 0: %d", n)
	}
	taps := make([]float64, n)
	for i := range taps {
		taps[i] = 1
	}
	vecmath.ScaleBlockInPlace(taps, 1/float64(n))
	return taps, nil
}

// HighPass20 returns a copy of the fixed 20-tap high-pass set.
func HighPass20() []float64 {
	taps := make([]float64, HighPassTapCount)
	copy(taps, highPass20[:])
	return taps
}

// DCGain returns the sum of the taps, the filter's response to a constant
// input.
func DCGain(taps []float64) float64 {
	return vecmath.Sum(taps)
}

// LoadTaps reads one coefficient per line. Blank lines and lines starting
// with '#' are skipped; anything after a '#' on a coefficient line is a
// comment.
func LoadTaps(r io.Reader) ([]float64, error) {
	var taps []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		c, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("fir taps line %d: %w", line, err)
		}
		taps = append(taps, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fir taps: %w", err)
	}
	if len(taps) == 0 {
		return nil, ErrNoTaps
	}
	return taps, nil
}
