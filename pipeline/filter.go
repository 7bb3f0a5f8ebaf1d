package pipeline

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/dsp/filter/fir"
)

// NewFilter builds the FIR engine selected by cfg: TapCount taps of the
// chosen set. The high-pass set only exists with 20 taps and a tap file
// must hold exactly TapCount coefficients; anything else is refused.
func NewFilter(cfg config.Config) (*fir.Filter, error) {
	taps, err := Taps(cfg)
	if err != nil {
		return nil, err
	}
	return fir.New(cfg.TapCount, taps)
}

// Taps resolves the coefficient set selected by cfg.
func Taps(cfg config.Config) ([]float64, error) {
	switch cfg.Taps {
	case config.TapsMovingAverage:
		return fir.MovingAverage(cfg.TapCount)
	case config.TapsHighPass:
		return fir.HighPass20(), nil
	case config.TapsFile:
		f, err := os.Open(cfg.TapFile)
		if err != nil {
			return nil, fmt.Errorf("tap file: %w", err)
		}
		defer f.Close()
		taps, err := fir.LoadTaps(f)
		if err != nil {
			return nil, fmt.Errorf("tap file %s: %w", cfg.TapFile, err)
		}
		return taps, nil
	default:
		return nil, fmt.Errorf("%w: tap set is invalid: %d", config.ErrInvalidConfig, cfg.Taps)
	}
}
