// Package acquire provides the pipeline's sample sources. A [Source] yields
// one sample in volts per call and never fails: [Physical] converts digitizer
// counts, [Synthetic] runs a sine oscillator. Every call receives the
// configuration snapshot of the current tick.
package acquire

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/dsp/core"
	"github.com/cwbudde/algo-sensorpipe/dsp/signal"
)

// Source produces one sample per tick from that tick's configuration.
type Source interface {
	Next(cfg config.Config) float64
}

// Digitizer reads one raw count from an analog input.
type Digitizer interface {
	ReadCount() uint32
}

// DigitizerFunc adapts a function to Digitizer.
type DigitizerFunc func() uint32

// ReadCount calls f.
func (f DigitizerFunc) ReadCount() uint32 { return f() }

// Physical converts digitizer counts to volts: count * VPP / 2^bits.
// Readings fall in [0, VPP) by construction of the digitizer.
type Physical struct {
	dig  Digitizer
	bits int
	vpp  float64
	mask uint32
}

// NewPhysical wraps dig, a digitizer with the given bit resolution and
// full-scale voltage.
func NewPhysical(dig Digitizer, bits int, vpp float64) (*Physical, error) {
	if dig == nil {
		return nil, fmt.Errorf("physical source needs a digitizer")
	}
	if bits < 1 || bits > 32 {
		return nil, fmt.Errorf("physical source bits must be in [1, 32]: %d", bits)
	}
	if vpp <= 0 || math.IsNaN(vpp) || math.IsInf(vpp, 0) {
		return nil, fmt.Errorf("physical source vpp must be > 0 and finite: %f", vpp)
	}
	return &Physical{dig: dig, bits: bits, vpp: vpp, mask: countMask(bits)}, nil
}

// Next reads one count and returns it in volts. Bits above the declared
// resolution are ignored. The resolution and VPP fixed at construction are
// used; cfg is ignored.
func (p *Physical) Next(config.Config) float64 {
	return core.CountsToVolts(p.dig.ReadCount()&p.mask, p.bits, p.vpp)
}

// Synthetic emulates the sensor with a sine of amplitude VPP/2 at the
// configured emulator frequency. With rectification disabled a VPP/2 offset
// centres the wave in [0, VPP]; with rectification enabled the wave stays
// centred on 0 and the rectify effect folds the negative half.
//
// Frequency, VPP and the rectify flag come from the snapshot passed to
// Next, so changes apply from the next tick.
type Synthetic struct {
	osc *signal.Oscillator
}

// NewSynthetic returns a synthetic source at phase 0.
func NewSynthetic(sampleRate float64) (*Synthetic, error) {
	osc, err := signal.NewOscillator(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("synthetic source: %w", err)
	}
	return &Synthetic{osc: osc}, nil
}

// Next returns the next emulated sample for cfg.
func (s *Synthetic) Next(cfg config.Config) float64 {
	half := cfg.VPP / 2
	x := s.osc.Next(cfg.EmulatorFreqHz, half)
	if !cfg.Rectify {
		x += half
	}
	return x
}

// Reset restarts the emulated wave at phase 0.
func (s *Synthetic) Reset() { s.osc.Reset() }

// New builds the source selected by cfg.Mode. dig is required for
// ModePhysical and ignored otherwise.
func New(cfg config.Config, dig Digitizer) (Source, error) {
	switch cfg.Mode {
	case config.ModeSynthetic:
		return NewSynthetic(cfg.SampleRate)
	case config.ModePhysical:
		return NewPhysical(dig, cfg.BitsPerSample, cfg.VPP)
	default:
		return nil, fmt.Errorf("%w: acquisition mode is invalid: %d", config.ErrInvalidConfig, cfg.Mode)
	}
}

func countMask(bits int) uint32 {
	if bits >= 32 {
		return math.MaxUint32
	}
	return 1<<uint(bits) - 1
}
