package effects

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-sensorpipe/dsp/signal"
)

const (
	noiseFreqLow  = 0.8
	noiseFreqHigh = 1.2
)

// NoiseOption mutates noise injector construction parameters.
type NoiseOption func(*noiseConfig) error

type noiseConfig struct {
	seed    int64
	seedSet bool
}

// WithNoiseSeed makes the random stream deterministic.
func WithNoiseSeed(seed int64) NoiseOption {
	return func(cfg *noiseConfig) error {
		cfg.seed = seed
		cfg.seedSet = true
		return nil
	}
}

// NoiseInjector adds interference to a sample. Each call draws a frequency
// uniformly from [0.8, 1.2] times the centre frequency and an amplitude a
// uniformly from [0, VPP], then adds the next sample of the injector's own
// oscillator at that frequency with amplitude (a/2)/SNR.
//
// Without [WithNoiseSeed] the stream is seeded from the system entropy source
// and differs between runs.
type NoiseInjector struct {
	osc  *signal.Oscillator
	rng  *rand.Rand
	seed int64
}

// NewNoiseInjector creates an injector whose oscillator runs at sampleRate.
func NewNoiseInjector(sampleRate float64, opts ...NoiseOption) (*NoiseInjector, error) {
	cfg := noiseConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	osc, err := signal.NewOscillator(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("noise injector: %w", err)
	}

	if !cfg.seedSet {
		cfg.seed, err = entropySeed()
		if err != nil {
			return nil, fmt.Errorf("noise injector seed: %w", err)
		}
	}

	return &NoiseInjector{
		osc:  osc,
		rng:  rand.New(rand.NewSource(cfg.seed)),
		seed: cfg.seed,
	}, nil
}

// Inject returns x plus one noise sample. A non-positive or non-finite snr
// disables injection and returns x unchanged; no random numbers are drawn.
func (n *NoiseInjector) Inject(x, centerHz, snr, vpp float64) float64 {
	if snr <= 0 || math.IsNaN(snr) || math.IsInf(snr, 0) {
		return x
	}
	freq := centerHz * (noiseFreqLow + (noiseFreqHigh-noiseFreqLow)*n.rng.Float64())
	amplitude := vpp * n.rng.Float64()
	return x + n.osc.Next(freq, (amplitude/2)/snr)
}

// Seed returns the seed of the random stream.
func (n *NoiseInjector) Seed() int64 { return n.seed }

// Reset restarts the random stream from the seed and the oscillator from
// phase 0.
func (n *NoiseInjector) Reset() {
	n.rng.Seed(n.seed)
	n.osc.Reset()
}

func entropySeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
