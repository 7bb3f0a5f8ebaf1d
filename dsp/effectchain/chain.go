// Package effectchain applies the pipeline's signal-conditioning effects in
// an explicit, ordered list. The order is part of the chain's configuration
// ([Chain.Names]), not an artifact of call sites.
package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/dsp/effects"
)

// Stage names of the default chain.
const (
	StageNoise    = "noise"
	StageRectify  = "rectify"
	StageSaturate = "saturate"
)

// ErrInvalidStage is returned for stages with an empty or duplicate name or
// missing functions.
var ErrInvalidStage = errors.New("invalid effect stage")

// Stage is one named, individually toggleable transform.
type Stage struct {
	Name    string
	Enabled func(cfg config.Config) bool
	Apply   func(x float64, cfg config.Config) float64
}

// Chain is an immutable ordered list of stages.
type Chain struct {
	stages []Stage
}

// New builds a chain applying stages in the given order.
func New(stages ...Stage) (*Chain, error) {
	seen := make(map[string]struct{}, len(stages))
	for i, s := range stages {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: stage %d has no name", ErrInvalidStage, i)
		}
		if s.Enabled == nil || s.Apply == nil {
			return nil, fmt.Errorf("%w: stage %q is missing a function", ErrInvalidStage, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate stage %q", ErrInvalidStage, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return &Chain{stages: append([]Stage(nil), stages...)}, nil
}

// Default returns noise injection, rectification and saturation, in that
// order, each gated by its flag in the configuration snapshot.
func Default(noise *effects.NoiseInjector) (*Chain, error) {
	if noise == nil {
		return nil, fmt.Errorf("%w: nil noise injector", ErrInvalidStage)
	}
	return New(
		Stage{
			Name:    StageNoise,
			Enabled: func(cfg config.Config) bool { return cfg.Noise },
			Apply: func(x float64, cfg config.Config) float64 {
				return noise.Inject(x, cfg.NoiseCenterHz, cfg.SNR, cfg.VPP)
			},
		},
		Stage{
			Name:    StageRectify,
			Enabled: func(cfg config.Config) bool { return cfg.Rectify },
			Apply:   func(x float64, _ config.Config) float64 { return effects.Rectify(x) },
		},
		Stage{
			Name:    StageSaturate,
			Enabled: func(cfg config.Config) bool { return cfg.Saturate },
			Apply:   func(x float64, cfg config.Config) float64 { return effects.Saturate(x, cfg.VPP) },
		},
	)
}

// Process runs x through every enabled stage in order.
func (c *Chain) Process(x float64, cfg config.Config) float64 {
	for _, s := range c.stages {
		if s.Enabled(cfg) {
			x = s.Apply(x, cfg)
		}
	}
	return x
}

// Names returns the stage names in processing order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.Name
	}
	return names
}

// Active returns the names of the stages enabled by cfg, in order.
func (c *Chain) Active(cfg config.Config) []string {
	var names []string
	for _, s := range c.stages {
		if s.Enabled(cfg) {
			names = append(names, s.Name)
		}
	}
	return names
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }
