package effectchain

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/dsp/effects"
)

func newDefault(t *testing.T) *Chain {
	t.Helper()
	noise, err := effects.NewNoiseInjector(1000, effects.WithNoiseSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	c, err := Default(noise)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	return c
}

func TestDefaultOrder(t *testing.T) {
	c := newDefault(t)
	want := []string{StageNoise, StageRectify, StageSaturate}
	if got := c.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
}

func TestDefaultRequiresNoise(t *testing.T) {
	if _, err := Default(nil); !errors.Is(err, ErrInvalidStage) {
		t.Fatalf("Default(nil) = %v, want ErrInvalidStage", err)
	}
}

func TestAllDisabledIsPassthrough(t *testing.T) {
	c := newDefault(t)
	cfg := config.Default()
	for _, x := range []float64{-7, -1, 0, 2.5, 9} {
		if got := c.Process(x, cfg); got != x {
			t.Fatalf("Process(%v) = %v, want passthrough", x, got)
		}
	}
}

func TestRectifyThenSaturate(t *testing.T) {
	c := newDefault(t)
	cfg := config.Default()
	cfg.Rectify = true
	cfg.Saturate = true
	cfg.VPP = 5

	if got := c.Process(-7, cfg); got != 5 {
		t.Fatalf("Process(-7) = %v, want 5", got)
	}
	if got := c.Process(-3, cfg); got != 3 {
		t.Fatalf("Process(-3) = %v, want 3", got)
	}
}

func TestSaturateOnly(t *testing.T) {
	c := newDefault(t)
	cfg := config.Default()
	cfg.Saturate = true
	if got := c.Process(-7, cfg); got != 0 {
		t.Fatalf("Process(-7) = %v, want 0", got)
	}
}

func TestNoiseThenSaturateStaysInRange(t *testing.T) {
	c := newDefault(t)
	cfg := config.Default()
	cfg.Noise = true
	cfg.Saturate = true
	cfg.SNR = 0.1
	for i := range 500 {
		y := c.Process(4.9, cfg)
		if y < 0 || y > cfg.VPP {
			t.Fatalf("sample %d: %v outside [0, %v]", i, y, cfg.VPP)
		}
	}
}

func TestOrderIsVisible(t *testing.T) {
	// Saturate before rectify gives a different answer than the default.
	sat := Stage{
		Name:    StageSaturate,
		Enabled: func(config.Config) bool { return true },
		Apply:   func(x float64, cfg config.Config) float64 { return effects.Saturate(x, cfg.VPP) },
	}
	rect := Stage{
		Name:    StageRectify,
		Enabled: func(config.Config) bool { return true },
		Apply:   func(x float64, _ config.Config) float64 { return effects.Rectify(x) },
	}
	c, err := New(sat, rect)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Process(-7, config.Default()); got != 0 {
		t.Fatalf("saturate-then-rectify(-7) = %v, want 0", got)
	}
	if got := c.Names(); !slices.Equal(got, []string{StageSaturate, StageRectify}) {
		t.Fatalf("Names() = %v", got)
	}
}

func TestActive(t *testing.T) {
	c := newDefault(t)
	cfg := config.Default()
	if got := c.Active(cfg); len(got) != 0 {
		t.Fatalf("Active() = %v, want none", got)
	}
	cfg.Noise = true
	cfg.Saturate = true
	if got := c.Active(cfg); !slices.Equal(got, []string{StageNoise, StageSaturate}) {
		t.Fatalf("Active() = %v", got)
	}
}

func TestNewValidation(t *testing.T) {
	ok := func(config.Config) bool { return true }
	id := func(x float64, _ config.Config) float64 { return x }

	tests := []struct {
		name   string
		stages []Stage
	}{
		{name: "empty name", stages: []Stage{{Enabled: ok, Apply: id}}},
		{name: "nil enabled", stages: []Stage{{Name: "a", Apply: id}}},
		{name: "nil apply", stages: []Stage{{Name: "a", Enabled: ok}}},
		{name: "duplicate", stages: []Stage{{Name: "a", Enabled: ok, Apply: id}, {Name: "a", Enabled: ok, Apply: id}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.stages...); !errors.Is(err, ErrInvalidStage) {
				t.Fatalf("New() = %v, want ErrInvalidStage", err)
			}
		})
	}

	c, err := New()
	if err != nil || c.Len() != 0 {
		t.Fatalf("empty chain: %v, %v", c, err)
	}
	if got := c.Process(math.Pi, config.Default()); got != math.Pi {
		t.Fatalf("empty chain Process = %v", got)
	}
}
