package config

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if len(cfg.Warnings()) != 0 {
		t.Fatalf("Default() warnings = %v", cfg.Warnings())
	}
	if cfg.Noise || cfg.Rectify || cfg.Saturate || cfg.Filter {
		t.Fatalf("Default() enables effects: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "sample rate", mutate: func(c *Config) { c.SampleRate = 0 }},
		{name: "sample rate nan", mutate: func(c *Config) { c.SampleRate = math.NaN() }},
		{name: "vpp", mutate: func(c *Config) { c.VPP = -5 }},
		{name: "bits low", mutate: func(c *Config) { c.BitsPerSample = 0 }},
		{name: "bits high", mutate: func(c *Config) { c.BitsPerSample = 33 }},
		{name: "snr", mutate: func(c *Config) { c.SNR = -1 }},
		{name: "threshold", mutate: func(c *Config) { c.Threshold = math.Inf(1) }},
		{name: "noise centre", mutate: func(c *Config) { c.NoiseCenterHz = math.NaN() }},
		{name: "emulator", mutate: func(c *Config) { c.EmulatorFreqHz = math.Inf(-1) }},
		{name: "tap count", mutate: func(c *Config) { c.TapCount = 0 }},
		{name: "tap file", mutate: func(c *Config) { c.Taps = TapsFile }},
		{name: "mode", mutate: func(c *Config) { c.Mode = Mode(9) }},
		{name: "taps", mutate: func(c *Config) { c.Taps = TapSet(-1) }},
		{name: "toggle", mutate: func(c *Config) { c.Toggle = ToggleTarget(42) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWarningsForAliasing(t *testing.T) {
	cfg := Default()
	cfg.EmulatorFreqHz = 700
	cfg.NoiseCenterHz = 450
	w := cfg.Warnings()
	if len(w) != 2 {
		t.Fatalf("warnings = %v, want 2", w)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("aliasing must not be a validation error: %v", err)
	}
}

func TestFlagRoundTrip(t *testing.T) {
	for _, target := range []ToggleTarget{ToggleNoise, ToggleRectify, ToggleSaturate, ToggleFilter} {
		cfg := Default()
		cfg.SetFlag(target, true)
		if !cfg.Flag(target) {
			t.Fatalf("%v: flag not set", target)
		}
		for _, other := range []ToggleTarget{ToggleNoise, ToggleRectify, ToggleSaturate, ToggleFilter} {
			if other != target && cfg.Flag(other) {
				t.Fatalf("setting %v also set %v", target, other)
			}
		}
	}

	cfg := Default()
	cfg.SetFlag(ToggleNone, true)
	if cfg != Default() {
		t.Fatal("ToggleNone changed the config")
	}
	if cfg.Flag(ToggleNone) {
		t.Fatal("ToggleNone reported true")
	}
}

func TestEnumParsing(t *testing.T) {
	if m, err := ParseMode(" Physical "); err != nil || m != ModePhysical {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if s, err := ParseTapSet("high-pass"); err != nil || s != TapsHighPass {
		t.Fatalf("ParseTapSet = %v, %v", s, err)
	}
	if tg, err := ParseToggleTarget("saturate"); err != nil || tg != ToggleSaturate {
		t.Fatalf("ParseToggleTarget = %v, %v", tg, err)
	}
	if _, err := ParseToggleTarget("volume"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown target: err = %v", err)
	}
	if got := ToggleTarget(17).String(); got != "unknown(17)" {
		t.Fatalf("String() = %q", got)
	}
	if len(ToggleTargets()) != 5 {
		t.Fatalf("ToggleTargets() = %v", ToggleTargets())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Mode = ModePhysical
	cfg.Taps = TapsHighPass
	cfg.TapCount = 20
	cfg.Toggle = ToggleNoise
	cfg.Rectify = true

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{`"mode":"physical"`, `"taps":"high-pass"`, `"toggle":"noise"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("json %s missing %s", data, want)
		}
	}

	got, err := Load(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	cfg, err := Load(strings.NewReader(`{"threshold": 1.5, "saturate": true}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.Threshold = 1.5
	want.Saturate = true
	if cfg != want {
		t.Fatalf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, in := range []string{
		`{"volume": 3}`,
		`{"mode": "quantum"}`,
		`{"vpp": 0}`,
		`not json`,
	} {
		if _, err := Load(strings.NewReader(in)); err == nil {
			t.Errorf("Load(%s): expected error", in)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe.json")
	if err := os.WriteFile(path, []byte(`{"emulator_freq_hz": 12}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.EmulatorFreqHz != 12 {
		t.Fatalf("EmulatorFreqHz = %v, want 12", cfg.EmulatorFreqHz)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore(Default())

	if err := s.Update(func(c *Config) { c.Threshold = 1 }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := s.Snapshot().Threshold; got != 1 {
		t.Fatalf("Threshold = %v, want 1", got)
	}

	err := s.Update(func(c *Config) {
		c.Threshold = 3
		c.VPP = 0
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("invalid Update() = %v, want ErrInvalidConfig", err)
	}
	if snap := s.Snapshot(); snap.Threshold != 1 || snap.VPP != 5 {
		t.Fatalf("rejected update leaked: %+v", snap)
	}
}

func TestStoreSnapshotIsCopy(t *testing.T) {
	s := NewStore(Default())
	snap := s.Snapshot()
	snap.Filter = true
	if s.Snapshot().Filter {
		t.Fatal("mutating a snapshot changed the store")
	}
}

func TestStoreSetFlag(t *testing.T) {
	s := NewStore(Default())
	if !s.SetFlag(ToggleFilter, true) {
		t.Fatal("first SetFlag reported no change")
	}
	if s.SetFlag(ToggleFilter, true) {
		t.Fatal("repeated SetFlag reported a change")
	}
	if s.SetFlag(ToggleNone, true) {
		t.Fatal("ToggleNone reported a change")
	}
	if !s.Snapshot().Filter {
		t.Fatal("filter flag not set")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(Default())
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 200 {
				if i%2 == 0 {
					s.SetFlag(ToggleNoise, j%2 == 0)
				} else {
					_ = s.Snapshot()
				}
			}
		}()
	}
	wg.Wait()
}
