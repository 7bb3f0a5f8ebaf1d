package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sensorpipe/internal/testutil"
)

func TestNewOscillatorValidation(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewOscillator(sr); err == nil {
			t.Fatalf("expected error for sample rate %v", sr)
		}
	}
}

func TestOscillatorStartsAtZero(t *testing.T) {
	o, err := NewOscillator(1000)
	if err != nil {
		t.Fatal(err)
	}
	if got := o.Next(5, 2.5); got != 0 {
		t.Fatalf("first sample = %v, want 0", got)
	}
}

func TestOscillatorFullPeriod(t *testing.T) {
	tests := []struct {
		freq, rate float64
	}{
		{freq: 5, rate: 1000},
		{freq: 100, rate: 1000},
		{freq: 1000, rate: 48000},
		{freq: 250, rate: 1000},
	}

	for _, tt := range tests {
		o, err := NewOscillator(tt.rate)
		if err != nil {
			t.Fatal(err)
		}
		n := int(tt.rate / tt.freq)
		out := make([]float64, n+1)
		for i := range out {
			out[i] = o.Next(tt.freq, 1.5)
		}
		if math.Abs(out[n]-out[0]) > 1e-9 {
			t.Errorf("f=%v fs=%v: out[%d]=%v, out[0]=%v", tt.freq, tt.rate, n, out[n], out[0])
		}
	}
}

func TestOscillatorMatchesDirectSine(t *testing.T) {
	o, err := NewOscillator(48000)
	if err != nil {
		t.Fatal(err)
	}
	want := testutil.DeterministicSine(440, 48000, 0.8, 256)
	got := make([]float64, len(want))
	for i := range got {
		got[i] = o.Next(440, 0.8)
	}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
}

func TestOscillatorPhaseStaysWrapped(t *testing.T) {
	o, err := NewOscillator(1000)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []float64{-300, 0, 499, 501, 1700, 1e6} {
		for range 100 {
			o.Next(f, 1)
			if p := o.Phase(); p < 0 || p >= 2*math.Pi {
				t.Fatalf("f=%v: phase %v outside [0, 2pi)", f, p)
			}
		}
	}
}

func TestOscillatorAliasing(t *testing.T) {
	// f and fs-f produce mirrored sines at fs.
	a, _ := NewOscillator(1000)
	b, _ := NewOscillator(1000)
	for i := range 50 {
		x := a.Next(100, 1)
		y := b.Next(900, 1)
		if math.Abs(x+y) > 1e-9 {
			t.Fatalf("sample %d: f=100 -> %v, f=900 -> %v, want mirrored", i, x, y)
		}
	}
}

func TestOscillatorSetPhaseAndReset(t *testing.T) {
	o, _ := NewOscillator(1000)
	o.SetPhase(math.Pi / 2)
	if got := o.Next(0, 2); math.Abs(got-2) > 1e-12 {
		t.Fatalf("sample at pi/2 = %v, want 2", got)
	}
	o.SetPhase(-math.Pi / 2)
	if p := o.Phase(); math.Abs(p-1.5*math.Pi) > 1e-12 {
		t.Fatalf("phase = %v, want 3pi/2", p)
	}
	o.Reset()
	if o.Phase() != 0 {
		t.Fatalf("phase after Reset = %v, want 0", o.Phase())
	}
	if o.SampleRate() != 1000 {
		t.Fatalf("SampleRate = %v, want 1000", o.SampleRate())
	}
}
