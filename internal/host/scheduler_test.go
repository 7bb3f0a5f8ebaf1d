package host

import (
	"context"
	"testing"
	"time"

	"github.com/cwbudde/algo-sensorpipe/pipeline"
)

type countTicker struct{ n int }

func (c *countTicker) Tick() pipeline.Result {
	c.n++
	return pipeline.Result{Index: uint64(c.n - 1)}
}

func TestNewSchedulerValidates(t *testing.T) {
	for _, sr := range []float64{0, -1} {
		if _, err := NewScheduler(sr); err == nil {
			t.Fatalf("NewScheduler(%v) expected error", sr)
		}
	}
	s, err := NewScheduler(1000)
	if err != nil {
		t.Fatal(err)
	}
	if s.Period() != time.Millisecond {
		t.Fatalf("Period() = %v, want 1ms", s.Period())
	}
}

func TestSchedulerMaxTicks(t *testing.T) {
	s, err := NewScheduler(2000, WithMaxTicks(25))
	if err != nil {
		t.Fatal(err)
	}
	tk := &countTicker{}
	n, err := s.Run(context.Background(), tk)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n != 25 || tk.n != 25 {
		t.Fatalf("ran %d (ticker saw %d), want 25", n, tk.n)
	}
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	s, err := NewScheduler(1000)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	tk := &countTicker{}
	n, err := s.Run(ctx, tk)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n == 0 || int(n) != tk.n {
		t.Fatalf("ticks = %d, ticker saw %d", n, tk.n)
	}
}

func TestSchedulerNilTicker(t *testing.T) {
	s, _ := NewScheduler(1000)
	if _, err := s.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil ticker")
	}
}
