package host

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cwbudde/algo-sensorpipe/pipeline"
)

// Ticker is anything that runs one pipeline pass per call.
type Ticker interface {
	Tick() pipeline.Result
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithMaxTicks stops the scheduler after n ticks. Zero means unbounded.
func WithMaxTicks(n uint64) SchedulerOption {
	return func(s *Scheduler) { s.maxTicks = n }
}

// WithSchedulerLogger sets the scheduler's logger.
func WithSchedulerLogger(l *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scheduler calls Tick once per sample period from a single goroutine.
// Periods missed while a tick runs late are dropped, not replayed.
type Scheduler struct {
	period   time.Duration
	maxTicks uint64
	logger   *slog.Logger
	overruns uint64
}

// NewScheduler returns a scheduler for sampleRate ticks per second.
func NewScheduler(sampleRate float64, opts ...SchedulerOption) (*Scheduler, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("scheduler sample rate must be > 0: %f", sampleRate)
	}
	period := time.Duration(float64(time.Second) / sampleRate)
	if period <= 0 {
		return nil, fmt.Errorf("scheduler sample rate too high: %f", sampleRate)
	}

	s := &Scheduler{period: period, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Period returns the tick period.
func (s *Scheduler) Period() time.Duration { return s.period }

// Overruns returns how many ticks took longer than one period in the last
// Run.
func (s *Scheduler) Overruns() uint64 { return s.overruns }

// Run ticks t until ctx is done or the tick limit is reached. It returns
// the number of ticks performed. Cancellation is not an error.
func (s *Scheduler) Run(ctx context.Context, t Ticker) (uint64, error) {
	if t == nil {
		return 0, fmt.Errorf("scheduler: ticker is nil")
	}

	s.overruns = 0
	s.logger.Info("scheduler started", slog.Duration("period", s.period), slog.Uint64("max_ticks", s.maxTicks))

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	var n uint64
	for s.maxTicks == 0 || n < s.maxTicks {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", slog.Uint64("ticks", n), slog.Uint64("overruns", s.overruns))
			return n, nil
		case <-ticker.C:
		}

		start := time.Now()
		t.Tick()
		n++
		if time.Since(start) > s.period {
			s.overruns++
		}
	}

	s.logger.Info("scheduler finished", slog.Uint64("ticks", n), slog.Uint64("overruns", s.overruns))
	return n, nil
}
