package host

import (
	"log/slog"
	"sync/atomic"
)

// LogActuator holds the actuator line level and logs every transition.
type LogActuator struct {
	logger      *slog.Logger
	high        atomic.Bool
	transitions atomic.Uint64
}

// NewLogActuator returns an actuator starting low. A nil logger discards.
func NewLogActuator(logger *slog.Logger) *LogActuator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LogActuator{logger: logger}
}

// Set implements pipeline.Actuator.
func (a *LogActuator) Set(high bool) {
	if a.high.Swap(high) == high {
		return
	}
	a.transitions.Add(1)
	a.logger.Info("actuator line", slog.Bool("high", high))
}

// High reports the current line level.
func (a *LogActuator) High() bool { return a.high.Load() }

// Transitions returns how many times the level changed.
func (a *LogActuator) Transitions() uint64 { return a.transitions.Load() }
