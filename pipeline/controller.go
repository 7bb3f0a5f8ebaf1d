// Package pipeline runs one acquisition-to-actuator pass per tick:
//
//	toggle -> source -> effect chain -> FIR (optional) -> sink -> actuator
//
// A [Controller] is driven by an external scheduler that calls [Controller.Tick]
// once per sample period from a single goroutine.
package pipeline

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/dsp/acquire"
	"github.com/cwbudde/algo-sensorpipe/dsp/effectchain"
	"github.com/cwbudde/algo-sensorpipe/dsp/filter/fir"
)

// Sink receives the computed sample stream, one value per tick.
type Sink interface {
	Publish(sample float64)
}

// Actuator is the binary output driven by the threshold comparison.
type Actuator interface {
	Set(high bool)
}

// ToggleInput is the external binary line read once per tick.
type ToggleInput interface {
	Read() bool
}

// Result describes one tick.
type Result struct {
	Index  uint64  `json:"index"`
	Sample float64 `json:"sample"`
	High   bool    `json:"high"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithToggle wires the external toggle line. The flag it drives is chosen
// by the Toggle field of the configuration.
func WithToggle(in ToggleInput) Option {
	return func(c *Controller) { c.toggle = in }
}

// WithFilter supplies a prebuilt FIR engine instead of building one from the
// configuration.
func WithFilter(f *fir.Filter) Option {
	return func(c *Controller) { c.filter = f }
}

// WithLogger sets the logger used for toggle and actuator transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller orchestrates the per-tick pipeline. It has no error states:
// everything that can fail does so in New.
type Controller struct {
	store  *config.Store
	source acquire.Source
	chain  *effectchain.Chain
	filter *fir.Filter
	sink   Sink
	act    Actuator
	toggle ToggleInput
	logger *slog.Logger

	ticks    uint64
	lastHigh bool

	mu   sync.Mutex
	last Result
	done uint64
	warm bool
}

// New builds a controller. Unless WithFilter is given, the FIR engine is
// built from the current configuration and a tap set that does not match
// the declared tap count is an error.
func New(store *config.Store, source acquire.Source, chain *effectchain.Chain, sink Sink, act Actuator, opts ...Option) (*Controller, error) {
	if store == nil || source == nil || chain == nil || sink == nil || act == nil {
		return nil, fmt.Errorf("pipeline: store, source, chain, sink and actuator are required")
	}

	c := &Controller{
		store:  store,
		source: source,
		chain:  chain,
		sink:   sink,
		act:    act,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.filter == nil {
		f, err := NewFilter(store.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		c.filter = f
	}

	return c, nil
}

// Tick runs one full pipeline pass and returns its result.
func (c *Controller) Tick() Result {
	if c.toggle != nil {
		target := c.store.Snapshot().Toggle
		on := c.toggle.Read()
		if c.store.SetFlag(target, on) {
			c.logger.Info("toggle", slog.String("target", target.String()), slog.Bool("on", on))
		}
	}

	cfg := c.store.Snapshot()

	x := c.source.Next(cfg)
	x = c.chain.Process(x, cfg)
	if cfg.Filter {
		x = c.filter.ProcessSample(x)
	}

	c.sink.Publish(x)

	high := x > cfg.Threshold
	c.act.Set(high)
	if high != c.lastHigh {
		c.logger.Debug("actuator", slog.Bool("high", high), slog.Uint64("tick", c.ticks), slog.Float64("sample", x))
		c.lastHigh = high
	}

	r := Result{Index: c.ticks, Sample: x, High: high}
	c.ticks++

	warm := c.filter.Warm()
	c.mu.Lock()
	c.last = r
	c.done = c.ticks
	c.warm = warm
	c.mu.Unlock()

	return r
}

// Last returns the most recent result. It is safe to call from any
// goroutine.
func (c *Controller) Last() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Ticks returns the number of completed ticks. It is safe to call from any
// goroutine.
func (c *Controller) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Warm reports whether the FIR window was full after the last tick. It is
// safe to call from any goroutine.
func (c *Controller) Warm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.warm
}

// Filter returns the controller's FIR engine. It must only be used from
// the ticking goroutine.
func (c *Controller) Filter() *fir.Filter { return c.filter }

// Store returns the configuration store read by every tick.
func (c *Controller) Store() *config.Store { return c.store }
