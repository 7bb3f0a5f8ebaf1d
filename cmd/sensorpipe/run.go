package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/cwbudde/algo-sensorpipe/dsp/acquire"
	"github.com/cwbudde/algo-sensorpipe/dsp/effectchain"
	"github.com/cwbudde/algo-sensorpipe/dsp/effects"
	"github.com/cwbudde/algo-sensorpipe/internal/host"
	"github.com/cwbudde/algo-sensorpipe/internal/monitor"
	"github.com/cwbudde/algo-sensorpipe/pipeline"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type runOptions struct {
	ticks    uint64
	out      string
	wav      string
	counts   string
	keyboard bool
	monitor  string
	seed     int64
	quiet    bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline at the configured sample rate",
		Long: `Run the pipeline once per sample period until interrupted or until
--ticks samples have been processed.

Samples are written one per line to stdout (or --out). With --keyboard the
space bar flips the toggle line and q quits. With --monitor a read-only
HTTP status endpoint is served.

Examples:
  sensorpipe run --ticks 1000 --filter --tap-count 4
  sensorpipe run --noise --snr 4 --wav noisy.wav --quiet
  sensorpipe run --mode physical --counts capture.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, opts)
		},
	}

	fs := cmd.Flags()
	addConfigFlags(fs)
	fs.Uint64VarP(&opts.ticks, "ticks", "n", 0, "Stop after this many ticks (0 runs until interrupted)")
	fs.StringVarP(&opts.out, "out", "o", "", "Write samples to this file instead of stdout")
	fs.StringVar(&opts.wav, "wav", "", "Also record samples to a 16-bit WAV file")
	fs.StringVar(&opts.counts, "counts", "", "Digitizer count file for physical mode ('-' for stdin)")
	fs.BoolVarP(&opts.keyboard, "keyboard", "k", false, "Drive the toggle line from the keyboard")
	fs.StringVar(&opts.monitor, "monitor", "", "Serve the status endpoint on this address (e.g. :8080)")
	fs.Int64Var(&opts.seed, "seed", 0, "Noise generator seed (default: random)")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "Do not write the sample stream")
	return cmd
}

//nolint:funlen,cyclop
func runPipeline(cmd *cobra.Command, opts runOptions) error {
	logger, err := newLogger(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}
	if opts.keyboard && opts.counts == "-" {
		return errors.New("--keyboard and --counts - both need stdin")
	}

	store := config.NewStore(cfg)

	var counts *acquire.CountReader
	if cfg.Mode == config.ModePhysical {
		r, closeCounts, err := openInput(opts.counts, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer closeCounts()
		counts = acquire.NewCountReader(r)
	}
	var dig acquire.Digitizer
	if counts != nil {
		dig = counts
	}
	source, err := acquire.New(cfg, dig)
	if err != nil {
		return err
	}

	var noiseOpts []effects.NoiseOption
	if cmd.Flags().Changed("seed") {
		noiseOpts = append(noiseOpts, effects.WithNoiseSeed(opts.seed))
	}
	noise, err := effects.NewNoiseInjector(cfg.SampleRate, noiseOpts...)
	if err != nil {
		return err
	}
	logger.Debug("noise injector", slog.Int64("seed", noise.Seed()))
	chain, err := effectchain.Default(noise)
	if err != nil {
		return err
	}

	var sinks host.MultiSink
	var lines *host.LineSink
	if !opts.quiet {
		w, closeOut, err := openOutput(opts.out, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeOut()
		lines = host.NewLineSink(w)
		sinks = append(sinks, lines)
	}
	var wav *host.WAVSink
	if opts.wav != "" {
		path, err := homedir.Expand(opts.wav)
		if err != nil {
			return err
		}
		wav, err = host.CreateWAVSink(path, int(cfg.SampleRate), cfg.VPP)
		if err != nil {
			return err
		}
		sinks = append(sinks, wav)
	}

	actuator := host.NewLogActuator(logger)

	ctrlOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	var keys *host.KeyboardToggle
	if opts.keyboard {
		restore, err := host.RawStdin()
		if err != nil {
			return fmt.Errorf("keyboard toggle: %w", err)
		}
		defer restore()
		keys = host.NewKeyboardToggle(cfg.Flag(cfg.Toggle), logger)
		ctrlOpts = append(ctrlOpts, pipeline.WithToggle(keys))
	}

	ctrl, err := pipeline.New(store, source, chain, sinks, actuator, ctrlOpts...)
	if err != nil {
		return err
	}

	sched, err := host.NewScheduler(cfg.SampleRate,
		host.WithMaxTicks(opts.ticks), host.WithSchedulerLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := sched.Run(gctx, ctrl)
		return err
	})
	if keys != nil {
		g.Go(func() error {
			err := keys.Listen(gctx, os.Stdin)
			if errors.Is(err, host.ErrQuit) {
				cancel()
				return nil
			}
			return err
		})
	}
	if opts.monitor != "" {
		mon := monitor.New(opts.monitor, ctrl, ctrl.Warm, logger)
		g.Go(func() error { return mon.Run(gctx) })
	}

	runErr := g.Wait()

	if lines != nil {
		if err := lines.Flush(); err != nil {
			logger.Error("sample output", slog.Any("error", err))
			runErr = errors.Join(runErr, err)
		}
	}
	if wav != nil {
		if err := wav.Close(); err != nil {
			logger.Error("wav output", slog.Any("error", err))
			runErr = errors.Join(runErr, err)
		}
	}
	if counts != nil && counts.Err() != nil {
		logger.Warn("digitizer input", slog.Any("error", counts.Err()))
	}

	last := ctrl.Last()
	logger.Info("run finished",
		slog.Uint64("ticks", ctrl.Ticks()),
		slog.Uint64("overruns", sched.Overruns()),
		slog.Uint64("actuator_transitions", actuator.Transitions()),
		slog.Float64("last_sample", last.Sample))
	return runErr
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" {
		return nil, nil, errors.New("physical mode needs --counts")
	}
	if path == "-" {
		return stdin, func() {}, nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, fmt.Errorf("counts: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, nil, fmt.Errorf("output: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
