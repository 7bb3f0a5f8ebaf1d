package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-sensorpipe/dsp/filter/fir"
	"github.com/cwbudde/algo-sensorpipe/pipeline"
	"github.com/spf13/cobra"
)

const tapsTableRows = 32

func newTapsCmd() *cobra.Command {
	var (
		fftSize int
		rows    int
	)
	cmd := &cobra.Command{
		Use:   "taps",
		Short: "Print the selected tap set and its frequency response",
		Long: `Print the coefficients of the configured tap set, its DC gain and a
magnitude/phase table of its frequency response up to Nyquist.

Examples:
  sensorpipe taps
  sensorpipe taps --taps high-pass --tap-count 20
  sensorpipe taps --taps file --tap-file ~/bandpass.txt --tap-count 31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}
			f, err := pipeline.NewFilter(cfg)
			if err != nil {
				return err
			}
			return printTaps(cmd.OutOrStdout(), f.Coefficients(), fftSize, rows, cfg.SampleRate)
		},
	}

	fs := cmd.Flags()
	addConfigFlags(fs)
	fs.IntVar(&fftSize, "fft-size", 512, "Zero-padded FFT length for the response")
	fs.IntVar(&rows, "rows", tapsTableRows, "Number of response rows to print")
	return cmd
}

func printTaps(w io.Writer, taps []float64, fftSize, rows int, sampleRate float64) error {
	resp, err := fir.FrequencyResponse(taps, fftSize, sampleRate)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Tap\tCoefficient\n")
	fmt.Fprintf(tw, "---\t-----------\n")
	for i, c := range taps {
		fmt.Fprintf(tw, "%d\t%+.10f\n", i, c)
	}
	fmt.Fprintf(tw, "\nDC gain\t%.6g\n\n", fir.DCGain(taps))

	fmt.Fprintf(tw, "Freq [Hz]\tMagnitude\tMagnitude [dB]\tPhase [rad]\n")
	fmt.Fprintf(tw, "---------\t---------\t--------------\t-----------\n")
	step := 1
	if rows > 0 && len(resp) > rows {
		step = (len(resp) - 1) / rows
	}
	for i := 0; i < len(resp); i += step {
		p := resp[i]
		fmt.Fprintf(tw, "%.2f\t%.6f\t%.2f\t%+.4f\n", p.FreqHz, p.Magnitude, p.MagnitudeDB, p.PhaseRad)
	}
	return tw.Flush()
}
