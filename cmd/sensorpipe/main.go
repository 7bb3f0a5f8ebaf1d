// Command sensorpipe runs the single-channel sensor pipeline at a fixed
// sample rate and inspects its FIR tap sets.
//
// Usage:
//
//	sensorpipe run [flags]
//	sensorpipe taps [flags]
//
// Examples:
//
//	sensorpipe run --ticks 2000 --filter
//	sensorpipe run --config ~/sensorpipe.json --keyboard --monitor :8080
//	sensorpipe run --mode physical --counts capture.txt --wav out.wav
//	sensorpipe taps --taps high-pass
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sensorpipe",
		Short: "Fixed-rate sensor pipeline with effects, FIR filtering and a threshold actuator",
		Long: `sensorpipe acquires one scalar channel (physical counts or an emulated
sine), runs it through noise, rectify and saturate effects and an optional
FIR filter, publishes every sample and drives a binary actuator from a
threshold comparison.

Pipeline: toggle → source → effects → FIR → sink → actuator`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newTapsCmd())
	return root
}
