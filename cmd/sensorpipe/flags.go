package main

import (
	"fmt"

	"github.com/cwbudde/algo-sensorpipe/config"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

// addConfigFlags registers one flag per configuration field. Defaults are
// shown from config.Default but only flags the user sets override the
// loaded configuration.
func addConfigFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.String("config", "", "JSON configuration file")
	fs.String("mode", d.Mode.String(), "Acquisition mode (synthetic, physical)")
	fs.Bool("noise", d.Noise, "Enable noise injection")
	fs.Bool("rectify", d.Rectify, "Enable rectification")
	fs.Bool("saturate", d.Saturate, "Enable saturation to [0, vpp]")
	fs.Bool("filter", d.Filter, "Enable the FIR filter")
	fs.Float64("noise-center", d.NoiseCenterHz, "Noise centre frequency in Hz")
	fs.Float64("snr", d.SNR, "Signal-to-noise ratio (0 disables noise)")
	fs.Float64("emulator-freq", d.EmulatorFreqHz, "Synthetic sine frequency in Hz")
	fs.Float64("sample-rate", d.SampleRate, "Sample rate in Hz")
	fs.Float64("threshold", d.Threshold, "Actuator threshold in volts")
	fs.Float64("vpp", d.VPP, "Peak-to-peak voltage range")
	fs.Int("bits", d.BitsPerSample, "Digitizer resolution in bits")
	fs.String("taps", d.Taps.String(), "Tap set (moving-average, high-pass, file)")
	fs.Int("tap-count", d.TapCount, "Declared FIR tap count")
	fs.String("tap-file", "", "Coefficient file for the file tap set")
	fs.String("toggle", d.Toggle.String(), "Flag driven by the toggle line (none, noise, rectify, saturate, filter)")
}

// resolveConfig loads --config (if any) and applies explicitly set flags.
func resolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()

	path, _ := fs.GetString("config")
	if path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return cfg, fmt.Errorf("config path: %w", err)
		}
		cfg, err = config.LoadFile(p)
		if err != nil {
			return cfg, err
		}
	}

	if err := applyFlags(fs, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TapFile != "" {
		p, err := homedir.Expand(cfg.TapFile)
		if err != nil {
			return cfg, fmt.Errorf("tap file path: %w", err)
		}
		cfg.TapFile = p
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

//nolint:cyclop
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "mode":
			cfg.Mode, err = config.ParseMode(f.Value.String())
		case "noise":
			cfg.Noise, err = fs.GetBool(f.Name)
		case "rectify":
			cfg.Rectify, err = fs.GetBool(f.Name)
		case "saturate":
			cfg.Saturate, err = fs.GetBool(f.Name)
		case "filter":
			cfg.Filter, err = fs.GetBool(f.Name)
		case "noise-center":
			cfg.NoiseCenterHz, err = fs.GetFloat64(f.Name)
		case "snr":
			cfg.SNR, err = fs.GetFloat64(f.Name)
		case "emulator-freq":
			cfg.EmulatorFreqHz, err = fs.GetFloat64(f.Name)
		case "sample-rate":
			cfg.SampleRate, err = fs.GetFloat64(f.Name)
		case "threshold":
			cfg.Threshold, err = fs.GetFloat64(f.Name)
		case "vpp":
			cfg.VPP, err = fs.GetFloat64(f.Name)
		case "bits":
			cfg.BitsPerSample, err = fs.GetInt(f.Name)
		case "taps":
			cfg.Taps, err = config.ParseTapSet(f.Value.String())
		case "tap-count":
			cfg.TapCount, err = fs.GetInt(f.Name)
		case "tap-file":
			cfg.TapFile = f.Value.String()
		case "toggle":
			cfg.Toggle, err = config.ParseToggleTarget(f.Value.String())
		}
	})
	return err
}
