package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load decodes a JSON configuration over [Default] and validates it.
// Unknown fields are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a JSON configuration file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Load(f)
}
