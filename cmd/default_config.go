package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kiosk-sim/kiosk-sim/sim"
)

// RunFile is the structure of a --config file. Keys missing from the file
// keep their default values.
// All top-level keys must be listed to satisfy KnownFields(true) strict parsing.
type RunFile struct {
	Seed          int64   `yaml:"seed"`
	Horizon       float64 `yaml:"horizon"`
	MaxIterations int     `yaml:"max_iterations"`

	sim.Config `yaml:",inline"`
}

// defaultRunFile returns the reference scenario: seed 42, horizon 120.
func defaultRunFile() RunFile {
	return RunFile{
		Seed:          42,
		Horizon:       sim.DefaultHorizon,
		MaxIterations: sim.MaxIterationsCap,
		Config:        sim.DefaultConfig(),
	}
}

// loadRunFile parses a config file over the defaults.
// Uses strict field checking: typos must cause errors.
func loadRunFile(path string) (RunFile, error) {
	rf := defaultRunFile()
	data, err := os.ReadFile(path)
	if err != nil {
		return rf, fmt.Errorf("read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&rf); err != nil && !errors.Is(err, io.EOF) {
		return rf, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return rf, nil
}

// marshalRunFile renders rf the way loadRunFile reads it.
func marshalRunFile(rf RunFile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
