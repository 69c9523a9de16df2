// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the run configuration of the nandsim command from TOML
// files.
//
// Example:
//
//	source = "adder.hdl"
//	top = "Add4"
//	ticks = 64
//	format = "vcd"
//	log_level = "debug"
//
//	[[stimulus]]
//	tick = 0
//	inputs = "0000_0000"
//
//	[[stimulus]]
//	tick = 32
//	inputs = "1000_1000"
//
package config

import (
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/trace"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// Output formats.
//
const (
	FormatTable = "table"
	FormatVCD   = "vcd"
)

// Config is a run configuration.
//
type Config struct {
	Source   string         // netlist file
	Top      string         // part to simulate
	Ticks    int            // number of ticks to run
	Settle   int            // ticks per truth table row
	Format   string         // FormatTable or FormatVCD
	Probe    bool           // record internal state
	LogLevel string         // zap level name
	Workers  int            // concurrent sweep rows
	Stimulus []trace.Change // input changes
}

// Default returns the default configuration.
//
func Default() Config {
	return Config{
		Ticks:    16,
		Settle:   32,
		Format:   FormatTable,
		LogLevel: "info",
		Workers:  runtime.NumCPU(),
	}
}

type fileStimulus struct {
	Tick   uint64 `toml:"tick"`
	Inputs string `toml:"inputs"`
}

type fileConfig struct {
	Source   string         `toml:"source"`
	Top      string         `toml:"top"`
	Ticks    int            `toml:"ticks"`
	Settle   int            `toml:"settle"`
	Format   string         `toml:"format"`
	Probe    bool           `toml:"probe"`
	LogLevel string         `toml:"log_level"`
	Workers  int            `toml:"workers"`
	Stimulus []fileStimulus `toml:"stimulus"`
}

// Load reads the TOML file at path. Keys missing from the file keep their
// default value. The returned configuration is not validated.
//
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return Config{}, errors.Errorf("%s: unknown key %s", path, keys[0])
	}

	if meta.IsDefined("source") {
		cfg.Source = strings.TrimSpace(raw.Source)
	}
	if meta.IsDefined("top") {
		cfg.Top = strings.TrimSpace(raw.Top)
	}
	if meta.IsDefined("ticks") {
		cfg.Ticks = raw.Ticks
	}
	if meta.IsDefined("settle") {
		cfg.Settle = raw.Settle
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("probe") {
		cfg.Probe = raw.Probe
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	for i, s := range raw.Stimulus {
		in, err := nandsim.ParseBits(s.Inputs)
		if err != nil {
			return Config{}, errors.Wrapf(err, "%s: stimulus %d", path, i)
		}
		cfg.Stimulus = append(cfg.Stimulus, trace.Change{Tick: s.Tick, Inputs: in})
	}
	return cfg, nil
}

// Validate checks that all values are in range.
//
func (c *Config) Validate() error {
	if c.Ticks < 0 {
		return errors.Errorf("invalid tick count %d", c.Ticks)
	}
	if c.Settle < 1 {
		return errors.Errorf("invalid settle tick count %d", c.Settle)
	}
	if c.Workers < 0 {
		return errors.Errorf("invalid worker count %d", c.Workers)
	}
	switch c.Format {
	case FormatTable, FormatVCD:
	default:
		return errors.Errorf("invalid output format %q", c.Format)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

// Level returns the zap logging level of c. It defaults to info if the level
// is invalid.
//
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
