// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/db47h/nandsim/internal/config"
	"github.com/db47h/nandsim/trace"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [FILE]",
		Short: "Simulate a part and print its signals",
		Long: `Simulate a part for a number of ticks and print its inputs and outputs at
every tick, as a text table or in Value Change Dump format.

Inputs are given as changes of the form BITS@TICK, and keep their value until
the next change. They are unknown (X) until the first change.

Examples:
  nandsim run gates.hdl --top Xor --input 00@0 --input 11@4 --ticks 10
  nandsim run --config adder.toml --format vcd > adder.vcd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args)
		},
	}

	cmd.Flags().String("top", "", "Part to simulate (default: last part in FILE)")
	cmd.Flags().Int("ticks", 0, "Number of ticks to run")
	cmd.Flags().StringArrayP("input", "i", nil, "Input change BITS@TICK (repeatable)")
	cmd.Flags().StringP("format", "f", config.FormatTable, "Output format: table or vcd")
	cmd.Flags().Bool("probe", false, "Also record the inputs of all sub-parts")

	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cfg := a.cfg
	if flags.Changed("ticks") {
		cfg.Ticks, _ = flags.GetInt("ticks")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("probe") {
		cfg.Probe, _ = flags.GetBool("probe")
	}
	if flags.Changed("input") {
		specs, _ := flags.GetStringArray("input")
		cfg.Stimulus = nil
		for _, s := range specs {
			c, err := trace.ParseChange(s)
			if err != nil {
				return err
			}
			cfg.Stimulus = append(cfg.Stimulus, c)
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	file, err := a.source(args)
	if err != nil {
		return err
	}
	lib, names, err := a.library(cmd, file)
	if err != nil {
		return err
	}
	top, err := a.top(cmd, names)
	if err != nil {
		return err
	}
	c, err := lib.Build(top)
	if err != nil {
		return err
	}
	stim, err := trace.NewStimulus(c.NumInputs(), cfg.Stimulus...)
	if err != nil {
		return errors.Wrap(err, top)
	}

	r := trace.NewRecorder(c, cfg.Probe)
	if err = stim.Run(r, cfg.Ticks); err != nil {
		return err
	}
	a.log.Info("simulation done", zap.String("part", top), zap.Int("ticks", cfg.Ticks),
		zap.Int("changes", len(stim)))

	if cfg.Format == config.FormatVCD {
		return r.WriteVCD(cmd.OutOrStdout())
	}
	return r.WriteTable(cmd.OutOrStdout())
}
