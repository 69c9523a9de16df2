// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/trace"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [FILE]",
		Short: "Print the truth table of a part",
		Long: `Compute the truth table of a part by trying every combination of its
inputs. Each combination runs on a fresh instance of the part and is held for
--settle ticks. Rows are computed in parallel.

Example:
  nandsim sweep --lib adder.hdl --top FullAdder --settle 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sweep(cmd, args)
		},
	}

	cmd.Flags().String("top", "", "Part to sweep (default: last part in FILE)")
	cmd.Flags().Int("settle", 0, "Ticks to hold each input combination")
	cmd.Flags().Int("workers", 0, "Number of rows computed concurrently")

	return cmd
}

func (a *app) sweep(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	cfg := a.cfg
	if flags.Changed("settle") {
		cfg.Settle, _ = flags.GetInt("settle")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
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

	rows, err := trace.Sweep(cmd.Context(), func() (nandsim.Component, error) {
		return lib.Build(top)
	}, cfg.Settle, cfg.Workers)
	if err != nil {
		return err
	}
	a.log.Info("sweep done", zap.String("part", top), zap.Int("rows", len(rows)),
		zap.Int("settle", cfg.Settle), zap.Int("workers", cfg.Workers))

	pn := c.PortNames()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "%s\t|\t%s\n", strings.Join(pn.In, "\t"), strings.Join(pn.Out, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t|\t%s\n", joinBits(r.In), joinBits(r.Out))
	}
	return errors.WithStack(tw.Flush())
}

func joinBits(bs []nandsim.Bit) string {
	s := make([]string, len(bs))
	for i, b := range bs {
		s[i] = b.String()
	}
	return strings.Join(s, "\t")
}
