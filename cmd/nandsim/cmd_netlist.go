// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/db47h/nandsim/internal/hdl"
	"github.com/db47h/nandsim/netlist"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newNetlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "netlist [FILE]",
		Short: "Convert part definitions to JSON or YAML",
		Long: `Print the part definitions of FILE as JSON or YAML records. This converts
HDL files to a format that can be loaded back by all nandsim commands.

With --top, the named part is built and its connection graph is printed
instead, including unconnected ports.

Examples:
  nandsim netlist gates.hdl --format json > gates.json
  nandsim netlist --lib adder.hdl --top Add4 --deep`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.netlist(cmd, args)
		},
	}

	cmd.Flags().String("top", "", "Build this part and print its graph")
	cmd.Flags().StringP("format", "f", netlist.YAML, "Output format: json or yaml")
	cmd.Flags().Bool("deep", false, "Include the graphs of nested parts")

	return cmd
}

func (a *app) netlist(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != netlist.JSON && format != netlist.YAML {
		return errors.Errorf("invalid netlist format %q", format)
	}
	file, err := a.source(args)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("top") {
		recs, err := hdl.LoadFile(file)
		if err != nil {
			return err
		}
		return netlist.Encode(format, cmd.OutOrStdout(), recs)
	}

	lib, _, err := a.library(cmd, file)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetString("top")
	c, err := lib.Build(top)
	if err != nil {
		return err
	}
	deep, _ := cmd.Flags().GetBool("deep")
	return netlist.Encode(format, cmd.OutOrStdout(), netlist.Export(c, deep))
}
