// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [FILE]",
		Short: "Check that all parts in FILE can be built",
		Long: `Parse FILE and build every part it defines. Errors are reported with their
position in FILE. Outputs that are never driven are reported as warnings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.source(args)
			if err != nil {
				return err
			}
			lib, names, err := a.library(cmd, file)
			if err != nil {
				return err
			}
			for _, n := range names {
				c, err := lib.Build(n)
				if err != nil {
					return err
				}
				a.log.Debug("part ok", zap.String("part", n), zap.Int("slots", c.Slots()))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d inputs, %d outputs, %d slots\n",
					n, c.NumInputs(), c.NumOutputs(), c.Slots())
			}
			return nil
		},
	}
}
