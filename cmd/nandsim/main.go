// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command nandsim simulates circuits described in HDL, JSON or YAML netlist
// files.
//
//	nandsim run adder.hdl --top Add4 --ticks 64 --input 0000_0000@0 --input 1000_1000@32
//	nandsim sweep adder.hdl --top FullAdder
//	nandsim netlist adder.hdl --top Add4 --format json
//	nandsim check adder.hdl
//
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/db47h/nandsim/hwlib"
	"github.com/db47h/nandsim/internal/config"
	"github.com/db47h/nandsim/internal/hdl"
	"github.com/db47h/nandsim/netlist"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app holds the state shared by all commands.
//
type app struct {
	cfg config.Config
	log *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default(), log: zap.NewNop()}
	rootCmd := &cobra.Command{
		Use:   "nandsim",
		Short: "NAND based digital logic simulator",
		Long: `nandsim builds circuits out of NAND gates and simulates them tick by tick.

Parts are defined in HDL, JSON or YAML files. Signals take the values 0, 1 and
X (unknown). Every part needs one tick to propagate a change from its inputs to
its outputs, so that circuits show the same delays and glitches as real
asynchronous hardware.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	rootCmd.PersistentFlags().String("config", "", "TOML run configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("lib", false, "Preload the standard part library")

	rootCmd.AddCommand(
		newRunCmd(a),
		newSweepCmd(a),
		newNetlistCmd(a),
		newCheckCmd(a),
	)
	return rootCmd
}

// setup loads the configuration and sets up the logger.
//
func (a *app) setup(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(a.cfg.Level())
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		zc = zap.NewDevelopmentConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := zc.Build()
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	a.log = l
	return nil
}

// source returns the netlist file named in args or in the configuration.
//
func (a *app) source(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.Source != "" {
		return a.cfg.Source, nil
	}
	return "", errors.New("no netlist file given")
}

// library loads the part definitions in file into a new library. It returns
// the library and the names of the parts defined in file.
//
func (a *app) library(cmd *cobra.Command, file string) (*netlist.Library, []string, error) {
	recs, err := hdl.LoadFile(file)
	if err != nil {
		return nil, nil, err
	}
	var lib *netlist.Library
	if useLib, _ := cmd.Flags().GetBool("lib"); useLib {
		if lib, err = hwlib.Library(netlist.WithLogger(a.log)); err != nil {
			return nil, nil, err
		}
	} else {
		lib = netlist.NewLibrary(netlist.WithLogger(a.log))
	}
	if err = lib.Add(recs...); err != nil {
		return nil, nil, err
	}
	names := make([]string, len(recs))
	for i := range recs {
		names[i] = recs[i].Name
	}
	a.log.Debug("loaded netlist", zap.String("file", file), zap.Strings("parts", names))
	return lib, names, nil
}

// top returns the part to simulate: the --top flag, the configured top part,
// or the last part defined in the netlist file.
//
func (a *app) top(cmd *cobra.Command, names []string) (string, error) {
	if cmd.Flags().Changed("top") {
		return cmd.Flags().GetString("top")
	}
	if a.cfg.Top != "" {
		return a.cfg.Top, nil
	}
	if len(names) == 0 {
		return "", errors.New("no part defined")
	}
	return names[len(names)-1], nil
}
