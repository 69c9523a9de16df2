// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"context"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// MaxSweepInputs is the maximum number of inputs of a component for Sweep.
//
const MaxSweepInputs = 16

// A TruthRow is one row of a truth table.
//
type TruthRow struct {
	In  []nandsim.Bit
	Out []nandsim.Bit
}

// sweepInputs returns the input vector for row i, first input as the most
// significant bit.
//
func sweepInputs(i uint64, n int) []nandsim.Bit {
	in := make([]nandsim.Bit, n)
	for b := 0; b < n; b++ {
		in[n-b-1] = nandsim.FromBool(i&(1<<uint(b)) != 0)
	}
	return in
}

// Sweep computes the truth table of a component. Every row is computed on a
// fresh instance returned by build, its inputs held for settle ticks. Up to
// workers rows are computed concurrently (no limit if workers <= 0). The
// returned rows are in binary counting order of the inputs, first input as the
// most significant bit.
//
// Sweep stops at the first error or when ctx is done.
//
func Sweep(ctx context.Context, build func() (nandsim.Component, error), settle, workers int) ([]TruthRow, error) {
	c, err := build()
	if err != nil {
		return nil, err
	}
	n := c.NumInputs()
	if n > MaxSweepInputs {
		return nil, errors.Errorf("%s: too many inputs for a sweep: %d > %d", c.Name(), n, MaxSweepInputs)
	}
	rows := make([]TruthRow, 1<<uint(n))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range rows {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := build()
			if err != nil {
				return err
			}
			in := sweepInputs(uint64(i), n)
			var out []nandsim.Bit
			for t := 0; t < settle; t++ {
				if out, err = c.Update(in); err != nil {
					return errors.Wrapf(err, "inputs %s", nandsim.FormatBits(in))
				}
			}
			rows[i] = TruthRow{In: in, Out: out}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return rows, nil
}
