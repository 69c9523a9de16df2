// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Component is a simulatable unit: either a leaf primitive or a Composite.
//
// Update computes one tick worth of outputs from the given inputs. It must
// fail with an *InputArityError if len(in) != NumInputs() and otherwise
// returns exactly NumOutputs() values in a slice owned by the caller.
//
// Probe returns internal state for visualization. Leaves return nil.
//
type Component interface {
	Update(in []Bit) ([]Bit, error)
	NumInputs() int
	NumOutputs() int
	PortNames() PortNames
	Probe() [][]Bit
	Name() string
}

// PortNames holds the input and output port names of a component. Names are
// purely descriptive and never affect simulation results.
//
type PortNames struct {
	In  []string `json:"inputs" yaml:"inputs"`
	Out []string `json:"outputs" yaml:"outputs"`
}

// DefaultPortNames returns the canonical port names i0, i1, … and o0, o1, …
//
func DefaultPortNames(nIn, nOut int) PortNames {
	return PortNames{In: seqNames("i", nIn), Out: seqNames("o", nOut)}
}

func seqNames(prefix string, n int) []string {
	if n <= 0 {
		return nil
	}
	ns := make([]string, n)
	for i := range ns {
		ns[i] = prefix + strconv.Itoa(i)
	}
	return ns
}

// check validates p against the given port counts.
//
func (p *PortNames) check(nIn, nOut int) error {
	if len(p.In) != nIn {
		return &TopologyError{Kind: ErrPortNames, Slot: -1, Port: len(p.In), Dir: Input,
			Msg: "got " + strconv.Itoa(len(p.In)) + " input names for " + strconv.Itoa(nIn) + " inputs"}
	}
	if len(p.Out) != nOut {
		return &TopologyError{Kind: ErrPortNames, Slot: -1, Port: len(p.Out), Dir: Output,
			Msg: "got " + strconv.Itoa(len(p.Out)) + " output names for " + strconv.Itoa(nOut) + " outputs"}
	}
	seen := make(map[string]struct{}, nIn+nOut)
	for i, ns := range [2][]string{p.In, p.Out} {
		dir := Direction(i)
		for port, n := range ns {
			if n == "" {
				return &TopologyError{Kind: ErrPortNames, Slot: -1, Port: port, Dir: dir, Msg: "empty port name"}
			}
			if _, ok := seen[n]; ok {
				return &TopologyError{Kind: ErrPortNames, Slot: -1, Port: port, Dir: dir, Msg: "duplicate port name " + strconv.Quote(n)}
			}
			seen[n] = struct{}{}
		}
	}
	return nil
}

func (p PortNames) clone() PortNames {
	return PortNames{
		In:  append([]string(nil), p.In...),
		Out: append([]string(nil), p.Out...),
	}
}

func checkArity(c Component, in []Bit) error {
	if n := c.NumInputs(); len(in) != n {
		return errors.WithStack(&InputArityError{Component: c.Name(), Want: n, Got: len(in)})
	}
	return nil
}
