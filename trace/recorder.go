// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package trace records the signals of a component over time and writes them
// out as text tables or Value Change Dump files.
//
package trace

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// A Signal is a named, recorded one bit signal.
//
type Signal struct {
	Name string
	Kind Kind
}

// Kind tells where a signal comes from.
//
type Kind int

// Signal kinds.
//
const (
	Input Kind = iota
	Output
	Probe
)

// A Row holds the values of all signals for one tick, in the order of
// Recorder.Signals.
//
type Row struct {
	Tick   uint64
	Values []nandsim.Bit
}

// A Recorder drives a component and keeps a copy of its inputs, outputs and,
// optionally, of its internal state after every tick.
//
type Recorder struct {
	c       nandsim.Component
	probe   bool
	signals []Signal
	probes  [][2]int // slot/port of each probe signal
	rows    []Row
}

// NewRecorder returns a new Recorder for c. If probe is true, the input
// buffers of all sub-components of c, as returned by c.Probe, are recorded
// as well. The boundary slot is skipped since it holds the outputs of c.
//
func NewRecorder(c nandsim.Component, probe bool) *Recorder {
	pn := c.PortNames()
	r := &Recorder{c: c, probe: probe}
	for _, n := range pn.In {
		r.signals = append(r.signals, Signal{Name: n, Kind: Input})
	}
	for _, n := range pn.Out {
		r.signals = append(r.signals, Signal{Name: n, Kind: Output})
	}
	if !probe {
		return r
	}
	cc, _ := c.(*nandsim.Composite)
	for s, ins := range c.Probe() {
		if s == 0 {
			continue
		}
		var names []string
		part := "slot"
		if cc != nil {
			child := cc.Child(s)
			part = child.Name()
			names = child.PortNames().In
		}
		for p := range ins {
			pname := fmt.Sprintf("i%d", p)
			if p < len(names) {
				pname = names[p]
			}
			r.signals = append(r.signals, Signal{Name: fmt.Sprintf("s%d_%s_%s", s, part, pname), Kind: Probe})
			r.probes = append(r.probes, [2]int{s, p})
		}
	}
	return r
}

// Step runs one tick of the component with the given inputs, records the
// result and returns the outputs.
//
func (r *Recorder) Step(in []nandsim.Bit) ([]nandsim.Bit, error) {
	out, err := r.c.Update(in)
	if err != nil {
		return nil, err
	}
	vs := make([]nandsim.Bit, 0, len(r.signals))
	vs = append(vs, in...)
	vs = append(vs, out...)
	if r.probe {
		p := r.c.Probe()
		for _, sp := range r.probes {
			vs = append(vs, p[sp[0]][sp[1]])
		}
	}
	r.rows = append(r.rows, Row{Tick: uint64(len(r.rows)), Values: vs})
	return out, nil
}

// Signals returns the recorded signals: inputs first, then outputs, then
// probes.
//
func (r *Recorder) Signals() []Signal { return r.signals }

// Rows returns the recorded rows.
//
func (r *Recorder) Rows() []Row { return r.rows }

// Name returns the name of the recorded component.
//
func (r *Recorder) Name() string { return r.c.Name() }

// WriteTable writes the recorded rows to w as a text table with one column
// per signal. Inputs and outputs are separated by a vertical bar.
//
func (r *Recorder) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	hdr := []string{"tick"}
	for i, s := range r.signals {
		if i > 0 && s.Kind != r.signals[i-1].Kind {
			hdr = append(hdr, "|")
		}
		hdr = append(hdr, s.Name)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(hdr, "\t")); err != nil {
		return errors.WithStack(err)
	}
	for _, row := range r.rows {
		cols := []string{fmt.Sprint(row.Tick)}
		for i, v := range row.Values {
			if i > 0 && r.signals[i].Kind != r.signals[i-1].Kind {
				cols = append(cols, "|")
			}
			cols = append(cols, v.String())
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cols, "\t")); err != nil {
			return errors.WithStack(err)
		}
	}
	return errors.WithStack(tw.Flush())
}
