// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"sort"
	"strconv"
	"strings"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// A Change sets the inputs of a component from a given tick on.
//
type Change struct {
	Tick   uint64
	Inputs []nandsim.Bit
}

// A Stimulus is a schedule of input changes, sorted by tick.
//
type Stimulus []Change

// ParseChange parses a change of the form "bits@tick", like "01@3". The tick
// defaults to 0 if omitted.
//
func ParseChange(s string) (Change, error) {
	bs, at := s, ""
	if i := strings.LastIndexByte(s, '@'); i >= 0 {
		bs, at = s[:i], s[i+1:]
	}
	var c Change
	if at != "" {
		t, err := strconv.ParseUint(at, 10, 64)
		if err != nil {
			return c, errors.Errorf("invalid tick in %q", s)
		}
		c.Tick = t
	}
	in, err := nandsim.ParseBits(bs)
	if err != nil {
		return c, err
	}
	c.Inputs = in
	return c, nil
}

// NewStimulus returns a Stimulus from a list of changes. All changes must
// have n inputs. If more than one change is scheduled for the same tick, the
// last one wins.
//
func NewStimulus(n int, changes ...Change) (Stimulus, error) {
	s := make(Stimulus, 0, len(changes))
	for _, c := range changes {
		if len(c.Inputs) != n {
			return nil, errors.Errorf("tick %d: got %d inputs, expected %d", c.Tick, len(c.Inputs), n)
		}
		s = append(s, c)
	}
	sort.SliceStable(s, func(i, j int) bool { return s[i].Tick < s[j].Tick })
	out := s[:0]
	for _, c := range s {
		if l := len(out); l > 0 && out[l-1].Tick == c.Tick {
			out[l-1] = c
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// At returns the inputs in force at the given tick, or nil if no change
// happened yet.
//
func (s Stimulus) At(tick uint64) []nandsim.Bit {
	i := sort.Search(len(s), func(i int) bool { return s[i].Tick > tick })
	if i == 0 {
		return nil
	}
	return s[i-1].Inputs
}

// Run drives r for the given number of ticks. Inputs are Unknown until the
// first change.
//
func (s Stimulus) Run(r *Recorder, ticks int) error {
	unknown := make([]nandsim.Bit, r.c.NumInputs())
	for i := range unknown {
		unknown[i] = nandsim.Unknown
	}
	for t := 0; t < ticks; t++ {
		in := s.At(uint64(t))
		if in == nil {
			in = unknown
		}
		if _, err := r.Step(in); err != nil {
			return errors.Wrapf(err, "tick %d", t)
		}
	}
	return nil
}
