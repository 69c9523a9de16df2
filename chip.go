// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// boundary is the slot id of a composite's own external interface.
//
const boundary = 0

// A Child describes one slot of a composite: the component it holds and, for
// each of its output ports, the list of input ports it drives.
//
// The first Child passed to NewComposite is the boundary slot. Its Component
// must be nil and its Fanout has one entry per external input of the
// composite.
//
type Child struct {
	Component Component
	Fanout    [][]Index
}

type slot struct {
	part Component // nil for the boundary
	cur  []Bit     // inputs committed by the previous tick
	next []Bit     // inputs staged during the current tick
}

// A Composite is a component built from child components and the connections
// between them. Its topology is fixed at creation time.
//
// Each call to Update runs one tick: every slot computes its outputs from the
// inputs committed by the previous tick, the outputs are staged into the
// inputs of the slots they drive, then all staged inputs are committed at
// once. The evaluation order of the slots therefore does not matter, and a
// signal needs one tick to cross one component.
//
type Composite struct {
	name   string
	names  PortNames
	nIn    int
	nOut   int
	slots  []slot
	g      *graph
	order  []int // evaluation order set by order-independence tests, nil for slot order
	ticks  uint64
	parent bool // true once placed into another composite
}

// NewComposite returns a new composite with the given external input and
// output counts. children[0] is the boundary slot, and children[1:] the actual
// sub-components, which become exclusively owned by the new composite. If names
// is nil, the default port names are used.
//
// NewComposite returns a *TopologyError (wrapped, use errors.Cause) if the
// connections do not describe a valid circuit.
//
func NewComposite(name string, numIn, numOut int, names *PortNames, children []Child) (*Composite, error) {
	if numIn < 0 || numOut < 0 {
		return nil, errors.Wrap(&TopologyError{Kind: ErrPortCount, Slot: -1, Msg: "negative port count"}, name)
	}
	if len(children) == 0 || children[boundary].Component != nil {
		return nil, errors.Wrap(&TopologyError{Kind: ErrPortCount, Slot: boundary, Dir: Output,
			Msg: "first child must be the boundary slot with a nil component"}, name)
	}

	var pn PortNames
	if names == nil {
		pn = DefaultPortNames(numIn, numOut)
	} else {
		pn = names.clone()
		if err := pn.check(numIn, numOut); err != nil {
			return nil, errors.Wrap(err, name)
		}
	}

	ports := make([]portCount, len(children))
	// inside the composite, external inputs are outputs of the boundary slot
	// and external outputs are its inputs.
	ports[boundary] = portCount{in: numOut, out: numIn}
	owner := make(map[*Composite]int)
	for s := 1; s < len(children); s++ {
		p := children[s].Component
		if p == nil {
			return nil, errors.Wrap(&TopologyError{Kind: ErrOwnership, Slot: s, Msg: "nil component"}, name)
		}
		if cc, ok := p.(*Composite); ok {
			if prev, dup := owner[cc]; dup {
				return nil, errors.Wrap(&TopologyError{Kind: ErrOwnership, Slot: s,
					Msg: cc.name + " instance already used in slot " + strconv.Itoa(prev)}, name)
			}
			if cc.parent {
				return nil, errors.Wrap(&TopologyError{Kind: ErrOwnership, Slot: s,
					Msg: cc.name + " instance already owned by another composite"}, name)
			}
			owner[cc] = s
		}
		ports[s] = portCount{in: p.NumInputs(), out: p.NumOutputs()}
	}

	fanouts := make([][][]Index, len(children))
	for s := range children {
		fanouts[s] = children[s].Fanout
	}
	g, err := newGraph(ports, fanouts)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	c := &Composite{
		name:  name,
		names: pn,
		nIn:   numIn,
		nOut:  numOut,
		slots: make([]slot, len(children)),
		g:     g,
	}
	for s := range c.slots {
		sl := &c.slots[s]
		sl.part = children[s].Component
		sl.cur = unknowns(ports[s].in)
		sl.next = unknowns(ports[s].in)
	}
	for cc := range owner {
		cc.parent = true
	}
	return c, nil
}

func unknowns(n int) []Bit {
	bs := make([]Bit, n)
	for i := range bs {
		bs[i] = Unknown
	}
	return bs
}

// Update runs one tick of the simulation and returns the external outputs.
// If any slot fails, nothing is committed, in c or in any nested composite.
//
func (c *Composite) Update(in []Bit) ([]Bit, error) {
	if _, err := c.tick(in); err != nil {
		return nil, err
	}
	c.commit()
	return append([]Bit(nil), c.slots[boundary].cur...), nil
}

// tick evaluates all slots and stages their outputs without committing them.
// It returns a view of the staged external outputs.
//
func (c *Composite) tick(in []Bit) ([]Bit, error) {
	if err := checkArity(c, in); err != nil {
		return nil, err
	}
	if c.order != nil {
		for _, s := range c.order {
			if err := c.eval(s, in); err != nil {
				return nil, err
			}
		}
	} else {
		for s := range c.slots {
			if err := c.eval(s, in); err != nil {
				return nil, err
			}
		}
	}
	return c.slots[boundary].next, nil
}

// commit makes the staged inputs of c and of its nested composites current.
//
func (c *Composite) commit() {
	for s := range c.slots {
		sl := &c.slots[s]
		sl.cur, sl.next = sl.next, sl.cur
		if cc, ok := sl.part.(*Composite); ok {
			cc.commit()
		}
	}
	c.ticks++
}

// eval computes the outputs of slot s and stages them into the next input
// buffers of the slots they drive. Nested composites are only evaluated here,
// their commit happens with ours.
//
func (c *Composite) eval(s int, in []Bit) error {
	sl := &c.slots[s]
	var out []Bit
	if s == boundary {
		// The boundary slot's outputs are the composite's external inputs.
		// Its inputs receive the external outputs, which Update returns after
		// the commit.
		out = in
	} else {
		var err error
		if cc, ok := sl.part.(*Composite); ok {
			out, err = cc.tick(sl.cur)
		} else {
			out, err = sl.part.Update(sl.cur)
		}
		if err != nil {
			return errors.Wrapf(err, "%s: slot %d (%s)", c.name, s, sl.part.Name())
		}
		if len(out) != len(c.g.fanout[s]) {
			return errors.Errorf("%s: slot %d (%s): got %d outputs, expected %d", c.name, s, sl.part.Name(), len(out), len(c.g.fanout[s]))
		}
	}
	for p, dsts := range c.g.fanout[s] {
		v := out[p]
		for _, d := range dsts {
			c.slots[d.Slot].next[d.Port] = v
		}
	}
	return nil
}

// Reset puts c and all its sub-components back in the state they had when
// built: all inputs are Unknown and stateful parts, like the ones created by
// MakePart, hold their zero value.
//
func (c *Composite) Reset() {
	for s := range c.slots {
		sl := &c.slots[s]
		for i := range sl.cur {
			sl.cur[i] = Unknown
			sl.next[i] = Unknown
		}
		if r, ok := sl.part.(resetter); ok {
			r.reset()
		}
	}
	c.ticks = 0
}

// resetter is implemented by components with internal state.
//
type resetter interface {
	reset()
}

func (c *Composite) reset() { c.Reset() }

// Probe returns the current input buffer of every slot, ordered by slot id.
// Slot 0 holds the composite's external outputs. The returned slices are views
// into the composite's state and are only valid until the next call to Update
// or Reset.
//
func (c *Composite) Probe() [][]Bit {
	p := make([][]Bit, len(c.slots))
	for s := range c.slots {
		p[s] = c.slots[s].cur
	}
	return p
}

// Name returns the display name of the composite.
//
func (c *Composite) Name() string { return c.name }

// NumInputs returns the number of external inputs.
//
func (c *Composite) NumInputs() int { return c.nIn }

// NumOutputs returns the number of external outputs.
//
func (c *Composite) NumOutputs() int { return c.nOut }

// PortNames returns a copy of the composite's port names.
//
func (c *Composite) PortNames() PortNames { return c.names.clone() }

// Ticks returns the number of ticks run since creation or the last Reset.
//
func (c *Composite) Ticks() uint64 { return c.ticks }

// Slots returns the slot count, boundary included.
//
func (c *Composite) Slots() int { return len(c.slots) }

// Child returns the component in slot s, or nil for the boundary slot.
//
func (c *Composite) Child(s int) Component {
	return c.slots[s].part
}
