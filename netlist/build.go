// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// builder resolves the wire names of a definition into connections between
// slots.
//
type builder struct {
	lib   *Library
	stack map[string]bool // definitions being built, to catch recursion
}

// a use of a wire as the input of a part or the output of the chip.
//
type use struct {
	wire string
	dst  nandsim.Index
	pos  Pos
}

// wire is either driven by a part output or the alias of another wire.
//
type wire struct {
	src   nandsim.Index
	alias string
	pos   Pos
}

func (b *builder) composite(def *Record) (*nandsim.Composite, error) {
	if b.stack[def.Name] {
		return nil, errorAt(def.Pos, "recursive definition of %s", def.Name)
	}
	b.stack[def.Name] = true
	defer delete(b.stack, def.Name)

	wires := make(map[string]*wire)
	define := func(name string, w *wire) error {
		if name == Discard {
			return nil
		}
		if prev, ok := wires[name]; ok {
			return errorAt(w.pos, "wire %s already driven at %s", name, prev.pos)
		}
		wires[name] = w
		return nil
	}

	children := []nandsim.Child{{Fanout: make([][]nandsim.Index, len(def.Inputs))}}
	slotStmt := []int{-1} // statement index for each slot
	var uses []use

	for i, in := range def.Inputs {
		if err := define(in, &wire{src: nandsim.Out(0, i), pos: def.Pos}); err != nil {
			return nil, err
		}
	}

	for si := range def.Body {
		st := &def.Body[si]
		if st.IsAssignment() {
			if len(st.Inputs) != 1 || len(st.Outputs) != 1 {
				return nil, errorAt(st.Pos, "assignment needs exactly one source and one destination")
			}
			if err := define(st.Outputs[0], &wire{alias: st.Inputs[0], pos: st.Pos}); err != nil {
				return nil, err
			}
			continue
		}
		part, err := b.instance(st)
		if err != nil {
			return nil, err
		}
		if len(st.Inputs) != part.NumInputs() {
			return nil, errorAt(st.Pos, "%s has %d inputs, got %d", st.Name, part.NumInputs(), len(st.Inputs))
		}
		if len(st.Outputs) != 0 && len(st.Outputs) != part.NumOutputs() {
			return nil, errorAt(st.Pos, "%s has %d outputs, got %d", st.Name, part.NumOutputs(), len(st.Outputs))
		}
		slot := len(children)
		children = append(children, nandsim.Child{Component: part, Fanout: make([][]nandsim.Index, part.NumOutputs())})
		slotStmt = append(slotStmt, si)
		for p, o := range st.Outputs {
			if err := define(o, &wire{src: nandsim.Out(slot, p), pos: st.Pos}); err != nil {
				return nil, err
			}
		}
		for p, in := range st.Inputs {
			uses = append(uses, use{wire: in, dst: nandsim.In(slot, p), pos: st.Pos})
		}
	}

	for p, o := range def.Outputs {
		if _, ok := wires[o]; !ok {
			b.lib.log.Warn("output not driven", zap.String("part", def.Name), zap.String("output", o),
				zap.Stringer("pos", def.Pos))
			continue
		}
		uses = append(uses, use{wire: o, dst: nandsim.In(0, p), pos: def.Pos})
	}

	for _, u := range uses {
		src, err := resolve(wires, u)
		if err != nil {
			return nil, err
		}
		fo := children[src.Slot].Fanout
		fo[src.Port] = append(fo[src.Port], u.dst)
	}

	names := &nandsim.PortNames{In: def.Inputs, Out: def.Outputs}
	c, err := nandsim.NewComposite(def.Name, len(def.Inputs), len(def.Outputs), names, children)
	if err != nil {
		pos := def.Pos
		if te, ok := errors.Cause(err).(*nandsim.TopologyError); ok && te.Slot > 0 && te.Slot < len(slotStmt) {
			pos = def.Body[slotStmt[te.Slot]].Pos
		}
		return nil, &Error{Pos: pos, Err: err}
	}
	b.lib.log.Debug("built part",
		zap.String("part", def.Name),
		zap.Int("slots", c.Slots()),
		zap.Int("connections", len(c.Connections())))
	return c, nil
}

// resolve returns the output driving the wire of u, following aliases.
//
func resolve(wires map[string]*wire, u use) (nandsim.Index, error) {
	name := u.wire
	seen := make(map[string]bool)
	for {
		if name == Discard {
			return nandsim.Index{}, errorAt(u.pos, "wire %s cannot be used as an input", Discard)
		}
		w, ok := wires[name]
		if !ok {
			return nandsim.Index{}, errorAt(u.pos, "undefined wire %s", name)
		}
		if w.alias == "" {
			return w.src, nil
		}
		if seen[name] {
			return nandsim.Index{}, errorAt(w.pos, "assignment loop on wire %s", name)
		}
		seen[name] = true
		name = w.alias
	}
}

// instance returns a new instance of the part used in statement st.
//
func (b *builder) instance(st *Record) (nandsim.Component, error) {
	if f, ok := b.lib.builtins[st.Name]; ok {
		c, err := f(len(st.Inputs), len(st.Outputs))
		if err != nil {
			return nil, &Error{Pos: st.Pos, Err: err}
		}
		return c, nil
	}
	def, ok := b.lib.defs[st.Name]
	if !ok {
		return nil, errorAt(st.Pos, "unknown part %s", st.Name)
	}
	if b.stack[def.Name] {
		return nil, errorAt(st.Pos, "recursive use of %s", def.Name)
	}
	c, err := b.composite(def)
	if err != nil {
		return nil, err
	}
	return c, nil
}
