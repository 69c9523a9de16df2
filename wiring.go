// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"strconv"
)

// Direction tags an Index as referring to an input or an output port.
//
type Direction uint8

// Port directions.
//
const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Input {
		return "input"
	}
	return "output"
}

// An Index addresses one port of one slot within a composite. Slot 0 is the
// composite's boundary. Indices are only meaningful within the composite they
// are used to build.
//
type Index struct {
	Slot int
	Port int
	Dir  Direction
}

// In returns the Index of input port of slot.
//
func In(slot, port int) Index { return Index{slot, port, Input} }

// Out returns the Index of output port of slot.
//
func Out(slot, port int) Index { return Index{slot, port, Output} }

func (i Index) String() string {
	return "slot " + strconv.Itoa(i.Slot) + " " + i.Dir.String() + " " + strconv.Itoa(i.Port)
}

// A Connection is a wire from an output port to an input port.
//
type Connection struct {
	From Index
	To   Index
}

func (c Connection) String() string {
	return c.From.String() + " -> " + c.To.String()
}

// portCount is the number of input and output ports of a slot as seen from
// inside a composite.
//
type portCount struct {
	in, out int
}

// noDriver marks an undriven input in graph.driver.
//
var noDriver = Index{Slot: -1, Port: -1, Dir: Output}

// graph is the connection graph of a composite.
//
type graph struct {
	fanout [][][]Index // fanout[slot][output port]: driven inputs
	driver [][]Index   // driver[slot][input port]: driving output or noDriver
}

// newGraph validates the per slot fan-out lists against the slots port counts.
// fanouts[s] must have exactly ports[s].out entries.
//
func newGraph(ports []portCount, fanouts [][][]Index) (*graph, error) {
	g := &graph{
		fanout: make([][][]Index, len(ports)),
		driver: make([][]Index, len(ports)),
	}
	for s, pc := range ports {
		drv := make([]Index, pc.in)
		for i := range drv {
			drv[i] = noDriver
		}
		g.driver[s] = drv
	}

	for s, fo := range fanouts {
		if len(fo) != ports[s].out {
			msg := "got fan-out lists for " + strconv.Itoa(len(fo)) + " outputs, expected " + strconv.Itoa(ports[s].out)
			if s == boundary {
				msg = "boundary " + msg + " (one per external input)"
			}
			return nil, &TopologyError{Kind: ErrPortCount, Slot: s, Port: len(fo), Dir: Output, Msg: msg}
		}
		g.fanout[s] = make([][]Index, len(fo))
		for p, dsts := range fo {
			src := Out(s, p)
			if len(dsts) == 0 {
				continue
			}
			out := make([]Index, 0, len(dsts))
			for _, d := range dsts {
				if err := g.checkDest(ports, src, d); err != nil {
					return nil, err
				}
				g.driver[d.Slot][d.Port] = src
				out = append(out, d)
			}
			g.fanout[s][p] = out
		}
	}
	return g, nil
}

func (g *graph) checkDest(ports []portCount, src, d Index) error {
	switch {
	case d.Dir != Input:
		return &TopologyError{Kind: ErrBadDirection, Slot: d.Slot, Port: d.Port, Dir: d.Dir,
			Msg: "connection from " + src.String() + " must target an input"}
	case d.Slot < 0 || d.Slot >= len(ports):
		return &TopologyError{Kind: ErrBadSlot, Slot: d.Slot, Port: d.Port, Dir: d.Dir,
			Msg: "connection from " + src.String() + ": no such slot"}
	case d.Port < 0 || d.Port >= ports[d.Slot].in:
		return &TopologyError{Kind: ErrBadPort, Slot: d.Slot, Port: d.Port, Dir: d.Dir,
			Msg: "connection from " + src.String() + ": slot has " + strconv.Itoa(ports[d.Slot].in) + " inputs"}
	}
	if prev := g.driver[d.Slot][d.Port]; prev != noDriver {
		return &TopologyError{Kind: ErrMultipleDrivers, Slot: d.Slot, Port: d.Port, Dir: d.Dir,
			Msg: "driven by " + prev.String() + " and " + src.String()}
	}
	return nil
}

// valid reports whether i addresses an existing port.
//
func (g *graph) valid(i Index) bool {
	if i.Slot < 0 || i.Slot >= len(g.driver) || i.Port < 0 {
		return false
	}
	if i.Dir == Input {
		return i.Port < len(g.driver[i.Slot])
	}
	return i.Port < len(g.fanout[i.Slot])
}

// Connections returns all connections in the composite, ordered by source
// slot and port, then by declaration order.
//
func (c *Composite) Connections() []Connection {
	var cs []Connection
	for s, fo := range c.g.fanout {
		for p, dsts := range fo {
			for _, d := range dsts {
				cs = append(cs, Connection{From: Out(s, p), To: d})
			}
		}
	}
	return cs
}

// Fanout returns the inputs driven by the output port out. It returns nil if
// out is not connected or is not a valid output Index.
//
func (c *Composite) Fanout(out Index) []Index {
	if out.Dir != Output || !c.g.valid(out) {
		return nil
	}
	dsts := c.g.fanout[out.Slot][out.Port]
	if len(dsts) == 0 {
		return nil
	}
	return append([]Index(nil), dsts...)
}

// Driver returns the output port driving the input port in. The boolean is
// false if in is not connected or is not a valid input Index.
//
func (c *Composite) Driver(in Index) (Index, bool) {
	if in.Dir != Input || !c.g.valid(in) {
		return Index{}, false
	}
	d := c.g.driver[in.Slot][in.Port]
	if d == noDriver {
		return Index{}, false
	}
	return d, true
}
