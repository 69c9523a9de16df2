// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"github.com/db47h/nandsim"
)

// Graph is the exported form of a built composite, suitable for JSON or YAML
// encoding.
//
type Graph struct {
	Name        string   `json:"name" yaml:"name"`
	Inputs      []string `json:"inputs" yaml:"inputs,flow"`
	Outputs     []string `json:"outputs" yaml:"outputs,flow"`
	Slots       []Slot   `json:"slots" yaml:"slots"`
	Connections []Wire   `json:"connections" yaml:"connections"`
	// Ports that are not connected, listed explicitly.
	Undriven []Port `json:"undriven,omitempty" yaml:"undriven,omitempty"`
	Unused   []Port `json:"unused,omitempty" yaml:"unused,omitempty"`
}

// Slot describes one slot of a composite. Slot 0 is the boundary.
//
type Slot struct {
	ID      int      `json:"id" yaml:"id"`
	Part    string   `json:"part" yaml:"part"`
	Inputs  []string `json:"inputs,omitempty" yaml:"inputs,flow,omitempty"`
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,flow,omitempty"`
	Graph   *Graph   `json:"graph,omitempty" yaml:"graph,omitempty"`
}

// Port addresses a port in a Graph.
//
type Port struct {
	Slot int    `json:"slot" yaml:"slot"`
	Port int    `json:"port" yaml:"port"`
	Name string `json:"name" yaml:"name"`
}

// Wire is a connection between two ports.
//
type Wire struct {
	From Port `json:"from" yaml:"from,flow"`
	To   Port `json:"to" yaml:"to,flow"`
}

// Export returns the graph of c. If deep is true, nested composites are
// exported recursively.
//
func Export(c *nandsim.Composite, deep bool) *Graph {
	pn := c.PortNames()
	g := &Graph{
		Name:    c.Name(),
		Inputs:  pn.In,
		Outputs: pn.Out,
		Slots:   make([]Slot, c.Slots()),
	}

	// port names as seen from inside: the boundary is inverted.
	names := make([]nandsim.PortNames, c.Slots())
	names[0] = nandsim.PortNames{In: pn.Out, Out: pn.In}
	g.Slots[0] = Slot{ID: 0, Part: c.Name(), Inputs: pn.Out, Outputs: pn.In}
	for s := 1; s < c.Slots(); s++ {
		p := c.Child(s)
		names[s] = p.PortNames()
		g.Slots[s] = Slot{ID: s, Part: p.Name(), Inputs: names[s].In, Outputs: names[s].Out}
		if cc, ok := p.(*nandsim.Composite); ok && deep {
			g.Slots[s].Graph = Export(cc, deep)
		}
	}

	port := func(i nandsim.Index) Port {
		ns := names[i.Slot].In
		if i.Dir == nandsim.Output {
			ns = names[i.Slot].Out
		}
		return Port{Slot: i.Slot, Port: i.Port, Name: ns[i.Port]}
	}
	for _, cn := range c.Connections() {
		g.Connections = append(g.Connections, Wire{From: port(cn.From), To: port(cn.To)})
	}
	for s := range names {
		for p := range names[s].In {
			if _, ok := c.Driver(nandsim.In(s, p)); !ok {
				g.Undriven = append(g.Undriven, port(nandsim.In(s, p)))
			}
		}
		for p := range names[s].Out {
			if c.Fanout(nandsim.Out(s, p)) == nil {
				g.Unused = append(g.Unused, port(nandsim.Out(s, p)))
			}
		}
	}
	return g
}
