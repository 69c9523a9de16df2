/*
Package nandsim is a hierarchical digital logic simulator.

Circuits are built from leaf components (a variadic NAND gate and a constant
source) and composites, which wire child components together and are
components themselves, so circuits can nest arbitrarily deep.

Signals are three-valued: Low, High and Unknown. Every input starts Unknown
and unconnected inputs stay Unknown forever.

Simulation advances in ticks. A composite updates all its children from the
inputs committed by the previous tick, then commits all new inputs at once.
Crossing one component takes exactly one tick, so a signal needs as many ticks
as there are components on its path to reach an output, and circuits whose
paths have unequal lengths glitch while their outputs settle, like real
asynchronous hardware.

A composite is described by its slots. Slot 0 is the boundary: inside the
composite, its outputs are the composite's external inputs and its inputs
are the composite's external outputs. Ports are addressed with an Index
(slot, port, direction):

	// out = Or(a, b) built from three NAND gates
	or, err := nandsim.NewComposite("Or", 2, 1, nil, []nandsim.Child{
		{Fanout: [][]nandsim.Index{ // boundary: a, b
			{nandsim.In(1, 0), nandsim.In(1, 1)},
			{nandsim.In(2, 0), nandsim.In(2, 1)},
		}},
		{nandsim.Nand(2), [][]nandsim.Index{{nandsim.In(3, 0)}}}, // not a
		{nandsim.Nand(2), [][]nandsim.Index{{nandsim.In(3, 1)}}}, // not b
		{nandsim.Nand(2), [][]nandsim.Index{{nandsim.In(0, 0)}}}, // out
	})

Textual netlists, a library of standard parts, tracing and a command line
driver are provided by the sub-packages netlist, hwlib, trace and
cmd/nandsim.
*/
package nandsim
