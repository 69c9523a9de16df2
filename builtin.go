// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import "strconv"

// NandFn returns the three-valued NAND of its inputs: Low if all inputs are
// High, High if any input is Low, Unknown otherwise. With no inputs, NandFn
// returns Low.
//
func NandFn(in ...Bit) Bit {
	r := Low
	for _, b := range in {
		switch b {
		case Low:
			return High
		case High:
		default:
			r = Unknown
		}
	}
	return r
}

// leaf is a stateless component.
//
type leaf struct {
	name  string
	names PortNames
	fn    func(in, out []Bit)
}

func (l *leaf) Update(in []Bit) ([]Bit, error) {
	if err := checkArity(l, in); err != nil {
		return nil, err
	}
	out := make([]Bit, len(l.names.Out))
	l.fn(in, out)
	return out, nil
}

func (l *leaf) NumInputs() int       { return len(l.names.In) }
func (l *leaf) NumOutputs() int      { return len(l.names.Out) }
func (l *leaf) PortNames() PortNames { return l.names.clone() }
func (l *leaf) Probe() [][]Bit       { return nil }
func (l *leaf) Name() string         { return l.name }

// Nand returns a NAND gate with n inputs and one output.
//
//	Inputs: i0, i1, … i(n-1)
//	Outputs: o0
//	Function: o0 = NandFn(i0, …, i(n-1))
//
// Nand panics if n is negative.
//
func Nand(n int) Component {
	if n < 0 {
		panic("nandsim: negative NAND input count " + strconv.Itoa(n))
	}
	return &leaf{
		name:  "Nand",
		names: DefaultPortNames(n, 1),
		fn:    func(in, out []Bit) { out[0] = NandFn(in...) },
	}
}

// Const returns a constant source.
//
//	Inputs: none
//	Outputs: low, high, unknown
//	Function: low = Low, high = High, unknown = Unknown
//
func Const() Component {
	return &leaf{
		name:  "Const",
		names: PortNames{Out: []string{"low", "high", "unknown"}},
		fn: func(_, out []Bit) {
			out[0], out[1], out[2] = Low, High, Unknown
		},
	}
}
