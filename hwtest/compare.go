// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/nandsim"
)

// Settle feeds the same inputs to c for the given number of ticks and returns
// the last outputs. It returns nil if ticks < 1.
//
func Settle(c nandsim.Component, in []nandsim.Bit, ticks int) ([]nandsim.Bit, error) {
	var out []nandsim.Bit
	var err error
	for i := 0; i < ticks; i++ {
		if out, err = c.Update(in); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Inputs returns the n-bit input vector for row i of a truth table. The first
// input is the most significant bit.
//
func Inputs(i uint64, n int) []nandsim.Bit {
	in := make([]nandsim.Bit, n)
	for bit := range in {
		in[n-bit-1] = nandsim.FromBool(i&(1<<uint(bit)) != 0)
	}
	return in
}

// TruthTable checks the outputs of c for every combination of inputs, in
// binary counting order with the first input as the most significant bit.
// want has one entry per combination with the expected outputs, as parsed by
// nandsim.ParseBits. Inputs are held for settle ticks, at least one. The rows
// are run in order on the same instance of c.
//
func TruthTable(t testing.TB, c nandsim.Component, settle int, want []string) {
	t.Helper()
	if settle < 1 {
		t.Fatalf("%s: invalid settle tick count %d", c.Name(), settle)
	}
	n := c.NumInputs()
	if len(want) != 1<<uint(n) {
		t.Fatalf("%s: %d truth table rows for %d inputs", c.Name(), len(want), n)
	}
	for i, w := range want {
		in := Inputs(uint64(i), n)
		out, err := Settle(c, in, settle)
		if err != nil {
			t.Fatal(err)
		}
		if got := nandsim.FormatBits(out); got != strings.Replace(w, "_", "", -1) {
			t.Errorf("%s(%s) = %s, expected %s", c.Name(), nandsim.FormatBits(in), got, w)
		}
	}
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface. All input
// combinations are tried for parts with up to 12 inputs, otherwise 4096
// random combinations are tried. Each combination is held for settle ticks.
//
func ComparePart(t testing.TB, settle int, c1, c2 nandsim.Component) {
	t.Helper()
	if settle < 1 {
		t.Fatalf("%s vs %s: invalid settle tick count %d", c1.Name(), c2.Name(), settle)
	}

	pn1, pn2 := c1.PortNames(), c2.PortNames()
	if !sameNames(pn1.In, pn2.In) {
		t.Fatalf("%s inputs %v != %s inputs %v", c1.Name(), pn1.In, c2.Name(), pn2.In)
	}
	if !sameNames(pn1.Out, pn2.Out) {
		t.Fatalf("%s outputs %v != %s outputs %v", c1.Name(), pn1.Out, c2.Name(), pn2.Out)
	}

	seed := time.Now().UnixNano()
	rnd := rand.New(rand.NewSource(seed))
	n := len(pn1.In)
	iter := uint64(1) << uint(n)
	random := n > 12
	if random {
		iter = 1 << 12
	}

	start := time.Now()
	check := func(in []nandsim.Bit) {
		t.Helper()
		o1, err := Settle(c1, in, settle)
		if err != nil {
			t.Fatal(err)
		}
		o2, err := Settle(c2, in, settle)
		if err != nil {
			t.Fatal(err)
		}
		for i := range o1 {
			if o1[i] != o2[i] {
				t.Fatalf("seed %d: inputs %s: %s.%s = %s, %s.%s = %s", seed, nandsim.FormatBits(in),
					c1.Name(), pn1.Out[i], o1[i], c2.Name(), pn2.Out[i], o2[i])
			}
		}
	}

	// all 0, then all 1
	check(Inputs(0, n))
	check(Inputs(1<<uint(n)-1, n))
	for i := uint64(0); i < iter; i++ {
		v := i
		if random {
			v = rnd.Uint64()
		}
		check(Inputs(v, n))
	}

	elapsed := time.Since(start)
	t.Logf("%s vs %s: %d combinations held %d ticks in %v", c1.Name(), c2.Name(), iter+2, settle, elapsed)
}
