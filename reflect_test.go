package nandsim_test

import (
	"strings"
	"testing"

	ns "github.com/db47h/nandsim"
)

type halfAdder struct {
	A, B  ns.Bit `hw:"in"`
	Sum   ns.Bit `hw:"out,s"`
	Carry ns.Bit `hw:"out"`
}

func (h *halfAdder) Update() {
	h.Sum = ns.NandFn(ns.NandFn(h.A, ns.NandFn(h.A, h.B)), ns.NandFn(h.B, ns.NandFn(h.A, h.B)))
	h.Carry = ns.NandFn(h.A, h.B).Not()
}

// toggle flips its output on each rising edge of its clock input.
type toggle struct {
	Clk  ns.Bit `hw:"in"`
	Q    ns.Bit `hw:"out"`
	prev ns.Bit
}

func (t *toggle) Update() {
	if t.prev == ns.Low && t.Clk == ns.High {
		t.Q = t.Q.Not()
	}
	t.prev = t.Clk
}

func TestMakePart(t *testing.T) {
	newHA, err := ns.MakePart((*halfAdder)(nil))
	if err != nil {
		t.Fatal(err)
	}
	c := newHA()
	if c.Name() != "halfAdder" {
		t.Errorf("got name %q", c.Name())
	}
	pn := c.PortNames()
	if strings.Join(pn.In, ",") != "a,b" || strings.Join(pn.Out, ",") != "s,carry" {
		t.Errorf("got port names %v", pn)
	}
	for _, d := range []struct{ in, out string }{
		{"00", "00"}, {"01", "10"}, {"10", "10"}, {"11", "01"}, {"1X", "XX"}, {"0X", "X0"},
	} {
		out, err := c.Update(bits(t, d.in))
		if err != nil {
			t.Fatal(err)
		}
		if got := ns.FormatBits(out); got != d.out {
			t.Errorf("halfAdder(%s) = %s, expected %s", d.in, got, d.out)
		}
	}
	if _, err = c.Update(bits(t, "1")); err == nil {
		t.Error("expected arity error")
	}
}

func TestMakePart_state(t *testing.T) {
	newToggle, err := ns.MakePart((*toggle)(nil))
	if err != nil {
		t.Fatal(err)
	}
	c1, c2 := newToggle(), newToggle()
	var got []string
	for _, clk := range "0101101" {
		out, err := c1.Update(bits(t, string(clk)))
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, out[0].String())
	}
	if s := strings.Join(got, ""); s != "0110001" {
		t.Errorf("toggle outputs %s, expected 0110001", s)
	}
	// instances do not share state
	if out, _ := c2.Update(bits(t, "0")); out[0] != ns.Low {
		t.Errorf("fresh toggle output %s", out[0])
	}
}

type notStruct int

func (notStruct) Update() {}

type badTag struct {
	A ns.Bit `hw:"inout"`
}

func (*badTag) Update() {}

type badType struct {
	A int `hw:"in"`
}

func (*badType) Update() {}

type unexported struct {
	a ns.Bit `hw:"in"`
}

func (*unexported) Update() {}

type dupName struct {
	A ns.Bit `hw:"in"`
	B ns.Bit `hw:"out,a"`
}

func (*dupName) Update() {}

func TestMakePart_errors(t *testing.T) {
	td := []struct {
		name string
		u    ns.Updater
		err  string
	}{
		{"notStruct", notStruct(0), `unsupported type "int" for "notStruct"`},
		{"badTag", (*badTag)(nil), `unsupported tag "inout" for field "A" in "badTag"`},
		{"badType", (*badType)(nil), `unsupported type "int" for field "A" in "badType"`},
		{"unexported", (*unexported)(nil), `unexported port field "a" in "unexported"`},
		{"dupName", (*dupName)(nil), `dupName: invalid port names: duplicate port name "a"`},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			_, err := ns.MakePart(d.u)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != d.err {
				t.Errorf("got error %q, expected %q", err, d.err)
			}
		})
	}
}

// dlatch latches D on the rising edge of its clock.
type dlatch struct {
	D, Clk ns.Bit `hw:"in"`
	Q      ns.Bit `hw:"out"`
	prev   ns.Bit
}

func (d *dlatch) Update() {
	if d.prev == ns.Low && d.Clk == ns.High {
		d.Q = d.D
	}
	d.prev = d.Clk
}

func TestMakePart_reset(t *testing.T) {
	newDFF, err := ns.MakePart((*dlatch)(nil))
	if err != nil {
		t.Fatal(err)
	}
	build := func() *ns.Composite {
		return mustComposite(t, "Reg", 2, 1, []ns.Child{
			{Fanout: fanout{{ns.In(1, 0)}, {ns.In(1, 1)}}},
			{Component: newDFF(), Fanout: fanout{{ns.In(0, 0)}}},
		})
	}
	c := build()
	checkSeq(t, c, []string{"10", "10", "11", "11", "00"}, []string{"0", "0", "0", "1", "1"})
	c.Reset()
	fresh := build()
	for i := 0; i < 2; i++ {
		o1, err := c.Update(bits(t, "00"))
		if err != nil {
			t.Fatal(err)
		}
		o2, err := fresh.Update(bits(t, "00"))
		if err != nil {
			t.Fatal(err)
		}
		if o1[0] != o2[0] {
			t.Errorf("tick %d: after Reset: %s, fresh: %s", i, o1[0], o2[0])
		}
	}
	if out, _ := c.Update(bits(t, "00")); out[0] != ns.Low {
		t.Errorf("latched value survived Reset: %s", out[0])
	}
}
