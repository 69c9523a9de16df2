package hwtest_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/hwlib"
	"github.com/db47h/nandsim/hwtest"
)

func TestComparePart(t *testing.T) {
	or, err := nandsim.NewComposite("custom_or", 2, 1, &nandsim.PortNames{In: []string{"a", "b"}, Out: []string{"out"}}, []nandsim.Child{
		{Fanout: [][]nandsim.Index{{nandsim.In(1, 0), nandsim.In(1, 1)}, {nandsim.In(2, 0), nandsim.In(2, 1)}}},
		{Component: nandsim.Nand(2), Fanout: [][]nandsim.Index{{nandsim.In(3, 0)}}},
		{Component: nandsim.Nand(2), Fanout: [][]nandsim.Index{{nandsim.In(3, 1)}}},
		{Component: nandsim.Nand(2), Fanout: [][]nandsim.Index{{nandsim.In(0, 0)}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hwlib.Must("Or"), or)
}

func TestTruthTable(t *testing.T) {
	hwtest.TruthTable(t, nandsim.Nand(2), 1, []string{"1", "1", "1", "0"})
	hwtest.TruthTable(t, nandsim.Nand(0), 1, []string{"0"})
}

func TestInputs(t *testing.T) {
	if s := nandsim.FormatBits(hwtest.Inputs(6, 4)); s != "0110" {
		t.Errorf("Inputs(6, 4) = %s", s)
	}
	if s := nandsim.FormatBits(hwtest.Inputs(1, 3)); s != "001" {
		t.Errorf("Inputs(1, 3) = %s", s)
	}
}

// fatalTB records the message of the first call to Fatalf and stops the
// calling goroutine.
type fatalTB struct {
	testing.TB
	msg string
}

func (f *fatalTB) Helper() {}

func (f *fatalTB) Fatalf(format string, args ...interface{}) {
	f.msg = fmt.Sprintf(format, args...)
	runtime.Goexit()
}

func fatalMessage(fn func(t testing.TB)) string {
	tb := &fatalTB{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(tb)
	}()
	<-done
	return tb.msg
}

func TestSettle_invalid(t *testing.T) {
	msg := fatalMessage(func(t testing.TB) {
		hwtest.ComparePart(t, 0, nandsim.Nand(2), nandsim.Nand(2))
	})
	if msg != "Nand vs Nand: invalid settle tick count 0" {
		t.Errorf("ComparePart: got %q", msg)
	}
	msg = fatalMessage(func(t testing.TB) {
		hwtest.TruthTable(t, nandsim.Nand(1), -1, []string{"1", "0"})
	})
	if msg != "Nand: invalid settle tick count -1" {
		t.Errorf("TruthTable: got %q", msg)
	}
}
