// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package trace

import (
	"bufio"
	"io"
	"strconv"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
)

// vcdID returns the VCD identifier code of the i-th signal. Codes are made of
// the printable ASCII characters '!' to '~'.
//
func vcdID(i int) string {
	const first, n = '!', '~' - '!' + 1
	var b []byte
	for {
		b = append(b, byte(first+i%n))
		i /= n
		if i == 0 {
			break
		}
		i--
	}
	return string(b)
}

func vcdValue(b nandsim.Bit) byte {
	switch b {
	case nandsim.Low:
		return '0'
	case nandsim.High:
		return '1'
	}
	return 'x'
}

var scopes = [...]string{Input: "inputs", Output: "outputs", Probe: "probes"}

// WriteVCD writes the recorded rows to w in Value Change Dump format, with one
// time unit per tick. Unknown values are dumped as x. Only the values that
// changed since the previous tick are written.
//
func (r *Recorder) WriteVCD(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("$version nandsim $end\n$timescale 1ns $end\n")
	bw.WriteString("$scope module " + r.Name() + " $end\n")
	for i, s := range r.signals {
		if i == 0 || s.Kind != r.signals[i-1].Kind {
			if i > 0 {
				bw.WriteString("$upscope $end\n")
			}
			bw.WriteString("$scope module " + scopes[s.Kind] + " $end\n")
		}
		bw.WriteString("$var wire 1 " + vcdID(i) + " " + s.Name + " $end\n")
	}
	if len(r.signals) > 0 {
		bw.WriteString("$upscope $end\n")
	}
	bw.WriteString("$upscope $end\n$enddefinitions $end\n")

	var prev []nandsim.Bit
	for _, row := range r.rows {
		bw.WriteString("#" + strconv.FormatUint(row.Tick, 10) + "\n")
		if prev == nil {
			bw.WriteString("$dumpvars\n")
		}
		for i, v := range row.Values {
			if prev != nil && prev[i] == v {
				continue
			}
			bw.WriteByte(vcdValue(v))
			bw.WriteString(vcdID(i) + "\n")
		}
		if prev == nil {
			bw.WriteString("$end\n")
		}
		prev = row.Values
	}
	if len(r.rows) > 0 {
		bw.WriteString("#" + strconv.FormatUint(r.rows[len(r.rows)-1].Tick+1, 10) + "\n")
	}
	return errors.WithStack(bw.Flush())
}
