// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nandsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Bit is a signal value in three-valued logic.
//
type Bit uint8

// Signal values. Unknown is also the value held by an input that has not been
// driven yet, or that is not connected at all.
//
const (
	Low Bit = iota
	High
	Unknown
)

// String returns "0", "1" or "X".
//
func (b Bit) String() string {
	switch b {
	case Low:
		return "0"
	case High:
		return "1"
	case Unknown:
		return "X"
	}
	return "Bit(" + strconv.Itoa(int(b)) + ")"
}

// Not returns the three-valued complement of b.
//
func (b Bit) Not() Bit {
	switch b {
	case Low:
		return High
	case High:
		return Low
	}
	return Unknown
}

// FromBool returns High for true and Low for false.
//
func FromBool(v bool) Bit {
	if v {
		return High
	}
	return Low
}

// ParseBits parses a string of '0', '1' and 'X' (or 'x') digits into a Bit
// vector. Underscores and white space can be used as separators and are
// ignored.
//
//	ParseBits("01_X") // []Bit{Low, High, Unknown}
//
func ParseBits(s string) ([]Bit, error) {
	bs := make([]Bit, 0, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bs = append(bs, Low)
		case '1':
			bs = append(bs, High)
		case 'x', 'X':
			bs = append(bs, Unknown)
		case '_', ' ', '\t':
		default:
			return nil, errors.Errorf("in %q at pos %d: invalid bit value %q", s, i+1, r)
		}
	}
	return bs, nil
}

// FormatBits is the reverse of ParseBits.
//
func FormatBits(bs []Bit) string {
	var b strings.Builder
	b.Grow(len(bs))
	for _, v := range bs {
		b.WriteString(v.String())
	}
	return b.String()
}

// BitsOf returns the n least significant bits of v, least significant bit
// first.
//
func BitsOf(v uint64, n int) []Bit {
	bs := make([]Bit, n)
	for i := range bs {
		bs[i] = FromBool(v&(1<<uint(i)) != 0)
	}
	return bs
}

// ValueOf is the reverse of BitsOf. It returns false if bs contains an
// Unknown bit or has more than 64 bits.
//
func ValueOf(bs []Bit) (uint64, bool) {
	if len(bs) > 64 {
		return 0, false
	}
	var v uint64
	for i, b := range bs {
		switch b {
		case Low:
		case High:
			v |= 1 << uint(i)
		default:
			return 0, false
		}
	}
	return v, true
}
