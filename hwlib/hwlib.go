// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for nandsim.
//
// Parts are written in HDL (see the .hdl files in this package) and built
// from the Nand and Const primitives:
//
//	Gates: Not, And, Or, Nor, Xor, Xnor, And3, Const01
//	Multiplexers: Mux, DMux, Mux4
//	Arithmetic: HalfAdder, FullAdder, Add4
//	Memory: SRLatch, DLatch
//
package hwlib

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/db47h/nandsim"
	"github.com/db47h/nandsim/internal/hdl"
	"github.com/db47h/nandsim/netlist"
	"github.com/pkg/errors"
)

//go:embed *.hdl
var sources embed.FS

// Records returns the definition records of all parts in the library.
//
func Records() ([]netlist.Record, error) {
	names, err := fs.Glob(sources, "*.hdl")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var recs []netlist.Record
	for _, n := range names {
		f, err := sources.Open(n)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		rs, err := hdl.Parse("hwlib/"+n, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rs...)
	}
	return recs, nil
}

// Library returns a new netlist library preloaded with all parts. More parts
// can be added to it.
//
func Library(opts ...netlist.Option) (*netlist.Library, error) {
	recs, err := Records()
	if err != nil {
		return nil, err
	}
	lib := netlist.NewLibrary(opts...)
	if err = lib.Add(recs...); err != nil {
		return nil, err
	}
	return lib, nil
}

var (
	once sync.Once
	std  *netlist.Library
	serr error
)

// New returns a new instance of the named part.
//
func New(name string) (*nandsim.Composite, error) {
	once.Do(func() { std, serr = Library() })
	if serr != nil {
		return nil, serr
	}
	return std.Build(name)
}

// Must is like New but panics on error.
//
func Must(name string) *nandsim.Composite {
	c, err := New(name)
	if err != nil {
		panic(err)
	}
	return c
}
