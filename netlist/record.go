// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist defines declarative netlist records and builds simulation
// components out of them.
//
// A definition record describes a part: its name, input and output pin names
// and a body of statement records. Each statement instantiates a part by name,
// connecting the wires named in its Inputs to the part's inputs and the part's
// outputs to the wires named in its Outputs:
//
//	{Name: "Or", Inputs: ["a", "b"], Outputs: ["out"], Body: [
//		{Name: "Nand", Inputs: ["a", "a"], Outputs: ["na"]},
//		{Name: "Nand", Inputs: ["b", "b"], Outputs: ["nb"]},
//		{Name: "Nand", Inputs: ["na", "nb"], Outputs: ["out"]},
//	]}
//
// A statement with an empty Name is an assignment: its single output wire is
// an alias for its single input wire. The output wire name "_" discards the
// corresponding part output.
//
package netlist

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Discard is the wire name used to leave a part output unconnected.
//
const Discard = "_"

// Pos is a position in a netlist source.
//
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	var b strings.Builder
	b.WriteString(p.File)
	if p.Line > 0 {
		if b.Len() > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.Itoa(p.Line))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.Col))
	}
	return b.String()
}

// Record is a declarative netlist record. Top level records are part
// definitions, records in a Body are statements.
//
type Record struct {
	Name    string   `json:"name" yaml:"name"`
	Inputs  []string `json:"inputs" yaml:"inputs,flow"`
	Outputs []string `json:"outputs" yaml:"outputs,flow"`
	Body    []Record `json:"body,omitempty" yaml:"body,omitempty"`
	Pos     Pos      `json:"-" yaml:"-"`
}

// IsAssignment returns true if r is an assignment statement.
//
func (r *Record) IsAssignment() bool {
	return r.Name == ""
}

// Error is an error at a given position in a netlist.
//
type Error struct {
	Pos Pos
	Err error
}

func (e *Error) Error() string {
	if p := e.Pos.String(); p != "" {
		return p + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Cause returns the underlying error.
//
func (e *Error) Cause() error { return e.Err }

// Unwrap returns the underlying error.
//
func (e *Error) Unwrap() error { return e.Err }

func errorAt(pos Pos, format string, args ...interface{}) error {
	return &Error{Pos: pos, Err: errors.Errorf(format, args...)}
}

// Supported encoding formats.
//
const (
	JSON = "json"
	YAML = "yaml"
)

// FormatOf returns the encoding format for the given file name, based on its
// extension, or an empty string if the extension is not recognized.
//
func FormatOf(name string) string {
	switch {
	case strings.HasSuffix(name, ".json"):
		return JSON
	case strings.HasSuffix(name, ".yaml"), strings.HasSuffix(name, ".yml"):
		return YAML
	}
	return ""
}

// Decode reads a list of definition records in the given format. The records
// positions are set to the file name and to the index of the definition.
//
func Decode(format string, name string, r io.Reader) ([]Record, error) {
	var recs []Record
	switch format {
	case JSON:
		if err := json.NewDecoder(r).Decode(&recs); err != nil {
			return nil, errors.Wrap(err, name)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&recs); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, name)
		}
	default:
		return nil, errors.Errorf("unsupported netlist format %q", format)
	}
	for i := range recs {
		setPos(&recs[i], Pos{File: name})
	}
	return recs, nil
}

func setPos(r *Record, pos Pos) {
	if r.Pos == (Pos{}) {
		r.Pos = pos
	}
	for i := range r.Body {
		setPos(&r.Body[i], pos)
	}
}

// Encode writes records in the given format.
//
func Encode(format string, w io.Writer, v interface{}) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encode json")
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return errors.Wrap(enc.Close(), "encode yaml")
	}
	return errors.Errorf("unsupported netlist format %q", format)
}
