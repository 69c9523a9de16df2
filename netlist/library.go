// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"sort"

	"github.com/db47h/nandsim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A Factory returns a new instance of a built-in part for a statement with
// the given input and output wire counts.
//
type Factory func(nIn, nOut int) (nandsim.Component, error)

// Library is a set of part definitions and built-in parts, resolved by name
// when building components.
//
type Library struct {
	defs     map[string]*Record
	names    []string
	builtins map[string]Factory
	log      *zap.Logger
}

// An Option configures a Library.
//
type Option func(*Library)

// WithLogger sets the logger used by a library. The default is a no-op logger.
//
func WithLogger(l *zap.Logger) Option {
	return func(lib *Library) {
		if l != nil {
			lib.log = l
		}
	}
}

// NewLibrary returns a new library with the built-in parts Nand and Const.
//
func NewLibrary(opts ...Option) *Library {
	l := &Library{
		defs: make(map[string]*Record),
		builtins: map[string]Factory{
			"Nand":  nandFactory,
			"Const": Fixed(nandsim.Const),
		},
		log: zap.NewNop(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func nandFactory(nIn, nOut int) (nandsim.Component, error) {
	if nIn < 0 {
		return nil, errors.Errorf("Nand: invalid input count %d", nIn)
	}
	if nOut > 1 {
		return nil, errors.Errorf("Nand has 1 output, got %d", nOut)
	}
	return nandsim.Nand(nIn), nil
}

// Fixed returns a Factory for parts with fixed port counts, like the ones
// created by nandsim.MakePart. Port counts are checked by the builder.
//
func Fixed(newPart func() nandsim.Component) Factory {
	return func(nIn, nOut int) (nandsim.Component, error) {
		return newPart(), nil
	}
}

// AddBuiltin registers a built-in part.
//
func (l *Library) AddBuiltin(name string, f Factory) error {
	if l.exists(name) {
		return errors.Errorf("part %q already defined", name)
	}
	l.builtins[name] = f
	return nil
}

func (l *Library) exists(name string) bool {
	_, def := l.defs[name]
	_, bi := l.builtins[name]
	return def || bi
}

// Add adds part definitions to the library. Definitions can reference parts
// that are not yet defined. Add fails if a name is already in use.
//
func (l *Library) Add(recs ...Record) error {
	for i := range recs {
		r := recs[i]
		if r.Name == "" {
			return errorAt(r.Pos, "missing part name")
		}
		if l.exists(r.Name) {
			return errorAt(r.Pos, "part %q already defined", r.Name)
		}
		l.defs[r.Name] = &r
		l.names = append(l.names, r.Name)
	}
	return nil
}

// Names returns the names of all definitions, in the order they were added.
//
func (l *Library) Names() []string {
	return append([]string(nil), l.names...)
}

// Builtins returns the sorted names of built-in parts.
//
func (l *Library) Builtins() []string {
	ns := make([]string, 0, len(l.builtins))
	for n := range l.builtins {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}

// Definition returns the definition of the named part.
//
func (l *Library) Definition(name string) (Record, bool) {
	r, ok := l.defs[name]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Build returns a new instance of the named part definition. Each call, and
// each use of a part within a definition, creates independent instances.
//
func (l *Library) Build(name string) (*nandsim.Composite, error) {
	def, ok := l.defs[name]
	if !ok {
		if _, ok = l.builtins[name]; ok {
			return nil, errors.Errorf("%s is a built-in part", name)
		}
		return nil, errors.Errorf("unknown part %q", name)
	}
	b := &builder{lib: l, stack: make(map[string]bool)}
	return b.composite(def)
}

// New returns a new instance of any part. Built-in parts are instantiated
// with the given input count.
//
func (l *Library) New(name string, nIn int) (nandsim.Component, error) {
	if f, ok := l.builtins[name]; ok {
		return f(nIn, 0)
	}
	return l.Build(name)
}
