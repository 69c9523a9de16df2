// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses the textual hardware description language into netlist
// records.
//
// A source file is a list of part definitions:
//
//	// comment
//	Xor(a, b) -> (out) {
//		nab = Nand(a, b)
//		w0 = Nand(a, nab)
//		w1 = Nand(b, nab)
//		out = Nand(w0, w1)
//	}
//
// Statements instantiate a part (outs = Part(ins), or Part(ins) to discard all
// outputs), or alias a wire (dst = src). Statements can be separated by
// semicolons.
//
package hdl

import (
	"io"
	"os"
	"strings"

	"github.com/db47h/nandsim/internal/lex"
	"github.com/db47h/nandsim/netlist"
	"github.com/pkg/errors"
)

// Parser is a simple recursive descent parser.
//
type Parser struct {
	name   string
	l      lex.Interface
	i      lex.Item // current item
	peeked *lex.Item
}

// NewParser returns a parser reading HDL source from r. name is used in error
// messages and record positions.
//
func NewParser(name string, r io.Reader) *Parser {
	return &Parser{name: name, l: Lexer(r)}
}

// Parse parses all part definitions.
//
func Parse(name string, r io.Reader) ([]netlist.Record, error) {
	return NewParser(name, r).Parse()
}

// ParseString parses src.
//
func ParseString(name, src string) ([]netlist.Record, error) {
	return Parse(name, strings.NewReader(src))
}

// LoadFile reads part definitions from an HDL, JSON or YAML file, depending
// on the file extension.
//
func LoadFile(path string) ([]netlist.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	if format := netlist.FormatOf(path); format != "" {
		return netlist.Decode(format, path, f)
	}
	return Parse(path, f)
}

// Parse parses all part definitions.
//
func (p *Parser) Parse() ([]netlist.Record, error) {
	var recs []netlist.Record
	for p.next(); p.i.Type != EOF; p.next() {
		r, err := p.definition()
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, nil
}

func (p *Parser) next() {
	if p.peeked != nil {
		p.i = *p.peeked
		p.peeked = nil
		return
	}
	p.i = p.l.Lex()
}

func (p *Parser) peek() lex.Item {
	if p.peeked == nil {
		i := p.l.Lex()
		p.peeked = &i
	}
	return *p.peeked
}

func (p *Parser) pos(i lex.Item) netlist.Pos {
	return netlist.Pos{File: p.name, Line: i.Pos.Line, Col: i.Pos.Col}
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	if p.i.Type == lex.Error {
		return &netlist.Error{Pos: p.pos(p.i), Err: errors.New(p.i.String())}
	}
	return &netlist.Error{Pos: p.pos(p.i), Err: errors.Errorf(format, args...)}
}

func (p *Parser) expect(t lex.Type, what string) error {
	if p.i.Type != t {
		return p.errorf("expected %s, got %s", what, p.i)
	}
	return nil
}

func (p *Parser) ident() (string, error) {
	if err := p.expect(Ident, "identifier"); err != nil {
		return "", err
	}
	return p.i.Value.(string), nil
}

// definition parses Name(ins) -> (outs) { stmts }.
//
func (p *Parser) definition() (netlist.Record, error) {
	r := netlist.Record{Pos: p.pos(p.i)}
	var err error
	if r.Name, err = p.ident(); err != nil {
		return r, err
	}
	p.next()
	if r.Inputs, err = p.list(); err != nil {
		return r, err
	}
	p.next()
	if err = p.expect(Arrow, "->"); err != nil {
		return r, err
	}
	p.next()
	if r.Outputs, err = p.list(); err != nil {
		return r, err
	}
	p.next()
	if err = p.expect(BraceOpen, "{"); err != nil {
		return r, err
	}
	for p.next(); p.i.Type != BraceClose; p.next() {
		if p.i.Type == Semicolon {
			continue
		}
		st, err := p.statement()
		if err != nil {
			return r, err
		}
		r.Body = append(r.Body, st)
	}
	return r, nil
}

// list parses a parenthesized, possibly empty, identifier list.
//
func (p *Parser) list() ([]string, error) {
	if err := p.expect(ParenOpen, "("); err != nil {
		return nil, err
	}
	p.next()
	if p.i.Type == ParenClose {
		return nil, nil
	}
	var ns []string
	for {
		n, err := p.ident()
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
		p.next()
		switch p.i.Type {
		case ParenClose:
			return ns, nil
		case Comma:
			p.next()
		default:
			return nil, p.errorf("expected , or ), got %s", p.i)
		}
	}
}

// statement parses outs = Part(ins), Part(ins) or dst = src.
//
func (p *Parser) statement() (netlist.Record, error) {
	st := netlist.Record{Pos: p.pos(p.i)}
	n, err := p.ident()
	if err != nil {
		return st, err
	}
	if p.peek().Type == ParenOpen {
		return p.call(st, n)
	}
	outs := []string{n}
	for p.next(); p.i.Type == Comma; p.next() {
		p.next()
		if n, err = p.ident(); err != nil {
			return st, err
		}
		outs = append(outs, n)
	}
	if err = p.expect(Equal, "="); err != nil {
		return st, err
	}
	p.next()
	if n, err = p.ident(); err != nil {
		return st, err
	}
	st.Outputs = outs
	if p.peek().Type == ParenOpen {
		return p.call(st, n)
	}
	if len(outs) != 1 {
		return st, p.errorf("expected a part name after =")
	}
	st.Inputs = []string{n}
	return st, nil
}

// call parses the argument list of a part instantiation.
//
func (p *Parser) call(st netlist.Record, name string) (netlist.Record, error) {
	st.Name = name
	p.next()
	ins, err := p.list()
	if err != nil {
		return st, err
	}
	st.Inputs = ins
	return st, nil
}
