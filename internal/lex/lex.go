// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a state function based lexer.
//
// A lexer is driven by StateFn's. Each state function reads runes with Next,
// emits items with Emit and returns the next state, or nil to return to the
// initial state.
//
package lex

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// EOF is the rune returned by Next at end of input, and the Type of the item
// emitted at end of input.
//
const EOF = -1

// Type is the type of a lexical item.
//
type Type int

// Error is the Type of items emitted by Errorf.
//
const Error Type = -2

// Pos is a position in the input.
//
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}

// Item is a lexical item.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

func (i Item) String() string {
	switch i.Type {
	case EOF:
		return "end of input"
	case Error:
		return fmt.Sprint(i.Value)
	}
	return fmt.Sprintf("%q", fmt.Sprint(i.Value))
}

// A StateFn is a lexer state function.
//
type StateFn func(l *Lexer) StateFn

// Interface is the interface of lexers.
//
type Interface interface {
	Lex() Item
}

// Lexer is a state function lexer.
//
type Lexer struct {
	r     *bufio.Reader
	init  StateFn
	state StateFn
	items []Item

	cur    rune
	pos    Pos // position of cur
	start  Pos // position of the first rune of the current token
	backed bool
	err    error
}

// New returns a new lexer reading from r, starting in the init state.
//
func New(r io.Reader, init StateFn) *Lexer {
	return &Lexer{
		r:    bufio.NewReader(r),
		init: init,
		pos:  Pos{1, 0},
	}
}

// Lex returns the next item in the input stream.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			// new token
			l.state = l.init
			l.start = l.nextPos()
		}
		l.state = l.state(l)
	}
	it := l.items[0]
	l.items = l.items[1:]
	return it
}

// nextPos returns the position of the rune that the next call to Next will
// return.
//
func (l *Lexer) nextPos() Pos {
	if l.backed {
		return l.pos
	}
	return l.peekPos()
}

func (l *Lexer) peekPos() Pos {
	if l.cur == '\n' {
		return Pos{l.pos.Line + 1, 1}
	}
	return Pos{l.pos.Line, l.pos.Col + 1}
}

// Next returns the next rune in the input stream, or EOF.
//
func (l *Lexer) Next() rune {
	if l.backed {
		l.backed = false
		return l.cur
	}
	if l.cur == EOF {
		return EOF
	}
	r, _, err := l.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.err = errors.Wrap(err, "read error")
		}
		r = EOF
	}
	l.pos = l.peekPos()
	l.cur = r
	return r
}

// Current returns the last rune returned by Next.
//
func (l *Lexer) Current() rune {
	return l.cur
}

// Backup reverts the last call to Next. It can only be called once between
// calls to Next.
//
func (l *Lexer) Backup() {
	if l.backed {
		panic("lex: Backup called twice")
	}
	l.backed = true
}

// Pos returns the position of the current rune.
//
func (l *Lexer) Pos() Pos {
	return l.pos
}

// StartPos returns the position of the first rune of the current token.
//
func (l *Lexer) StartPos() Pos {
	return l.start
}

// AcceptWhile reads runes while f returns true and returns the number of runes
// read. The first rune for which f returns false is not consumed.
//
func (l *Lexer) AcceptWhile(f func(rune) bool) int {
	n := 0
	for r := l.Next(); r != EOF && f(r); r = l.Next() {
		n++
	}
	l.Backup()
	return n
}

// Emit emits an item of type t at the start position of the current token.
//
func (l *Lexer) Emit(t Type, value interface{}) {
	l.EmitAt(t, l.start, value)
}

// EmitAt emits an item at the given position.
//
func (l *Lexer) EmitAt(t Type, pos Pos, value interface{}) {
	if t == EOF && l.err != nil {
		t, value = Error, l.err
		l.err = nil
	}
	l.items = append(l.items, Item{Type: t, Pos: pos, Value: value})
}

// Errorf emits an Error item at the current position.
//
func (l *Lexer) Errorf(format string, args ...interface{}) {
	l.EmitAt(Error, l.pos, fmt.Sprintf(format, args...))
}
