// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"io"
	"unicode"

	"github.com/db47h/nandsim/internal/lex"
)

// Tokens
const (
	EOF lex.Type = lex.EOF
	Raw lex.Type = iota
	Ident
	ParenOpen
	ParenClose
	BraceOpen
	BraceClose
	Comma
	Equal
	Arrow
	Semicolon
)

// Lexer returns a new lexer for HDL source.
//
func Lexer(r io.Reader) lex.Interface {
	return lex.New(r, lexInit)
}

func lexInit(l *lex.Lexer) lex.StateFn {
	r := l.Next()
	switch {
	case r == lex.EOF:
		return lexEOF
	case unicode.IsSpace(r):
		l.AcceptWhile(unicode.IsSpace)
	case unicode.IsLetter(r) || r == '_':
		return lexIdent
	case r == '(':
		l.Emit(ParenOpen, "(")
	case r == ')':
		l.Emit(ParenClose, ")")
	case r == '{':
		l.Emit(BraceOpen, "{")
	case r == '}':
		l.Emit(BraceClose, "}")
	case r == ',':
		l.Emit(Comma, ",")
	case r == '=':
		l.Emit(Equal, "=")
	case r == ';':
		l.Emit(Semicolon, ";")
	case r == '-':
		if l.Next() == '>' {
			l.Emit(Arrow, "->")
			break
		}
		l.Backup()
		l.Emit(Raw, string(r))
	case r == '/':
		if l.Next() == '/' {
			l.AcceptWhile(func(r rune) bool { return r != '\n' })
			break
		}
		l.Backup()
		fallthrough
	default:
		l.Emit(Raw, string(r))
	}
	return nil
}

func lexIdent(l *lex.Lexer) lex.StateFn {
	buf := []rune{l.Current()}
	for r := l.Next(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.Next() {
		buf = append(buf, r)
	}
	l.Backup()
	l.Emit(Ident, string(buf))
	return nil
}

// lexEOF places the lexer in End-Of-File state.
// Once in this state, the lexer will only emit EOF.
//
func lexEOF(l *lex.Lexer) lex.StateFn {
	l.Emit(lex.EOF, "end of input")
	return lexEOF
}
