// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vcl

import (
	"fmt"
	"os"
)

// The lexer is a state-machine scanner over the raw buffer.  It emits
// (kind, begin, end) byte-offset records directly into a Source's arena
// and wraps the result with SOI/EOI sentinels.

// Debug, when true, makes the lexer trace each state transition to stderr.
var Debug = false

const eof = -1

// stateFn represents one state in the lexer, returning the state to run
// next (nil when lexing is complete).
type stateFn func(*lexState) stateFn

// lexState holds the mutable cursor used while tokenizing a single Source.
type lexState struct {
	src        *Source
	buf        string
	start, pos int
}

func (l *lexState) next() int {
	if l.pos >= len(l.buf) {
		return eof
	}
	c := int(l.buf[l.pos])
	l.pos++
	return c
}

func (l *lexState) backup() {
	if l.pos > l.start {
		l.pos--
	}
}

func (l *lexState) peek() int {
	c := l.next()
	if c != eof {
		l.backup()
	}
	return c
}

func (l *lexState) emit(kind Kind) {
	if Debug {
		fmt.Fprintf(os.Stderr, "lex: %-8s %q\n", kind, l.buf[l.start:l.pos])
	}
	l.src.appendToken(kind, l.start, l.pos)
	l.start = l.pos
}

// consume discards the pending range without emitting a token, used for
// whitespace and comments, which the gap scanner reclassifies on demand.
func (l *lexState) consume() { l.start = l.pos }

// lex tokenizes buf into src, surrounding the real tokens with SOI/EOI.
func lex(src *Source, buf string) {
	src.appendToken(KindSOI, 0, 0)
	l := &lexState{src: src, buf: buf}
	for state := lexGround; state != nil; {
		state = state(l)
	}
	src.appendToken(KindEOI, len(buf), len(buf))
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }

func isIdentStart(c int) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c int) bool {
	return isIdentStart(c) || isDigit(c) || c == '.' || c == '-'
}

// isKnownPunct lists the single-byte punctuation the host grammar actually
// uses: block/call delimiters, statement terminators, field access, the
// wildcard-pattern literal, and VCL's comparison/logical/arithmetic
// operators.  A byte outside this set (a stray '@', backtick, bare '\',
// control characters) is left unconsumed for the gap scanner to classify
// as unknown content rather than silently becoming its own token.
func isKnownPunct(c int) bool {
	switch c {
	case '{', '}', '(', ')', ';', '.', ',', '*', '=', '/',
		'!', '~', '<', '>', '+', '-', ':', '&', '|', '%':
		return true
	}
	return false
}

func lexGround(l *lexState) stateFn {
	for {
		l.skipGap()
		c := l.peek()
		switch {
		case c == eof:
			return nil
		case c == '"':
			// Step past the opener so lexString does not read it as the
			// closer; start stays on it, the quotes belong to the token.
			l.next()
			return lexString
		case c == '\'':
			l.next()
			return lexRawString
		case isDigit(c):
			return lexNumber
		case isIdentStart(c):
			return lexIdent
		case !isKnownPunct(c):
			// Not whitespace, a comment, a directive, or recognized
			// punctuation: leave it unconsumed as an unknown gap rather
			// than minting a bogus token for it. checkUnknownGaps rejects
			// this for every command except tokens.
			item := scanOneGap(l.buf, l.pos, len(l.buf))
			l.pos = item.end
			l.consume()
		default:
			l.next()
			l.emit(Kind(c))
		}
	}
}

// skipGap advances past whitespace, line comments, block comments, and
// host directives using the same classification the gap scanner applies
// post hoc, so the lexer and `tokens --processed`/extract agree on where
// real tokens begin and end.
func (l *lexState) skipGap() {
	for l.pos < len(l.buf) {
		item := scanOneGap(l.buf, l.pos, len(l.buf))
		switch item.kind {
		case gapWhitespace, gapComment, gapDirective:
			l.pos = item.end
			l.consume()
		default:
			return
		}
	}
}

func lexString(l *lexState) stateFn {
	for {
		c := l.next()
		switch c {
		case eof:
			l.emit(KindString)
			return nil
		case '\\':
			if l.peek() != eof {
				l.next()
			}
		case '"':
			l.emit(KindString)
			return lexGround
		}
	}
}

// lexRawString handles '...'-quoted literals: a plain quoted run with no
// escape processing.
func lexRawString(l *lexState) stateFn {
	for {
		c := l.next()
		if c == eof || c == '\'' {
			l.emit(KindString)
			return lexGround
		}
	}
}

func lexNumber(l *lexState) stateFn {
	isFloat := false
	for isDigit(l.peek()) {
		l.next()
	}
	if l.peek() == '.' {
		l.next()
		if isDigit(l.peek()) {
			isFloat = true
			for isDigit(l.peek()) {
				l.next()
			}
		} else {
			l.backup()
		}
	}
	if isFloat {
		l.emit(KindFNum)
	} else {
		l.emit(KindCNum)
	}
	return lexGround
}

func lexIdent(l *lexState) stateFn {
	for isIdentCont(l.peek()) {
		l.next()
	}
	l.emit(KindIdent)
	return lexGround
}
