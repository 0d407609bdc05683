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

import "fmt"

// Kind classifies a token.  Punctuation kinds equal the byte value of the
// punctuation rune itself (so Kind('{') == '{'); everything else uses a
// named constant above the byte range so it can never collide with one.
type Kind int

const (
	// KindSOI and KindEOI are synthetic boundary sentinels attached to the
	// head and tail of every token stream.  They are never matched by a
	// wildcard and never counted as a consumed token.
	KindSOI Kind = 0x100 + iota
	KindEOI

	// KindComment is synthesized by the gap scanner for extract's benefit;
	// it is never produced by the lexer directly.
	KindComment

	// KindIdent covers identifiers, keywords, and bare words; the host
	// grammar does not distinguish keywords lexically.
	KindIdent

	// KindString is a quoted string literal.  The quotes are part of the
	// token text, since patterns and replacements match and emit the
	// literal quoted spelling.
	KindString

	// KindCNum is an integer literal; KindFNum is a literal containing a
	// decimal point. Both are followed, without a space, by an identifier
	// when that identifier is a unit suffix (5s, 10KB).
	KindCNum
	KindFNum
)

func (k Kind) String() string {
	switch k {
	case KindSOI:
		return "SOI"
	case KindEOI:
		return "EOI"
	case KindComment:
		return "COMMENT"
	case KindIdent:
		return "IDENT"
	case KindString:
		return "STRING"
	case KindCNum:
		return "CNUM"
	case KindFNum:
		return "FNUM"
	}
	if k >= 0 && k < 256 {
		return fmt.Sprintf("%q", rune(k))
	}
	return fmt.Sprintf("KIND(%d)", int(k))
}

// IsBoundary reports whether k is one of the synthetic stream sentinels.
func (k Kind) IsBoundary() bool { return k == KindSOI || k == KindEOI }

// rawToken is the arena-resident record for one lexical token: an offset
// pair into the owning Source's buffer, plus linked-list indices so the
// stream can be walked, spliced with synthesized COMMENT tokens, and
// backed over without needing real pointers.
type rawToken struct {
	kind       Kind
	begin, end int
	next, prev int // index into Source.toks, or -1
}

// noIndex marks the absence of a neighboring token in the arena.
const noIndex = -1

// Token is a lightweight handle into a Source's token arena. The zero Token
// is not valid; use Source methods to obtain one.
type Token struct {
	src *Source
	idx int
}

// Valid reports whether t refers to a real arena slot.
func (t Token) Valid() bool { return t.src != nil && t.idx >= 0 && t.idx < len(t.src.toks) }

// Kind returns t's classification.
func (t Token) Kind() Kind {
	if !t.Valid() {
		return KindEOI
	}
	return t.src.toks[t.idx].kind
}

// Begin returns the byte offset of t's first byte in its Source's buffer.
func (t Token) Begin() int {
	if t.src == nil {
		return 0
	}
	if !t.Valid() {
		return len(t.src.Buf)
	}
	return t.src.toks[t.idx].begin
}

// End returns the byte offset just past t's last byte.
func (t Token) End() int {
	if t.src == nil {
		return 0
	}
	if !t.Valid() {
		return len(t.src.Buf)
	}
	return t.src.toks[t.idx].end
}

// Text returns t's literal source text.  The SOI and EOI sentinels carry
// the fixed texts "SOI" and "EOI" even though they cover no source bytes,
// so a pattern literal spelled that way can anchor on them.
func (t Token) Text() string {
	if !t.Valid() {
		return ""
	}
	switch t.src.toks[t.idx].kind {
	case KindSOI:
		return "SOI"
	case KindEOI:
		return "EOI"
	}
	return t.src.Buf[t.Begin():t.End()]
}

// IsBoundary reports whether t is the SOI or EOI sentinel.
func (t Token) IsBoundary() bool { return t.Kind().IsBoundary() }

// Source returns the Source t was produced from.
func (t Token) Source() *Source { return t.src }

// Next returns the token following t, or the EOI sentinel if t is already
// at (or past) the end of the stream.
func (t Token) Next() Token {
	if !t.Valid() {
		return t
	}
	n := t.src.toks[t.idx].next
	if n == noIndex {
		return t
	}
	return Token{src: t.src, idx: n}
}

// Prev returns the token preceding t, or the SOI sentinel if t is already
// at (or before) the start of the stream.
func (t Token) Prev() Token {
	if !t.Valid() {
		return t
	}
	p := t.src.toks[t.idx].prev
	if p == noIndex {
		return t
	}
	return Token{src: t.src, idx: p}
}

// Is reports whether t and o are the same arena slot, i.e. the identical
// token occurrence rather than merely equal text.
func (t Token) Is(o Token) bool { return t.src == o.src && t.idx == o.idx }

// Equal reports whether t and o are byte-for-byte identical in text; this
// is the notion of "equal" a Literal pattern element requires, deliberately
// ignoring kind so a bare identifier can match a keyword spelled the same.
func (t Token) Equal(o Token) bool { return t.Text() == o.Text() }
