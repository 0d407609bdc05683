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
	"io"
)

// KindCSRC marks an inline host source block (a brace-delimited payload the
// host language passes through verbatim); the lexer never emits it, but a
// caller assembling a replacement stream may use it to mark a block that
// should be followed by a forced line break, the same treatment Emit gives
// ';'.
const KindCSRC Kind = 0x100 + 100

// maxCommentEmit caps a single preserved comment's length; anything longer
// is truncated.
const maxCommentEmit = 8192

// Formatter holds the indentation and spacing state threaded through one
// command's output.
type Formatter struct {
	w                 io.Writer
	indentDepth       int
	needNewline       bool
	needBlank         bool
	firstEmission     bool
	previousTokenKind Kind
	err               error
}

// NewFormatter returns a Formatter that writes to w.
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w, firstEmission: true}
}

// Err returns the first write error the Formatter encountered, if any.
func (f *Formatter) Err() error { return f.err }

func (f *Formatter) write(s string) {
	if f.err != nil || s == "" {
		return
	}
	_, f.err = io.WriteString(f.w, s)
}

// Emit writes one token with the token's own source text.
func (f *Formatter) Emit(t Token) { f.emit(t, t.Text()) }

// EmitText writes one token with text in place of the token's own source
// text; the token still drives the indentation and spacing rules.
func (f *Formatter) EmitText(t Token, text string) { f.emit(t, text) }

func (f *Formatter) emit(t Token, text string) {
	if t.Kind() == Kind('}') {
		if f.indentDepth > 0 {
			f.indentDepth--
		}
	}

	f.write(f.leadingWhitespace(t.Kind()))
	f.needNewline = false
	f.needBlank = false

	f.write(text)

	f.postEmit(t.Kind())
	f.previousTokenKind = t.Kind()
	f.firstEmission = false
}

// leadingWhitespace computes the whitespace to write before the next token
// of kind k.  Statement and block breaks win; otherwise ';', ')', and '.'
// bind tight to what precedes them, anything binds tight after '(' or '.',
// and a numeric literal binds tight to an identifier unit suffix (5s).
func (f *Formatter) leadingWhitespace(k Kind) string {
	switch {
	case f.firstEmission:
		return ""
	case f.needBlank:
		return "\n\n" + f.indent()
	case f.needNewline:
		return "\n" + f.indent()
	case k == Kind(';') || k == Kind(')') || k == Kind('.'):
		return ""
	case f.previousTokenKind == Kind('(') || f.previousTokenKind == Kind('.'):
		return ""
	case (f.previousTokenKind == KindCNum || f.previousTokenKind == KindFNum) && k == KindIdent:
		return ""
	default:
		return " "
	}
}

func (f *Formatter) indent() string {
	out := make([]byte, f.indentDepth*4)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}

// postEmit updates the break flags a just-emitted token leaves behind: '{'
// opens a block, '}' and ';' end a line, and at depth zero also demand a
// blank line between top-level statements.
func (f *Formatter) postEmit(k Kind) {
	switch k {
	case Kind('{'):
		f.indentDepth++
		f.needNewline = true
	case Kind('}'):
		f.needNewline = true
		if f.indentDepth == 0 {
			f.needBlank = true
		}
	case Kind(';'), KindCSRC:
		f.needNewline = true
		if f.indentDepth == 0 {
			f.needBlank = true
		}
	}
}

// EmitRaw writes text verbatim as a single unit (subject to the same
// leading-whitespace rule as Emit), then forces a line break.
func (f *Formatter) EmitRaw(text string) {
	f.write(f.leadingWhitespace(KindIdent))
	f.needNewline = false
	f.needBlank = false
	f.write(text)
	f.needNewline = true
	f.previousTokenKind = KindIdent
	f.firstEmission = false
}

// NeedBlankAfterRaw upgrades the plain line break EmitRaw already set to a
// blank-line break, when lastKind (the kind of the last source token the
// raw emission replaced) is one that ends a top-level statement or block.
func (f *Formatter) NeedBlankAfterRaw(lastKind Kind) {
	if f.indentDepth != 0 {
		return
	}
	switch lastKind {
	case Kind(';'), Kind('{'), Kind('}'):
		f.needBlank = true
	}
}

// EmitGapComments writes every comment the gap scanner finds in src's
// buffer between byte offsets from and to.  Comment text is preserved
// verbatim, interior newlines included: rewriting it would make formatting
// already-formatted output shift comment bodies around.
func (f *Formatter) EmitGapComments(src *Source, from, to int) {
	if from >= to {
		return
	}
	for _, g := range scanGaps(src.Buf, from, to) {
		if g.kind != gapComment {
			continue
		}
		text := src.Buf[g.begin:g.end]
		if len(text) > maxCommentEmit {
			text = text[:maxCommentEmit]
		}
		f.write(f.leadingWhitespace(KindComment))
		f.needNewline = false
		f.needBlank = false
		f.write(text)
		f.needNewline = true
		f.previousTokenKind = KindComment
		f.firstEmission = false
	}
}

// EmitSource walks src's real tokens (stopping at EOI) through Emit.
// Comments in src's gaps are not preserved; use Format for that.
func (f *Formatter) EmitSource(src *Source) {
	for t := src.SOI().Next(); !t.IsBoundary(); t = t.Next() {
		f.Emit(t)
	}
}

// EmitSourceCaps behaves like EmitSource but additionally substitutes
// capture references: a bare (*, *, digit) triple collapses to the digit's
// capture (or to nothing when the reference is out of range), and a "**N"
// embedded in a token's own text is substituted in place.
func (f *Formatter) EmitSourceCaps(src *Source, buf string, captures []Capture) {
	t := src.SOI().Next()
	for !t.IsBoundary() {
		if n, rest, after, ok := MatchBareCapture(t); ok {
			if n <= len(captures) {
				f.EmitText(after.Prev(), CaptureText(buf, captures, n)+rest)
			}
			t = after
			continue
		}
		if HasCaptureRef(t) {
			f.EmitText(t, SubstituteCaptures(t.Text(), buf, captures))
		} else {
			f.Emit(t)
		}
		t = t.Next()
	}
}

// Finish writes the trailing newline every formatted command ends with.
func (f *Formatter) Finish() {
	f.write("\n")
}

// Format pretty-prints src: it walks the stream, emitting the comments in
// the gap ahead of each token and then the token itself.
func Format(w io.Writer, src *Source) error {
	f := NewFormatter(w)
	prevEnd := src.SOI().End()
	for t := src.SOI().Next(); !t.IsBoundary(); t = t.Next() {
		f.EmitGapComments(src, prevEnd, t.Begin())
		f.Emit(t)
		prevEnd = t.End()
	}
	f.Finish()
	if f.Err() != nil {
		return fmt.Errorf("format: %w", f.Err())
	}
	return nil
}
