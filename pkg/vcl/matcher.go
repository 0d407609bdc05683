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

import "bitbucket.org/creachadair/stringset"

// Capture is a byte range borrowed from a Source's buffer, recorded against
// one wildcard on a successful match.
type Capture struct {
	Begin, End int
}

// TokenSpan records the tokens immediately surrounding one wildcard's
// match, used by FixupGapCaptures to widen MultiWildcard captures to
// include their surrounding gaps.
type TokenSpan struct {
	Prev, Next Token
}

// openers and closers classify the braces the depth-aware multi-wildcard
// tracks; kept as sets rather than inline switches so adding a balanced
// pair (e.g. '[' ']') is a one-line change.
var (
	openers = stringset.New("{", "(")
	closers = stringset.New("}", ")")
)

// maxLookBehindWalk bounds the backward search a look-behind containing a
// MultiWildcard performs: such patterns have no fixed width, so each of up
// to this many preceding positions is tried as a forward-match start.
const maxLookBehindWalk = 256

// PatternMatch walks pattern against the input token stream starting at
// start, returning the number of tokens consumed and the ordered capture
// list on success.
func PatternMatch(start Token, pattern []PatternElement) (consumed int, captures []Capture, ok bool) {
	consumed, caps, _, ok := matchFrom(start, pattern)
	if !ok {
		return 0, nil, false
	}
	return consumed, caps, true
}

// MatchWithSpans behaves like PatternMatch but additionally returns, for
// every wildcard in pattern (single or multi, in pattern order), the tokens
// immediately before and after what it matched.  It exists for extract's
// FixupGapCaptures.
func MatchWithSpans(start Token, pattern []PatternElement) (consumed int, captures []Capture, spans []TokenSpan, ok bool) {
	return matchFrom(start, pattern)
}

// matchFrom matches elems at cursor, returning the token count consumed.
// An invalid (zero) Token stands for the position past EOI: nothing
// matches there except a trailing MultiWildcard, which matches empty.
func matchFrom(cursor Token, elems []PatternElement) (int, []Capture, []TokenSpan, bool) {
	if len(elems) == 0 {
		return 0, nil, nil, true
	}
	e := elems[0]
	switch e.Kind {
	case ElemLiteral:
		if !cursor.Valid() || cursor.Text() != e.Text {
			return 0, nil, nil, false
		}
		consumed, caps, spans, ok := matchFrom(tokenAfter(cursor), elems[1:])
		if !ok {
			return 0, nil, nil, false
		}
		return consumed + 1, caps, spans, true
	case ElemSingle:
		if !cursor.Valid() || cursor.IsBoundary() {
			return 0, nil, nil, false
		}
		cap := Capture{cursor.Begin(), cursor.End()}
		span := TokenSpan{Prev: cursor.Prev(), Next: cursor.Next()}
		consumed, rest, restSpans, ok := matchFrom(cursor.Next(), elems[1:])
		if !ok {
			return 0, nil, nil, false
		}
		return consumed + 1, prependCap(cap, rest), prependSpan(span, restSpans), true
	case ElemMulti:
		if len(elems) == 1 {
			return matchMultiToEOI(cursor)
		}
		return matchMultiNonGreedy(cursor, elems)
	}
	return 0, nil, nil, false
}

// tokenAfter is Next without the EOI saturation: past EOI it yields the
// invalid Token, so a literal cannot match the sentinel twice.
func tokenAfter(t Token) Token {
	n := t.Next()
	if n.Is(t) {
		return Token{}
	}
	return n
}

func prependCap(c Capture, rest []Capture) []Capture {
	out := make([]Capture, 0, len(rest)+1)
	out = append(out, c)
	return append(out, rest...)
}

func prependSpan(s TokenSpan, rest []TokenSpan) []TokenSpan {
	out := make([]TokenSpan, 0, len(rest)+1)
	out = append(out, s)
	return append(out, rest...)
}

// matchMultiToEOI implements the last-in-pattern MultiWildcard rule: it
// always succeeds, consuming every remaining real token up to EOI.
func matchMultiToEOI(cursor Token) (int, []Capture, []TokenSpan, bool) {
	first, last := cursor, cursor
	count := 0
	cur := cursor
	for cur.Valid() && !cur.IsBoundary() {
		last = cur
		count++
		cur = cur.Next()
	}
	cap := Capture{cursor.Begin(), cursor.Begin()}
	if count > 0 {
		cap = Capture{first.Begin(), last.End()}
	}
	span := TokenSpan{Prev: cursor.Prev(), Next: cur}
	return count, []Capture{cap}, []TokenSpan{span}, true
}

// matchMultiNonGreedy grows the MultiWildcard one token at a time,
// retrying the rest of the pattern before each extension.  The retry is
// only attempted at brace/paren depth zero, so the wildcard can neither
// stop inside a group it opened nor close a group it never entered.
func matchMultiNonGreedy(cursor Token, elems []PatternElement) (int, []Capture, []TokenSpan, bool) {
	rest := elems[1:]
	depth := 0
	var first, last Token
	count := 0
	cur := cursor

	for {
		if depth == 0 {
			if consumed, caps, restSpans, ok := matchFrom(cur, rest); ok {
				cap := Capture{cursor.Begin(), cursor.Begin()}
				if count > 0 {
					cap = Capture{first.Begin(), last.End()}
				}
				span := TokenSpan{Prev: cursor.Prev(), Next: cur}
				return count + consumed, prependCap(cap, caps), prependSpan(span, restSpans), true
			}
		}

		if !cur.Valid() || cur.IsBoundary() {
			return 0, nil, nil, false
		}

		text := cur.Text()
		switch {
		case closers.Contains(text):
			if depth == 0 {
				return 0, nil, nil, false
			}
			depth--
		case openers.Contains(text):
			depth++
		}

		if count == 0 {
			first = cur
		}
		last = cur
		count++
		cur = cur.Next()
	}
}

// dotBoundaryOK implements the dot-boundary guard: a pattern beginning with
// a literal "." may only match where the preceding token is "{" or ";".
// This keeps field patterns like `. timeout = **` from firing on a dot in
// the middle of an expression.
func dotBoundaryOK(pattern []PatternElement, previous Token) bool {
	if len(pattern) == 0 || pattern[0].Kind != ElemLiteral || pattern[0].Text != "." {
		return true
	}
	if previous.IsBoundary() {
		return false
	}
	t := previous.Text()
	return t == "{" || t == ";"
}

// TryPatternMatch composes the dot-boundary guard, the core match, and the
// look-behind/look-ahead constraints around one candidate site.
func TryPatternMatch(start Token, pattern, lookBehind, lookAhead []PatternElement) (consumed int, captures []Capture, ok bool) {
	if !dotBoundaryOK(pattern, start.Prev()) {
		return 0, nil, false
	}
	consumed, captures, ok = PatternMatch(start, pattern)
	if !ok {
		return 0, nil, false
	}
	end := advance(start, consumed)
	if !tokensMatchBefore(start.Prev(), lookBehind) {
		return 0, nil, false
	}
	if !tokensMatchAfter(end, lookAhead) {
		return 0, nil, false
	}
	return consumed, captures, true
}

// advance returns the token n positions after start, saturating at EOI.
func advance(start Token, n int) Token {
	t := start
	for i := 0; i < n; i++ {
		t = t.Next()
	}
	return t
}

// tokensMatchAfter checks a look-ahead: a null pattern is always satisfied;
// otherwise the pattern must match starting at next, consuming at least one
// token.
func tokensMatchAfter(next Token, pattern []PatternElement) bool {
	if len(pattern) == 0 {
		return true
	}
	consumed, _, ok := PatternMatch(next, pattern)
	return ok && consumed > 0
}

// tokensMatchBefore checks a look-behind ending at previous.  A null
// pattern is always satisfied.  A pattern without a MultiWildcard has a
// fixed width and is walked backward directly; one with a MultiWildcard is
// tried as a forward match from each of a bounded number of earlier
// positions.
func tokensMatchBefore(previous Token, pattern []PatternElement) bool {
	if len(pattern) == 0 {
		return true
	}
	if !patternHasMulti(pattern) {
		return matchBackwardLiteral(previous, pattern)
	}
	return matchBackwardWithMulti(previous, pattern)
}

func patternHasMulti(pattern []PatternElement) bool {
	for _, e := range pattern {
		if e.Kind == ElemMulti {
			return true
		}
	}
	return false
}

// matchBackwardLiteral walks backward against a multi-free pattern: literal
// elements require byte equality (the SOI sentinel's "SOI" text included),
// single wildcards merely require a token that is not SOI.  Nothing
// precedes SOI, so reaching it with pattern elements left is a mismatch.
func matchBackwardLiteral(previous Token, pattern []PatternElement) bool {
	t := previous
	for i := len(pattern) - 1; i >= 0; i-- {
		e := pattern[i]
		switch e.Kind {
		case ElemLiteral:
			if t.Text() != e.Text {
				return false
			}
		case ElemSingle:
			if t.Kind() == KindSOI {
				return false
			}
		}
		if i > 0 && t.Kind() == KindSOI {
			return false
		}
		t = t.Prev()
	}
	return true
}

// matchBackwardWithMulti walks backward up to maxLookBehindWalk positions,
// attempting a forward match from each candidate start and accepting the
// first whose consumed range ends exactly at, or (for a pattern ending in
// MultiWildcard) past, the target token.
func matchBackwardWithMulti(target Token, pattern []PatternElement) bool {
	cand := target
	for i := 0; i < maxLookBehindWalk; i++ {
		if tryBackwardCandidate(cand, pattern, target) {
			return true
		}
		if cand.Kind() == KindSOI {
			return false
		}
		cand = cand.Prev()
	}
	return false
}

func tryBackwardCandidate(cand Token, pattern []PatternElement, target Token) bool {
	consumed, _, ok := PatternMatch(cand, pattern)
	if !ok || consumed == 0 {
		return false
	}
	last := advance(cand, consumed).Prev()
	if last.Is(target) {
		return true
	}
	if pattern[len(pattern)-1].Kind == ElemMulti && last.Begin() >= target.Begin() {
		return true
	}
	return false
}
