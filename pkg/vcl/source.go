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

import "sort"

// Source is an immutable input buffer together with its token stream. Source
// buffers, their token arenas, and any captures borrowed from them all live
// for a single command invocation; nothing outlives that scope.
type Source struct {
	Name string
	Buf  string
	toks []rawToken
}

// NewSource lexes buf (named name, for diagnostics) into a Source. The
// returned stream always has exactly one SOI at its head and one EOI at its
// tail, per the token-stream invariants.
func NewSource(name, buf string) *Source {
	s := &Source{Name: name, Buf: buf}
	lex(s, buf)
	return s
}

// appendToken appends a token to the arena and links it after the current
// tail, returning its index.
func (s *Source) appendToken(kind Kind, begin, end int) int {
	idx := len(s.toks)
	prev := noIndex
	if idx > 0 {
		prev = idx - 1
	}
	s.toks = append(s.toks, rawToken{kind: kind, begin: begin, end: end, next: noIndex, prev: prev})
	if prev != noIndex {
		s.toks[prev].next = idx
	}
	return idx
}

// SOI returns the start-of-input sentinel token.
func (s *Source) SOI() Token {
	if len(s.toks) == 0 {
		return Token{}
	}
	return Token{src: s, idx: 0}
}

// EOI returns the end-of-input sentinel token.
func (s *Source) EOI() Token {
	// InsertComments appends COMMENT tokens after the sentinel in the
	// arena, so the last slot is not necessarily EOI.
	for i := len(s.toks) - 1; i >= 0; i-- {
		if s.toks[i].kind == KindEOI {
			return Token{src: s, idx: i}
		}
	}
	return Token{}
}

// Tokens returns every real (non-boundary) token in stream order.
func (s *Source) Tokens() []Token {
	var out []Token
	for t := s.SOI().Next(); !t.IsBoundary(); t = t.Next() {
		out = append(out, t)
	}
	return out
}

// All returns every token in the stream, including the SOI/EOI sentinels.
func (s *Source) All() []Token {
	var out []Token
	for t := s.SOI(); ; t = t.Next() {
		out = append(out, t)
		if t.IsBoundary() && t.idx == s.EOI().idx {
			break
		}
	}
	return out
}

// InsertComments splices a synthetic KindComment token into the stream for
// every comment the gap scanner recognizes between two adjacent real
// tokens (or between a boundary sentinel and its neighboring real token).
// Only extract wants this: its patterns anchor on and capture comments,
// while the other commands must keep comments out of token adjacency.
func (s *Source) InsertComments() {
	type ins struct {
		after      int // arena index to splice after
		begin, end int
	}
	var inserts []ins
	all := s.All()
	for i := 0; i+1 < len(all); i++ {
		from, to := all[i].End(), all[i+1].Begin()
		if from >= to {
			continue
		}
		for _, g := range scanGaps(s.Buf, from, to) {
			if g.kind == gapComment {
				inserts = append(inserts, ins{after: all[i].idx, begin: g.begin, end: g.end})
			}
		}
	}
	if len(inserts) == 0 {
		return
	}
	// Splice from the back so earlier indices remain valid while we append.
	sort.Slice(inserts, func(i, j int) bool { return inserts[i].begin < inserts[j].begin })
	for i := len(inserts) - 1; i >= 0; i-- {
		in := inserts[i]
		idx := len(s.toks)
		next := s.toks[in.after].next
		s.toks = append(s.toks, rawToken{kind: KindComment, begin: in.begin, end: in.end, prev: in.after, next: next})
		s.toks[in.after].next = idx
		if next != noIndex {
			s.toks[next].prev = idx
		}
	}
}
