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
	"strings"
)

// gapKind classifies one recognized item inside a between-token byte range.
type gapKind int

const (
	gapWhitespace gapKind = iota
	gapComment
	gapDirective
	gapUnknown
)

// gapItem is one classified region of a gap, [begin, end) into the owning
// Source's buffer.
type gapItem struct {
	kind       gapKind
	begin, end int
}

// isHSpace reports whether c is ASCII whitespace recognized between items.
func isHSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// scanOneGap classifies a single item starting at buf[pos], which must be
// < to, returning the item and the offset just past it.
func scanOneGap(buf string, pos, to int) gapItem {
	start := pos
	if isHSpace(buf[pos]) {
		for pos < to && isHSpace(buf[pos]) {
			pos++
		}
		return gapItem{kind: gapWhitespace, begin: start, end: pos}
	}
	switch {
	case pos+1 < to && buf[pos] == '/' && buf[pos+1] == '*':
		end := strings.Index(buf[pos+2:to], "*/")
		if end < 0 {
			pos = to
		} else {
			pos = pos + 2 + end + 2
		}
		return gapItem{kind: gapComment, begin: start, end: pos}
	case buf[pos] == '#' || (pos+1 < to && buf[pos] == '/' && buf[pos+1] == '/'):
		return gapItem{kind: gapComment, begin: start, end: lineEnd(buf, pos, to)}
	case buf[pos] == '$':
		return gapItem{kind: gapDirective, begin: start, end: lineEnd(buf, pos, to)}
	default:
		return gapItem{kind: gapUnknown, begin: start, end: lineEnd(buf, pos, to)}
	}
}

// scanGaps classifies the byte range buf[from:to) into a sequence of
// whitespace runs, comments, directives, and unknown content.
func scanGaps(buf string, from, to int) []gapItem {
	var items []gapItem
	pos := from
	for pos < to {
		item := scanOneGap(buf, pos, to)
		items = append(items, item)
		pos = item.end
	}
	return items
}

// lineEnd returns the offset of the next '\n' in buf[pos:to), or to if none
// is found.
func lineEnd(buf string, pos, to int) int {
	if i := strings.IndexByte(buf[pos:to], '\n'); i >= 0 {
		return pos + i
	}
	return to
}

// GapKind is the exported form of gapKind, for callers outside the package
// (the `tokens --processed` command driver) that need to label gap content.
type GapKind int

const (
	GapWhitespace GapKind = GapKind(gapWhitespace)
	GapComment    GapKind = GapKind(gapComment)
	GapDirective  GapKind = GapKind(gapDirective)
	GapUnknown    GapKind = GapKind(gapUnknown)
)

// GapItem is the exported form of gapItem.
type GapItem struct {
	Kind       GapKind
	Begin, End int
}

// ScanGaps classifies buf[from:to) into whitespace runs, comments,
// directives, and unknown content.  Exported for `tokens --processed`,
// which needs to label the gap content between tokens.
func ScanGaps(buf string, from, to int) []GapItem {
	items := scanGaps(buf, from, to)
	out := make([]GapItem, len(items))
	for i, it := range items {
		out[i] = GapItem{Kind: GapKind(it.kind), Begin: it.begin, End: it.end}
	}
	return out
}

// CheckUnknownGaps scans every gap in s and returns a syntax error for the
// first one containing unrecognized content.  format, insert, replace, and
// extract all call this before processing; tokens does not, since it
// treats unknown gap content as diagnostic (labeled UNKNOWN) rather than
// fatal.
func CheckUnknownGaps(s *Source) error {
	return checkUnknownGaps(s)
}

// checkUnknownGaps scans every gap in s and returns a syntax error for the
// first one containing unrecognized content. It is not called by tokens,
// which treats unknown gap content as diagnostic rather than fatal.
func checkUnknownGaps(s *Source) error {
	all := s.All()
	for i := 0; i+1 < len(all); i++ {
		from, to := all[i].End(), all[i+1].Begin()
		for _, g := range scanGaps(s.Buf, from, to) {
			if g.kind == gapUnknown {
				snippet := g.end - g.begin
				if snippet > 32 {
					snippet = 32
				}
				return fmt.Errorf("%w: unparseable content: %s", ErrSyntax, s.Buf[g.begin:g.begin+snippet])
			}
		}
	}
	return nil
}
