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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pborman/getopt"

	"github.com/vcledit/vced/pkg/vcl"
)

func init() {
	register(&command{
		name: "extract",
		help: "print every match of a pattern, or a TO template over its captures",
		run:  runExtract,
	})
}

func runExtract(w io.Writer, srcName, src string, args []string) error {
	var laf lookAroundFlags
	var stripWhitespace bool
	flags := getopt.New()
	registerLookAroundFlags(flags, &laf)
	flags.BoolVarLong(&stripWhitespace, "strip-whitespace", 0, "dedent each match by its common leading whitespace")
	flags.SetParameters("<from> [to]")
	if err := parseFlags(flags, "extract", args); err != nil {
		return err
	}
	if err := validateOffset(&laf); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) != 1 && len(rest) != 2 {
		return fmt.Errorf("%w: extract requires FROM and an optional TO argument", ErrUsage)
	}
	fromText := rest[0]
	var toText string
	haveTo := len(rest) == 2
	if haveTo {
		toText = rest[1]
	}

	lookBehind, lookAhead, err := compileLookAround(&laf)
	if err != nil {
		return err
	}
	pattern, err := vcl.CompilePattern(fromText)
	if err != nil {
		return err
	}

	source := vcl.NewSource(srcName, src)
	if err := vcl.CheckUnknownGaps(source); err != nil {
		return err
	}
	source.InsertComments()

	counter := 0
	cursor := source.SOI().Next()
	for !cursor.IsBoundary() {
		consumed, captures, spans, ok := matchExtractSite(cursor, pattern, lookBehind, lookAhead)
		if !ok || consumed == 0 {
			cursor = cursor.Next()
			continue
		}
		counter++
		if applies(counter, laf.offset, laf.limit) {
			last := advanceTokens(cursor, consumed).Prev()
			var text string
			if haveTo {
				captures = vcl.FixupGapCaptures(pattern, captures, spans)
				text = vcl.SubstituteCaptures(toText, source.Buf, captures)
			} else {
				text = source.Buf[cursor.Begin():last.End()]
			}
			if err := printExtractedMatch(w, text, stripWhitespace); err != nil {
				return err
			}
		}
		cursor = advanceTokens(cursor, consumed)
	}
	return nil
}

// matchExtractSite tries both TryPatternMatch (for its look-around
// behavior) and MatchWithSpans (for FixupGapCaptures' token spans) from the
// same starting cursor; both walk the identical pattern deterministically
// so their capture sets agree when both succeed.
func matchExtractSite(cursor vcl.Token, pattern, lookBehind, lookAhead []vcl.PatternElement) (consumed int, captures []vcl.Capture, spans []vcl.TokenSpan, ok bool) {
	if !dotBoundaryGuardOK(pattern, cursor) {
		return 0, nil, nil, false
	}
	consumed, captures, spans, ok = vcl.MatchWithSpans(cursor, pattern)
	if !ok {
		return 0, nil, nil, false
	}
	if _, _, lookOK := vcl.TryPatternMatch(cursor, pattern, lookBehind, lookAhead); !lookOK {
		return 0, nil, nil, false
	}
	return consumed, captures, spans, true
}

// dotBoundaryGuardOK re-derives the dot-boundary guard ahead of
// MatchWithSpans; TryPatternMatch already applies it internally, but since
// MatchWithSpans is called independently here, this mirrors it rather than
// letting a dot-anchored pattern report mismatched consumed/spans.
func dotBoundaryGuardOK(pattern []vcl.PatternElement, cursor vcl.Token) bool {
	if len(pattern) == 0 || pattern[0].Kind != vcl.ElemLiteral || pattern[0].Text != "." {
		return true
	}
	prev := cursor.Prev()
	if prev.IsBoundary() {
		return false
	}
	t := prev.Text()
	return t == "{" || t == ";"
}

// printExtractedMatch prints one extracted match: leading/trailing newlines
// stripped, optionally dedented, always newline-terminated.
func printExtractedMatch(w io.Writer, text string, stripWhitespace bool) error {
	text = strings.Trim(text, "\n")
	if stripWhitespace {
		text = dedent(text)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// dedent removes the minimum leading-whitespace (spaces/tabs) width shared
// by every non-blank line of text.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	width := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w := 0
		for w < len(line) && (line[w] == ' ' || line[w] == '\t') {
			w++
		}
		if width == -1 || w < width {
			width = w
		}
	}
	if width <= 0 {
		return text
	}
	for i, line := range lines {
		if len(line) >= width {
			lines[i] = line[width:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
