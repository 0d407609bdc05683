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
		name: "replace",
		help: "replace every match of a pattern with a template",
		run:  runReplace,
	})
}

func runReplace(w io.Writer, srcName, src string, args []string) error {
	var laf lookAroundFlags
	flags := getopt.New()
	registerLookAroundFlags(flags, &laf)
	flags.SetParameters("<from> <to>")
	if err := parseFlags(flags, "replace", args); err != nil {
		return err
	}
	if err := validateOffset(&laf); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) != 2 {
		return fmt.Errorf("%w: replace requires FROM and TO arguments", ErrUsage)
	}
	fromText, toText := rest[0], rest[1]

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

	// A template with an unquoted '$' or '#' cannot survive the relex pass
	// (the lexer would eat it as a directive or comment), and a template
	// that lexes to nothing has no tokens to re-emit; both go through the
	// raw single-pass path.
	toSrc := vcl.NewTemplateSource("<replace>", toText)
	if textNeedsRaw(toText) || len(toSrc.Tokens()) == 0 {
		return replaceOnePass(w, source, pattern, toText, lookBehind, lookAhead, laf.offset, laf.limit)
	}
	return replaceTwoPass(w, source, pattern, toSrc, lookBehind, lookAhead, laf.offset, laf.limit)
}

// replaceTwoPass writes the transformed stream as space-joined raw text,
// substituting the replacement template at each applied match, then relexes
// that text and pretty-prints it to produce the final indentation.
func replaceTwoPass(w io.Writer, source *vcl.Source, pattern []vcl.PatternElement, toSrc *vcl.Source, lookBehind, lookAhead []vcl.PatternElement, offset, limit int) error {
	var out strings.Builder
	counter := 0
	cursor := source.SOI().Next()
	for !cursor.IsBoundary() {
		consumed, captures, ok := vcl.TryPatternMatch(cursor, pattern, lookBehind, lookAhead)
		if ok && consumed > 0 {
			counter++
			if applies(counter, offset, limit) {
				appendReplacement(&out, toSrc, source.Buf, captures)
			} else {
				emitRawTokens(&out, cursor, consumed)
			}
			cursor = advanceTokens(cursor, consumed)
			continue
		}
		writeSpaced(&out, cursor.Text())
		cursor = cursor.Next()
	}

	relexed := vcl.NewSource(source.Name, out.String())
	return vcl.Format(w, relexed)
}

// appendReplacement writes toSrc's tokens, space-joined, into out: a bare
// (*, *, digit) triple collapses to that capture's source text, a token
// carrying an embedded "**N" gets it substituted, and anything else is
// copied through.
func appendReplacement(out *strings.Builder, toSrc *vcl.Source, buf string, captures []vcl.Capture) {
	t := toSrc.SOI().Next()
	for !t.IsBoundary() {
		if n, rest, after, ok := vcl.MatchBareCapture(t); ok {
			if n <= len(captures) {
				writeSpaced(out, vcl.CaptureText(buf, captures, n)+rest)
			}
			t = after
			continue
		}
		if vcl.HasCaptureRef(t) {
			writeSpaced(out, vcl.SubstituteCaptures(t.Text(), buf, captures))
		} else {
			writeSpaced(out, t.Text())
		}
		t = t.Next()
	}
}

// replaceOnePass is the fallback used when the template cannot be relexed:
// it formats the original stream directly, writing the substituted template
// into each applied match site as raw text.
func replaceOnePass(w io.Writer, source *vcl.Source, pattern []vcl.PatternElement, toText string, lookBehind, lookAhead []vcl.PatternElement, offset, limit int) error {
	f := vcl.NewFormatter(w)
	counter := 0
	prevEnd := source.SOI().End()
	cursor := source.SOI().Next()
	for !cursor.IsBoundary() {
		consumed, captures, ok := vcl.TryPatternMatch(cursor, pattern, lookBehind, lookAhead)
		if ok && consumed > 0 {
			counter++
			last := advanceTokens(cursor, consumed).Prev()
			f.EmitGapComments(source, prevEnd, cursor.Begin())
			if applies(counter, offset, limit) {
				f.EmitRaw(vcl.SubstituteCaptures(toText, source.Buf, captures))
				f.NeedBlankAfterRaw(last.Kind())
			} else {
				for t := cursor; ; t = t.Next() {
					f.Emit(t)
					if t.Is(last) {
						break
					}
				}
			}
			prevEnd = last.End()
			cursor = advanceTokens(cursor, consumed)
			continue
		}
		f.EmitGapComments(source, prevEnd, cursor.Begin())
		f.Emit(cursor)
		prevEnd = cursor.End()
		cursor = cursor.Next()
	}
	f.Finish()
	if f.Err() != nil {
		return fmt.Errorf("replace: %w", f.Err())
	}
	return nil
}

// applies implements the shared offset/limit counter policy: a matched
// site is transformed iff counter > offset and the limit (if nonzero) is
// not yet exhausted.
func applies(counter, offset, limit int) bool {
	if counter <= offset {
		return false
	}
	if limit == 0 {
		return true
	}
	return counter <= offset+limit
}

func advanceTokens(t vcl.Token, n int) vcl.Token {
	for i := 0; i < n; i++ {
		t = t.Next()
	}
	return t
}

func writeSpaced(out *strings.Builder, s string) {
	if out.Len() > 0 {
		out.WriteByte(' ')
	}
	out.WriteString(s)
}

func emitRawTokens(out *strings.Builder, start vcl.Token, n int) {
	t := start
	for i := 0; i < n; i++ {
		writeSpaced(out, t.Text())
		t = t.Next()
	}
}

// textNeedsRaw reports whether text contains an unquoted '$' or '#', which
// cannot survive a relex.
func textNeedsRaw(text string) bool {
	inString := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '"' {
			inString = !inString
			continue
		}
		if !inString && (c == '$' || c == '#') {
			return true
		}
	}
	return false
}
