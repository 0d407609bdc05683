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

import "strings"

// maxSubstituteOutput bounds SubstituteCaptures' output; overlong results
// are truncated silently.
const maxSubstituteOutput = 4096

// SubstituteCaptures scans template for literal "**N" references (N in
// '1'..'9') and replaces them with the Nth capture's text from buf.  When
// template begins with a double quote and a capture's text is itself
// quoted, the capture's surrounding quotes are stripped before insertion,
// so interpolating a quoted capture into a quoted template does not double
// the quotes.
func SubstituteCaptures(template string, buf string, captures []Capture) string {
	inQuotedTemplate := strings.HasPrefix(template, `"`)

	var out strings.Builder
	i := 0
	for i < len(template) {
		if n, ok := bareCaptureAt(template, i); ok {
			text := CaptureText(buf, captures, n)
			if inQuotedTemplate && len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
				text = text[1 : len(text)-1]
			}
			out.WriteString(text)
			i += 3
			continue
		}
		out.WriteByte(template[i])
		i++
	}

	s := out.String()
	if len(s) > maxSubstituteOutput {
		s = s[:maxSubstituteOutput]
	}
	return s
}

// bareCaptureAt reports whether template[i:] begins with a literal "**N"
// reference, returning N (1-based) on success.
func bareCaptureAt(template string, i int) (int, bool) {
	if i+2 >= len(template) {
		return 0, false
	}
	if template[i] != '*' || template[i+1] != '*' {
		return 0, false
	}
	d := template[i+2]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}

// CaptureText returns the source text of the n'th (1-based) capture, or
// the empty string if n is out of range.
func CaptureText(buf string, captures []Capture, n int) string {
	if n < 1 || n > len(captures) {
		return ""
	}
	c := captures[n-1]
	return buf[c.Begin:c.End]
}

// MatchBareCapture detects the three-token sequence (*, *, number starting
// with a digit 1-9) at t, used to recognize an unquoted capture reference
// spread across separate tokens in a replacement token stream.  Only the
// number's first digit names the capture; whatever follows it is returned
// in rest for the caller to emit as literal text, mirroring the one-digit
// rule for "**N" inside a token, where **10 reads as capture 1 followed by
// a literal 0.  after is the token past the sequence.
func MatchBareCapture(t Token) (n int, rest string, after Token, ok bool) {
	if t.IsBoundary() || t.Text() != "*" {
		return 0, "", Token{}, false
	}
	t2 := t.Next()
	if t2.IsBoundary() || t2.Text() != "*" {
		return 0, "", Token{}, false
	}
	t3 := t2.Next()
	if t3.IsBoundary() || len(t3.Text()) == 0 {
		return 0, "", Token{}, false
	}
	text := t3.Text()
	d := text[0]
	if d < '1' || d > '9' {
		return 0, "", Token{}, false
	}
	return int(d - '0'), text[1:], t3.Next(), true
}

// HasCaptureRef reports whether t's text contains a "**N" reference.
func HasCaptureRef(t Token) bool {
	text := t.Text()
	for i := 0; i+2 < len(text); i++ {
		if n, ok := bareCaptureAt(text, i); ok && n >= 1 {
			return true
		}
	}
	return false
}

// FixupGapCaptures adjusts every MultiWildcard capture in captures to
// include the comments and whitespace that surround the tokens it matched:
// the capture is widened to run from the preceding token's end to the
// following token's begin.  A zero-length capture collapses to the
// preceding token's end.  spans is the per-wildcard TokenSpan slice
// MatchWithSpans returned alongside captures; pattern is used only to tell
// single wildcards from multi ones, since a span carries no kind of its
// own.
func FixupGapCaptures(pattern []PatternElement, captures []Capture, spans []TokenSpan) []Capture {
	out := make([]Capture, len(captures))
	copy(out, captures)

	ci := 0
	for _, e := range pattern {
		switch e.Kind {
		case ElemSingle:
			ci++
		case ElemMulti:
			span := spans[ci]
			begin, end := span.Prev.End(), span.Next.Begin()
			if out[ci].Begin == out[ci].End {
				begin, end = span.Prev.End(), span.Prev.End()
			}
			out[ci] = Capture{Begin: begin, End: end}
			ci++
		}
	}
	return out
}
