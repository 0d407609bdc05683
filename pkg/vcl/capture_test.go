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

import "testing"

func TestSubstituteCaptures(t *testing.T) {
	buf := `"1.2.3.4" 80`
	captures := []Capture{{0, 9}, {10, 12}}

	for _, tt := range []struct {
		name     string
		template string
		want     string
	}{
		{"plain substitution", "host=**1 port=**2", `host="1.2.3.4" port=80`},
		{"quote stripping", `"**1"`, `"1.2.3.4"`},
		{"no ref", "literal text", "literal text"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubstituteCaptures(tt.template, buf, captures); got != tt.want {
				t.Errorf("SubstituteCaptures(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestSubstituteCapturesTruncates(t *testing.T) {
	big := make([]byte, maxSubstituteOutput+100)
	for i := range big {
		big[i] = 'x'
	}
	got := SubstituteCaptures(string(big), "", nil)
	if len(got) != maxSubstituteOutput {
		t.Errorf("len(SubstituteCaptures overlong) = %d, want %d", len(got), maxSubstituteOutput)
	}
}

func TestHasCaptureRef(t *testing.T) {
	src := NewSource("t", `"x**3y"`)
	tok := src.Tokens()[0]
	if !HasCaptureRef(tok) {
		t.Errorf("HasCaptureRef(%q) = false, want true", tok.Text())
	}

	src2 := NewSource("t2", "plain")
	if HasCaptureRef(src2.Tokens()[0]) {
		t.Errorf("HasCaptureRef(plain) = true, want false")
	}
}

func TestMatchBareCapture(t *testing.T) {
	src := NewSource("t", "* * 2")
	toks := src.Tokens()
	n, rest, after, ok := MatchBareCapture(toks[0])
	if !ok || n != 2 || rest != "" {
		t.Fatalf("MatchBareCapture = (%d, %q, %v), want (2, \"\", true)", n, rest, ok)
	}
	if !after.IsBoundary() {
		t.Errorf("after = %q, want EOI", after.Text())
	}

	// Only the first digit names the capture; the remainder of the number
	// is literal text.
	src2 := NewSource("t2", "* * 10")
	n, rest, _, ok = MatchBareCapture(src2.Tokens()[0])
	if !ok || n != 1 || rest != "0" {
		t.Errorf("MatchBareCapture(* * 10) = (%d, %q, %v), want (1, \"0\", true)", n, rest, ok)
	}
}

// TestFixupGapCaptures checks the gap-inclusion rule: a MultiWildcard
// capture is widened to span from the preceding token's end to the
// following token's begin, so comments between the matched tokens and
// their neighbors survive into the captured slice.
func TestFixupGapCaptures(t *testing.T) {
	buf := "backend b { /* keep me */ .host = \"x\"; }"
	src := NewSource("t", buf)
	src.InsertComments()
	pattern := mustCompile(t, "backend b { *** }")

	start := src.Tokens()[0]
	_, captures, spans, ok := MatchWithSpans(start, pattern)
	if !ok {
		t.Fatalf("MatchWithSpans failed")
	}
	fixed := FixupGapCaptures(pattern, captures, spans)
	if len(fixed) != 1 {
		t.Fatalf("got %d captures, want 1", len(fixed))
	}
	if fixed[0].Begin > captures[0].Begin || fixed[0].End < captures[0].End {
		t.Errorf("fixup narrowed the capture: got [%d,%d), original [%d,%d)", fixed[0].Begin, fixed[0].End, captures[0].Begin, captures[0].End)
	}
}
