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
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/openconfig/gnmi/errdiff"
)

func TestCompilePattern(t *testing.T) {
	for _, tt := range []struct {
		name    string
		pattern string
		want    []ElemKind
	}{
		{"literal only", "backend ( )", []ElemKind{ElemLiteral, ElemLiteral, ElemLiteral}},
		{"single wildcard", "backend ** {", []ElemKind{ElemLiteral, ElemSingle, ElemLiteral}},
		{"multi wildcard", "backend *** {", []ElemKind{ElemLiteral, ElemMulti, ElemLiteral}},
		{"lone star is literal", "weight * 2", []ElemKind{ElemLiteral, ElemLiteral, ElemLiteral}},
		{"dot field", ". timeout", []ElemKind{ElemLiteral, ElemLiteral}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompilePattern(tt.pattern)
			if err != nil {
				t.Fatalf("CompilePattern(%q): %v", tt.pattern, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("CompilePattern(%q) = %d elements, want %d: %+v", tt.pattern, len(got), len(tt.want), got)
			}
			for i, e := range got {
				if e.Kind != tt.want[i] {
					t.Errorf("element %d kind = %v, want %v", i, e.Kind, tt.want[i])
				}
			}
		})
	}
}

// TestCompilePatternCaptureLimit checks the fixed capture-array bound: a
// pattern demanding more than nine captures must fail to compile.
func TestCompilePatternCaptureLimit(t *testing.T) {
	pattern := ""
	for i := 0; i < 10; i++ {
		pattern += "** "
	}
	_, err := CompilePattern(pattern)
	if diff := errdiff.Substring(err, "pattern requires"); diff != "" {
		t.Errorf("CompilePattern(10 wildcards): %s", diff)
	}
}

// TestCompilePatternElements checks the full compiled vector, field for
// field, not just each element's Kind.
func TestCompilePatternElements(t *testing.T) {
	got, err := CompilePattern("backend ** {")
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}
	want := []PatternElement{
		{Kind: ElemLiteral, Text: "backend"},
		{Kind: ElemSingle},
		{Kind: ElemLiteral, Text: "{"},
	}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("CompilePattern(%q) mismatch (-got +want):\n%s", "backend ** {", diff)
	}
}

func TestNumCaptures(t *testing.T) {
	elems, err := CompilePattern("backend ** *** ( )")
	if err != nil {
		t.Fatalf("CompilePattern: %v", err)
	}
	if got := NumCaptures(elems); got != 2 {
		t.Errorf("NumCaptures = %d, want 2", got)
	}
}
