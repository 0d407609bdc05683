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
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   string
		want string
	}{
		{
			"block with statements",
			`backend b{.host="1.2.3.4";.port="80";}`,
			"backend b {\n    .host = \"1.2.3.4\";\n    .port = \"80\";\n}\n",
		},
		{
			"tight punctuation",
			`sub vcl_recv ( ) { call foo ; }`,
			"sub vcl_recv () {\n    call foo;\n}\n",
		},
		{
			"numeric unit suffix",
			`set req.ttl = 5s ;`,
			"set req.ttl = 5s;\n",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(tt.name, tt.in)
			var buf strings.Builder
			if err := Format(&buf, src); err != nil {
				t.Fatalf("Format: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Format(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestEmitSourceCaps checks capture substitution during formatting: a
// lexed template containing a bare "**N" triple, or a "**N" reference
// embedded in a single token's own text, both get the Nth capture
// substituted in.
func TestEmitSourceCaps(t *testing.T) {
	buf := `.host = "1.2.3.4";`
	captures := []Capture{{Begin: 9, End: 16}} // "1.2.3.4", unquoted

	t.Run("bare triple", func(t *testing.T) {
		tmpl := NewSource("tmpl", "host = * * 1")
		var out strings.Builder
		f := NewFormatter(&out)
		f.EmitSourceCaps(tmpl, buf, captures)
		if err := f.Err(); err != nil {
			t.Fatalf("EmitSourceCaps: %v", err)
		}
		if got, want := out.String(), `host = 1.2.3.4`; got != want {
			t.Errorf("EmitSourceCaps bare triple = %q, want %q", got, want)
		}
	})

	t.Run("ref inside token", func(t *testing.T) {
		tmpl := NewSource("tmpl", `"**1"`)
		var out strings.Builder
		f := NewFormatter(&out)
		f.EmitSourceCaps(tmpl, buf, captures)
		if err := f.Err(); err != nil {
			t.Fatalf("EmitSourceCaps: %v", err)
		}
		if got, want := out.String(), `"1.2.3.4"`; got != want {
			t.Errorf("EmitSourceCaps ref-inside-token = %q, want %q", got, want)
		}
	})
}

func TestFormatPreservesComments(t *testing.T) {
	in := "backend b {\n    # keep\n    .host = \"x\";\n}\n"
	src := NewSource("t", in)
	var buf strings.Builder
	if err := Format(&buf, src); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "# keep") {
		t.Errorf("Format output %q does not preserve comment", got)
	}
}
