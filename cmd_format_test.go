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
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFormat(t *testing.T) {
	var buf bytes.Buffer
	err := runFormat(&buf, "<test>", `backend b{.host="x";}`, nil)
	require.NoError(t, err)
	require.Equal(t, "backend b {\n    .host = \"x\";\n}\n", buf.String())
}

func TestRunFormatRejectsUnknownGaps(t *testing.T) {
	var buf bytes.Buffer
	err := runFormat(&buf, "<test>", "backend b @@@ { }", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "syntax error")
}

func TestRunTokens(t *testing.T) {
	var buf bytes.Buffer
	err := runTokens(&buf, "<test>", "backend b;", nil)
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "IDENT")
	require.Contains(t, out, "backend")
}

func TestRunTokensProcessed(t *testing.T) {
	var buf bytes.Buffer
	err := runTokens(&buf, "<test>", "a # c\nb", []string{"--processed"})
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "SOI")
	require.Contains(t, out, "EOI")
	require.Contains(t, out, "COMMENT")
}
