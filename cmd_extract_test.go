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

func TestRunExtractNoTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "<test>", `backend b { .host = "1.2.3.4"; }`,
		[]string{`.host = **`})
	require.NoError(t, err)
	require.Equal(t, ".host = \"1.2.3.4\"\n", buf.String())
}

func TestRunExtractWithTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "<test>", `backend b { .host = "1.2.3.4"; }`,
		[]string{`.host = **`, "host=**1"})
	require.NoError(t, err)
	require.Equal(t, "host=\"1.2.3.4\"\n", buf.String())
}

func TestRunExtractStripWhitespace(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "<test>", "backend b {\n    .host = \"x\";\n    .port = \"80\";\n}",
		[]string{"--strip-whitespace", "backend b {***}", "**1"})
	require.NoError(t, err)
	require.Equal(t, ".host = \"x\";\n.port = \"80\";\n", buf.String())
}

func TestRunExtractLimitOffset(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "<test>", "sub a { return (ok); } sub b { return (ng); }",
		[]string{"--limit", "1", "--offset", "1", "sub ** {***}"})
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "ng")
	require.NotContains(t, out, "ok")
}

func TestRunExtractIncludesGapComments(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "<test>", "sub a { /* keep */ return (ok); }",
		[]string{"sub a {***}", "**1"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "/* keep */")
}

func TestRunExtractRequiresFromArg(t *testing.T) {
	var buf bytes.Buffer
	err := runExtract(&buf, "<test>", "set a = 1;", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUsage)
}
