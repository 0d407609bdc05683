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

func TestRunReplaceTwoPass(t *testing.T) {
	var buf bytes.Buffer
	err := runReplace(&buf, "<test>", `backend b { .host = "1.2.3.4"; }`,
		[]string{`.host = **`, `.host = "9.9.9.9"`})
	require.NoError(t, err)
	require.Equal(t, "backend b {\n    .host = \"9.9.9.9\";\n}\n", buf.String())
}

func TestRunReplaceQuoteStripping(t *testing.T) {
	var buf bytes.Buffer
	err := runReplace(&buf, "<test>", `backend b { .host = "1.2.3.4"; }`,
		[]string{`.host = **`, `.host = "**1"`})
	require.NoError(t, err)
	// The capture is already quoted; interpolating it into a quoted
	// template must not double the quotes.
	require.Equal(t, "backend b {\n    .host = \"1.2.3.4\";\n}\n", buf.String())
}

func TestRunReplaceOnePassOnHashTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := runReplace(&buf, "<test>", `set req.x = 1;`,
		[]string{"req.x", "req.y # note"})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "req.y")
}

func TestRunReplaceWithLimit(t *testing.T) {
	var buf bytes.Buffer
	err := runReplace(&buf, "<test>", "set a = 1; set a = 1;",
		[]string{"--limit", "1", "a", "z"})
	require.NoError(t, err)
	out := buf.String()
	require.Equal(t, 1, bytes.Count([]byte(out), []byte("z =")))
}

func TestRunReplaceRequiresTwoArgs(t *testing.T) {
	var buf bytes.Buffer
	err := runReplace(&buf, "<test>", "set a = 1;", []string{"a"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUsage)
}
