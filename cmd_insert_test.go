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

func TestRunInsertNullLookAround(t *testing.T) {
	var buf bytes.Buffer
	err := runInsert(&buf, "<test>", "backend b;", []string{"import std;"})
	require.NoError(t, err)
	require.Equal(t, "backend b;\n\nimport std;\n", buf.String())
}

func TestRunInsertLookAround(t *testing.T) {
	// Two sites are preceded by ';': the second "set", and the end of the
	// stream after the final statement.
	var buf bytes.Buffer
	err := runInsert(&buf, "<test>", "set a = 1; set b = 2;",
		[]string{"--look-behind", ";", "zz"})
	require.NoError(t, err)
	out := buf.String()
	require.Equal(t, 2, bytes.Count([]byte(out), []byte("zz")))
}

func TestRunInsertAfterVersionPragma(t *testing.T) {
	var buf bytes.Buffer
	err := runInsert(&buf, "<test>", "vcl 4.1;",
		[]string{"--look-behind", "SOI vcl **;", "import std;"})
	require.NoError(t, err)
	require.Equal(t, "vcl 4.1;\n\nimport std;\n", buf.String())
}

func TestRunInsertOffsetRequiresLimit(t *testing.T) {
	var buf bytes.Buffer
	err := runInsert(&buf, "<test>", "set a = 1;", []string{"--offset", "1", "x"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUsage)
}

func TestRunInsertRequiresOneArg(t *testing.T) {
	var buf bytes.Buffer
	err := runInsert(&buf, "<test>", "set a = 1;", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUsage)
}
