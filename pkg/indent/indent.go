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

// Package indent prefixes every line of a stream with a fixed string.  It
// is used by the CLI to indent nested help text.
package indent

import "io"

// String returns in with prefix inserted at the start of every line.
func String(prefix, in string) string {
	return string(Bytes([]byte(prefix), []byte(in)))
}

// Bytes returns in with prefix inserted at the start of every line.
func Bytes(prefix, in []byte) []byte {
	var b writeBuffer
	w := NewWriter(&b, string(prefix))
	w.Write(in)
	return b.buf
}

// writeBuffer is a trivial io.Writer that never errors, used so Bytes/String
// can share the Writer's line-tracking logic.
type writeBuffer struct {
	buf []byte
}

func (b *writeBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// Writer wraps an io.Writer, inserting prefix at the start of every line,
// empty lines included.  A line's prefix is written together with the
// line's first byte, so writing nothing writes no prefix.
type Writer struct {
	w      io.Writer
	prefix []byte
	nl     bool // true if the next byte written starts a new line
}

// NewWriter returns a Writer that indents whatever is written to it with
// prefix and forwards the result to w.
func NewWriter(w io.Writer, prefix string) *Writer {
	return &Writer{w: w, prefix: []byte(prefix), nl: true}
}

// Write indents b and writes it to the underlying writer.  The returned
// count is the number of bytes of b that were fully written through,
// including their indentation, not the number of raw bytes sent downstream.
func (w *Writer) Write(b []byte) (int, error) {
	out := make([]byte, 0, len(b)+len(w.prefix))
	marks := make([]int, len(b)+1)
	nl := w.nl
	for i, c := range b {
		if nl {
			out = append(out, w.prefix...)
		}
		out = append(out, c)
		nl = c == '\n'
		marks[i+1] = len(out)
	}

	n, err := w.w.Write(out)
	if n > len(out) {
		n = len(out)
	}

	consumed := 0
	for i, m := range marks {
		if m > n {
			break
		}
		consumed = i
	}

	if err == nil {
		w.nl = nl
	} else if consumed > 0 {
		w.nl = b[consumed-1] == '\n'
	}
	return consumed, err
}
