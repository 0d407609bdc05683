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

	"github.com/pborman/getopt"

	"github.com/vcledit/vced/pkg/vcl"
)

func init() {
	register(&command{
		name: "tokens",
		help: "print KIND VALUE per token",
		run:  runTokens,
	})
}

func runTokens(w io.Writer, srcName, src string, args []string) error {
	var processed bool
	flags := getopt.New()
	flags.BoolVarLong(&processed, "processed", 0, "include SOI/EOI and label gap content")
	if err := parseFlags(flags, "tokens", args); err != nil {
		return err
	}

	source := vcl.NewSource(srcName, src)

	if !processed {
		for _, t := range source.Tokens() {
			if err := printToken(w, t.Kind().String(), t.Text()); err != nil {
				return err
			}
		}
		return nil
	}

	return printProcessedTokens(w, source)
}

// printProcessedTokens implements `tokens --processed`: every token
// including SOI/EOI, plus a record for every labeled gap item (comments,
// directives, and unknown content; whitespace runs are skipped) found
// between consecutive tokens.
func printProcessedTokens(w io.Writer, source *vcl.Source) error {
	all := source.All()
	for i, t := range all {
		if err := printToken(w, t.Kind().String(), t.Text()); err != nil {
			return err
		}
		if i+1 >= len(all) {
			continue
		}
		from, to := t.End(), all[i+1].Begin()
		if from >= to {
			continue
		}
		for _, g := range vcl.ScanGaps(source.Buf, from, to) {
			label := gapLabel(g.Kind)
			if label == "" {
				continue
			}
			if err := printToken(w, label, source.Buf[g.Begin:g.End]); err != nil {
				return err
			}
		}
	}
	return nil
}

func gapLabel(k vcl.GapKind) string {
	switch k {
	case vcl.GapComment:
		return "COMMENT"
	case vcl.GapDirective:
		return "DIRECTIVE"
	case vcl.GapUnknown:
		return "UNKNOWN"
	default:
		return ""
	}
}

func printToken(w io.Writer, kind, value string) error {
	_, err := fmt.Fprintf(w, "%-12s %s\n", kind, value)
	return err
}
