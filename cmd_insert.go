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
	"os"

	"github.com/alecthomas/repr"
	"github.com/pborman/getopt"

	"github.com/vcledit/vced/pkg/vcl"
)

func init() {
	register(&command{
		name: "insert",
		help: "insert text at every site matching --look-behind/--look-ahead",
		run:  runInsert,
	})
}

// lookAroundFlags holds the --look-behind/--look-ahead/--limit/--offset
// flag set shared by insert, replace, and extract.
type lookAroundFlags struct {
	lookBehind   string
	lookAhead    string
	limit        int
	offset       int
	debugPattern bool

	limitOpt, offsetOpt getopt.Option
}

func registerLookAroundFlags(flags *getopt.Set, f *lookAroundFlags) {
	flags.StringVarLong(&f.lookBehind, "look-behind", 0, "require this pattern immediately before the match", "PATTERN")
	flags.StringVarLong(&f.lookAhead, "look-ahead", 0, "require this pattern immediately after the match", "PATTERN")
	f.limitOpt = flags.IntVarLong(&f.limit, "limit", 0, "apply to at most LIMIT matches", "LIMIT")
	f.offsetOpt = flags.IntVarLong(&f.offset, "offset", 0, "skip the first OFFSET matches", "OFFSET")
	flags.BoolVarLong(&f.debugPattern, "debug-pattern", 0, "dump compiled patterns to stderr")
}

// validateOffset rejects --offset given without --limit: an offset alone
// would silently skip matches with nothing bounding how many apply.
func validateOffset(f *lookAroundFlags) error {
	if f.offsetOpt.Seen() && !f.limitOpt.Seen() {
		return fmt.Errorf("%w: --offset requires --limit", ErrUsage)
	}
	return nil
}

func compileLookAround(f *lookAroundFlags) (lookBehind, lookAhead []vcl.PatternElement, err error) {
	if f.lookBehind != "" {
		lookBehind, err = vcl.CompilePattern(f.lookBehind)
		if err != nil {
			return nil, nil, err
		}
	}
	if f.lookAhead != "" {
		lookAhead, err = vcl.CompilePattern(f.lookAhead)
		if err != nil {
			return nil, nil, err
		}
	}
	if f.debugPattern {
		if lookBehind != nil {
			fmt.Fprintln(os.Stderr, "look-behind:", repr.String(lookBehind, repr.Indent("  ")))
		}
		if lookAhead != nil {
			fmt.Fprintln(os.Stderr, "look-ahead:", repr.String(lookAhead, repr.Indent("  ")))
		}
	}
	return lookBehind, lookAhead, nil
}

func runInsert(w io.Writer, srcName, src string, args []string) error {
	var laf lookAroundFlags
	flags := getopt.New()
	registerLookAroundFlags(flags, &laf)
	flags.SetParameters("<text>")
	if err := parseFlags(flags, "insert", args); err != nil {
		return err
	}
	if err := validateOffset(&laf); err != nil {
		return err
	}
	rest := flags.Args()
	if len(rest) != 1 {
		return fmt.Errorf("%w: insert requires exactly one TEXT argument", ErrUsage)
	}
	text := rest[0]

	lookBehind, lookAhead, err := compileLookAround(&laf)
	if err != nil {
		return err
	}

	source := vcl.NewSource(srcName, src)
	if err := vcl.CheckUnknownGaps(source); err != nil {
		return err
	}
	insertSrc := vcl.NewSource("<insert>", text)

	f := vcl.NewFormatter(w)
	counter := 0
	nullLookAround := laf.lookBehind == "" && laf.lookAhead == ""

	prevEnd := source.SOI().End()
	for t := source.SOI().Next(); !t.IsBoundary(); t = t.Next() {
		f.EmitGapComments(source, prevEnd, t.Begin())
		if !nullLookAround {
			if siteMatches(t, lookBehind, lookAhead) {
				counter++
				if applies(counter, laf.offset, laf.limit) {
					f.EmitSource(insertSrc)
				}
			}
		}
		f.Emit(t)
		prevEnd = t.End()
	}

	// End-of-stream is a site too: a look-behind anchored on the final
	// statement has nowhere else to fire.
	if !nullLookAround && siteMatches(source.EOI(), lookBehind, lookAhead) {
		counter++
		if applies(counter, laf.offset, laf.limit) {
			f.EmitSource(insertSrc)
		}
	}

	if nullLookAround {
		f.EmitSource(insertSrc)
	}

	f.Finish()
	if f.Err() != nil {
		return fmt.Errorf("insert: %w", f.Err())
	}
	return nil
}

// siteMatches reports whether the look-behind pattern matches ending just
// before t and the look-ahead pattern matches starting at t.  An insertion
// site carries no pattern of its own, so it is checked as a zero-length
// match anchored at t.
func siteMatches(t vcl.Token, lookBehind, lookAhead []vcl.PatternElement) bool {
	_, _, ok := vcl.TryPatternMatch(t, nil, lookBehind, lookAhead)
	return ok
}
