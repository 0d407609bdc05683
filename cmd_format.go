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
	"io"

	"github.com/vcledit/vced/pkg/vcl"
)

func init() {
	register(&command{
		name: "format",
		help: "pretty-print the input",
		run:  runFormat,
	})
}

func runFormat(w io.Writer, srcName, src string, args []string) error {
	source := vcl.NewSource(srcName, src)
	if err := vcl.CheckUnknownGaps(source); err != nil {
		return err
	}
	return vcl.Format(w, source)
}
