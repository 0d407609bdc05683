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

import "errors"

// Sentinel errors for the CLI layer.  pkg/vcl's ErrSyntax and ErrPattern
// round out the set for the engine's own failures; reportAndExit maps them
// all to a nonzero exit status.
var (
	// ErrUsage marks an unknown command/flag, missing argument, or
	// "--offset without --limit".
	ErrUsage = errors.New("usage error")

	// ErrIO marks a failure to read the input file or stdin.
	ErrIO = errors.New("I/O error")
)
