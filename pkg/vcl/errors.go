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

import "errors"

// Sentinel errors for the package.  Errors returned by the package wrap
// these, so callers can classify them with errors.Is.
var (
	// ErrSyntax marks a gap scanner failure: unparseable content between
	// tokens outside of a diagnostic command.
	ErrSyntax = errors.New("syntax error")

	// ErrPattern marks a pattern that cannot be compiled, such as one that
	// would require more than 9 captures.
	ErrPattern = errors.New("pattern error")
)
