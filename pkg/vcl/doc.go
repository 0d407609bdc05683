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

// Package vcl implements the lexer, gap scanner, wildcard pattern compiler,
// matcher, capture substituter, and pretty-printer used to edit source
// written in a Varnish-style VCL configuration language.
//
// A Source wraps one immutable input buffer and its token stream.  Patterns
// are compiled from a small wildcard dialect (`**` for a single token, `***`
// for a multi-token run, a lone `*` as a literal) into a []PatternElement,
// which the matcher (PatternMatch, TryPatternMatch) walks against a Source's
// tokens to produce captures.  A Formatter re-emits
// a token stream with the package's spacing and indentation rules, optionally
// substituting captures back into a template.
package vcl
