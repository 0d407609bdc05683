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
	"os/exec"
)

// runCommand produces a command's normal output on w when dryRun is false.
// When dryRun is true, it instead writes the output to a scratch temp file,
// diffs it against a second temp file holding orig, and writes the diff to
// w.  A dry run succeeds whether the files are equal or differ; only a
// diff invocation failure (exit status >= 2) is reported as an error.
func runCommand(w io.Writer, name, orig string, noColor, dryRun bool, fn func(io.Writer) error) error {
	if !dryRun {
		return fn(w)
	}

	origFile, err := os.CreateTemp("", "vced-orig-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer os.Remove(origFile.Name())
	defer origFile.Close()
	if _, err := io.WriteString(origFile, orig); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	newFile, err := os.CreateTemp("", "vced-new-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer os.Remove(newFile.Name())
	defer newFile.Close()

	if err := fn(newFile); err != nil {
		return err
	}

	args := []string{"-u"}
	if !noColor {
		args = append(args, "--color")
	}
	args = append(args, "--label", "a/"+name, "--label", "b/"+name, origFile.Name(), newFile.Name())

	cmd := exec.Command("diff", args...)
	cmd.Stdout = w
	cmd.Stderr = w
	err = cmd.Run()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if exitErr.ExitCode() == 1 {
			return nil
		}
	}
	return fmt.Errorf("%w: diff: %v", ErrIO, err)
}
