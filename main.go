// Program vced edits and reformats files written in a Varnish-VCL-like
// configuration language.
//
// Usage: vced <command> <file|-> [flags] [positional args]
//
// Commands: format, tokens, insert, replace, extract. A file argument of
// "-" reads from standard input.
//
// THIS PROGRAM IS STILL JUST A DEVELOPMENT TOOL.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/trace"
	"sort"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/pborman/getopt"

	"github.com/vcledit/vced/pkg/indent"
)

// command is one subcommand's driver.  run receives the file (or stdin)
// contents already read, and whatever arguments followed the file on the
// command line; it parses its own flags with a fresh getopt.Set.
type command struct {
	name string
	help string
	run  func(w io.Writer, srcName, src string, args []string) error
}

var commands = map[string]*command{}

func register(c *command) { commands[c.name] = c }

// commandNames is kept as a stringset so "unknown command" validation and
// the sorted help listing share one source of truth.
func commandNames() stringset.Set {
	names := stringset.New()
	for n := range commands {
		names.Add(n)
	}
	return names
}

var stop = os.Exit

func main() {
	if len(os.Args) < 2 {
		usage()
		stop(1)
	}
	cmdName := os.Args[1]
	rest := os.Args[2:]

	if cmdName == "--help" || cmdName == "-?" {
		usage()
		stop(0)
	}

	cmd, ok := commands[cmdName]
	if !ok {
		names := commandNames().Elements()
		sort.Strings(names)
		fmt.Fprintf(os.Stderr, "%s: unknown command. Choices are %s\n", cmdName, strings.Join(names, ", "))
		stop(1)
	}

	// Global flags may appear anywhere after the command, including after
	// the file argument where a getopt pass would already have stopped, so
	// they are stripped by hand before the per-command flag parse.
	var dryRun, noColor bool
	var traceP string
	var remaining []string
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--dry-run":
			dryRun = true
		case "--no-color":
			noColor = true
		case "--trace":
			if i+1 >= len(rest) {
				fmt.Fprintln(os.Stderr, "--trace requires a value")
				stop(1)
			}
			i++
			traceP = rest[i]
		default:
			remaining = append(remaining, rest[i])
		}
	}
	if len(remaining) == 0 {
		fmt.Fprintf(os.Stderr, "%s: missing file argument\n", cmdName)
		stop(1)
	}
	fileArg, cmdArgs := remaining[0], remaining[1:]

	if traceP != "" {
		fp, err := os.Create(traceP)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
		}
		trace.Start(fp)
		stop = func(c int) { trace.Stop(); os.Exit(c) }
		defer trace.Stop()
	}

	data, err := readInput(fileArg)
	if err != nil {
		reportAndExit(err)
	}

	err = runCommand(os.Stdout, sourceName(fileArg), data, noColor, dryRun, func(w io.Writer) error {
		return cmd.run(w, sourceName(fileArg), data, cmdArgs)
	})
	if err != nil {
		reportAndExit(err)
	}
}

// parseFlags runs a per-command getopt.Set over args.  getopt treats the
// first element of its argument list as the program name, so the command's
// own name is prepended.
func parseFlags(flags *getopt.Set, name string, args []string) error {
	if err := flags.Getopt(append([]string{name}, args...), nil); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func reportAndExit(err error) {
	fmt.Fprintln(os.Stderr, err)
	if errors.Is(err, ErrUsage) {
		usage()
	}
	stop(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: vced <command> <file|-> [flags] [args...]")
	names := commandNames().Elements()
	sort.Strings(names)
	fmt.Fprintln(os.Stderr, "\nCommands:")
	w := indent.NewWriter(os.Stderr, "    ")
	for _, n := range names {
		fmt.Fprintf(w, "%s - %s\n", n, commands[n].help)
	}
	fmt.Fprintln(os.Stderr, "\nGlobal flags: --dry-run, --no-color, --trace FILE")
}
