package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/comfort-stereo/regis/diagnostics"
	"github.com/comfort-stereo/regis/module"
	"github.com/comfort-stereo/regis/source"
)

// runCmd implements the "run" subcommand: lex, parse, compile, and execute
// a single source file, following its @import chain as needed.
type runCmd struct {
	debug bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a Regis source file" }
func (*runCmd) Usage() string {
	return `run <path>:
  Execute Regis code from a source file.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "print each instruction and stack operation as it executes")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}

	entry, err := source.Canonicalize(".", args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to resolve '%s': %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	program := module.NewProgram(entry, r.debug)
	if _, err := program.LoadPath(entry); err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Render(err))
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
