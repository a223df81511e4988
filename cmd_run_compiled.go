package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/comfort-stereo/regis/builtins"
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/diagnostics"
	"github.com/comfort-stereo/regis/module"
	"github.com/comfort-stereo/regis/source"
	"github.com/comfort-stereo/regis/vm"
)

// runCompiledCmd implements "run-compiled": load a file previously written
// by "emit-bytecode -o" and execute it directly, skipping lex/parse/compile.
// A @import inside the compiled code still resolves and compiles other
// source files normally, through the same module.Cache "run" uses.
type runCompiledCmd struct {
	debug bool
}

func (*runCompiledCmd) Name() string     { return "run-compiled" }
func (*runCompiledCmd) Synopsis() string { return "Execute a previously compiled bytecode file" }
func (*runCompiledCmd) Usage() string {
	return `run-compiled <path>:
  Execute bytecode written by "emit-bytecode -o".
`
}

func (cmd *runCompiledCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.debug, "debug", false, "print each instruction and stack operation as it executes")
}

func (cmd *runCompiledCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitUsageError
	}

	path, err := source.Canonicalize(".", args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to resolve '%s': %v\n", args[0], err)
		return subcommands.ExitFailure
	}

	file, err := os.Open(string(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	code, err := bytecode.Decode(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to decode bytecode: %v\n", err)
		return subcommands.ExitFailure
	}

	rootEnv := environment.New(path)
	machine := vm.New()
	machine.Debug = cmd.debug
	machine.Globals = builtins.Register(rootEnv)
	module.New(machine, rootEnv)

	if _, err := machine.RunModule(code, path, nil); err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Render(err))
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
