package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/comfort-stereo/regis/builtins"
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/compiler"
	"github.com/comfort-stereo/regis/diagnostics"
	"github.com/comfort-stereo/regis/lexer"
	"github.com/comfort-stereo/regis/parser"
	"github.com/comfort-stereo/regis/source"
)

// emitBytecodeCmd implements the "emit-bytecode" subcommand. With -o it
// writes the gob-encoded Bytecode runCompiledCmd can load directly;
// otherwise it prints the human-readable disassembly to stdout.
type emitBytecodeCmd struct {
	output string
}

func (*emitBytecodeCmd) Name() string { return "emit-bytecode" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Compile a source file and print or save its bytecode"
}
func (*emitBytecodeCmd) Usage() string {
	return `emit-bytecode [-o file] <path>:
  Compile a Regis source file and print its disassembly, or, with -o, save
  its encoded bytecode for "run-compiled".
`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&cmd.output, "o", "", "write encoded bytecode to this file instead of printing a disassembly")
	f.StringVar(&cmd.output, "output", "", "long form of -o")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	data, err := os.ReadFile(string(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	tokens := lexer.New(string(data)).Scan()
	parsed, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Render(diagnostics.Bind(err, path, string(data))))
		return subcommands.ExitFailure
	}

	env := environment.New(path)
	builtins.Register(env)
	code, _, err := compiler.CompileModuleIn(parsed, env)
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Render(err))
		return subcommands.ExitFailure
	}

	if cmd.output == "" {
		fmt.Print(bytecode.Disassemble(code))
		return subcommands.ExitSuccess
	}

	var buf bytes.Buffer
	if err := bytecode.Encode(&buf, code); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to encode bytecode: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(cmd.output, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to write '%s': %v\n", cmd.output, err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
