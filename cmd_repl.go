package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/comfort-stereo/regis/builtins"
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/compiler"
	"github.com/comfort-stereo/regis/diagnostics"
	"github.com/comfort-stereo/regis/lexer"
	"github.com/comfort-stereo/regis/module"
	"github.com/comfort-stereo/regis/parser"
	"github.com/comfort-stereo/regis/source"
	"github.com/comfort-stereo/regis/token"
	"github.com/comfort-stereo/regis/vm"
)

// replCmd implements the "repl" subcommand: a persistent session where
// each input is compiled against the same top-level Environment and run
// against the same Vm, so declarations and imports from earlier lines stay
// visible to later ones.
type replCmd struct {
	debug bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive Regis session.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "print each instruction and stack operation as it executes")
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("Regis REPL. Type 'exit' to quit.")

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	path := source.CanonicalPath("<repl>")
	env := environment.New(path)
	machine := vm.New()
	machine.Debug = r.debug
	machine.Globals = builtins.Register(env)
	module.New(machine, env)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		if buffer.Len() == 0 && strings.TrimSpace(line) == "exit" {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)

		tokens := lexer.New(buffer.String()).Scan()
		if !isInputReady(tokens) {
			rl.SetPrompt("... ")
			continue
		}
		rl.SetPrompt(">>> ")

		text := buffer.String()
		buffer.Reset()

		parsed, err := parser.Parse(tokens)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagnostics.Render(diagnostics.Bind(err, path, text)))
			continue
		}

		code, _, err := compiler.CompileModuleIn(parsed, env)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagnostics.Render(err))
			continue
		}

		isExpression := echoTrailingExpression(&code)

		result, err := machine.RunREPLLine(code, path)
		if err != nil {
			fmt.Fprintln(os.Stderr, diagnostics.Render(err))
			continue
		}
		if isExpression {
			fmt.Println(result)
		}
	}
}

// echoTrailingExpression rewrites a bare top-level expression's trailing
// Pop into a Return, so RunREPLLine hands the value back to this command
// to print instead of silently discarding it - the only difference
// between REPL bytecode and the bytecode "run" would compile for the same
// line. A declaration or assignment never ends in Pop (see
// compiler.emitVariableAssign), so this never fires for those, and the
// bool return tells the caller whether to print the result at all.
func echoTrailingExpression(code *bytecode.Bytecode) bool {
	n := len(code.Instructions)
	if n == 0 {
		return false
	}
	if last := code.Instructions[n-1]; last.Op == bytecode.Pop {
		code.Instructions[n-1] = bytecode.Instruction{Op: bytecode.Return}
		return true
	}
	return false
}

// isInputReady reports whether tokens form a complete, balanced REPL input
// ready to parse, so a block spanning multiple lines (`if (x) {`) waits for
// its closing brace instead of erroring out early. Grounded on the
// teacher's cmd_repl_compiled.go isInputReady, generalized from its token
// package to this one's Kind/Symbol shape.
func isInputReady(tokens []token.Token) bool {
	depth := 0
	for _, tok := range tokens {
		if tok.Kind != token.SymbolKind {
			continue
		}
		switch tok.Symbol {
		case token.LeftBrace, token.LeftParen, token.LeftBracket:
			depth++
		case token.RightBrace, token.RightParen, token.RightBracket:
			depth--
		}
	}
	return depth <= 0
}
