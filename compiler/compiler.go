// Package compiler lowers a parsed module (ast.Module) into bytecode: a
// linear instruction stream with resolved variable locations, hoisted
// declarations, and fixed-up jumps. Grounded on
// original_source/src/bytecode/builder/{builder,base,statement,expression,
// operator}.rs, adapted from informatter-nilan's emit-as-you-visit structure in
// compiler/ast_compiler.go.
package compiler

import (
	"fmt"

	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/source"
)

// Error reports a compile-time failure: an unresolved name, or a misused
// construct the parser could not itself reject.
type Error struct {
	Message string
	Span    source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("compile error at %s: %s", e.Span, e.Message)
}

// Compiler emits instructions for a single function or module body into its
// own Environment. A nested function body gets its own child Compiler over
// a child Environment (see emitFunctionExpr).
type Compiler struct {
	environment  *environment.Environment
	instructions []bytecode.Instruction
	markers      map[int]map[bytecode.Marker]bool
	err          error
}

// New creates a Compiler that emits into env.
func New(env *environment.Environment) *Compiler {
	return &Compiler{
		environment: env,
		markers:     map[int]map[bytecode.Marker]bool{},
	}
}

// CompileModule compiles a top-level module body, returning its bytecode
// and the Environment the caller can inspect for exported names. It
// creates a fresh Environment with an empty global set - use
// CompileModuleIn when a shared global set (e.g. the built-ins every
// importing module must see) needs to carry over from a caller.
func CompileModule(module *ast.Module, path source.CanonicalPath) (bytecode.Bytecode, *environment.Environment, error) {
	return CompileModuleIn(module, environment.New(path))
}

// CompileModuleIn compiles module's top-level body into the already
// constructed env - typically the entry environment that built-ins were
// registered into, or a sibling produced by (*environment.Environment).
// ForModule so an imported module resolves the same global names its
// importer does. Grounded on original_source/src/bytecode/builder/base.rs's
// emit_module, generalized to accept a caller-supplied Environment.
func CompileModuleIn(module *ast.Module, env *environment.Environment) (bytecode.Bytecode, *environment.Environment, error) {
	c := New(env)
	c.emitModule(module)
	if c.err != nil {
		return bytecode.Bytecode{}, nil, c.err
	}
	return c.build(), env, nil
}

func (c *Compiler) fail(span source.Span, format string, args ...any) {
	if c.err == nil {
		c.err = &Error{Message: fmt.Sprintf(format, args...), Span: span}
	}
}

func (c *Compiler) last() int { return len(c.instructions) - 1 }
func (c *Compiler) end() int  { return len(c.instructions) }

func (c *Compiler) add(instruction bytecode.Instruction) {
	c.instructions = append(c.instructions, instruction)
}

func (c *Compiler) set(line int, instruction bytecode.Instruction) {
	c.instructions[line] = instruction
}

func (c *Compiler) blank() int {
	c.add(bytecode.Instruction{Op: bytecode.Blank})
	return c.last()
}

func (c *Compiler) mark(line int, marker bytecode.Marker) {
	group, ok := c.markers[line]
	if !ok {
		group = map[bytecode.Marker]bool{}
		c.markers[line] = group
	}
	group[marker] = true
}

func (c *Compiler) hasMarker(line int, marker bytecode.Marker) bool {
	return c.markers[line] != nil && c.markers[line][marker]
}

// build finalizes break/continue jumps and returns the assembled Bytecode.
func (c *Compiler) build() bytecode.Bytecode {
	c.finalize()
	return bytecode.Bytecode{
		Instructions:  c.instructions,
		VariableCount: c.environment.FrameSize(),
	}
}

func (c *Compiler) finalize() {
	for line := 0; line <= len(c.instructions); line++ {
		if c.hasMarker(line, bytecode.Break) {
			c.finalizeBreak(line)
		}
		if c.hasMarker(line, bytecode.Continue) {
			c.finalizeContinue(line)
		}
	}
}

// finalizeBreak points the Blank at line to the end of the nearest
// enclosing loop, scanning forward and tracking nested-loop depth so a
// break only escapes its own loop.
func (c *Compiler) finalizeBreak(line int) {
	depth := 0
	for current := line; current <= len(c.instructions); current++ {
		if c.hasMarker(current, bytecode.LoopStart) {
			depth++
		} else if c.hasMarker(current, bytecode.LoopEnd) {
			if depth == 0 {
				c.set(line, bytecode.Instruction{Op: bytecode.Jump, Target: current})
				return
			}
			depth--
		}
	}
}

// finalizeContinue points the Blank at line back to the start of the
// nearest enclosing loop, scanning backward.
func (c *Compiler) finalizeContinue(line int) {
	depth := 0
	for current := line; current >= 0; current-- {
		if c.hasMarker(current, bytecode.LoopEnd) {
			depth++
		} else if c.hasMarker(current, bytecode.LoopStart) {
			if depth == 0 {
				c.set(line, bytecode.Instruction{Op: bytecode.Jump, Target: current})
				return
			}
			depth--
		}
	}
}

// emitVariablePush/emitVariableAssign resolve name to a location in the
// current environment (capturing across a function boundary as needed) and
// emit the matching push/assign instruction. Grounded on
// original_source/src/bytecode/builder.rs's emit_variable_instruction.
func (c *Compiler) emitVariablePush(name string, span source.Span) {
	c.emitVariableInstruction(name, span, false)
}

func (c *Compiler) emitVariableAssign(name string, span source.Span) {
	c.emitVariableInstruction(name, span, true)
}

func (c *Compiler) emitVariableInstruction(name string, span source.Span, assign bool) {
	location, ok := c.environment.GetVariableLocation(name)
	if !ok {
		c.fail(span, "undefined variable '%s'", name)
		return
	}

	switch location.Kind {
	case environment.StackLocation:
		address, _ := c.environment.GetOrCaptureVariableAddress(name)
		if assign {
			c.add(bytecode.Instruction{Op: bytecode.AssignVariable, Address: address})
		} else {
			c.add(bytecode.Instruction{Op: bytecode.PushVariable, Address: address})
		}
	case environment.ExportLocation:
		if assign {
			c.add(bytecode.Instruction{Op: bytecode.AssignExport, ExportPath: string(location.Path), ExportName: location.Name})
		} else {
			c.add(bytecode.Instruction{Op: bytecode.PushExport, ExportPath: string(location.Path), ExportName: location.Name})
		}
	case environment.GlobalLocation:
		if assign {
			c.fail(span, "global variable '%s' cannot be reassigned", name)
			return
		}
		c.add(bytecode.Instruction{Op: bytecode.PushGlobal, Address: location.Address})
	}
}
