// Package vm implements the stack virtual machine that executes compiled
// §4.5: an operand stack, recursive call frames, capture-cell closures,
// and per-module export storage. Grounded directly on
// original_source/src/vm/vm.rs's dispatch loop and call-frame handling,
// enriched with the capture/export/external-procedure model
// original_source/src/interpreter/{function,capture,native}.rs describe
// but vm.rs's own trimmed prototype never wires up.
package vm

import (
	"fmt"

	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
)

// VM executes compiled Bytecode. One VM corresponds to one running Regis
// program: a single operand stack, shared by every call frame, and a
// module-keyed export store shared by every module loaded into it.
// Grounded on vm.rs's Vm struct.
type VM struct {
	stack   []runtime.Value
	exports *exportStore
	Loader  runtime.ModuleLoader
	Debug   bool

	// Globals holds one Value per name registered with
	// (*environment.Environment).AddGlobal, in the same order - the
	// built-in (@print, @println, ...) procedures in practice, since
	// nothing else in the compiler ever calls AddGlobal. PushGlobal
	// indexes directly into this slice; AssignGlobal is unreachable
	// because the compiler refuses to compile an assignment to a global
	// name (see compiler.emitVariableInstruction).
	Globals []runtime.Value

	replFrame *frame
}

func New() *VM {
	return &VM{exports: newExportStore()}
}

// RunModule executes a module's top-level bytecode and returns the Object
// snapshotting its declared exports. exportNames is the module's
// Environment.Exports(), in declaration order.
func (vm *VM) RunModule(code bytecode.Bytecode, path source.CanonicalPath, exportNames []string) (result *runtime.ObjectValue, err error) {
	defer vm.recoverInternal(&err)

	vm.exports.prepare(path, exportNames)
	frame := newFrame(code.VariableCount)
	if _, err := vm.run(code, path, frame); err != nil {
		return nil, err
	}
	return vm.exports.snapshot(path, exportNames), nil
}

// RunREPLLine executes one line of REPL input against the VM's persistent
// top-level frame, growing that frame to cover any variables the line
// newly declares rather than allocating a fresh one per line - so a `let`
// from an earlier line is still visible by address in a later one. Unlike
// RunModule, it returns whatever value a trailing Return instruction
// leaves on top of the operand stack (the REPL command rewrites a final
// top-level expression statement's Pop into a Return before calling this)
// rather than snapshotting exports.
func (vm *VM) RunREPLLine(code bytecode.Bytecode, path source.CanonicalPath) (result runtime.Value, err error) {
	defer vm.recoverInternal(&err)

	if vm.replFrame == nil {
		vm.replFrame = newFrame(code.VariableCount)
	} else {
		vm.replFrame.grow(code.VariableCount)
	}

	return vm.run(code, path, vm.replFrame)
}

// recoverInternal turns an internal invariant-violation panic (a bug in
// this implementation, not a Regis-level runtime error) into an error
// return, mirroring informatter-nilan's interpreter.Interpret panic recovery.
func (vm *VM) recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("💥 internal VM error: %v", r)
	}
}

func (vm *VM) push(value runtime.Value) {
	vm.stack = append(vm.stack, value)
	if vm.Debug {
		fmt.Printf("DEBUG:   push -> %s (size %d)\n", value, len(vm.stack))
	}
}

func (vm *VM) pop() runtime.Value {
	n := len(vm.stack)
	value := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	if vm.Debug {
		fmt.Printf("DEBUG:   pop  -> %s (size %d)\n", value, len(vm.stack))
	}
	return value
}

func (vm *VM) top() runtime.Value {
	return vm.stack[len(vm.stack)-1]
}

// run executes code's instructions against frame until a Return
// instruction or the end of the stream, returning whatever value a
// Return leaves on top of the operand stack (function bodies always
// arrange for exactly one; module bodies leave none and the result is
// ignored by the caller). Grounded on vm.rs's run_with_arguments, made
// recursive for nested calls (see instructionCall) rather than sharing
// one flat stack of Call frames - the recursive Go call stack plays the
// role vm.rs's `calls: Vec<Call>` plus "currently executing frame" plays
// when CreateFunction resolves a capture from its immediate caller.
func (vm *VM) run(code bytecode.Bytecode, path source.CanonicalPath, frame *frame) (runtime.Value, error) {
	instructions := code.Instructions
	pc := 0

	for pc < len(instructions) {
		instruction := instructions[pc]
		next := pc + 1

		if vm.Debug {
			fmt.Printf("DEBUG: %d -> %s\n", pc, instruction)
		}

		switch instruction.Op {
		case bytecode.Blank:
		case bytecode.Pop:
			vm.pop()
		case bytecode.Duplicate:
			vm.push(vm.top())
		case bytecode.DuplicateTop:
			n := len(vm.stack)
			start := n - instruction.Target
			for i := start; i < n; i++ {
				vm.push(vm.stack[i])
			}
		case bytecode.Jump:
			next = instruction.Target
		case bytecode.JumpIf:
			if vm.pop().ToBoolean() {
				next = instruction.Target
			}
		case bytecode.JumpUnless:
			if !vm.pop().ToBoolean() {
				next = instruction.Target
			}
		case bytecode.Return:
			return vm.pop(), nil
		case bytecode.IsNull:
			vm.push(runtime.BooleanValue(vm.pop().Kind == runtime.Null))
		case bytecode.PushNull:
			vm.push(runtime.NullValue())
		case bytecode.PushBoolean:
			vm.push(runtime.BooleanValue(instruction.Bool))
		case bytecode.PushInt:
			vm.push(runtime.NumberValue(float64(instruction.Int)))
		case bytecode.PushFloat:
			vm.push(runtime.NumberValue(instruction.Float))
		case bytecode.PushString:
			vm.push(runtime.StringValue(instruction.String))
		case bytecode.PushVariable:
			vm.push(frame.get(instruction.Address))
		case bytecode.AssignVariable:
			frame.set(instruction.Address, vm.pop())
		case bytecode.PushExport:
			vm.push(vm.exports.cell(source.CanonicalPath(instruction.ExportPath), instruction.ExportName).Value)
		case bytecode.AssignExport:
			vm.exports.cell(source.CanonicalPath(instruction.ExportPath), instruction.ExportName).Value = vm.pop()
		case bytecode.PushGlobal:
			vm.push(vm.Globals[instruction.Address])
		case bytecode.AssignGlobal:
			// Unreachable: compiler.emitVariableInstruction refuses to
			// compile an assignment to a GlobalLocation. Kept so the
			// dispatch loop has a defined case for every Op the bytecode
			// package defines.
			vm.pop()
		case bytecode.CreateList:
			vm.instructionCreateList(instruction.Target)
		case bytecode.CreateObject:
			vm.instructionCreateObject(instruction.Target)
		case bytecode.CreateFunction:
			vm.instructionCreateFunction(instruction.Procedure, frame)
		case bytecode.Call:
			result, err := vm.instructionCall(instruction.Target, path)
			if err != nil {
				return runtime.Value{}, err
			}
			vm.push(result)
		case bytecode.UnaryNeg, bytecode.UnaryBitNot, bytecode.UnaryNot:
			if err := vm.instructionUnaryOperation(instruction.Op); err != nil {
				return runtime.Value{}, err
			}
		case bytecode.BinaryAdd, bytecode.BinarySub, bytecode.BinaryMul, bytecode.BinaryDiv,
			bytecode.BinaryGt, bytecode.BinaryLt, bytecode.BinaryGte, bytecode.BinaryLte,
			bytecode.BinaryEq, bytecode.BinaryNeq, bytecode.BinaryPush:
			if err := vm.instructionBinaryOperation(instruction.Op); err != nil {
				return runtime.Value{}, err
			}
		case bytecode.GetIndex:
			if err := vm.instructionGetIndex(); err != nil {
				return runtime.Value{}, err
			}
		case bytecode.SetIndex:
			if err := vm.instructionSetIndex(); err != nil {
				return runtime.Value{}, err
			}
		case bytecode.Echo:
			fmt.Println(vm.pop().ToDisplayString())
		default:
			panic(fmt.Sprintf("unhandled instruction %s", instruction))
		}

		pc = next
	}

	return runtime.NullValue(), nil
}

func (vm *VM) instructionCreateList(size int) {
	list := runtime.NewListWithCapacity(size)
	for i := 0; i < size; i++ {
		list.Push(vm.pop())
	}
	vm.push(runtime.ListValueOf(list))
}

func (vm *VM) instructionCreateObject(size int) {
	object := runtime.NewObjectWithCapacity(size)
	for i := 0; i < size; i++ {
		value := vm.pop()
		key := vm.pop()
		object.Set(key, value)
	}
	vm.push(runtime.ObjectValueOf(object))
}

// instructionCreateFunction builds a closure from procedure, resolving
// each capture descriptor's cell from the currently executing frame - the
// one-level-relay capture model recorded in DESIGN.md. Grounded on vm.rs's
// instruction_create_function, generalized with capture wiring.
func (vm *VM) instructionCreateFunction(procedure *bytecode.Procedure, frame *frame) {
	captures := make([]*runtime.Cell, len(procedure.Captures))
	for i, capture := range procedure.Captures {
		captures[i] = frame.cell(capture.Source)
	}
	vm.push(runtime.FunctionValueOf(runtime.NewFunction(procedure, captures)))
}

// instructionCall pops the target, verifies it is callable with exactly
// the arity it declares, and executes it - recursively for a user
// procedure, via its Go callback for an external one. Grounded on vm.rs's
// instruction_call, generalized with an arity check (see DESIGN.md's
// ArgumentCountError note) and external-procedure dispatch
// (interpreter/native.rs's ExternalProcedure::call).
func (vm *VM) instructionCall(argumentCount int, callerPath source.CanonicalPath) (runtime.Value, error) {
	target := vm.pop()
	if target.Kind != runtime.Function {
		return runtime.Value{}, UndefinedUnaryOperationError{Op: "Call", TargetType: target.Kind.String()}
	}
	function := target.Function

	if function.IsExternal() {
		external := function.External()
		if external.Arity != argumentCount {
			return runtime.Value{}, ArgumentCountError{FunctionName: external.Name, Required: external.Arity, Actual: argumentCount}
		}
		arguments := vm.popArguments(argumentCount)
		return external.Callback(arguments, &runtime.CallContext{Loader: vm.Loader, CallerPath: callerPath})
	}

	procedure := function.Procedure()
	if len(procedure.Parameters) != argumentCount {
		return runtime.Value{}, ArgumentCountError{FunctionName: procedure.Name, Required: len(procedure.Parameters), Actual: argumentCount}
	}

	frame := newFrame(procedure.Bytecode.VariableCount)
	arguments := vm.popArguments(argumentCount)
	for i, value := range arguments {
		frame.set(i, value)
	}
	for i, capture := range procedure.Captures {
		frame.cells[capture.Address] = function.Captures()[i]
	}

	return vm.run(procedure.Bytecode, procedure.Path, frame)
}

func (vm *VM) popArguments(count int) []runtime.Value {
	arguments := make([]runtime.Value, count)
	for i := count - 1; i >= 0; i-- {
		arguments[i] = vm.pop()
	}
	return arguments
}
