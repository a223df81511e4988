package vm

import (
	"testing"

	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
)

func run(t *testing.T, instructions []bytecode.Instruction, variableCount int) runtime.Value {
	t.Helper()
	v := New()
	code := bytecode.Bytecode{Instructions: instructions, VariableCount: variableCount}
	result, err := v.run(code, source.CanonicalPath("test"), newFrame(variableCount))
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	return result
}

// 1 + 2 * 3 -> 7
func TestArithmeticPrecedenceEvaluatesLeftFolded(t *testing.T) {
	instructions := []bytecode.Instruction{
		{Op: bytecode.PushInt, Int: 1},
		{Op: bytecode.PushInt, Int: 2},
		{Op: bytecode.PushInt, Int: 3},
		{Op: bytecode.BinaryMul},
		{Op: bytecode.BinaryAdd},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 0)
	if got.Number != 7 {
		t.Fatalf("result = %v, want 7", got)
	}
}

// let xs = [1,2,3]; xs << 4; -> [1, 2, 3, 4]
func TestListPushOperatorAppendsInPlace(t *testing.T) {
	instructions := []bytecode.Instruction{
		{Op: bytecode.PushInt, Int: 3},
		{Op: bytecode.PushInt, Int: 2},
		{Op: bytecode.PushInt, Int: 1},
		{Op: bytecode.CreateList, Target: 3},
		{Op: bytecode.AssignVariable, Address: 0},
		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushInt, Int: 4},
		{Op: bytecode.BinaryPush},
		{Op: bytecode.Pop},
		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 1)
	if got.Kind != runtime.List {
		t.Fatalf("result kind = %v, want List", got.Kind)
	}
	if got.List.ToDisplayString() != "[1, 2, 3, 4]" {
		t.Fatalf("result = %s, want [1, 2, 3, 4]", got.List.ToDisplayString())
	}
}

// let o = { a: 1 }; o.b = o.a + 2; -> o.b == 3
func TestObjectDotAssignmentReadsSiblingField(t *testing.T) {
	instructions := []bytecode.Instruction{
		{Op: bytecode.PushString, String: "a"},
		{Op: bytecode.PushInt, Int: 1},
		{Op: bytecode.CreateObject, Target: 1},
		{Op: bytecode.AssignVariable, Address: 0},

		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushString, String: "b"},
		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushString, String: "a"},
		{Op: bytecode.GetIndex},
		{Op: bytecode.PushInt, Int: 2},
		{Op: bytecode.BinaryAdd},
		{Op: bytecode.SetIndex},

		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushString, String: "b"},
		{Op: bytecode.GetIndex},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 1)
	if got.Number != 3 {
		t.Fatalf("o.b = %v, want 3", got)
	}
}

// loop { @println("x"); break; } -> runs once. Modeled with plain Jumps
// the way the compiler lowers `loop { ...; break; }`: a head label, a body
// that always jumps past the loop (break), and a backward jump to the head
// that this program never reaches.
func TestLoopBreakExitsAfterOneIteration(t *testing.T) {
	instructions := []bytecode.Instruction{
		// head: pc 0
		{Op: bytecode.PushInt, Int: 1}, // stand-in for the body's side effect
		{Op: bytecode.Pop},
		{Op: bytecode.Jump, Target: 5}, // break
		{Op: bytecode.Jump, Target: 0}, // loop back to head (unreached)
		{Op: bytecode.Blank},
		// pc 5: after loop
		{Op: bytecode.PushInt, Int: 0},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 0)
	if got.Number != 0 {
		t.Fatalf("result = %v, want 0 (loop body ran exactly once)", got)
	}
}

// Recursive closure relay: make() returns a counter closure whose captured
// `n` is shared across calls. c(); c(); c(); -> 1, 2, 3.
func TestClosureCaptureIsSharedAcrossCalls(t *testing.T) {
	// counter body, frame slot 0 = n (captured from make's frame slot 0).
	counterBody := bytecode.Bytecode{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.PushVariable, Address: 0},
			{Op: bytecode.PushInt, Int: 1},
			{Op: bytecode.BinaryAdd},
			{Op: bytecode.AssignVariable, Address: 0},
			{Op: bytecode.PushVariable, Address: 0},
			{Op: bytecode.Return},
		},
		VariableCount: 1,
	}
	counterProcedure := &bytecode.Procedure{
		Name:     "counter",
		Bytecode: counterBody,
		Captures: []bytecode.CaptureSource{{Address: 0, Source: 0}},
		Path:     source.CanonicalPath("test"),
	}

	// make body: slot 0 = n, initialized to 0, returns the counter closure.
	makeBody := bytecode.Bytecode{
		Instructions: []bytecode.Instruction{
			{Op: bytecode.PushInt, Int: 0},
			{Op: bytecode.AssignVariable, Address: 0},
			{Op: bytecode.CreateFunction, Procedure: counterProcedure},
			{Op: bytecode.Return},
		},
		VariableCount: 1,
	}
	makeProcedure := &bytecode.Procedure{
		Name:     "make",
		Bytecode: makeBody,
		Path:     source.CanonicalPath("test"),
	}

	v := New()
	frame := newFrame(2)
	_, err := v.run(bytecode.Bytecode{Instructions: []bytecode.Instruction{
		{Op: bytecode.CreateFunction, Procedure: makeProcedure},
		{Op: bytecode.AssignVariable, Address: 0},
		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.Call, Target: 0},
		{Op: bytecode.AssignVariable, Address: 1},
		{Op: bytecode.Return},
	}, VariableCount: 2}, source.CanonicalPath("test"), frame)
	if err != nil {
		t.Fatalf("setup run returned error: %v", err)
	}
	counter := frame.get(1)
	if counter.Kind != runtime.Function {
		t.Fatalf("counter kind = %v, want Function", counter.Kind)
	}

	for i, want := range []float64{1, 2, 3} {
		v.push(counter)
		result, err := v.instructionCall(0, source.CanonicalPath("test"))
		if err != nil {
			t.Fatalf("call %d returned error: %v", i, err)
		}
		if result.Number != want {
			t.Fatalf("call %d = %v, want %v", i, result, want)
		}
	}
}

// ArgumentCountError surfaces when a call supplies the wrong argument count.
func TestCallWithWrongArityReturnsArgumentCountError(t *testing.T) {
	procedure := &bytecode.Procedure{
		Name:       "f",
		Parameters: []string{"a", "b"},
		Bytecode:   bytecode.Bytecode{Instructions: []bytecode.Instruction{{Op: bytecode.Return}}},
		Path:       source.CanonicalPath("test"),
	}
	v := New()
	v.push(runtime.FunctionValueOf(runtime.NewFunction(procedure, nil)))
	_, err := v.instructionCall(1, source.CanonicalPath("test"))
	if _, ok := err.(ArgumentCountError); !ok {
		t.Fatalf("expected ArgumentCountError, got %v", err)
	}
}

func TestEqualityFallsBackToStructuralComparison(t *testing.T) {
	instructions := []bytecode.Instruction{
		{Op: bytecode.PushString, String: "a"},
		{Op: bytecode.PushString, String: "a"},
		{Op: bytecode.BinaryEq},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 0)
	if got.Kind != runtime.Boolean || !got.Boolean {
		t.Fatalf("result = %v, want true", got)
	}
}

// fn(n) => n, called as f(5), f(6). emitFunctionExpr appends a Return after
// the expr for a FunctionBodyExpr, so the arrow body here is exactly what
// the compiler emits - a single PushVariable followed by Return, not a bare
// expr left dangling on the stack.
func TestArrowFunctionReturnsWithoutLeakingStack(t *testing.T) {
	identity := &bytecode.Procedure{
		Name:       "f",
		Parameters: []string{"n"},
		Bytecode: bytecode.Bytecode{
			Instructions: []bytecode.Instruction{
				{Op: bytecode.PushVariable, Address: 0},
				{Op: bytecode.Return},
			},
			VariableCount: 1,
		},
		Path: source.CanonicalPath("test"),
	}

	v := New()
	f := runtime.FunctionValueOf(runtime.NewFunction(identity, nil))
	for i, want := range []float64{5, 6} {
		v.push(runtime.NumberValue(want))
		v.push(f)
		result, err := v.instructionCall(1, source.CanonicalPath("test"))
		if err != nil {
			t.Fatalf("call %d returned error: %v", i, err)
		}
		if result.Number != want {
			t.Fatalf("call %d = %v, want %v", i, result, want)
		}
		if n := len(v.stack); n != 0 {
			t.Fatalf("call %d left %d stale value(s) on the operand stack", i, n)
		}
	}
}

// fn(x) { @println(x); } - a block function with no explicit return.
// emitFunctionBlock pushes null and appends Return when no statement in the
// block already returned, so a void/implicit-return call still leaves
// exactly one value for instructionCall to collect rather than falling off
// the end of the instruction stream.
func TestImplicitReturnBlockFunctionDoesNotLeakStack(t *testing.T) {
	sideEffecting := &bytecode.Procedure{
		Name:       "f",
		Parameters: []string{"x"},
		Bytecode: bytecode.Bytecode{
			Instructions: []bytecode.Instruction{
				{Op: bytecode.PushVariable, Address: 0},
				{Op: bytecode.Pop},
				{Op: bytecode.PushNull},
				{Op: bytecode.Return},
			},
			VariableCount: 1,
		},
		Path: source.CanonicalPath("test"),
	}

	v := New()
	f := runtime.FunctionValueOf(runtime.NewFunction(sideEffecting, nil))
	for i := 0; i < 2; i++ {
		v.push(runtime.NumberValue(1))
		v.push(f)
		result, err := v.instructionCall(1, source.CanonicalPath("test"))
		if err != nil {
			t.Fatalf("call %d returned error: %v", i, err)
		}
		if result.Kind != runtime.Null {
			t.Fatalf("call %d result = %v, want null", i, result)
		}
		if n := len(v.stack); n != 0 {
			t.Fatalf("call %d left %d stale value(s) on the operand stack", i, n)
		}
	}
}

// xs[0] += 2, the way emitIndexAssignmentStmt lowers a compound index
// assignment: push target and index once, DuplicateTop 2 to read both again
// for GetIndex without disturbing the copies SetIndex still needs.
func TestDuplicateTopSupportsCompoundIndexAssignment(t *testing.T) {
	instructions := []bytecode.Instruction{
		{Op: bytecode.PushInt, Int: 10},
		{Op: bytecode.CreateList, Target: 1},
		{Op: bytecode.AssignVariable, Address: 0},

		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushInt, Int: 0},
		{Op: bytecode.DuplicateTop, Target: 2},
		{Op: bytecode.GetIndex},
		{Op: bytecode.PushInt, Int: 2},
		{Op: bytecode.BinaryAdd},
		{Op: bytecode.SetIndex},

		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushInt, Int: 0},
		{Op: bytecode.GetIndex},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 1)
	if got.Number != 12 {
		t.Fatalf("xs[0] = %v, want 12", got)
	}
}

// o.x += 1, the way emitDotAssignmentStmt lowers a compound dot assignment:
// identical DuplicateTop shape to the index case, keyed by a pushed string
// property name instead of an evaluated index expression.
func TestDuplicateTopSupportsCompoundDotAssignment(t *testing.T) {
	instructions := []bytecode.Instruction{
		{Op: bytecode.PushString, String: "x"},
		{Op: bytecode.PushInt, Int: 10},
		{Op: bytecode.CreateObject, Target: 1},
		{Op: bytecode.AssignVariable, Address: 0},

		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushString, String: "x"},
		{Op: bytecode.DuplicateTop, Target: 2},
		{Op: bytecode.GetIndex},
		{Op: bytecode.PushInt, Int: 1},
		{Op: bytecode.BinaryAdd},
		{Op: bytecode.SetIndex},

		{Op: bytecode.PushVariable, Address: 0},
		{Op: bytecode.PushString, String: "x"},
		{Op: bytecode.GetIndex},
		{Op: bytecode.Return},
	}
	got := run(t, instructions, 1)
	if got.Number != 11 {
		t.Fatalf("o.x = %v, want 11", got)
	}
}
