package bytecode

import "github.com/comfort-stereo/regis/source"

// Bytecode is what the compiler produces: an ordered instruction array plus the
// number of frame slots (parameters + variables, including captures) the
// function or module body needs. Grounded on
// original_source/src/bytecode/bytecode.rs.
type Bytecode struct {
	Instructions []Instruction
	VariableCount int
}

// CaptureSource describes one capture slot of a procedure: Address is the
// slot in the procedure's OWN frame the captured cell is installed into at
// call time; Source is the slot, in the frame that is executing when this
// procedure's closure is created (CreateFunction), the cell is read from.
// A capture only ever reads from its immediate enclosing frame - a
// reference from deeper in the lexical chain is relayed through one
// capture per intervening function (bytecode/environment.Environment.
// GetOrCaptureVariableAddress), so no ascend count is needed here.
type CaptureSource struct {
	Address int
	Source  int
}

// Procedure is a compiled function: its (optional) name, parameter names,
// bytecode, and the capture descriptors the VM consults when a closure over
// this procedure is created. Grounded on original_source/src/vm/function.rs
// (Function wraps a SharedImmutable<Procedure>) and
// original_source/src/bytecode/builder/expression.rs's emit_function.
type Procedure struct {
	Name       string
	Parameters []string
	Bytecode   Bytecode
	Captures   []CaptureSource
	Path       source.CanonicalPath
}
