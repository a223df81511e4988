package runtime

import (
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/source"
)

// ExternalCallback is the host-provided body of a built-in procedure (e.g.
// `@print`, `@import`). Grounded on
// original_source/src/interpreter/native.rs's ExternalProcedureCallback.
type ExternalCallback func(arguments []Value, context *CallContext) (Value, error)

// ExternalProcedure pairs a fixed-arity callback with the name the VM
// reports it under. Grounded on native.rs's ExternalProcedure.
type ExternalProcedure struct {
	Name     string
	Arity    int
	Callback ExternalCallback
}

// CallContext is threaded into every external call so a built-in like
// `@import` can resolve and load another module without the runtime
// package importing the module loader directly (which would cycle back
// through runtime.Value). Grounded on native.rs's ExternalCallContext.
type CallContext struct {
	Loader     ModuleLoader
	CallerPath source.CanonicalPath
}

// ModuleLoader is the subset of the module package's cache the `@import`
// built-in needs. Implemented by module.Cache.
type ModuleLoader interface {
	Load(callerPath source.CanonicalPath, requestedPath string) (*ObjectValue, error)
}

// Function is a closure: either a compiled user Procedure or an
// ExternalProcedure, plus the Cells it captured at creation time (always
// empty for external procedures, which close over nothing). Grounded on
// original_source/src/interpreter/function.rs's Function/ProcedureVariant
// (the layer above vm/function.rs that actually carries `captures` and
// distinguishes Internal/External procedures - vm/function.rs's bare
// Procedure wrapper is the simpler prototype the standalone vm.rs uses and
// has neither).
type Function struct {
	id        uint64
	procedure *bytecode.Procedure
	external  *ExternalProcedure
	captures  []*Cell
}

func NewFunction(procedure *bytecode.Procedure, captures []*Cell) *Function {
	return &Function{id: oid(), procedure: procedure, captures: captures}
}

func NewExternalFunction(external *ExternalProcedure) *Function {
	return &Function{id: oid(), external: external}
}

func (f *Function) ID() uint64 { return f.id }

func (f *Function) Procedure() *bytecode.Procedure { return f.procedure }

func (f *Function) External() *ExternalProcedure { return f.external }

func (f *Function) IsExternal() bool { return f.external != nil }

func (f *Function) Captures() []*Cell { return f.captures }

func (f *Function) Name() string {
	if f.external != nil {
		return f.external.Name
	}
	return f.procedure.Name
}

func (f *Function) ToDisplayString() string {
	if name := f.Name(); name != "" {
		return "<function:" + name + ">"
	}
	return "<function>"
}
