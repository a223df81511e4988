package runtime

import (
	"testing"

	"github.com/comfort-stereo/regis/bytecode"
)

func TestFunctionToDisplayStringUsesNameWhenPresent(t *testing.T) {
	named := NewFunction(&bytecode.Procedure{Name: "add"}, nil)
	if got := named.ToDisplayString(); got != "<function:add>" {
		t.Fatalf("got %q, want %q", got, "<function:add>")
	}

	anonymous := NewFunction(&bytecode.Procedure{}, nil)
	if got := anonymous.ToDisplayString(); got != "<function>" {
		t.Fatalf("got %q, want %q", got, "<function>")
	}
}

func TestDistinctFunctionsOverSameProcedureAreNotEqual(t *testing.T) {
	procedure := &bytecode.Procedure{Name: "f"}
	a := FunctionValueOf(NewFunction(procedure, nil))
	b := FunctionValueOf(NewFunction(procedure, nil))

	if a.Equal(b) {
		t.Fatalf("two distinct closures over the same procedure should not be equal")
	}
}
