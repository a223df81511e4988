package builtins

import (
	"testing"

	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
)

func TestRegisterAssignsGlobalsInNameOrder(t *testing.T) {
	env := environment.New(source.CanonicalPath("test"))
	values := Register(env)

	if len(values) != len(procedures) {
		t.Fatalf("len(values) = %d, want %d", len(values), len(procedures))
	}

	for i, procedure := range procedures {
		location, ok := env.GetVariableLocation(procedure.Name)
		if !ok {
			t.Fatalf("%s did not resolve to a variable location", procedure.Name)
		}
		if location.Kind != environment.GlobalLocation {
			t.Fatalf("%s resolved to kind %v, want GlobalLocation", procedure.Name, location.Kind)
		}
		if location.Address != i {
			t.Fatalf("%s address = %d, want %d", procedure.Name, location.Address, i)
		}
		if values[i].Kind != runtime.Function {
			t.Fatalf("values[%d] kind = %v, want Function", i, values[i].Kind)
		}
	}
}

func TestLenRejectsUnsupportedType(t *testing.T) {
	_, err := length([]runtime.Value{runtime.NumberValue(1)}, nil)
	if _, ok := err.(runtime.TypeError); !ok {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestLenReturnsListLength(t *testing.T) {
	l := runtime.NewList()
	l.Push(runtime.NumberValue(1))
	l.Push(runtime.NumberValue(2))

	got, err := length([]runtime.Value{runtime.ListValueOf(l)}, nil)
	if err != nil {
		t.Fatalf("length returned error: %v", err)
	}
	if got.Number != 2 {
		t.Fatalf("length = %v, want 2", got)
	}
}

func TestSleepRejectsNegativeDuration(t *testing.T) {
	_, err := sleep([]runtime.Value{runtime.NumberValue(-1)}, nil)
	if _, ok := err.(runtime.TypeError); !ok {
		t.Fatalf("expected TypeError, got %v", err)
	}
}
