// Package builtins implements the fixed set of @-prefixed host procedures
// every Regis program has in scope: @print, @println, @len, @sleep, and
// @import. Grounded on original_source/src/interpreter/builtins.rs,
// translated from the tree-walking Value enum to runtime.Value and from
// ExternalCallContext's interpreter handle to runtime.CallContext's
// ModuleLoader.
package builtins

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/runtime"
)

// procedures lists every built-in in a fixed order. Register relies on this
// order matching the order names are added as globals, so the address
// environment.AddGlobal returns for each name lines up with its Value in
// the slice Register returns.
var procedures = []*runtime.ExternalProcedure{
	{Name: "@print", Arity: 1, Callback: print_},
	{Name: "@println", Arity: 1, Callback: println_},
	{Name: "@len", Arity: 1, Callback: length},
	{Name: "@sleep", Arity: 1, Callback: sleep},
	{Name: "@import", Arity: 1, Callback: doImport},
}

// Register adds every built-in's name to env as a global and returns the
// matching runtime.Value for each, in the same order - the slice a VM's
// global slots should be initialized with.
func Register(env *environment.Environment) []runtime.Value {
	values := make([]runtime.Value, len(procedures))
	for i, procedure := range procedures {
		env.AddGlobal(procedure.Name)
		values[i] = runtime.FunctionValueOf(runtime.NewExternalFunction(procedure))
	}
	return values
}

func print_(arguments []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
	fmt.Print(arguments[0].ToDisplayString())
	return runtime.NullValue(), nil
}

func println_(arguments []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
	fmt.Println(arguments[0].ToDisplayString())
	return runtime.NullValue(), nil
}

func length(arguments []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
	value := arguments[0]
	switch value.Kind {
	case runtime.String:
		return runtime.NumberValue(float64(len(value.String))), nil
	case runtime.List:
		return runtime.NumberValue(float64(value.List.Len())), nil
	case runtime.Object:
		return runtime.NumberValue(float64(value.Object.Len())), nil
	default:
		return runtime.Value{}, runtime.TypeError{Message: fmt.Sprintf("cannot get @len() of type '%s'", value.Kind)}
	}
}

func sleep(arguments []runtime.Value, _ *runtime.CallContext) (runtime.Value, error) {
	value := arguments[0]
	if value.Kind != runtime.Number || value.Number < 0 {
		return runtime.Value{}, runtime.TypeError{Message: fmt.Sprintf("number of seconds passed to @sleep() must be a non-negative number, got '%s'", value.Kind)}
	}
	time.Sleep(time.Duration(value.Number * float64(time.Second)))
	return runtime.NullValue(), nil
}

// doImport resolves a relative path against the caller's module directory
// (absolute paths are used directly) and delegates to the host-supplied
// ModuleLoader, returning its exports Object. Grounded on builtins.rs's
// import, generalized over CallContext.CallerPath rather than walking a
// live call-frame stack for "the currently executing module's directory."
func doImport(arguments []runtime.Value, context *runtime.CallContext) (runtime.Value, error) {
	value := arguments[0]
	if value.Kind != runtime.String {
		return runtime.Value{}, runtime.TypeError{Message: fmt.Sprintf("path passed to @import() must be a string, got '%s'", value.Kind)}
	}

	exports, err := context.Loader.Load(context.CallerPath, value.String)
	if err != nil {
		return runtime.Value{}, errors.Wrapf(err, "importing '%s'", value.String)
	}
	return runtime.ObjectValueOf(exports), nil
}
