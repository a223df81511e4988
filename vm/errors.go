package vm

import "fmt"

// Each error type below is a distinct runtime failure the VM can raise. They
// carry a 💥-prefixed Error() string for REPL/log output that bypasses the
// diagnostics package's full renderer; diagnostics.Render falls back to this
// bare message whenever no source location is attached to the error chain.
// Grounded on original_source/src/vm/error.rs's VmError variants.

type UndefinedUnaryOperationError struct {
	Op         string
	TargetType string
}

func (e UndefinedUnaryOperationError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: operation '%s' is not defined for type '%s'", e.Op, e.TargetType)
}

type UndefinedBinaryOperationError struct {
	Op        string
	LeftType  string
	RightType string
}

func (e UndefinedBinaryOperationError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: operation '%s' is not defined for types '%s' and '%s'", e.Op, e.LeftType, e.RightType)
}

type InvalidIndexAccessError struct {
	TargetType string
	Index      string
}

func (e InvalidIndexAccessError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: attempted to get invalid index '%s' of type '%s'", e.Index, e.TargetType)
}

type InvalidIndexAssignmentError struct {
	TargetType string
	Index      string
}

func (e InvalidIndexAssignmentError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: attempted to set invalid index '%s' of type '%s'", e.Index, e.TargetType)
}

type ArgumentCountError struct {
	FunctionName string
	Required     int
	Actual       int
}

func (e ArgumentCountError) Error() string {
	name := e.FunctionName
	if name == "" {
		name = "<anonymous>"
	}
	return fmt.Sprintf("💥 RuntimeError: '%s' requires %d argument(s), got %d", name, e.Required, e.Actual)
}
