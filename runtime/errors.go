package runtime

import "fmt"

// TypeError is raised by List/Object operations given a value of the wrong
// kind (e.g. indexing a List with a String). Grounded on informatter-nilan's
// vm/errors.go RuntimeError shape and
// original_source/src/vm/error.rs's VmError::{UndefinedBinaryOperation,
// InvalidIndexAccess, ...} variants. It carries no source location, so
// diagnostics.Render prints it through its bare "- error -> message" line.
type TypeError struct {
	Message string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("TypeError: %s", e.Message)
}

// IndexOutOfBoundsError is raised by List.Set given an out-of-range index.
// Grounded on original_source/src/vm/list.rs's set, which is the only
// aggregate mutation that can fail this way (List.Get and every Object
// operation are total, returning Null on a miss instead).
type IndexOutOfBoundsError struct {
	Message string
}

func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("IndexOutOfBoundsError: %s", e.Message)
}
