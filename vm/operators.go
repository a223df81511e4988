package vm

import (
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/runtime"
)

// instructionUnaryOperation implements Neg/BitNot/Not. Grounded on
// the unary instruction set below; original_source/src/vm/vm.rs
// has no unary handling at all (its lowering never emits one), so this is
// built directly from the instruction set bytecode/instruction.go defines.
func (vm *VM) instructionUnaryOperation(op bytecode.Op) error {
	right := vm.pop()
	switch op {
	case bytecode.UnaryNot:
		vm.push(runtime.BooleanValue(!right.ToBoolean()))
		return nil
	case bytecode.UnaryNeg:
		if right.Kind == runtime.Number {
			vm.push(runtime.NumberValue(-right.Number))
			return nil
		}
	case bytecode.UnaryBitNot:
		if right.Kind == runtime.Number {
			vm.push(runtime.NumberValue(float64(^int64(right.Number))))
			return nil
		}
	}
	return UndefinedUnaryOperationError{Op: op.String(), TargetType: right.Kind.String()}
}

// instructionBinaryOperation implements the binary operation
// type table. Grounded directly on vm.rs's instruction_binary_operation.
func (vm *VM) instructionBinaryOperation(op bytecode.Op) error {
	right := vm.pop()
	left := vm.pop()

	if result, ok := binaryNumeric(op, left, right); ok {
		vm.push(result)
		return nil
	}
	if result, ok := binaryList(op, left, right); ok {
		vm.push(result)
		return nil
	}
	if result, ok := binaryObject(op, left, right); ok {
		vm.push(result)
		return nil
	}
	if result, ok := binaryString(op, left, right); ok {
		vm.push(result)
		return nil
	}
	if result, ok := binaryEquality(op, left, right); ok {
		vm.push(result)
		return nil
	}

	return UndefinedBinaryOperationError{Op: op.String(), LeftType: left.Kind.String(), RightType: right.Kind.String()}
}

func binaryNumeric(op bytecode.Op, left, right runtime.Value) (runtime.Value, bool) {
	if left.Kind != runtime.Number || right.Kind != runtime.Number {
		return runtime.Value{}, false
	}
	l, r := left.Number, right.Number
	switch op {
	case bytecode.BinaryAdd:
		return runtime.NumberValue(l + r), true
	case bytecode.BinarySub:
		return runtime.NumberValue(l - r), true
	case bytecode.BinaryMul:
		return runtime.NumberValue(l * r), true
	case bytecode.BinaryDiv:
		return runtime.NumberValue(l / r), true
	case bytecode.BinaryGt:
		return runtime.BooleanValue(l > r), true
	case bytecode.BinaryLt:
		return runtime.BooleanValue(l < r), true
	case bytecode.BinaryGte:
		return runtime.BooleanValue(l >= r), true
	case bytecode.BinaryLte:
		return runtime.BooleanValue(l <= r), true
	}
	return runtime.Value{}, false
}

func binaryList(op bytecode.Op, left, right runtime.Value) (runtime.Value, bool) {
	if left.Kind != runtime.List {
		return runtime.Value{}, false
	}
	if op == bytecode.BinaryAdd && right.Kind == runtime.List {
		return runtime.ListValueOf(left.List.Concat(right.List)), true
	}
	if op == bytecode.BinaryPush {
		left.List.Push(right)
		return left, true
	}
	return runtime.Value{}, false
}

func binaryObject(op bytecode.Op, left, right runtime.Value) (runtime.Value, bool) {
	if op == bytecode.BinaryAdd && left.Kind == runtime.Object && right.Kind == runtime.Object {
		return runtime.ObjectValueOf(left.Object.Concat(right.Object)), true
	}
	return runtime.Value{}, false
}

func binaryString(op bytecode.Op, left, right runtime.Value) (runtime.Value, bool) {
	if op != bytecode.BinaryAdd {
		return runtime.Value{}, false
	}
	if left.Kind == runtime.String {
		return runtime.StringValue(left.String + right.ToDisplayString()), true
	}
	if right.Kind == runtime.String {
		return runtime.StringValue(left.ToDisplayString() + right.String), true
	}
	return runtime.Value{}, false
}

func binaryEquality(op bytecode.Op, left, right runtime.Value) (runtime.Value, bool) {
	switch op {
	case bytecode.BinaryEq:
		return runtime.BooleanValue(left.Equal(right)), true
	case bytecode.BinaryNeq:
		return runtime.BooleanValue(!left.Equal(right)), true
	}
	return runtime.Value{}, false
}

// instructionGetIndex/instructionSetIndex implement the
// indexing rules. Grounded on vm.rs's instruction_get_index/
// instruction_set_index.
func (vm *VM) instructionGetIndex() error {
	index := vm.pop()
	target := vm.pop()

	switch target.Kind {
	case runtime.List:
		value, err := target.List.Get(index)
		if err != nil {
			return err
		}
		vm.push(value)
	case runtime.Object:
		vm.push(target.Object.Get(index))
	default:
		return InvalidIndexAccessError{TargetType: target.Kind.String(), Index: index.ToDisplayString()}
	}
	return nil
}

func (vm *VM) instructionSetIndex() error {
	value := vm.pop()
	index := vm.pop()
	target := vm.pop()

	switch target.Kind {
	case runtime.List:
		if err := target.List.Set(index, value); err != nil {
			return err
		}
	case runtime.Object:
		target.Object.Set(index, value)
	default:
		return InvalidIndexAssignmentError{TargetType: target.Kind.String(), Index: index.ToDisplayString()}
	}
	return nil
}
