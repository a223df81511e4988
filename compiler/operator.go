package compiler

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/bytecode"
)

// emitAndOperation/emitOrOperation/emitNclOperation lower a short-circuit
// binary operator given its left operand already pushed. Each leaves
// exactly one value on the stack: the left operand if it short-circuits,
// otherwise the evaluated right operand. Grounded on
// original_source/src/bytecode/builder/operator.rs.
func (c *Compiler) emitAndOperation(value ast.Expr) {
	c.add(bytecode.Instruction{Op: bytecode.Duplicate})
	jumpEndIfFalse := c.blank()
	c.add(bytecode.Instruction{Op: bytecode.Pop})
	c.emitExpression(value)
	c.set(jumpEndIfFalse, bytecode.Instruction{Op: bytecode.JumpUnless, Target: c.end()})
}

func (c *Compiler) emitOrOperation(value ast.Expr) {
	c.add(bytecode.Instruction{Op: bytecode.Duplicate})
	jumpEndIfTrue := c.blank()
	c.add(bytecode.Instruction{Op: bytecode.Pop})
	c.emitExpression(value)
	c.set(jumpEndIfTrue, bytecode.Instruction{Op: bytecode.JumpIf, Target: c.end()})
}

func (c *Compiler) emitNclOperation(value ast.Expr) {
	c.add(bytecode.Instruction{Op: bytecode.Duplicate})
	c.add(bytecode.Instruction{Op: bytecode.IsNull})
	jumpEndIfNotNull := c.blank()
	c.add(bytecode.Instruction{Op: bytecode.Pop})
	c.emitExpression(value)
	c.set(jumpEndIfNotNull, bytecode.Instruction{Op: bytecode.JumpUnless, Target: c.end()})
}

// emitAssignmentValue computes the right-hand side of a compound variable
// assignment, with the variable's current value already pushed for every
// operator but plain Assign. It reads the current value exactly once (the
// earlier PushVariable) and leaves exactly one combined value on the
// stack to be stored by the single AssignVariable that follows.
func (c *Compiler) emitAssignmentValue(operator ast.AssignmentOperator, value ast.Expr) {
	switch operator {
	case ast.Assign:
		c.emitExpression(value)
	case ast.MulAssign:
		c.emitExpression(value)
		c.add(bytecode.Instruction{Op: bytecode.BinaryMul})
	case ast.DivAssign:
		c.emitExpression(value)
		c.add(bytecode.Instruction{Op: bytecode.BinaryDiv})
	case ast.AddAssign:
		c.emitExpression(value)
		c.add(bytecode.Instruction{Op: bytecode.BinaryAdd})
	case ast.SubAssign:
		c.emitExpression(value)
		c.add(bytecode.Instruction{Op: bytecode.BinarySub})
	case ast.AndAssign:
		c.emitAndOperation(value)
	case ast.OrAssign:
		c.emitOrOperation(value)
	case ast.NclAssign:
		c.emitNclOperation(value)
	}
}

// emitSetIndexValue is emitAssignmentValue's counterpart for index/dot
// assignment, where the current value (if needed) was duplicated onto the
// stack by the caller instead of pushed via a named variable.
func (c *Compiler) emitSetIndexValue(operator ast.AssignmentOperator, value ast.Expr) {
	c.emitAssignmentValue(operator, value)
}
