package compiler

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/bytecode"
	"github.com/comfort-stereo/regis/bytecode/environment"
)

// emitExpression dispatches on the concrete expression type. Grounded on
// original_source/src/bytecode/builder/expr.rs's emit_expr.
func (c *Compiler) emitExpression(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NullExpr:
		c.add(bytecode.Instruction{Op: bytecode.PushNull})
	case *ast.BooleanExpr:
		c.add(bytecode.Instruction{Op: bytecode.PushBoolean, Bool: e.Value})
	case *ast.IntExpr:
		c.add(bytecode.Instruction{Op: bytecode.PushInt, Int: e.Value})
	case *ast.FloatExpr:
		c.add(bytecode.Instruction{Op: bytecode.PushFloat, Float: e.Value})
	case *ast.StringExpr:
		c.add(bytecode.Instruction{Op: bytecode.PushString, String: e.Value})
	case *ast.VariableExpr:
		c.emitVariablePush(e.Name, e.Info().Span)
	case *ast.ListExpr:
		c.emitListExpr(*e)
	case *ast.ObjectExpr:
		c.emitObjectExpr(*e)
	case *ast.FunctionExpr:
		c.emitFunctionExpr(e)
	case *ast.WrappedExpr:
		c.emitExpression(e.Inner)
	case *ast.IndexExpr:
		c.emitExpression(e.Target)
		c.emitExpression(e.Index)
		c.add(bytecode.Instruction{Op: bytecode.GetIndex})
	case *ast.DotExpr:
		c.emitExpression(e.Target)
		c.add(bytecode.Instruction{Op: bytecode.PushString, String: e.Property})
		c.add(bytecode.Instruction{Op: bytecode.GetIndex})
	case *ast.CallExpr:
		c.emitCallExpr(*e)
	case *ast.UnaryOperationExpr:
		c.emitUnaryOperationExpr(*e)
	case *ast.BinaryOperationExpr:
		c.emitBinaryOperationExpr(*e)
	default:
		c.fail(expr.Info().Span, "unhandled expression type %T", expr)
	}
}

// emitListExpr pushes values in reverse source order so CreateList, which
// pops the last-pushed value first, appends them back in source order when
// assembling the list. Grounded on expr.rs's
// emit_list_expr.
func (c *Compiler) emitListExpr(e ast.ListExpr) {
	for i := len(e.Values) - 1; i >= 0; i-- {
		c.emitExpression(e.Values[i])
	}
	c.add(bytecode.Instruction{Op: bytecode.CreateList, Target: len(e.Values)})
}

// emitObjectExpr emits pairs in reverse order, key then value per pair, so
// CreateObject can reassemble them in source order. Grounded on
// expr.rs's emit_object_expr.
func (c *Compiler) emitObjectExpr(e ast.ObjectExpr) {
	for i := len(e.Pairs) - 1; i >= 0; i-- {
		pair := e.Pairs[i]
		switch pair.KeyVariant {
		case ast.KeyIdentifier, ast.KeyString:
			c.add(bytecode.Instruction{Op: bytecode.PushString, String: pair.KeyName})
		case ast.KeyExpression:
			c.emitExpression(pair.KeyExpr)
		}
		c.emitExpression(pair.Value)
	}
	c.add(bytecode.Instruction{Op: bytecode.CreateObject, Target: len(e.Pairs)})
}

// emitFunctionExpr compiles a nested function body in its own child
// Environment/Compiler and emits CreateFunction with the finished
// Procedure, including the capture descriptors the child Environment
// accumulated while resolving names across the boundary. Grounded on
// expr.rs's emit_function_expr.
func (c *Compiler) emitFunctionExpr(e *ast.FunctionExpr) {
	childEnv := c.environment.ForFunction()
	for _, parameter := range e.Parameters {
		childEnv.AddParameter(parameter)
	}

	child := New(childEnv)
	switch e.BodyVariant {
	case ast.FunctionBodyBlock:
		child.emitFunctionBlock(e.Block)
	case ast.FunctionBodyExpr:
		child.emitExpression(e.Expr)
		child.add(bytecode.Instruction{Op: bytecode.Return})
	}
	if child.err != nil && c.err == nil {
		c.err = child.err
	}

	bytecodeResult := child.build()

	// A variable's own frame address is its position among
	// parameters+variables, in registration order (see
	// environment.Environment.AddVariable).
	captures := make([]bytecode.CaptureSource, 0, len(childEnv.Variables()))
	for i, variable := range childEnv.Variables() {
		if variable.Variant != environment.CaptureVariant {
			continue
		}
		address := len(childEnv.Parameters()) + i
		captures = append(captures, bytecode.CaptureSource{Address: address, Source: variable.Source})
	}

	procedure := &bytecode.Procedure{
		Name:       e.Name,
		Parameters: e.Parameters,
		Bytecode:   bytecodeResult,
		Captures:   captures,
		Path:       childEnv.Path(),
	}
	c.add(bytecode.Instruction{Op: bytecode.CreateFunction, Procedure: procedure})
}

func (c *Compiler) emitCallExpr(e ast.CallExpr) {
	for _, argument := range e.Arguments {
		c.emitExpression(argument)
	}
	c.emitExpression(e.Target)
	c.add(bytecode.Instruction{Op: bytecode.Call, Target: len(e.Arguments)})
}

func (c *Compiler) emitUnaryOperationExpr(e ast.UnaryOperationExpr) {
	c.emitExpression(e.Right)
	switch e.Operator {
	case ast.Neg:
		c.add(bytecode.Instruction{Op: bytecode.UnaryNeg})
	case ast.BitNot:
		c.add(bytecode.Instruction{Op: bytecode.UnaryBitNot})
	case ast.Not:
		c.add(bytecode.Instruction{Op: bytecode.UnaryNot})
	}
}

func (c *Compiler) emitBinaryOperationExpr(e ast.BinaryOperationExpr) {
	if op, ok := bytecode.BinaryOpFromAst(e.Operator); ok {
		c.emitExpression(e.Left)
		c.emitExpression(e.Right)
		c.add(bytecode.Instruction{Op: op})
		return
	}

	c.emitExpression(e.Left)
	switch e.Operator {
	case ast.Ncl:
		c.emitNclOperation(e.Right)
	case ast.And:
		c.emitAndOperation(e.Right)
	case ast.Or:
		c.emitOrOperation(e.Right)
	}
}
