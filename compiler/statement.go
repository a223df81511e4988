package compiler

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/bytecode"
)

// emitStatement dispatches on the concrete statement type. Grounded on
// original_source/src/bytecode/builder/statement.rs's emit_statement.
func (c *Compiler) emitStatement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.IfStmt:
		c.emitIfStmt(s)
	case *ast.WhileStmt:
		c.emitWhileStmt(s)
	case *ast.LoopStmt:
		c.emitLoopStmt(s)
	case *ast.ReturnStmt:
		c.emitReturnStmt(s)
	case *ast.BreakStmt:
		c.emitBreakStmt(s)
	case *ast.ContinueStmt:
		c.emitContinueStmt(s)
	case *ast.FunctionDeclarationStmt:
		c.emitFunctionDeclarationStmt(s)
	case *ast.VariableDeclarationStmt:
		c.emitVariableDeclarationStmt(s)
	case *ast.VariableAssignmentStmt:
		c.emitVariableAssignmentStmt(s)
	case *ast.IndexAssignmentStmt:
		c.emitIndexAssignmentStmt(s)
	case *ast.DotAssignmentStmt:
		c.emitDotAssignmentStmt(s)
	case *ast.ExprStmt:
		c.emitExprStmt(s)
	default:
		c.fail(stmt.Info().Span, "unhandled statement type %T", stmt)
	}
}

func (c *Compiler) emitIfStmt(s *ast.IfStmt) {
	c.emitExpression(s.Condition)
	jumpElseOrEnd := c.blank()
	c.emitBlock(s.Body)

	if s.Else != nil {
		jumpEnd := c.blank()
		c.set(jumpElseOrEnd, bytecode.Instruction{Op: bytecode.JumpUnless, Target: c.end()})
		c.emitElse(s.Else)
		c.set(jumpEnd, bytecode.Instruction{Op: bytecode.Jump, Target: c.end()})
	} else {
		c.set(jumpElseOrEnd, bytecode.Instruction{Op: bytecode.JumpUnless, Target: c.end()})
	}
}

func (c *Compiler) emitElse(next any) {
	switch n := next.(type) {
	case *ast.IfStmt:
		c.emitIfStmt(n)
	case *ast.Block:
		c.emitBlock(n)
	}
}

// emitLoopStmt lowers `loop { ... }` to an unconditional back-jump,
// relying on break/continue markers for the only way out. Grounded on
// statement.rs's emit_loop_stmt.
func (c *Compiler) emitLoopStmt(s *ast.LoopStmt) {
	c.mark(c.end(), bytecode.LoopStart)
	start := c.end()
	c.emitBlock(s.Body)
	c.add(bytecode.Instruction{Op: bytecode.Jump, Target: start})
	c.mark(c.end(), bytecode.LoopEnd)
}

func (c *Compiler) emitWhileStmt(s *ast.WhileStmt) {
	c.mark(c.end(), bytecode.LoopStart)
	startLine := c.end()
	c.emitExpression(s.Condition)
	c.add(bytecode.Instruction{Op: bytecode.JumpIf, Target: c.end() + 2})

	c.blank()
	jumpLine := c.last()
	c.emitBlock(s.Body)
	c.add(bytecode.Instruction{Op: bytecode.Jump, Target: startLine})

	endLine := c.end()
	c.mark(endLine, bytecode.LoopEnd)
	c.set(jumpLine, bytecode.Instruction{Op: bytecode.Jump, Target: endLine})
}

func (c *Compiler) emitReturnStmt(s *ast.ReturnStmt) {
	if s.Value != nil {
		c.emitExpression(s.Value)
	} else {
		c.add(bytecode.Instruction{Op: bytecode.PushNull})
	}
	c.add(bytecode.Instruction{Op: bytecode.Return})
}

func (c *Compiler) emitBreakStmt(s *ast.BreakStmt) {
	c.blank()
	c.mark(c.last(), bytecode.Break)
}

func (c *Compiler) emitContinueStmt(s *ast.ContinueStmt) {
	c.blank()
	c.mark(c.last(), bytecode.Continue)
}

// emitFunctionDeclarationStmt assumes the name has already been registered
// by hoist(), so it only needs to emit the closure and assign it.
func (c *Compiler) emitFunctionDeclarationStmt(s *ast.FunctionDeclarationStmt) {
	c.emitFunctionExpr(s.Function)
	if s.Function.Name != "" {
		c.emitVariableAssign(s.Function.Name, s.Info().Span)
	} else {
		c.add(bytecode.Instruction{Op: bytecode.Pop})
	}
}

func (c *Compiler) emitVariableDeclarationStmt(s *ast.VariableDeclarationStmt) {
	c.emitExpression(s.Value)
	c.emitVariableAssign(s.Name, s.Info().Span)
}

func (c *Compiler) emitVariableAssignmentStmt(s *ast.VariableAssignmentStmt) {
	span := s.Info().Span
	if s.Operator != ast.Assign {
		c.emitVariablePush(s.Name, span)
	}
	c.emitAssignmentValue(s.Operator, s.Value)
	c.emitVariableAssign(s.Name, span)
}

func (c *Compiler) emitIndexAssignmentStmt(s *ast.IndexAssignmentStmt) {
	c.emitExpression(s.Target)
	c.emitExpression(s.Index)

	if s.Operator != ast.Assign {
		c.add(bytecode.Instruction{Op: bytecode.DuplicateTop, Target: 2})
		c.add(bytecode.Instruction{Op: bytecode.GetIndex})
	}

	c.emitSetIndexValue(s.Operator, s.Value)
	c.add(bytecode.Instruction{Op: bytecode.SetIndex})
}

func (c *Compiler) emitDotAssignmentStmt(s *ast.DotAssignmentStmt) {
	c.emitExpression(s.Target)
	c.add(bytecode.Instruction{Op: bytecode.PushString, String: s.Property})

	if s.Operator != ast.Assign {
		c.add(bytecode.Instruction{Op: bytecode.DuplicateTop, Target: 2})
		c.add(bytecode.Instruction{Op: bytecode.GetIndex})
	}

	c.emitSetIndexValue(s.Operator, s.Value)
	c.add(bytecode.Instruction{Op: bytecode.SetIndex})
}

func (c *Compiler) emitExprStmt(s *ast.ExprStmt) {
	c.emitExpression(s.Expr)
	c.add(bytecode.Instruction{Op: bytecode.Pop})
}
