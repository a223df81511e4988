package compiler

import (
	"sort"

	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/bytecode"
)

// emitModule compiles a module's top-level statements. Grounded on
// original_source/src/bytecode/builder/base.rs's emit_module.
func (c *Compiler) emitModule(module *ast.Module) {
	statements := c.hoist(module.Statements)
	for _, statement := range statements {
		c.emitStatement(statement)
	}
}

func (c *Compiler) emitBlock(block *ast.Block) {
	c.environment.PushScope()
	statements := c.hoist(block.Statements)
	for _, statement := range statements {
		c.emitStatement(statement)
	}
	c.environment.PopScope()
}

// emitFunctionBlock compiles a function body block: unlike emitBlock it
// does not push/pop a scope of its own (the parameters already occupy the
// function's single top-level scope) and it guarantees the body always
// ends in a Return, pushing null first when no statement in the block
// already returned - a block that falls off the end must still leave
// exactly one value for instructionCall's vm.run to return, the same as
// an explicit `return`. Grounded on base.rs's emit_function_block.
func (c *Compiler) emitFunctionBlock(block *ast.Block) {
	statements := c.hoist(block.Statements)
	hasReturn := false
	for _, statement := range statements {
		c.emitStatement(statement)
		if _, ok := statement.(*ast.ReturnStmt); ok {
			hasReturn = true
		}
	}
	if !hasReturn {
		c.add(bytecode.Instruction{Op: bytecode.PushNull})
		c.add(bytecode.Instruction{Op: bytecode.Return})
	}
}

// hoist reorders statements so function declarations come first, then
// registers every function/variable declaration's name in the environment
// before any statement is emitted - so a forward reference to a sibling
// function, or a variable referenced from inside a closure defined above
// its own declaration, still resolves. Grounded on base.rs's hoist.
func (c *Compiler) hoist(statements []ast.Stmt) []ast.Stmt {
	result := make([]ast.Stmt, len(statements))
	copy(result, statements)

	sort.SliceStable(result, func(i, j int) bool {
		_, iFn := result[i].(*ast.FunctionDeclarationStmt)
		_, jFn := result[j].(*ast.FunctionDeclarationStmt)
		return iFn && !jFn
	})

	for _, statement := range result {
		switch s := statement.(type) {
		case *ast.VariableDeclarationStmt:
			c.registerDeclaration(s.IsExported, s.Name)
		case *ast.FunctionDeclarationStmt:
			if s.Function.Name != "" {
				c.registerDeclaration(s.IsExported, s.Function.Name)
			}
		}
	}

	return result
}

func (c *Compiler) registerDeclaration(isExported bool, name string) {
	if isExported {
		c.environment.RegisterExportVariable(name)
	} else {
		c.environment.RegisterLocalVariable(name)
	}
}
