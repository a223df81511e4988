package parser

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/token"
)

// parseStatement dispatches on the lead keyword. Keywords
// that open a statement form (if/while/loop/return/break/continue/fn/let/
// export) are checked first; anything else falls through to an
// expression-first statement (assignment or bare expression statement).
func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.checkKeyword(token.If):
		return p.parseIfStmt()
	case p.checkKeyword(token.While):
		return p.parseWhileStmt()
	case p.checkKeyword(token.Loop):
		return p.parseLoopStmt()
	case p.checkKeyword(token.Return):
		return p.parseReturnStmt()
	case p.checkKeyword(token.Break):
		return p.parseBreakStmt()
	case p.checkKeyword(token.Continue):
		return p.parseContinueStmt()
	case p.checkKeyword(token.Fn):
		return p.parseFunctionDeclarationStmt(false)
	case p.checkKeyword(token.Let):
		return p.parseVariableDeclarationStmt(false)
	case p.checkKeyword(token.Export):
		p.next()
		if p.checkKeyword(token.Fn) {
			return p.parseFunctionDeclarationStmt(true)
		}
		if p.checkKeyword(token.Let) {
			return p.parseVariableDeclarationStmt(true)
		}
		return nil, errExpected("'fn' or 'let'", p.peek().Span)
	default:
		return p.parseExpressionFirstStmt()
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.index()
	if err := p.expectSymbol(token.LeftBrace); err != nil {
		return nil, err
	}

	var statements []ast.Stmt
	for !p.checkSymbol(token.RightBrace) {
		if p.isFinished() {
			return nil, errExpectedQuoted("}", p.peek().Span)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	if err := p.expectSymbol(token.RightBrace); err != nil {
		return nil, err
	}

	return &ast.Block{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Statements: statements}, nil
}

func (p *Parser) parseIfStmt() (ast.Stmt, error) {
	start := p.index()
	p.next() // 'if'

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Condition: condition, Body: body}

	if p.matchKeyword(token.Else) {
		if p.checkKeyword(token.If) {
			elseStmt, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseStmt
		} else {
			elseBlock, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBlock
		}
	}

	stmt.NodeInfo = ast.NodeInfo{Span: p.spanFrom(start)}
	return stmt, nil
}

func (p *Parser) parseWhileStmt() (ast.Stmt, error) {
	start := p.index()
	p.next() // 'while'

	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Condition: condition, Body: body}, nil
}

func (p *Parser) parseLoopStmt() (ast.Stmt, error) {
	start := p.index()
	p.next() // 'loop'

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.LoopStmt{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Body: body}, nil
}

func (p *Parser) parseReturnStmt() (ast.Stmt, error) {
	start := p.index()
	p.next() // 'return'

	stmt := &ast.ReturnStmt{}
	if !p.checkSymbol(token.Semicolon) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}

	if err := p.expectSymbol(token.Semicolon); err != nil {
		return nil, err
	}

	stmt.NodeInfo = ast.NodeInfo{Span: p.spanFrom(start)}
	return stmt, nil
}

func (p *Parser) parseBreakStmt() (ast.Stmt, error) {
	start := p.index()
	p.next() // 'break'
	if err := p.expectSymbol(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.BreakStmt{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}}, nil
}

func (p *Parser) parseContinueStmt() (ast.Stmt, error) {
	start := p.index()
	p.next() // 'continue'
	if err := p.expectSymbol(token.Semicolon); err != nil {
		return nil, err
	}
	return &ast.ContinueStmt{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}}, nil
}

// parseFunctionDeclarationStmt parses `fn name(...) { block }` (no trailing
// `;` required) or `fn name(...) => expr;` (trailing `;` required).
func (p *Parser) parseFunctionDeclarationStmt(isExported bool) (ast.Stmt, error) {
	start := p.index()

	fn, err := p.parseFunctionExpr()
	if err != nil {
		return nil, err
	}
	fnExpr := fn.(*ast.FunctionExpr)

	if fnExpr.BodyVariant == ast.FunctionBodyExpr {
		if err := p.expectSymbol(token.Semicolon); err != nil {
			return nil, err
		}
	}

	return &ast.FunctionDeclarationStmt{
		NodeInfo:   ast.NodeInfo{Span: p.spanFrom(start)},
		IsExported: isExported,
		Function:   fnExpr,
	}, nil
}

func (p *Parser) parseVariableDeclarationStmt(isExported bool) (ast.Stmt, error) {
	start := p.index()
	p.next() // 'let'

	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(token.Assign); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.VariableDeclarationStmt{
		NodeInfo:   ast.NodeInfo{Span: p.spanFrom(start)},
		IsExported: isExported,
		Name:       name,
		Value:      value,
	}, nil
}

func assignmentOperatorFromSymbol(sym token.Symbol) (ast.AssignmentOperator, bool) {
	switch sym {
	case token.Assign:
		return ast.Assign, true
	case token.PlusAssign:
		return ast.AddAssign, true
	case token.MinusAssign:
		return ast.SubAssign, true
	case token.StarAssign:
		return ast.MulAssign, true
	case token.SlashAssign:
		return ast.DivAssign, true
	case token.NclAssign:
		return ast.NclAssign, true
	case token.AndAssign:
		return ast.AndAssign, true
	case token.OrAssign:
		return ast.OrAssign, true
	}
	return 0, false
}

// parseExpressionFirstStmt parses an expression, then decides whether it is
// the target of an assignment (variable/index/dot) or a bare expression
// statement.
func (p *Parser) parseExpressionFirstStmt() (ast.Stmt, error) {
	start := p.index()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.Kind == token.SymbolKind {
		if op, ok := assignmentOperatorFromSymbol(tok.Symbol); ok {
			p.next()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(token.Semicolon); err != nil {
				return nil, err
			}

			span := ast.NodeInfo{Span: p.spanFrom(start)}
			switch target := expr.(type) {
			case *ast.VariableExpr:
				return &ast.VariableAssignmentStmt{NodeInfo: span, Name: target.Name, Operator: op, Value: value}, nil
			case *ast.IndexExpr:
				return &ast.IndexAssignmentStmt{NodeInfo: span, Target: target.Target, Index: target.Index, Operator: op, Value: value}, nil
			case *ast.DotExpr:
				return &ast.DotAssignmentStmt{NodeInfo: span, Target: target.Target, Property: target.Property, Operator: op, Value: value}, nil
			default:
				return nil, errSpecific("invalid assignment target", expr.Info().Span)
			}
		}
	}

	if err := p.expectSymbol(token.Semicolon); err != nil {
		return nil, err
	}

	return &ast.ExprStmt{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Expr: expr}, nil
}
