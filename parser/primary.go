package parser

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/lexer"
	"github.com/comfort-stereo/regis/token"
)

func unescapeToken(tok token.Token) (string, error) {
	return lexer.Unescape(tok.Slice)
}

// parseListExpr parses `[` expr (, expr)* ,? `]`, assuming `[` is current.
func (p *Parser) parseListExpr() (ast.Expr, error) {
	start := p.index()
	p.next() // '['

	var values []ast.Expr
	for !p.checkSymbol(token.RightBracket) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, value)

		if !p.matchSymbol(token.Comma) {
			break
		}
	}

	if err := p.expectSymbol(token.RightBracket); err != nil {
		return nil, err
	}

	return &ast.ListExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Values: values}, nil
}

// parseObjectExpr parses `{` (key ':' expr (, key ':' expr)* ,?)? `}`,
// assuming `{` is current. Keys may be an identifier, a string literal, or
// a bracketed computed expression.
func (p *Parser) parseObjectExpr() (ast.Expr, error) {
	start := p.index()
	p.next() // '{'

	var pairs []ast.ObjectPair
	for !p.checkSymbol(token.RightBrace) {
		pairStart := p.index()
		var pair ast.ObjectPair

		switch {
		case p.check(token.Ident):
			tok := p.next()
			pair.KeyVariant = ast.KeyIdentifier
			pair.KeyName = tok.Slice
		case p.check(token.StringLiteral):
			tok := p.next()
			value, err := unescapeToken(tok)
			if err != nil {
				return nil, errSpecific(err.Error(), tok.Span)
			}
			pair.KeyVariant = ast.KeyString
			pair.KeyName = value
		case p.checkSymbol(token.LeftBracket):
			p.next()
			keyExpr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expectSymbol(token.RightBracket); err != nil {
				return nil, err
			}
			pair.KeyVariant = ast.KeyExpression
			pair.KeyExpr = keyExpr
		default:
			return nil, errExpected("object key", p.peek().Span)
		}

		if err := p.expectSymbol(token.Colon); err != nil {
			return nil, err
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		pair.Value = value
		pair.NodeInfo = ast.NodeInfo{Span: p.spanFrom(pairStart)}
		pairs = append(pairs, pair)

		if !p.matchSymbol(token.Comma) {
			break
		}
	}

	if err := p.expectSymbol(token.RightBrace); err != nil {
		return nil, err
	}

	return &ast.ObjectExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Pairs: pairs}, nil
}

// parseFunctionExpr parses `fn` [name] `(` params `)` (block | `=>` expr
// `;`-terminated-by-caller).
func (p *Parser) parseFunctionExpr() (ast.Expr, error) {
	start := p.index()
	if err := p.expectKeyword(token.Fn); err != nil {
		return nil, err
	}

	var name string
	if p.check(token.Ident) {
		name, _ = p.expectIdent()
	}

	if err := p.expectSymbol(token.LeftParen); err != nil {
		return nil, err
	}

	var parameters []string
	for !p.checkSymbol(token.RightParen) {
		param, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, param)
		if !p.matchSymbol(token.Comma) {
			break
		}
	}

	if err := p.expectSymbol(token.RightParen); err != nil {
		return nil, err
	}

	fn := &ast.FunctionExpr{Name: name, Parameters: parameters}

	if p.matchSymbol(token.Arrow) {
		body, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fn.BodyVariant = ast.FunctionBodyExpr
		fn.Expr = body
	} else {
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn.BodyVariant = ast.FunctionBodyBlock
		fn.Block = block
	}

	fn.NodeInfo = ast.NodeInfo{Span: p.spanFrom(start)}
	return fn, nil
}

// parseWrappedExpr parses `(` expr `)`, assuming `(` is current.
func (p *Parser) parseWrappedExpr() (ast.Expr, error) {
	start := p.index()
	p.next() // '('

	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(token.RightParen); err != nil {
		return nil, err
	}

	return &ast.WrappedExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Inner: inner}, nil
}

// parseIndexExpr parses `[` expr `]` as a postfix on target, assuming `[`
// is current.
func (p *Parser) parseIndexExpr(target ast.Expr) (ast.Expr, error) {
	start := target.Info().Span.Start
	p.next() // '['

	index, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expectSymbol(token.RightBracket); err != nil {
		return nil, err
	}

	return &ast.IndexExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Target: target, Index: index}, nil
}

// parseDotExpr parses `.` ident as a postfix on target, assuming `.` is
// current.
func (p *Parser) parseDotExpr(target ast.Expr) (ast.Expr, error) {
	start := target.Info().Span.Start
	p.next() // '.'

	property, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	return &ast.DotExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Target: target, Property: property}, nil
}

// parseCallExpr parses `(` args `)` as a postfix on target, assuming `(`
// is current. Arguments are comma-separated with one optional trailing
// comma before the closing paren.
func (p *Parser) parseCallExpr(target ast.Expr) (ast.Expr, error) {
	start := target.Info().Span.Start
	p.next() // '('

	var args []ast.Expr
	for !p.checkSymbol(token.RightParen) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.matchSymbol(token.Comma) {
			break
		}
	}

	if err := p.expectSymbol(token.RightParen); err != nil {
		return nil, err
	}

	return &ast.CallExpr{NodeInfo: ast.NodeInfo{Span: p.spanFrom(start)}, Target: target, Arguments: args}, nil
}
