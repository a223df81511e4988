package parser

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/source"
	"github.com/comfort-stereo/regis/token"
)

// segmentKind tags one entry of the flat list built by eatSegments,
// mirroring original_source/src/parser/expr.rs's Segment enum.
type segmentKind int

const (
	segExpr segmentKind = iota
	segUnaryOp
	segBinaryOp
)

type segment struct {
	kind  segmentKind
	expr  ast.Expr
	unary ast.UnaryOperator
	binop ast.BinaryOperator
	span  source.Span
}

// unaryFromToken reports whether tok can ever be a unary (prefix) operator,
// and which one.
func unaryFromToken(tok token.Token) (ast.UnaryOperator, bool) {
	if tok.Kind == token.SymbolKind {
		switch tok.Symbol {
		case token.Minus:
			return ast.Neg, true
		case token.Tilde:
			return ast.BitNot, true
		}
	}
	if tok.Kind == token.KeywordKind && tok.Keyword == token.Not {
		return ast.Not, true
	}
	return 0, false
}

// binaryFromToken reports whether tok can ever be a binary (infix)
// operator, and which one.
func binaryFromToken(tok token.Token) (ast.BinaryOperator, bool) {
	if tok.Kind == token.KeywordKind {
		switch tok.Keyword {
		case token.And:
			return ast.And, true
		case token.Or:
			return ast.Or, true
		}
		return 0, false
	}
	if tok.Kind != token.SymbolKind {
		return 0, false
	}
	switch tok.Symbol {
	case token.Minus:
		return ast.Sub, true
	case token.Plus:
		return ast.Add, true
	case token.Star:
		return ast.Mul, true
	case token.Slash:
		return ast.Div, true
	case token.Gt:
		return ast.Gt, true
	case token.Lt:
		return ast.Lt, true
	case token.Gte:
		return ast.Gte, true
	case token.Lte:
		return ast.Lte, true
	case token.EqEq:
		return ast.Eq, true
	case token.NotEq:
		return ast.Neq, true
	case token.ShiftLeft:
		return ast.Push, true
	case token.NclOp:
		return ast.Ncl, true
	}
	return 0, false
}

// parseExpression is the entry point for expression parsing: builds the
// flat segment list, then runs the two fixup passes.
func (p *Parser) parseExpression() (ast.Expr, error) {
	segments, err := p.eatSegments()
	if err != nil {
		return nil, err
	}

	if len(segments) == 0 {
		return nil, errExpected("expression", p.peek().Span)
	}

	afterUnary, err := p.resolveUnaryOperations(segments)
	if err != nil {
		return nil, err
	}

	return p.resolveBinaryOperations(afterUnary)
}

func lastIsExpr(segments []segment) bool {
	return len(segments) > 0 && segments[len(segments)-1].kind == segExpr
}

// eatSegments reads tokens into a flat segment list until a token is found
// that cannot continue the expression. It does not consume that token.
// Grounded directly on original_source/src/parser/expr.rs's eat_expr: at
// each step, classify the next token as purely unary, purely binary,
// both-capable (disambiguated by whether the previous segment is an Expr),
// a postfix continuation of the previous Expr (index/dot/call), or a
// primary expression start. Anything else ends the expression without
// being consumed.
func (p *Parser) eatSegments() ([]segment, error) {
	var segments []segment

	for {
		tok := p.peek()

		unaryOp, isUnary := unaryFromToken(tok)
		binaryOp, isBinary := binaryFromToken(tok)

		if isUnary && isBinary {
			if lastIsExpr(segments) {
				isUnary = false
			} else {
				isBinary = false
			}
		}

		if isUnary {
			p.next()
			segments = append(segments, segment{kind: segUnaryOp, unary: unaryOp, span: tok.Span})
			continue
		}

		if isBinary {
			p.next()
			segments = append(segments, segment{kind: segBinaryOp, binop: binaryOp, span: tok.Span})
			continue
		}

		if lastIsExpr(segments) && tok.Kind == token.SymbolKind {
			switch tok.Symbol {
			case token.LeftBracket:
				target := segments[len(segments)-1].expr
				expr, err := p.parseIndexExpr(target)
				if err != nil {
					return nil, err
				}
				segments[len(segments)-1] = segment{kind: segExpr, expr: expr, span: expr.Info().Span}
				continue
			case token.Dot:
				target := segments[len(segments)-1].expr
				expr, err := p.parseDotExpr(target)
				if err != nil {
					return nil, err
				}
				segments[len(segments)-1] = segment{kind: segExpr, expr: expr, span: expr.Info().Span}
				continue
			case token.LeftParen:
				target := segments[len(segments)-1].expr
				expr, err := p.parseCallExpr(target)
				if err != nil {
					return nil, err
				}
				segments[len(segments)-1] = segment{kind: segExpr, expr: expr, span: expr.Info().Span}
				continue
			case token.LeftBrace:
				// '{' after an expression starts a following block; the
				// expression ends here without consuming the brace.
				return segments, nil
			}
		}

		expr, ok, err := p.eatPrimarySegment()
		if err != nil {
			return nil, err
		}
		if !ok {
			return segments, nil
		}
		segments = append(segments, segment{kind: segExpr, expr: expr, span: expr.Info().Span})
	}
}

// eatPrimarySegment attempts to parse one primary expression start. It
// returns ok=false (consuming nothing) when the current token cannot start
// an expression, which ends the segment-gathering loop.
func (p *Parser) eatPrimarySegment() (ast.Expr, bool, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.IntLiteral:
		p.next()
		return &ast.IntExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Value: tok.Int}, true, nil
	case token.FloatLiteral:
		p.next()
		return &ast.FloatExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Value: tok.Float}, true, nil
	case token.StringLiteral:
		p.next()
		value, err := unescapeToken(tok)
		if err != nil {
			return nil, false, errSpecific(err.Error(), tok.Span)
		}
		return &ast.StringExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Value: value}, true, nil
	case token.Ident:
		p.next()
		return &ast.VariableExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Name: tok.Slice}, true, nil
	case token.KeywordKind:
		switch tok.Keyword {
		case token.True:
			p.next()
			return &ast.BooleanExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Value: true}, true, nil
		case token.False:
			p.next()
			return &ast.BooleanExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}, Value: false}, true, nil
		case token.Null:
			p.next()
			return &ast.NullExpr{NodeInfo: ast.NodeInfo{Span: tok.Span}}, true, nil
		case token.Fn:
			expr, err := p.parseFunctionExpr()
			return expr, err == nil, err
		}
		return nil, false, nil
	case token.SymbolKind:
		switch tok.Symbol {
		case token.LeftBrace:
			expr, err := p.parseObjectExpr()
			return expr, err == nil, err
		case token.LeftBracket:
			expr, err := p.parseListExpr()
			return expr, err == nil, err
		case token.LeftParen:
			expr, err := p.parseWrappedExpr()
			return expr, err == nil, err
		}
	}

	return nil, false, nil
}
