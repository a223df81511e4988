// Package parser turns a filtered token stream into a Regis AST. Its
// hardest subsystem, expression resolution, is grounded directly on
// original_source/src/parser/expr.rs: expressions are read into a flat list
// of segments (Expr / UnaryOp / BinaryOp) in a single forward pass, then
// resolved in two fixup passes (unary right-to-left folding, then
// precedence-bucketed left-associative binary folding). The token helpers
// here are peek/previous/next plus check*/match*/expect*; informatter-nilan's
// parser/parser.go recursive-descent algorithm is not reused.
package parser

import (
	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/source"
	"github.com/comfort-stereo/regis/token"
)

// Parser consumes a buffered, pre-filtered token stream.
type Parser struct {
	tokens   []token.Token
	position int
}

// New builds a Parser over raw (unfiltered) tokens, dropping Whitespace and
// Comment tokens are insignificant and filtered out before parsing.
func New(rawTokens []token.Token) *Parser {
	tokens := make([]token.Token, 0, len(rawTokens))
	for _, tok := range rawTokens {
		if !tok.Insignificant() {
			tokens = append(tokens, tok)
		}
	}
	return &Parser{tokens: tokens}
}

// Parse consumes the whole token stream and returns the module's AST.
func Parse(rawTokens []token.Token) (*ast.Module, error) {
	p := New(rawTokens)
	return p.parseModule()
}

func (p *Parser) parseModule() (*ast.Module, error) {
	start := p.index()
	var statements []ast.Stmt
	for !p.check(token.Eoi) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return &ast.Module{
		NodeInfo:   ast.NodeInfo{Span: p.spanFrom(start)},
		Statements: statements,
	}, nil
}

func (p *Parser) peek() token.Token {
	return p.lookahead(0)
}

func (p *Parser) lookahead(k int) token.Token {
	index := p.position + k
	if index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // Eoi
	}
	return p.tokens[index]
}

func (p *Parser) previous() token.Token {
	if p.position == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.position-1]
}

func (p *Parser) next() token.Token {
	tok := p.peek()
	if !p.isFinished() {
		p.position++
	}
	return tok
}

func (p *Parser) isFinished() bool {
	return p.peek().Kind == token.Eoi
}

func (p *Parser) index() int {
	return p.peek().Span.Start
}

func (p *Parser) spanFrom(start int) source.Span {
	end := p.previous().Span.End
	if end < start {
		end = start
	}
	return source.NewSpan(start, end)
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkKeyword(kw token.Keyword) bool {
	tok := p.peek()
	return tok.Kind == token.KeywordKind && tok.Keyword == kw
}

func (p *Parser) checkSymbol(sym token.Symbol) bool {
	tok := p.peek()
	return tok.Kind == token.SymbolKind && tok.Symbol == sym
}

func (p *Parser) matchSymbol(sym token.Symbol) bool {
	if p.checkSymbol(sym) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) matchKeyword(kw token.Keyword) bool {
	if p.checkKeyword(kw) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expectSymbol(sym token.Symbol) error {
	if !p.matchSymbol(sym) {
		return errExpectedQuoted(string(sym), p.peek().Span)
	}
	return nil
}

func (p *Parser) expectKeyword(kw token.Keyword) error {
	if !p.matchKeyword(kw) {
		return errExpectedQuoted(string(kw), p.peek().Span)
	}
	return nil
}

func (p *Parser) expectIdent() (string, error) {
	if !p.check(token.Ident) {
		return "", errExpected("identifier", p.peek().Span)
	}
	return p.next().Slice, nil
}

// attempt saves the current position, runs f, and restores the position if
// f returns an error. No parse rule calls it: parseStatement dispatches on
// the lead keyword without backtracking.
func (p *Parser) attempt(f func() (ast.Stmt, error)) (ast.Stmt, error) {
	saved := p.position
	stmt, err := f()
	if err != nil {
		p.position = saved
		return nil, err
	}
	return stmt, nil
}
