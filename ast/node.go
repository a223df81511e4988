// Package ast defines the Regis abstract syntax tree: every node carries a
// NodeInfo with the span of source text it covers. The node families mirror
// the module's grammar exactly: Module/Block, the statement kinds, and the expression
// kinds. There are no visitor interfaces; the compiler dispatches on node
// types with type switches.
package ast

import "github.com/comfort-stereo/regis/source"

// NodeInfo is embedded in every AST node and records the span of source
// text the node covers.
type NodeInfo struct {
	Span source.Span
}

func (n NodeInfo) Info() NodeInfo { return n }

// Node is implemented by every AST node.
type Node interface {
	Info() NodeInfo
}

// Module is the root of a parsed file: an ordered list of top-level
// statements.
type Module struct {
	NodeInfo
	Statements []Stmt
}

// Block is an ordered, lexically scoped list of statements.
type Block struct {
	NodeInfo
	Statements []Stmt
}
