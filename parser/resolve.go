package parser

import (
	"sort"

	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/source"
)

// resolveUnaryOperations walks segments left to right, buffering contiguous
// UnaryOp segments and, once an Expr segment is found, wrapping it
// right-to-left with all buffered operators (prefix unaries are
// right-associative: `- ~ a` is `Neg(BitNot(a))`). Grounded directly on
// original_source/src/parser/expr.rs's resolve_unary_operations.
func (p *Parser) resolveUnaryOperations(segments []segment) ([]segment, error) {
	// Invariant: a UnaryOp immediately followed by a BinaryOp is illegal.
	for i := 0; i+1 < len(segments); i++ {
		if segments[i].kind == segUnaryOp && segments[i+1].kind == segBinaryOp {
			return nil, errExpected("expression", segments[i+1].span)
		}
	}
	if len(segments) > 0 && segments[len(segments)-1].kind == segUnaryOp {
		return nil, errExpected("expression", p.peek().Span)
	}

	var output []segment
	var unaries []segment

	for _, seg := range segments {
		switch seg.kind {
		case segExpr:
			value := seg.expr
			start := seg.span.Start
			if len(unaries) > 0 {
				start = unaries[0].span.Start
			}

			for i := len(unaries) - 1; i >= 0; i-- {
				end := value.Info().Span.End
				value = &ast.UnaryOperationExpr{
					NodeInfo: ast.NodeInfo{Span: source.NewSpan(start, end)},
					Operator: unaries[i].unary,
					Right:    value,
				}
			}

			unaries = unaries[:0]
			output = append(output, segment{kind: segExpr, expr: value, span: value.Info().Span})
		case segUnaryOp:
			unaries = append(unaries, seg)
		case segBinaryOp:
			output = append(output, seg)
		}
	}

	if len(unaries) != 0 {
		return nil, errExpected("expression", p.peek().Span)
	}

	return output, nil
}

// resolveBinaryOperations collects the distinct precedences present, sorted
// strongest to weakest, then repeatedly folds same-precedence BinaryOp
// segments left-associatively. Grounded directly on
// original_source/src/parser/expr.rs's resolve_binary_operations.
func (p *Parser) resolveBinaryOperations(segments []segment) (ast.Expr, error) {
	for i := 0; i+1 < len(segments); i++ {
		left, right := segments[i], segments[i+1]
		if left.kind == segExpr && right.kind == segExpr {
			return nil, errExpected("binary operator", right.span)
		}
		if left.kind == segBinaryOp && right.kind == segBinaryOp {
			return nil, errExpected("expression", right.span)
		}
	}
	if len(segments) > 0 && segments[0].kind == segBinaryOp {
		return nil, errSpecific("expected left operand", segments[0].span)
	}
	if len(segments) > 0 && segments[len(segments)-1].kind == segBinaryOp {
		return nil, errSpecific("expected right operand", segments[len(segments)-1].span)
	}

	precedenceSet := map[int]bool{}
	for _, seg := range segments {
		if seg.kind == segBinaryOp {
			precedenceSet[seg.binop.Precedence()] = true
		}
	}
	var precedences []int
	for prec := range precedenceSet {
		precedences = append(precedences, prec)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(precedences)))

	current := segments
	for _, prec := range precedences {
		var next []segment
		for i := 0; i < len(current); i++ {
			seg := current[i]
			if seg.kind != segBinaryOp || seg.binop.Precedence() != prec {
				next = append(next, seg)
				continue
			}

			left := next[len(next)-1]
			next = next[:len(next)-1]
			right := current[i+1]
			i++

			merged := left.expr.Info().Span.Merge(right.expr.Info().Span)
			combined := &ast.BinaryOperationExpr{
				NodeInfo: ast.NodeInfo{Span: merged},
				Operator: seg.binop,
				Left:     left.expr,
				Right:    right.expr,
			}
			next = append(next, segment{kind: segExpr, expr: combined, span: merged})
		}
		current = next
	}

	if len(current) != 1 || current[0].kind != segExpr {
		return nil, errSpecific("malformed expression", p.peek().Span)
	}

	return current[0].expr, nil
}
