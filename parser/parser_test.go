package parser

import (
	"testing"

	"github.com/comfort-stereo/regis/ast"
	"github.com/comfort-stereo/regis/lexer"
)

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	tokens := lexer.New(src).Scan()
	p := New(tokens)
	expr, err := p.parseExpression()
	if err != nil {
		t.Fatalf("parseExpression(%q) error: %v", src, err)
	}
	return expr
}

func TestPrecedenceWeakerBindsOutside(t *testing.T) {
	// a + b * c -> Add(a, Mul(b, c))
	expr := parseExpr(t, "a + b * c")
	add, ok := expr.(*ast.BinaryOperationExpr)
	if !ok || add.Operator != ast.Add {
		t.Fatalf("expected top-level Add, got %#v", expr)
	}
	mul, ok := add.Right.(*ast.BinaryOperationExpr)
	if !ok || mul.Operator != ast.Mul {
		t.Fatalf("expected Mul on the right, got %#v", add.Right)
	}
}

func TestSamePrecedenceLeftAssociates(t *testing.T) {
	// a + b + c -> Add(Add(a, b), c)
	expr := parseExpr(t, "a + b + c")
	outer, ok := expr.(*ast.BinaryOperationExpr)
	if !ok || outer.Operator != ast.Add {
		t.Fatalf("expected top-level Add, got %#v", expr)
	}
	inner, ok := outer.Left.(*ast.BinaryOperationExpr)
	if !ok || inner.Operator != ast.Add {
		t.Fatalf("expected Add on the left, got %#v", outer.Left)
	}
	if _, ok := outer.Right.(*ast.VariableExpr); !ok {
		t.Fatalf("expected plain variable on the right, got %#v", outer.Right)
	}
}

func TestUnaryBindsTighterThanBinary(t *testing.T) {
	// -a + b -> Add(Neg(a), b)
	expr := parseExpr(t, "-a + b")
	add, ok := expr.(*ast.BinaryOperationExpr)
	if !ok || add.Operator != ast.Add {
		t.Fatalf("expected top-level Add, got %#v", expr)
	}
	neg, ok := add.Left.(*ast.UnaryOperationExpr)
	if !ok || neg.Operator != ast.Neg {
		t.Fatalf("expected Neg on the left, got %#v", add.Left)
	}
}

func TestNotAndBindsLikeUnary(t *testing.T) {
	// not a and b -> And(Not(a), b)
	expr := parseExpr(t, "not a and b")
	and, ok := expr.(*ast.BinaryOperationExpr)
	if !ok || and.Operator != ast.And {
		t.Fatalf("expected top-level And, got %#v", expr)
	}
	not, ok := and.Left.(*ast.UnaryOperationExpr)
	if !ok || not.Operator != ast.Not {
		t.Fatalf("expected Not on the left, got %#v", and.Left)
	}
}

func TestDanglingUnaryIsError(t *testing.T) {
	tokens := lexer.New("- ").Scan()
	_, err := New(tokens).parseExpression()
	if err == nil {
		t.Fatalf("expected error for dangling unary operator")
	}
}

func TestCallIndexDotChain(t *testing.T) {
	expr := parseExpr(t, "f(1).a[0]")
	index, ok := expr.(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected top-level Index, got %#v", expr)
	}
	dot, ok := index.Target.(*ast.DotExpr)
	if !ok || dot.Property != "a" {
		t.Fatalf("expected Dot(a) target, got %#v", index.Target)
	}
	call, ok := dot.Target.(*ast.CallExpr)
	if !ok || len(call.Arguments) != 1 {
		t.Fatalf("expected Call with 1 arg target, got %#v", dot.Target)
	}
}

func TestModuleParsesStatements(t *testing.T) {
	src := `
		let x = 1;
		fn add(a, b) { return a + b; }
		if x < 2 { x = x + 1; } else { x = 0; }
		while x < 10 { x = x + 1; }
		loop { break; }
	`
	tokens := lexer.New(src).Scan()
	module, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(module.Statements) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(module.Statements))
	}
}
