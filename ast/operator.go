package ast

// UnaryOperator is a prefix operator: Neg (-), BitNot (~), Not.
type UnaryOperator int

const (
	Neg UnaryOperator = iota
	BitNot
	Not
)

// BinaryOperator is an infix operator. Precedence follows the grammar: lower
// numbers bind weaker; operators at the same level are left-associative.
type BinaryOperator int

const (
	Or BinaryOperator = iota
	And
	Eq
	Neq
	Gt
	Lt
	Gte
	Lte
	Add
	Sub
	Mul
	Div
	Push
	Ncl
)

// Precedence returns the binding strength of op; lower values bind weaker.
// Push sits alongside Add/Sub per SPEC_FULL.md's documented table.
func (op BinaryOperator) Precedence() int {
	switch op {
	case Or:
		return 1
	case And:
		return 2
	case Eq, Neq:
		return 3
	case Gt, Lt, Gte, Lte:
		return 4
	case Add, Sub, Push:
		return 5
	case Mul, Div:
		return 6
	case Ncl:
		return 7
	}
	panic("unreachable: unknown binary operator")
}

// AssignmentOperator is the operator attached to a variable/index/dot
// assignment statement.
type AssignmentOperator int

const (
	Assign AssignmentOperator = iota
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	NclAssign
	AndAssign
	OrAssign
)
