// Package bytecode defines the linear instruction stream the compiler
// produces and the VM executes. Instruction is a tagged struct rather than
// informatter-nilan's byte-packed encoding (compiler/code.go's MakeInstruction
// references undefined AssembleInstruction/DiassembleInstruction symbols and
// never actually worked) - grounded instead directly on
// original_source/src/bytecode/instruction.rs's enum-of-instructions shape,
// translated to an idiomatic Go tagged struct.
package bytecode

import "github.com/comfort-stereo/regis/ast"

// Op identifies an instruction's operation.
type Op int

const (
	Blank Op = iota
	Pop
	Duplicate
	DuplicateTop
	PushNull
	PushBoolean
	PushInt
	PushFloat
	PushString
	PushVariable
	AssignVariable
	PushExport
	AssignExport
	PushGlobal
	AssignGlobal
	CreateList
	CreateObject
	CreateFunction
	Call
	Return
	UnaryNeg
	UnaryBitNot
	UnaryNot
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
	BinaryGt
	BinaryLt
	BinaryGte
	BinaryLte
	BinaryEq
	BinaryNeq
	BinaryPush
	GetIndex
	SetIndex
	Echo
	Jump
	JumpIf
	JumpUnless
	IsNull
)

// Instruction is one bytecode operation. Only the fields relevant to Op are
// populated; this mirrors a sum type more directly than a byte-packed
// encoding would, at the cost of a slightly larger struct per instruction
// and a larger encoded dump (serialize.go gob-encodes the struct as is).
type Instruction struct {
	Op Op

	Int     int64
	Float   float64
	Bool    bool
	String  string
	Address int
	Target  int // jump target / DuplicateTop count / argument count / list-object size

	ExportPath string
	ExportName string

	Procedure *Procedure
}

func (op Op) String() string {
	return opNames[op]
}

var opNames = map[Op]string{
	Blank: "Blank", Pop: "Pop", Duplicate: "Duplicate", DuplicateTop: "DuplicateTop",
	PushNull: "PushNull", PushBoolean: "PushBoolean", PushInt: "PushInt", PushFloat: "PushFloat",
	PushString: "PushString", PushVariable: "PushVariable", AssignVariable: "AssignVariable",
	PushExport: "PushExport", AssignExport: "AssignExport", PushGlobal: "PushGlobal", AssignGlobal: "AssignGlobal",
	CreateList: "CreateList", CreateObject: "CreateObject", CreateFunction: "CreateFunction",
	Call: "Call", Return: "Return",
	UnaryNeg: "UnaryNeg", UnaryBitNot: "UnaryBitNot", UnaryNot: "UnaryNot",
	BinaryAdd: "BinaryAdd", BinarySub: "BinarySub", BinaryMul: "BinaryMul", BinaryDiv: "BinaryDiv",
	BinaryGt: "BinaryGt", BinaryLt: "BinaryLt", BinaryGte: "BinaryGte", BinaryLte: "BinaryLte",
	BinaryEq: "BinaryEq", BinaryNeq: "BinaryNeq", BinaryPush: "BinaryPush",
	GetIndex: "GetIndex", SetIndex: "SetIndex", Echo: "Echo",
	Jump: "Jump", JumpIf: "JumpIf", JumpUnless: "JumpUnless", IsNull: "IsNull",
}

// BinaryOpFromAst maps an ast.BinaryOperator to the instruction that
// directly implements it (And/Or/Ncl are lowered to jumps instead - see
// compiler/operator.go - so they have no entry here).
func BinaryOpFromAst(op ast.BinaryOperator) (Op, bool) {
	switch op {
	case ast.Add:
		return BinaryAdd, true
	case ast.Sub:
		return BinarySub, true
	case ast.Mul:
		return BinaryMul, true
	case ast.Div:
		return BinaryDiv, true
	case ast.Gt:
		return BinaryGt, true
	case ast.Lt:
		return BinaryLt, true
	case ast.Gte:
		return BinaryGte, true
	case ast.Lte:
		return BinaryLte, true
	case ast.Eq:
		return BinaryEq, true
	case ast.Neq:
		return BinaryNeq, true
	case ast.Push:
		return BinaryPush, true
	}
	return 0, false
}
