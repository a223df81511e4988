package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders code as one line per instruction, with operands and,
// for a CreateFunction instruction, its procedure's own instructions
// indented and disassembled recursively. Grounded on informatter-nilan's
// compiler/ast_compiler.go DiassembleBytecode, generalized from its
// byte-packed opcode/operand layout to this package's tagged Instruction.
func Disassemble(code Bytecode) string {
	var b strings.Builder
	disassembleInto(&b, code, 0)
	return b.String()
}

func disassembleInto(b *strings.Builder, code Bytecode, indent int) {
	pad := strings.Repeat("  ", indent)
	for i, instruction := range code.Instructions {
		fmt.Fprintf(b, "%s%4d  %s\n", pad, i, disassembleInstruction(instruction))
		if instruction.Op == CreateFunction && instruction.Procedure != nil {
			disassembleInto(b, instruction.Procedure.Bytecode, indent+1)
		}
	}
}

func disassembleInstruction(i Instruction) string {
	switch i.Op {
	case PushInt:
		return fmt.Sprintf("%s %d", i.Op, i.Int)
	case PushFloat:
		return fmt.Sprintf("%s %g", i.Op, i.Float)
	case PushBoolean:
		return fmt.Sprintf("%s %t", i.Op, i.Bool)
	case PushString:
		return fmt.Sprintf("%s %q", i.Op, i.String)
	case PushVariable, AssignVariable, PushGlobal, AssignGlobal:
		return fmt.Sprintf("%s slot=%d", i.Op, i.Address)
	case PushExport, AssignExport:
		return fmt.Sprintf("%s %s::%s", i.Op, i.ExportPath, i.ExportName)
	case Jump, JumpIf, JumpUnless:
		return fmt.Sprintf("%s -> %d", i.Op, i.Target)
	case DuplicateTop:
		return fmt.Sprintf("%s %d", i.Op, i.Target)
	case CreateList, CreateObject:
		return fmt.Sprintf("%s size=%d", i.Op, i.Target)
	case Call:
		return fmt.Sprintf("%s argc=%d", i.Op, i.Target)
	case CreateFunction:
		name := i.Procedure.Name
		if name == "" {
			name = "<anonymous>"
		}
		return fmt.Sprintf("%s %s/%d captures=%d", i.Op, name, len(i.Procedure.Parameters), len(i.Procedure.Captures))
	default:
		return i.Op.String()
	}
}
