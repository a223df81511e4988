package bytecode

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisassembleIncludesOperands(t *testing.T) {
	code := Bytecode{
		Instructions: []Instruction{
			{Op: PushInt, Int: 7},
			{Op: PushVariable, Address: 2},
			{Op: Jump, Target: 5},
		},
	}

	out := Disassemble(code)
	for _, want := range []string{"PushInt 7", "PushVariable slot=2", "Jump -> 5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Disassemble output missing %q, got:\n%s", want, out)
		}
	}
}

func TestDisassembleRecursesIntoProcedureBody(t *testing.T) {
	code := Bytecode{
		Instructions: []Instruction{
			{Op: CreateFunction, Procedure: &Procedure{
				Name:       "add",
				Parameters: []string{"a", "b"},
				Bytecode:   Bytecode{Instructions: []Instruction{{Op: BinaryAdd}, {Op: Return}}},
			}},
		},
	}

	out := Disassemble(code)
	if !strings.Contains(out, "add/2") {
		t.Fatalf("Disassemble output missing procedure summary, got:\n%s", out)
	}
	if !strings.Contains(out, "BinaryAdd") {
		t.Fatalf("Disassemble output missing nested instruction, got:\n%s", out)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	code := Bytecode{
		Instructions: []Instruction{
			{Op: PushString, String: "hi"},
			{Op: Return},
		},
		VariableCount: 3,
	}

	var buf bytes.Buffer
	if err := Encode(&buf, code); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if decoded.VariableCount != 3 {
		t.Fatalf("VariableCount = %d, want 3", decoded.VariableCount)
	}
	if len(decoded.Instructions) != 2 || decoded.Instructions[0].String != "hi" {
		t.Fatalf("decoded instructions = %+v", decoded.Instructions)
	}
}
