package bytecode

import (
	"bytes"
	"encoding/gob"
	"io"
)

// Encode serializes code for the run-compiled/emit-bytecode round trip.
// informatter-nilan's compiler/ast_compiler.go DumpBytecode hex-dumps its
// byte-packed instruction stream directly; this package's tagged
// Instruction has no fixed byte width, so gob - the standard
// self-describing Go encoding - plays that role instead.
func Encode(w io.Writer, code Bytecode) error {
	return gob.NewEncoder(w).Encode(code)
}

// Decode reads a Bytecode previously written by Encode.
func Decode(r io.Reader) (Bytecode, error) {
	var code Bytecode
	if err := gob.NewDecoder(r).Decode(&code); err != nil {
		return Bytecode{}, err
	}
	return code, nil
}

// EncodeToBytes is a convenience wrapper used where an io.Writer is not
// already at hand (e.g. building a byte slice to write to a file).
func EncodeToBytes(code Bytecode) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, code); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
