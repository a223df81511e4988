package bytecode

// Marker is a compile-time annotation on an instruction index, used by the
// builder's post-emission break/continue fixup pass. Grounded directly on
// original_source/src/bytecode/builder/marker.rs.
type Marker int

const (
	LoopStart Marker = iota
	LoopEnd
	Break
	Continue
)
