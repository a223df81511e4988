package vm

import "github.com/comfort-stereo/regis/runtime"

// frame holds one call's local variable storage: every frame slot is
// uniformly a *runtime.Cell (the "every slot is a
// cell uniformly"), so CreateFunction can always share a capture cell by
// simply reading the currently executing frame's slot, whether that slot
// is an ordinary local or itself relaying a deeper capture - no separate
// boxing step is needed the first time a local is captured.
type frame struct {
	cells []*runtime.Cell
}

func newFrame(size int) *frame {
	cells := make([]*runtime.Cell, size)
	for i := range cells {
		cells[i] = runtime.NewCell(runtime.NullValue())
	}
	return &frame{cells: cells}
}

func (f *frame) get(address int) runtime.Value {
	return f.cells[address].Value
}

func (f *frame) set(address int, value runtime.Value) {
	f.cells[address].Value = value
}

func (f *frame) cell(address int) *runtime.Cell {
	return f.cells[address]
}

// grow extends f with fresh null-valued cells until it has at least size
// slots, preserving every existing cell's identity and value. Used by the
// REPL, where each input's bytecode targets the same persistent top-level
// frame but may declare new variables beyond what earlier inputs needed.
func (f *frame) grow(size int) {
	for len(f.cells) < size {
		f.cells = append(f.cells, runtime.NewCell(runtime.NullValue()))
	}
}
