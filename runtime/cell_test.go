package runtime

import "testing"

func TestCellIsSharedByReference(t *testing.T) {
	cell := NewCell(NumberValue(1))

	mutate := func(c *Cell) { c.Value = NumberValue(2) }
	mutate(cell)

	if cell.Value.Number != 2 {
		t.Fatalf("cell.Value = %v, want 2", cell.Value)
	}
}
