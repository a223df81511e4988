package vm

import (
	"testing"

	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
)

func TestExportStoreCellIsSharedBetweenWriteAndRead(t *testing.T) {
	store := newExportStore()
	path := source.CanonicalPath("m")
	store.prepare(path, []string{"value"})

	store.cell(path, "value").Value = runtime.NumberValue(42)

	if got := store.cell(path, "value").Value; got.Number != 42 {
		t.Fatalf("cell value = %v, want 42", got)
	}
}

func TestExportStoreSnapshotPreservesDeclarationOrder(t *testing.T) {
	store := newExportStore()
	path := source.CanonicalPath("m")
	store.prepare(path, []string{"b", "a"})
	store.cell(path, "b").Value = runtime.NumberValue(1)
	store.cell(path, "a").Value = runtime.NumberValue(2)

	snapshot := store.snapshot(path, []string{"b", "a"})
	if snapshot.ToDisplayString() != "{b: 1, a: 2}" {
		t.Fatalf("snapshot = %s, want {b: 1, a: 2}", snapshot.ToDisplayString())
	}
}

func TestExportStoreIsolatesSeparateModulePaths(t *testing.T) {
	store := newExportStore()
	a := source.CanonicalPath("a")
	b := source.CanonicalPath("b")
	store.prepare(a, []string{"x"})
	store.prepare(b, []string{"x"})

	store.cell(a, "x").Value = runtime.NumberValue(1)
	store.cell(b, "x").Value = runtime.NumberValue(2)

	if store.cell(a, "x").Value.Number != 1 || store.cell(b, "x").Value.Number != 2 {
		t.Fatalf("export cells leaked across module paths")
	}
}
