package module

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
)

func writeFile(t *testing.T, dir, name, contents string) source.CanonicalPath {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	canonical, err := source.Canonicalize(dir, name)
	if err != nil {
		t.Fatalf("Canonicalize(%s): %v", name, err)
	}
	return canonical
}

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	original := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	os.Stdout = w
	f()
	w.Close()
	os.Stdout = original

	output, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(output)
}

func TestLoadPathRunsModuleAndSnapshotsExports(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.rg", "export let value = 1 + 2 * 3;\n")

	cache := NewProgram(path, false)
	exports, err := cache.LoadPath(path)
	if err != nil {
		t.Fatalf("LoadPath returned error: %v", err)
	}

	got := exports.Get(runtime.StringValue("value"))
	if got.Number != 7 {
		t.Fatalf("value export = %v, want 7", got)
	}
}

func TestLoadPathIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.rg", "@println(\"loaded\");\nexport let value = 1;\n")

	cache := NewProgram(path, false)

	var firstOutput, secondOutput string

	firstOutput = captureStdout(t, func() {
		if _, err := cache.LoadPath(path); err != nil {
			t.Fatalf("first LoadPath returned error: %v", err)
		}
	})
	secondOutput = captureStdout(t, func() {
		if _, err := cache.LoadPath(path); err != nil {
			t.Fatalf("second LoadPath returned error: %v", err)
		}
	})

	if firstOutput != "loaded\n" {
		t.Fatalf("first load output = %q, want %q", firstOutput, "loaded\n")
	}
	if secondOutput != "" {
		t.Fatalf("second load re-ran the module body, output = %q", secondOutput)
	}

	firstExports, _ := cache.LoadPath(path)
	secondExports, _ := cache.LoadPath(path)
	if firstExports != secondExports {
		t.Fatalf("LoadPath returned distinct Object identities across calls")
	}
}

func TestImportResolvesRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.rg", "export let answer = 42;\n")
	entry := writeFile(t, dir, "main.rg", "let lib = @import(\"./lib.rg\"); export let answer = lib.answer;\n")

	cache := NewProgram(entry, false)
	exports, err := cache.LoadPath(entry)
	if err != nil {
		t.Fatalf("LoadPath returned error: %v", err)
	}

	got := exports.Get(runtime.StringValue("answer"))
	if got.Number != 42 {
		t.Fatalf("answer export = %v, want 42", got)
	}
}

func TestImportCycleIsDetected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rg", "@import(\"./b.rg\"); export let x = 1;\n")
	writeFile(t, dir, "b.rg", "@import(\"./a.rg\"); export let x = 1;\n")

	a, _ := source.Canonicalize(dir, "a.rg")
	cache := NewProgram(a, false)
	_, err := cache.LoadPath(a)
	if err == nil {
		t.Fatalf("expected a cycle error, got nil")
	}
	var cycle CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleError, got %T: %v", err, err)
	}
}
