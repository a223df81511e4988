// Package module resolves, compiles, and caches Regis modules by canonical
// file path. Grounded on the caching/cycle-detection
// convention original_source/src/interpreter/interpreter.rs's
// `modules: HashMap<CanonicalPath, Module>` + load-in-progress tracking
// implies (no single original_source file owns this end-to-end - the
// original threads it through Interpreter::load_module, which this
// package's Cache.Load plays the role of).
package module

import (
	"fmt"
	"os"

	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/compiler"
	"github.com/comfort-stereo/regis/diagnostics"
	"github.com/comfort-stereo/regis/lexer"
	"github.com/comfort-stereo/regis/parser"
	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
	"github.com/comfort-stereo/regis/vm"
)

// CycleError reports a module import cycle: requestedPath is already being
// loaded somewhere up the @import call chain that led back to it.
type CycleError struct {
	Path source.CanonicalPath
}

func (e CycleError) Error() string {
	return fmt.Sprintf("module import cycle detected at '%s'", e.Path)
}

// NotFoundError reports that a requested module path does not resolve to a
// readable file.
type NotFoundError struct {
	Path string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("module '%s' does not exist", e.Path)
}

type cacheEntry struct {
	exports *runtime.ObjectValue
}

// Cache loads, compiles, and runs Regis modules by canonical path,
// memoizing each module's exports so importing the same path twice returns
// the identical Object ("module idempotence") and runs the
// module body at most once. It implements runtime.ModuleLoader so
// @import, wired through builtins.Register, can call back into it.
type Cache struct {
	vm      *vm.VM
	rootEnv *environment.Environment
	entries map[source.CanonicalPath]*cacheEntry
	loading map[source.CanonicalPath]bool
}

// New creates a Cache backed by one VM instance (so the operand stack and
// export store are process-wide, matching a single-threaded execution model)
// and one root Environment whose global set every loaded module's own
// Environment shares (see (*environment.Environment).ForModule).
func New(machine *vm.VM, rootEnv *environment.Environment) *Cache {
	cache := &Cache{
		vm:      machine,
		rootEnv: rootEnv,
		entries: map[source.CanonicalPath]*cacheEntry{},
		loading: map[source.CanonicalPath]bool{},
	}
	machine.Loader = cache
	return cache
}

// Load implements runtime.ModuleLoader: it canonicalizes requestedPath
// against callerPath's directory (or treats it as absolute), then loads
// that module if it has not already been loaded, returning its cached
// exports Object otherwise.
func (c *Cache) Load(callerPath source.CanonicalPath, requestedPath string) (*runtime.ObjectValue, error) {
	resolved, err := source.Canonicalize(callerPath.Dir(), requestedPath)
	if err != nil {
		return nil, NotFoundError{Path: requestedPath}
	}
	return c.LoadPath(resolved)
}

// LoadPath loads the module at an already-canonicalized path, the entry
// point cmd_*.go uses to start a program.
func (c *Cache) LoadPath(path source.CanonicalPath) (*runtime.ObjectValue, error) {
	if entry, ok := c.entries[path]; ok {
		return entry.exports, nil
	}
	if c.loading[path] {
		return nil, CycleError{Path: path}
	}

	text, err := os.ReadFile(string(path))
	if err != nil {
		return nil, NotFoundError{Path: string(path)}
	}

	tokens := lexer.New(string(text)).Scan()
	parsed, err := parser.Parse(tokens)
	if err != nil {
		return nil, diagnostics.Bind(err, path, string(text))
	}

	env := c.rootEnv.ForModule(path)
	code, env, err := compiler.CompileModuleIn(parsed, env)
	if err != nil {
		return nil, err
	}

	c.loading[path] = true
	exports, err := c.vm.RunModule(code, path, env.Exports())
	delete(c.loading, path)
	if err != nil {
		return nil, err
	}

	c.entries[path] = &cacheEntry{exports: exports}
	return exports, nil
}
