package module

import (
	"github.com/comfort-stereo/regis/builtins"
	"github.com/comfort-stereo/regis/bytecode/environment"
	"github.com/comfort-stereo/regis/source"
	"github.com/comfort-stereo/regis/vm"
)

// NewProgram wires up one VM, one built-in-seeded root Environment, and the
// Cache that loads modules into both - the shape every cmd_*.go subcommand
// needs to run a Regis file. entryPath need not exist yet; it only seeds
// the root Environment's module path field, which is never itself
// compiled against (every real module gets its own Environment via
// (*environment.Environment).ForModule).
func NewProgram(entryPath source.CanonicalPath, debug bool) *Cache {
	rootEnv := environment.New(entryPath)
	machine := vm.New()
	machine.Debug = debug
	machine.Globals = builtins.Register(rootEnv)
	return New(machine, rootEnv)
}
