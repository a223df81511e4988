package vm

import (
	"github.com/comfort-stereo/regis/runtime"
	"github.com/comfort-stereo/regis/source"
)

// exportStore holds, per module path, a name-keyed cell for each of that
// module's exported bindings. See DESIGN.md's "Export storage" decision:
// original_source/src/bytecode/environment.rs never gives an exported
// declaration a frame slot at all - get_variable_location resolves it
// straight to an Export{path, name} location, even from within its own
// defining module - so exports live here rather than in any frame.
type exportStore struct {
	byPath map[source.CanonicalPath]map[string]*runtime.Cell
}

func newExportStore() *exportStore {
	return &exportStore{byPath: map[source.CanonicalPath]map[string]*runtime.Cell{}}
}

// prepare ensures path has a (possibly empty) export map and a cell for
// every name in names, called once before a module body starts running so
// a forward reference from inside a hoisted function resolves.
func (s *exportStore) prepare(path source.CanonicalPath, names []string) {
	table, ok := s.byPath[path]
	if !ok {
		table = map[string]*runtime.Cell{}
		s.byPath[path] = table
	}
	for _, name := range names {
		if _, ok := table[name]; !ok {
			table[name] = runtime.NewCell(runtime.NullValue())
		}
	}
}

func (s *exportStore) cell(path source.CanonicalPath, name string) *runtime.Cell {
	table, ok := s.byPath[path]
	if !ok {
		table = map[string]*runtime.Cell{}
		s.byPath[path] = table
	}
	cell, ok := table[name]
	if !ok {
		cell = runtime.NewCell(runtime.NullValue())
		table[name] = cell
	}
	return cell
}

// snapshot builds the Object a module's `@import` resolves to: one entry
// per declared export, in declaration order. Grounded on the module export
// "snapshot each export slot into an Object."
func (s *exportStore) snapshot(path source.CanonicalPath, names []string) *runtime.ObjectValue {
	object := runtime.NewObjectWithCapacity(len(names))
	for _, name := range names {
		object.Set(runtime.StringValue(name), s.cell(path, name).Value)
	}
	return object
}
