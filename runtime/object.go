package runtime

import (
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ObjectValue is Regis's mutable, reference-counted-by-GC key/value map,
// keyed by arbitrary Values and iterated in insertion order. Grounded on
// original_source/src/vm/object.rs, which wraps an indexmap::IndexMap;
// go-ordered-map/v2 is the idiomatic Go analogue (see SPEC_FULL.md's
// domain stack table).
type ObjectValue struct {
	id    uint64
	inner *orderedmap.OrderedMap[Value, Value]
}

func NewObject() *ObjectValue {
	return &ObjectValue{id: oid(), inner: orderedmap.New[Value, Value]()}
}

func NewObjectWithCapacity(capacity int) *ObjectValue {
	return &ObjectValue{id: oid(), inner: orderedmap.New[Value, Value](orderedmap.WithCapacity[Value, Value](capacity))}
}

func (o *ObjectValue) ID() uint64 { return o.id }

func (o *ObjectValue) Len() int { return o.inner.Len() }

// Get returns the value stored under key, or Null if absent. Object
// indexing never fails - unlike List, any Value is a valid key. Grounded
// on object.rs's get.
func (o *ObjectValue) Get(key Value) Value {
	if value, ok := o.inner.Get(key); ok {
		return value
	}
	return NullValue()
}

func (o *ObjectValue) Set(key Value, value Value) {
	o.inner.Set(key, value)
}

// Concat returns a new object holding this object's pairs overridden by
// other's where keys collide. Grounded on object.rs's concat.
func (o *ObjectValue) Concat(other *ObjectValue) *ObjectValue {
	result := NewObjectWithCapacity(max(o.Len(), other.Len()))
	for pair := o.inner.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, pair.Value)
	}
	for pair := other.inner.Oldest(); pair != nil; pair = pair.Next() {
		result.Set(pair.Key, pair.Value)
	}
	return result
}

func (o *ObjectValue) ToDisplayString() string {
	parts := make([]string, 0, o.Len())
	for pair := o.inner.Oldest(); pair != nil; pair = pair.Next() {
		parts = append(parts, fmt.Sprintf("%s: %s", pair.Key.ToDisplayString(), pair.Value.ToDisplayString()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
