package runtime

import (
	"fmt"
	"strings"
)

// ListValue is Regis's mutable, reference-counted-by-GC array. Identity for
// equality/hashing purposes is its oid, not its contents - two lists with
// the same elements are distinct values unless they are the same object.
// Grounded on original_source/src/vm/list.rs.
type ListValue struct {
	id    uint64
	items []Value
}

func NewList() *ListValue {
	return &ListValue{id: oid()}
}

func NewListWithCapacity(capacity int) *ListValue {
	return &ListValue{id: oid(), items: make([]Value, 0, capacity)}
}

func (l *ListValue) ID() uint64 { return l.id }

func (l *ListValue) Len() int { return len(l.items) }

func (l *ListValue) Push(value Value) {
	l.items = append(l.items, value)
}

// Get returns the element at index, or Null if index is out of range.
// index must be a Number holding a non-negative integer value; any other
// kind is a TypeError. Grounded on list.rs's get.
func (l *ListValue) Get(index Value) (Value, error) {
	i, ok := asIndex(index)
	if !ok {
		return Value{}, TypeError{Message: fmt.Sprintf(
			"Lists cannot be indexed by type '%s', only 'number' is allowed.", index.Kind)}
	}
	if i < 0 || i >= len(l.items) {
		return NullValue(), nil
	}
	return l.items[i], nil
}

// Set overwrites the element at index. Out-of-range indices fail with
// IndexOutOfBoundsError rather than growing the list. Grounded on
// list.rs's set.
func (l *ListValue) Set(index Value, value Value) error {
	i, ok := asIndex(index)
	if !ok {
		return TypeError{Message: fmt.Sprintf(
			"Lists cannot be indexed by type '%s', only 'number' is allowed.", index.Kind)}
	}
	if i < 0 || i >= len(l.items) {
		return IndexOutOfBoundsError{Message: fmt.Sprintf(
			"Attempted to set invalid list index '%s'.", index.ToDisplayString())}
	}
	l.items[i] = value
	return nil
}

// Concat returns a new list holding this list's elements followed by
// other's. Grounded on list.rs's concat.
func (l *ListValue) Concat(other *ListValue) *ListValue {
	result := NewListWithCapacity(l.Len() + other.Len())
	result.items = append(result.items, l.items...)
	result.items = append(result.items, other.items...)
	return result
}

func (l *ListValue) ToDisplayString() string {
	parts := make([]string, len(l.items))
	for i, v := range l.items {
		parts[i] = v.ToDisplayString()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// asIndex accepts a Number Value holding a non-negative integral value and
// returns it as an int. Negative or non-integral numbers are reported the
// same as out-of-range: Get treats them as a miss, Set as a bounds error,
// both handled by the caller via the returned (−1, true)... instead we
// simply report ok=true with a negative int so both callers' existing
// bounds checks (i < 0) cover it uniformly.
func asIndex(index Value) (int, bool) {
	if index.Kind != Number {
		return 0, false
	}
	n := index.Number
	if n != float64(int64(n)) {
		return -1, true
	}
	return int(n), true
}
