package runtime

import "testing"

func TestObjectSetAndGet(t *testing.T) {
	o := NewObject()
	o.Set(StringValue("a"), NumberValue(1))

	if got := o.Get(StringValue("a")); got.Number != 1 {
		t.Fatalf("Get(a) = %v, want 1", got)
	}
	if got := o.Get(StringValue("missing")); got.Kind != Null {
		t.Fatalf("Get(missing) = %v, want Null", got)
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set(StringValue("b"), NumberValue(2))
	o.Set(StringValue("a"), NumberValue(1))

	if got := o.ToDisplayString(); got != "{b: 2, a: 1}" {
		t.Fatalf("ToDisplayString() = %q, want %q", got, "{b: 2, a: 1}")
	}
}

func TestObjectConcatRightOverridesLeft(t *testing.T) {
	left := NewObject()
	left.Set(StringValue("a"), NumberValue(1))
	right := NewObject()
	right.Set(StringValue("a"), NumberValue(2))
	right.Set(StringValue("b"), NumberValue(3))

	merged := left.Concat(right)
	if got := merged.Get(StringValue("a")); got.Number != 2 {
		t.Fatalf("merged[a] = %v, want 2 (right should win)", got)
	}
	if got := merged.Get(StringValue("b")); got.Number != 3 {
		t.Fatalf("merged[b] = %v, want 3", got)
	}
	if left.Len() != 1 || right.Len() != 2 {
		t.Fatalf("Concat should not mutate its operands")
	}
}
