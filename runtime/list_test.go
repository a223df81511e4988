package runtime

import "testing"

func TestListPushAndGet(t *testing.T) {
	l := NewList()
	l.Push(NumberValue(1))
	l.Push(NumberValue(2))

	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	got, err := l.Get(NumberValue(1))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Number != 2 {
		t.Fatalf("Get(1) = %v, want 2", got)
	}
}

func TestListGetOutOfRangeReturnsNull(t *testing.T) {
	l := NewList()
	l.Push(NumberValue(1))

	got, err := l.Get(NumberValue(5))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Kind != Null {
		t.Fatalf("Get(5) = %v, want Null", got)
	}
}

func TestListGetNonNumberIndexIsTypeError(t *testing.T) {
	l := NewList()
	if _, err := l.Get(StringValue("x")); err == nil {
		t.Fatalf("expected TypeError, got nil")
	} else if _, ok := err.(TypeError); !ok {
		t.Fatalf("expected TypeError, got %T", err)
	}
}

func TestListSetOutOfRangeIsIndexOutOfBoundsError(t *testing.T) {
	l := NewList()
	err := l.Set(NumberValue(0), NumberValue(1))
	if _, ok := err.(IndexOutOfBoundsError); !ok {
		t.Fatalf("expected IndexOutOfBoundsError, got %v", err)
	}
}

func TestListConcat(t *testing.T) {
	a := NewList()
	a.Push(NumberValue(1))
	b := NewList()
	b.Push(NumberValue(2))

	c := a.Concat(b)
	if c.Len() != 2 {
		t.Fatalf("Concat Len() = %d, want 2", c.Len())
	}
	if a.Len() != 1 || b.Len() != 1 {
		t.Fatalf("Concat should not mutate its operands")
	}
}

func TestListToDisplayString(t *testing.T) {
	l := NewList()
	l.Push(NumberValue(1))
	l.Push(StringValue("a"))

	if got := l.ToDisplayString(); got != "[1, a]" {
		t.Fatalf("ToDisplayString() = %q, want %q", got, "[1, a]")
	}
}
