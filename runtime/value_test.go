package runtime

import "testing"

func TestToBooleanTruthiness(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  bool
	}{
		{"null", NullValue(), false},
		{"false", BooleanValue(false), false},
		{"true", BooleanValue(true), true},
		{"zero", NumberValue(0), false},
		{"nonzero", NumberValue(-1), true},
		{"empty string", StringValue(""), true},
		{"list", ListValueOf(NewList()), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.value.ToBoolean(); got != c.want {
				t.Fatalf("ToBoolean() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestToDisplayStringFormatsIntegralNumbersWithoutDecimal(t *testing.T) {
	if got := NumberValue(3).ToDisplayString(); got != "3" {
		t.Fatalf("got %q, want %q", got, "3")
	}
	if got := NumberValue(3.5).ToDisplayString(); got != "3.5" {
		t.Fatalf("got %q, want %q", got, "3.5")
	}
}

func TestEqualIsStructuralForPrimitivesAndIdentityForAggregates(t *testing.T) {
	if !NumberValue(2).Equal(NumberValue(2)) {
		t.Fatalf("equal numbers should compare equal")
	}
	if StringValue("a").Equal(StringValue("b")) {
		t.Fatalf("distinct strings should not compare equal")
	}

	l := ListValueOf(NewList())
	if !l.Equal(l) {
		t.Fatalf("a list value should equal itself")
	}
	if ListValueOf(NewList()).Equal(ListValueOf(NewList())) {
		t.Fatalf("two distinct empty lists should not compare equal")
	}
}
