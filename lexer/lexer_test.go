package lexer

import (
	"testing"

	"github.com/comfort-stereo/regis/token"
)

func TestScanRoundTrip(t *testing.T) {
	sources := []string{
		`let x = 1 + 2 * 3;`,
		`fn(n) => if n < 2 { n } else { f(n-1) + f(n-2) };`,
		"# a comment\nlet y = \"hi\\n\";",
		`xs << 4; o.b = o.a ?? 1;`,
	}

	for _, src := range sources {
		tokens := New(src).Scan()
		var rebuilt string
		for _, tok := range tokens {
			rebuilt += tok.Slice
		}
		if rebuilt != src {
			t.Errorf("round trip mismatch: got %q, want %q", rebuilt, src)
		}
	}
}

func TestScanOperators(t *testing.T) {
	tokens := New("== != <= >= << >> ?? && ||").Scan()
	var symbols []token.Symbol
	for _, tok := range tokens {
		if tok.Kind == token.SymbolKind {
			symbols = append(symbols, tok.Symbol)
		}
	}

	expected := []token.Symbol{
		token.EqEq, token.NotEq, token.Lte, token.Gte,
		token.ShiftLeft, token.ShiftRight, token.NclOp, token.AndAnd, token.OrOr,
	}

	if len(symbols) != len(expected) {
		t.Fatalf("got %d symbols, want %d: %v", len(symbols), len(expected), symbols)
	}
	for i, sym := range symbols {
		if sym != expected[i] {
			t.Errorf("symbol %d: got %s, want %s", i, sym, expected[i])
		}
	}
}

func TestScanIllegalCoalescesIntoUnknown(t *testing.T) {
	tokens := New("$$$ let").Scan()
	if tokens[0].Kind != token.Unknown {
		t.Fatalf("expected Unknown, got %s", tokens[0].Kind)
	}
	if tokens[0].Slice != "$$$" {
		t.Errorf("expected unknown run '$$$', got %q", tokens[0].Slice)
	}
}

func TestUnescape(t *testing.T) {
	cases := map[string]string{
		`"hi"`:           "hi",
		`"a\nb"`:         "a\nb",
		`"A"`:       "A",
		`"\u{48}\u{49}"`: "HI",
	}

	for in, want := range cases {
		got, err := Unescape(in)
		if err != nil {
			t.Fatalf("Unescape(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Unescape(%q) = %q, want %q", in, got, want)
		}
	}
}
