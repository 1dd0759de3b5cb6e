package lexer

import (
	"testing"

	"github.com/o2lang/go-o2l/pkg/token"
)

func TestTokenPositions(t *testing.T) {
	input := "ab cd\nefg"

	tests := []struct {
		literal string
		line    int
		column  int
	}{
		{"ab", 1, 1},
		{"cd", 1, 4},
		{"\n", 0, 0}, // separator; position not asserted
		{"efg", 2, 1},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Literal != tt.literal {
			t.Fatalf("tests[%d]: expected literal %q, got %q", i, tt.literal, tok.Literal)
		}
		if tt.line == 0 {
			continue
		}
		if tok.Pos.Line != tt.line {
			t.Errorf("tests[%d] (%q): expected line %d, got %d", i, tt.literal, tt.line, tok.Pos.Line)
		}
		if tok.Pos.Column != tt.column {
			t.Errorf("tests[%d] (%q): expected column %d, got %d", i, tt.literal, tt.column, tok.Pos.Column)
		}
	}
}

func TestColumnsCountRunesNotBytes(t *testing.T) {
	// 'Δ' is multi-byte but counts as one column.
	l := New("Δx y")

	tok := l.NextToken() // Δx
	if tok.Pos.Column != 1 {
		t.Errorf("expected column 1 for 'Δx', got %d", tok.Pos.Column)
	}
	tok = l.NextToken() // y
	if tok.Pos.Column != 4 {
		t.Errorf("expected column 4 for 'y', got %d", tok.Pos.Column)
	}
	if tok.Type != token.IDENT {
		t.Errorf("expected IDENT, got %q", tok.Type)
	}
}
