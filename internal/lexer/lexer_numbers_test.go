package lexer

import (
	"testing"

	"github.com/o2lang/go-o2l/pkg/token"
)

func TestNumberVariants(t *testing.T) {
	tests := []struct {
		input           string
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{"123", token.INT, "123"},
		{"0", token.INT, "0"},
		{"123l", token.LONG, "123"},
		{"123L", token.LONG, "123"},
		{"1.5", token.DOUBLE, "1.5"},
		{"1.5d", token.DOUBLE, "1.5"},
		{"1.5D", token.DOUBLE, "1.5"},
		{"1.5f", token.FLOAT, "1.5"},
		{"1.5F", token.FLOAT, "1.5"},
		{"2f", token.FLOAT, "2"},
		{"2d", token.DOUBLE, "2"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("input %q: expected type %q, got %q", tt.input, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Errorf("input %q: expected literal %q, got %q", tt.input, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestLongSuffixOnDecimalIsInvalid(t *testing.T) {
	l := New("1.5l")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for '1.5l', got %q", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Error("expected a lexer error for the 'l' suffix on a decimal literal")
	}
}

func TestDotAfterIntegerIsMemberAccess(t *testing.T) {
	// '5.size' must lex as INT DOT IDENT, not a malformed decimal.
	l := New("5.size")

	tok := l.NextToken()
	if tok.Type != token.INT || tok.Literal != "5" {
		t.Fatalf("expected INT '5', got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.DOT {
		t.Fatalf("expected DOT, got %q", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "size" {
		t.Fatalf("expected IDENT 'size', got %q %q", tok.Type, tok.Literal)
	}
}
