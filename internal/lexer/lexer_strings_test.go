package lexer

import (
	"testing"

	"github.com/o2lang/go-o2l/pkg/token"
)

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`""`, ""},
		{`"with spaces"`, "with spaces"},
		{`"escaped \" quote"`, `escaped " quote`},
		{`"back\\slash"`, `back\slash`},
		{`"tab\there"`, "tab\there"},
		{`"line\nbreak"`, "line\nbreak"},
		{`"cr\rlf"`, "cr\rlf"},
		{`"bell\b form\f"`, "bell\b form\f"},
		{`"unicode Aé"`, "unicode Aé"},
		{`"中文 🚀"`, "中文 🚀"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.STRING {
			t.Errorf("input %s: expected STRING, got %q (errors: %v)", tt.input, tok.Type, l.Errors())
			continue
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %s: expected value %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"no end`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %q", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Error("expected a lexer error for unterminated string")
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'a'`, "a"},
		{`'Δ'`, "Δ"},
		{`'\n'`, "\n"},
		{`'\''`, "'"},
		{`'A'`, "A"},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.CHAR {
			t.Errorf("input %s: expected CHAR, got %q (errors: %v)", tt.input, tok.Type, l.Errors())
			continue
		}
		if tok.Literal != tt.expected {
			t.Errorf("input %s: expected value %q, got %q", tt.input, tt.expected, tok.Literal)
		}
	}
}

func TestCharLiteralSingleCodepointOnly(t *testing.T) {
	l := New(`'ab'`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for multi-codepoint char literal, got %q", tok.Type)
	}
}

func TestUnknownEscape(t *testing.T) {
	l := New(`"\q"`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for unknown escape, got %q", tok.Type)
	}
}
