package token

import "testing"

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		ident    string
		expected TokenType
	}{
		{"Object", OBJECT},
		{"Protocol", PROTOCOL},
		{"Record", RECORD},
		{"Enum", ENUM},
		{"method", METHOD},
		{"constructor", CONSTRUCTOR},
		{"const", CONST},
		{"while", WHILE},
		{"@import", AT_IMPORT},
		{"@external", AT_EXTERNAL},
		{"Result", RESULT},
		{"Error", ERROR},
		{"true", TRUE},
		{"false", FALSE},
		{"myVariable", IDENT},
		{"object", IDENT}, // keywords are case-sensitive
		{"Main", IDENT},
	}

	for _, tt := range tests {
		if got := LookupIdent(tt.ident); got != tt.expected {
			t.Errorf("LookupIdent(%q) = %v, expected %v", tt.ident, got, tt.expected)
		}
	}
}

func TestTokenTypeString(t *testing.T) {
	if OBJECT.String() != "OBJECT" {
		t.Errorf("expected OBJECT, got %s", OBJECT.String())
	}
	if EOF.String() != "EOF" {
		t.Errorf("expected EOF, got %s", EOF.String())
	}
}

func TestCategoryPredicates(t *testing.T) {
	if !INT.IsLiteral() || !IDENT.IsLiteral() {
		t.Error("INT and IDENT are literals")
	}
	if OBJECT.IsLiteral() {
		t.Error("OBJECT is not a literal")
	}
	if !WHILE.IsKeyword() || !AT_EXTERNAL.IsKeyword() {
		t.Error("WHILE and AT_EXTERNAL are keywords")
	}
	if PLUS.IsKeyword() {
		t.Error("PLUS is not a keyword")
	}
}
