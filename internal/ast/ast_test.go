package ast

import (
	"testing"

	"github.com/o2lang/go-o2l/pkg/token"
)

func ident(name string) *Identifier {
	return &Identifier{
		Token: token.Token{Type: token.IDENT, Literal: name, Pos: token.Position{Line: 1, Column: 1}},
		Value: name,
	}
}

func TestExpressionRenderings(t *testing.T) {
	tests := []struct {
		node     Node
		expected string
	}{
		{
			&BinaryExpression{
				Left:     ident("a"),
				Operator: "+",
				Right:    ident("b"),
			},
			"(a + b)",
		},
		{
			&UnaryExpression{Operator: "-", Operand: ident("x")},
			"(-x)",
		},
		{
			&MethodCall{Object: ident("obj"), Method: "run", Arguments: []Expression{ident("a")}},
			"obj.run(a)",
		},
		{
			&NewExpression{TypeName: "Counter", Arguments: []Expression{ident("n")}},
			"new Counter(n)",
		},
		{
			&QualifiedIdentifier{Parts: []string{"a", "b", "c"}},
			"a.b.c",
		},
		{
			&PropertyAccess{Name: "count"},
			"this.count",
		},
		{
			&RecordInstantiation{TypeName: "Pair", Fields: []RecordFieldInit{
				{Name: "a", Value: ident("x")},
				{Name: "b", Value: ident("y")},
			}},
			"Pair(a=x, b=y)",
		},
		{
			&StringLiteral{Value: "tab\tand\nnewline"},
			`"tab\tand\nnewline"`,
		},
		{
			&CharLiteral{Value: '\n'},
			`'\n'`,
		},
	}

	for i, tt := range tests {
		if got := tt.node.String(); got != tt.expected {
			t.Errorf("tests[%d]: expected %q, got %q", i, tt.expected, got)
		}
	}
}

func TestImportPathRendering(t *testing.T) {
	path := &ImportPath{Package: []string{"math", "utils"}, ObjectName: "Calc"}
	if path.String() != "math.utils.Calc" {
		t.Errorf("unexpected rendering: %s", path.String())
	}

	wildcard := &ImportPath{Package: []string{"geometry"}, ObjectName: "shapes", MethodName: "*", Wildcard: true}
	if wildcard.String() != "geometry.shapes.*" {
		t.Errorf("unexpected rendering: %s", wildcard.String())
	}
}

func TestPositionsPropagateFromTokens(t *testing.T) {
	tok := token.Token{Type: token.IDENT, Literal: "x", Pos: token.Position{Line: 3, Column: 7}}
	node := &Identifier{Token: tok, Value: "x"}
	if node.Pos().Line != 3 || node.Pos().Column != 7 {
		t.Errorf("position lost: %+v", node.Pos())
	}
}

func TestProgramRendering(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&ImportDeclaration{Path: &ImportPath{Package: []string{"system"}, ObjectName: "io"}},
		},
	}
	if program.String() != "import system.io" {
		t.Errorf("unexpected rendering: %q", program.String())
	}
}
