package ast

import (
	"bytes"
	"strings"

	"github.com/o2lang/go-o2l/pkg/token"
)

// IntegerLiteral is a signed 64-bit integer literal.
type IntegerLiteral struct {
	Token token.Token // The INT token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }
func (il *IntegerLiteral) Pos() token.Position  { return il.Token.Pos }

// LongLiteral is an integer literal with the l/L suffix.
type LongLiteral struct {
	Token token.Token // The LONG token
	Value int64
}

func (ll *LongLiteral) expressionNode()      {}
func (ll *LongLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *LongLiteral) String() string       { return ll.Token.Literal + "l" }
func (ll *LongLiteral) Pos() token.Position  { return ll.Token.Pos }

// FloatLiteral is a 32-bit decimal literal (f/F suffix).
type FloatLiteral struct {
	Token token.Token // The FLOAT token
	Value float32
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal + "f" }
func (fl *FloatLiteral) Pos() token.Position  { return fl.Token.Pos }

// DoubleLiteral is a 64-bit decimal literal.
type DoubleLiteral struct {
	Token token.Token // The DOUBLE token
	Value float64
}

func (dl *DoubleLiteral) expressionNode()      {}
func (dl *DoubleLiteral) TokenLiteral() string { return dl.Token.Literal }
func (dl *DoubleLiteral) Pos() token.Position  { return dl.Token.Pos }

func (dl *DoubleLiteral) String() string {
	// Keep the rendering re-parsable as a Double even for whole values.
	if !strings.Contains(dl.Token.Literal, ".") {
		return dl.Token.Literal + "d"
	}
	return dl.Token.Literal
}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Token token.Token // The TRUE or FALSE token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() token.Position  { return bl.Token.Pos }

// CharLiteral is a single-quoted single codepoint.
type CharLiteral struct {
	Token token.Token // The CHAR token
	Value rune
}

func (cl *CharLiteral) expressionNode()      {}
func (cl *CharLiteral) TokenLiteral() string { return cl.Token.Literal }
func (cl *CharLiteral) String() string       { return "'" + escapeChar(cl.Value) + "'" }
func (cl *CharLiteral) Pos() token.Position  { return cl.Token.Pos }

// StringLiteral is a double-quoted string literal. Value holds the
// unescaped text.
type StringLiteral struct {
	Token token.Token // The STRING token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "\"" + escapeString(sl.Value) + "\"" }
func (sl *StringLiteral) Pos() token.Position  { return sl.Token.Pos }

// Identifier references a named binding.
type Identifier struct {
	Token token.Token // The IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }

// QualifiedIdentifier references a dotted name (a.b.c). Lookup first tries
// the full dotted name, then the last component.
type QualifiedIdentifier struct {
	Token token.Token // The first IDENT token
	Parts []string
}

func (qi *QualifiedIdentifier) expressionNode()      {}
func (qi *QualifiedIdentifier) TokenLiteral() string { return qi.Token.Literal }
func (qi *QualifiedIdentifier) String() string       { return strings.Join(qi.Parts, ".") }
func (qi *QualifiedIdentifier) Pos() token.Position  { return qi.Token.Pos }

// ThisExpression references the current instance inside a method body.
type ThisExpression struct {
	Token token.Token // The THIS token
}

func (te *ThisExpression) expressionNode()      {}
func (te *ThisExpression) TokenLiteral() string { return te.Token.Literal }
func (te *ThisExpression) String() string       { return "this" }
func (te *ThisExpression) Pos() token.Position  { return te.Token.Pos }

// PropertyAccess reads a property of the current instance: this '.' name.
type PropertyAccess struct {
	Token token.Token // The THIS token
	Name  string
}

func (pa *PropertyAccess) expressionNode()      {}
func (pa *PropertyAccess) TokenLiteral() string { return pa.Token.Literal }
func (pa *PropertyAccess) String() string       { return "this." + pa.Name }
func (pa *PropertyAccess) Pos() token.Position  { return pa.Token.Pos }

// NewExpression instantiates a declared Object: new Type(args). The type
// name may be dotted (namespace-qualified).
type NewExpression struct {
	Token     token.Token // The NEW token
	TypeName  string
	Arguments []Expression
}

func (ne *NewExpression) expressionNode()      {}
func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) Pos() token.Position  { return ne.Token.Pos }

func (ne *NewExpression) String() string {
	return "new " + ne.TypeName + "(" + joinExpressions(ne.Arguments) + ")"
}

// MethodCall invokes a method on an evaluated receiver: expr.name(args).
// Calls through this form are external call sites.
type MethodCall struct {
	Token     token.Token // The DOT token
	Object    Expression
	Method    string
	Arguments []Expression
}

func (mc *MethodCall) expressionNode()      {}
func (mc *MethodCall) TokenLiteral() string { return mc.Token.Literal }
func (mc *MethodCall) Pos() token.Position  { return mc.Token.Pos }

func (mc *MethodCall) String() string {
	return mc.Object.String() + "." + mc.Method + "(" + joinExpressions(mc.Arguments) + ")"
}

// MemberAccess reads a member of an evaluated receiver: expr.name.
// Dispatches on the receiver's variant: object property, record field or
// enum member.
type MemberAccess struct {
	Token  token.Token // The DOT token
	Object Expression
	Member string
}

func (ma *MemberAccess) expressionNode()      {}
func (ma *MemberAccess) TokenLiteral() string { return ma.Token.Literal }
func (ma *MemberAccess) String() string       { return ma.Object.String() + "." + ma.Member }
func (ma *MemberAccess) Pos() token.Position  { return ma.Token.Pos }

// FunctionCall invokes a bare name: name(args). Also carries the two
// static forms "Result.success" and "Result.error".
type FunctionCall struct {
	Token     token.Token // The IDENT (or RESULT) token
	Name      string
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()      {}
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) Pos() token.Position  { return fc.Token.Pos }

func (fc *FunctionCall) String() string {
	return fc.Name + "(" + joinExpressions(fc.Arguments) + ")"
}

// RecordFieldInit is one field initializer inside a record instantiation.
type RecordFieldInit struct {
	Name  string
	Value Expression
}

// RecordInstantiation constructs a record value: Type(field=expr, ...).
// Distinguished from a function call by the 'ident =' lookahead at the
// first argument.
type RecordInstantiation struct {
	Token    token.Token // The IDENT token of the type name
	TypeName string
	Fields   []RecordFieldInit
}

func (ri *RecordInstantiation) expressionNode()      {}
func (ri *RecordInstantiation) TokenLiteral() string { return ri.Token.Literal }
func (ri *RecordInstantiation) Pos() token.Position  { return ri.Token.Pos }

func (ri *RecordInstantiation) String() string {
	var out bytes.Buffer
	out.WriteString(ri.TypeName)
	out.WriteString("(")
	for i, f := range ri.Fields {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(f.Name)
		out.WriteString("=")
		out.WriteString(f.Value.String())
	}
	out.WriteString(")")
	return out.String()
}

// ListLiteral is a bracketed element list: [e1, e2, ...].
type ListLiteral struct {
	Token    token.Token // The LBRACK token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) String() string       { return "[" + joinExpressions(ll.Elements) + "]" }
func (ll *ListLiteral) Pos() token.Position  { return ll.Token.Pos }

// MapEntry is one key/value pair of a map literal.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// MapLiteral is a braced key/value list: { k: v, ... }.
type MapLiteral struct {
	Token   token.Token // The LBRACE token
	Entries []MapEntry
}

func (ml *MapLiteral) expressionNode()      {}
func (ml *MapLiteral) TokenLiteral() string { return ml.Token.Literal }
func (ml *MapLiteral) Pos() token.Position  { return ml.Token.Pos }

func (ml *MapLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, e := range ml.Entries {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.Key.String())
		out.WriteString(": ")
		out.WriteString(e.Value.String())
	}
	out.WriteString("}")
	return out.String()
}

// SetLiteral is a parenthesized element list, parsed only from the declared
// Set<T> initializer context: Set<T> = (e1, e2, ...).
type SetLiteral struct {
	Token    token.Token // The LPAREN token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()      {}
func (sl *SetLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *SetLiteral) String() string       { return "(" + joinExpressions(sl.Elements) + ")" }
func (sl *SetLiteral) Pos() token.Position  { return sl.Token.Pos }

// BinaryExpression is an arithmetic or comparison operation.
type BinaryExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() token.Position  { return be.Token.Pos }

func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// LogicalExpression is && or || with short-circuit evaluation.
type LogicalExpression struct {
	Token    token.Token // The && or || token
	Left     Expression
	Operator string
	Right    Expression
}

func (le *LogicalExpression) expressionNode()      {}
func (le *LogicalExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LogicalExpression) Pos() token.Position  { return le.Token.Pos }

func (le *LogicalExpression) String() string {
	return "(" + le.Left.String() + " " + le.Operator + " " + le.Right.String() + ")"
}

// UnaryExpression is prefix - or !.
type UnaryExpression struct {
	Token    token.Token // The operator token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() token.Position  { return ue.Token.Pos }

func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator + ue.Operand.String() + ")"
}

func joinExpressions(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func escapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		sb.WriteString(escapeChar(r))
	}
	return sb.String()
}

func escapeChar(r rune) string {
	switch r {
	case '"':
		return "\\\""
	case '\'':
		return "\\'"
	case '\\':
		return "\\\\"
	case '\b':
		return "\\b"
	case '\f':
		return "\\f"
	case '\n':
		return "\\n"
	case '\r':
		return "\\r"
	case '\t':
		return "\\t"
	}
	return string(r)
}
