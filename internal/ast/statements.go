package ast

import (
	"bytes"

	"github.com/o2lang/go-o2l/pkg/token"
)

// BlockStatement is a brace-delimited sequence of statements. Evaluating a
// block yields the last expression statement's value.
type BlockStatement struct {
	Token      token.Token // The LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() token.Position  { return bs.Token.Pos }

func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, stmt := range bs.Statements {
		out.WriteString(indent(stmt.String()))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// VariableDeclaration declares a typed variable: name ':' type '=' expr.
type VariableDeclaration struct {
	Token token.Token // The IDENT token of the name
	Name  string
	Type  string
	Value Expression
}

func (vd *VariableDeclaration) statementNode()       {}
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDeclaration) Pos() token.Position  { return vd.Token.Pos }

func (vd *VariableDeclaration) String() string {
	return vd.Name + ": " + vd.Type + " = " + vd.Value.String()
}

// ConstDeclaration declares an immutable binding:
// const name ':' type '=' expr.
type ConstDeclaration struct {
	Token token.Token // The CONST token
	Name  string
	Type  string
	Value Expression
}

func (cd *ConstDeclaration) statementNode()       {}
func (cd *ConstDeclaration) TokenLiteral() string { return cd.Token.Literal }
func (cd *ConstDeclaration) Pos() token.Position  { return cd.Token.Pos }

func (cd *ConstDeclaration) String() string {
	return "const " + cd.Name + ": " + cd.Type + " = " + cd.Value.String()
}

// AssignmentStatement reassigns an existing variable: name '=' expr.
type AssignmentStatement struct {
	Token token.Token // The IDENT token of the name
	Name  string
	Value Expression
}

func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) Pos() token.Position  { return as.Token.Pos }

func (as *AssignmentStatement) String() string {
	return as.Name + " = " + as.Value.String()
}

// PropertyAssignment assigns to a property of the current instance:
// this '.' name '=' expr. Legal only inside a method body.
type PropertyAssignment struct {
	Token token.Token // The THIS token
	Name  string
	Value Expression
}

func (pa *PropertyAssignment) statementNode()       {}
func (pa *PropertyAssignment) TokenLiteral() string { return pa.Token.Literal }
func (pa *PropertyAssignment) Pos() token.Position  { return pa.Token.Pos }

func (pa *PropertyAssignment) String() string {
	return "this." + pa.Name + " = " + pa.Value.String()
}

// IfStatement is a conditional with an optional else branch. Alternative is
// either a *BlockStatement or a nested *IfStatement (else if).
type IfStatement struct {
	Token       token.Token // The IF token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // nil, *BlockStatement or *IfStatement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() token.Position  { return is.Token.Pos }

func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement loops while the condition is truthy. break terminates the
// innermost loop.
type WhileStatement struct {
	Token     token.Token // The WHILE token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() token.Position  { return ws.Token.Pos }

func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// BreakStatement terminates the innermost while loop.
type BreakStatement struct {
	Token token.Token // The BREAK token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) Pos() token.Position  { return bs.Token.Pos }
func (bs *BreakStatement) String() string       { return "break" }

// ReturnStatement terminates the enclosing method body, optionally carrying
// a value.
type ReturnStatement struct {
	Token token.Token // The RETURN token
	Value Expression  // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() token.Position  { return rs.Token.Pos }

func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return"
	}
	return "return " + rs.Value.String()
}

// ThrowStatement raises a user exception: throw '(' expr ')'.
type ThrowStatement struct {
	Token token.Token // The THROW token
	Value Expression
}

func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *ThrowStatement) Pos() token.Position  { return ts.Token.Pos }

func (ts *ThrowStatement) String() string {
	return "throw(" + ts.Value.String() + ")"
}

// TryStatement is try/catch/finally. At least one of Catch and Finally is
// present; a catch clause binds the thrown value to CatchVariable.
type TryStatement struct {
	Token         token.Token // The TRY token
	Try           *BlockStatement
	CatchVariable string
	Catch         *BlockStatement // nil when no catch clause
	Finally       *BlockStatement // nil when no finally clause
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) Pos() token.Position  { return ts.Token.Pos }

func (ts *TryStatement) String() string {
	var out bytes.Buffer
	out.WriteString("try ")
	out.WriteString(ts.Try.String())
	if ts.Catch != nil {
		out.WriteString(" catch (")
		out.WriteString(ts.CatchVariable)
		out.WriteString(") ")
		out.WriteString(ts.Catch.String())
	}
	if ts.Finally != nil {
		out.WriteString(" finally ")
		out.WriteString(ts.Finally.String())
	}
	return out.String()
}

// ExpressionStatement wraps an expression in statement position.
type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() token.Position  { return es.Token.Pos }

func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String()
}
