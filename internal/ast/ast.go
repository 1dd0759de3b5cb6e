// Package ast defines the Abstract Syntax Tree node types for O²L.
//
// Every node carries the token that introduced it and therefore an immutable
// source position. String() renders canonical source: parsing the rendering
// of a parsed program yields the same tree up to positions.
package ast

import (
	"bytes"

	"github.com/o2lang/go-o2l/pkg/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is associated with.
	TokenLiteral() string

	// String returns a canonical source rendering of the node.
	String() string

	// Pos returns the position of the node in the source code for error reporting.
	Pos() token.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action inside a method body
// or declares something at the top level.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of the AST. It contains the module's top-level
// declarations in source order.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, stmt := range p.Statements {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1, Offset: 0}
}

// Parameter is a declared method parameter: a name and a type name.
type Parameter struct {
	Name string
	Type string
}

func (p Parameter) String() string {
	return p.Name + ": " + p.Type
}

// MethodSignature is a protocol method signature: name, ordered parameters
// and return type, with no body.
type MethodSignature struct {
	Token      token.Token // The METHOD token
	Name       string
	Parameters []Parameter
	ReturnType string
}

func (ms *MethodSignature) String() string {
	var out bytes.Buffer
	out.WriteString("method ")
	out.WriteString(ms.Name)
	out.WriteString("(")
	for i, p := range ms.Parameters {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString("): ")
	out.WriteString(ms.ReturnType)
	return out.String()
}

// ImportPath is the structured form of an import clause: the package path,
// the object name, an optional method name (a specific name or the "*"
// wildcard) and whether the import is project-rooted (@import).
type ImportPath struct {
	Package    []string
	ObjectName string
	MethodName string
	Wildcard   bool
	UserImport bool
}

// String renders the dotted path, including the wildcard marker.
func (ip *ImportPath) String() string {
	var out bytes.Buffer
	for _, part := range ip.Package {
		out.WriteString(part)
		out.WriteString(".")
	}
	out.WriteString(ip.ObjectName)
	if ip.Wildcard {
		out.WriteString(".*")
	} else if ip.MethodName != "" {
		out.WriteString(".")
		out.WriteString(ip.MethodName)
	}
	return out.String()
}
