package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/o2lang/go-o2l/pkg/token"
)

// ObjectDeclaration represents a top-level Object declaration, optionally
// implementing a protocol.
type ObjectDeclaration struct {
	Token        token.Token // The OBJECT token
	Name         string
	ProtocolName string // empty when no protocol is declared
	Properties   []*PropertyDeclaration
	Methods      []*MethodDeclaration // constructor included, in source order
}

func (od *ObjectDeclaration) statementNode()       {}
func (od *ObjectDeclaration) TokenLiteral() string { return od.Token.Literal }
func (od *ObjectDeclaration) Pos() token.Position  { return od.Token.Pos }

func (od *ObjectDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("Object ")
	out.WriteString(od.Name)
	if od.ProtocolName != "" {
		out.WriteString(": ")
		out.WriteString(od.ProtocolName)
	}
	out.WriteString(" {\n")
	for _, p := range od.Properties {
		out.WriteString(indent(p.String()))
		out.WriteString("\n")
	}
	for _, m := range od.Methods {
		out.WriteString(indent(m.String()))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// PropertyDeclaration declares a named, typed property inside an Object.
// Properties are private storage, reachable only through this.<name>.
type PropertyDeclaration struct {
	Token token.Token // The PROPERTY token
	Name  string
	Type  string
}

func (pd *PropertyDeclaration) statementNode()       {}
func (pd *PropertyDeclaration) TokenLiteral() string { return pd.Token.Literal }
func (pd *PropertyDeclaration) Pos() token.Position  { return pd.Token.Pos }

func (pd *PropertyDeclaration) String() string {
	return "property " + pd.Name + ": " + pd.Type
}

// MethodDeclaration declares a method or constructor inside an Object.
// A constructor is a method named "constructor" without the method keyword.
type MethodDeclaration struct {
	Token         token.Token // The METHOD, CONSTRUCTOR or AT_EXTERNAL token
	Name          string
	Parameters    []Parameter
	ReturnType    string // empty for constructors
	Body          *BlockStatement
	External      bool
	IsConstructor bool
}

func (md *MethodDeclaration) statementNode()       {}
func (md *MethodDeclaration) TokenLiteral() string { return md.Token.Literal }
func (md *MethodDeclaration) Pos() token.Position  { return md.Token.Pos }

func (md *MethodDeclaration) String() string {
	var out bytes.Buffer
	if md.External {
		out.WriteString("@external ")
	}
	if md.IsConstructor {
		out.WriteString("constructor")
	} else {
		out.WriteString("method ")
		out.WriteString(md.Name)
	}
	out.WriteString("(")
	for i, p := range md.Parameters {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString(")")
	if md.ReturnType != "" {
		out.WriteString(": ")
		out.WriteString(md.ReturnType)
	}
	out.WriteString(" ")
	out.WriteString(md.Body.String())
	return out.String()
}

// ProtocolDeclaration represents a top-level Protocol declaration:
// an ordered list of method signatures with no bodies.
type ProtocolDeclaration struct {
	Token      token.Token // The PROTOCOL token
	Name       string
	Signatures []*MethodSignature
}

func (pd *ProtocolDeclaration) statementNode()       {}
func (pd *ProtocolDeclaration) TokenLiteral() string { return pd.Token.Literal }
func (pd *ProtocolDeclaration) Pos() token.Position  { return pd.Token.Pos }

func (pd *ProtocolDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("Protocol ")
	out.WriteString(pd.Name)
	out.WriteString(" {\n")
	for _, sig := range pd.Signatures {
		out.WriteString(indent(sig.String()))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// RecordField is a declared record field: a name and a type name.
type RecordField struct {
	Name string
	Type string
}

// RecordDeclaration represents a top-level Record declaration.
type RecordDeclaration struct {
	Token  token.Token // The RECORD token
	Name   string
	Fields []RecordField
}

func (rd *RecordDeclaration) statementNode()       {}
func (rd *RecordDeclaration) TokenLiteral() string { return rd.Token.Literal }
func (rd *RecordDeclaration) Pos() token.Position  { return rd.Token.Pos }

func (rd *RecordDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("Record ")
	out.WriteString(rd.Name)
	out.WriteString(" {\n")
	for _, f := range rd.Fields {
		out.WriteString(indent(f.Name + ": " + f.Type))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// EnumMember is a declared enum member with an optional explicit value.
type EnumMember struct {
	Name     string
	Value    int64
	Explicit bool // true when '= N' appeared in source
}

// EnumDeclaration represents a top-level Enum declaration. Member values
// default to consecutive integers from 0; an explicit assignment resets the
// running counter.
type EnumDeclaration struct {
	Token   token.Token // The ENUM token
	Name    string
	Members []EnumMember
}

func (ed *EnumDeclaration) statementNode()       {}
func (ed *EnumDeclaration) TokenLiteral() string { return ed.Token.Literal }
func (ed *EnumDeclaration) Pos() token.Position  { return ed.Token.Pos }

func (ed *EnumDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("Enum ")
	out.WriteString(ed.Name)
	out.WriteString(" {\n")
	for _, m := range ed.Members {
		line := m.Name
		if m.Explicit {
			line += " = " + strconv.FormatInt(m.Value, 10)
		}
		out.WriteString(indent(line))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// NamespaceDeclaration groups declarations under a dotted path. Members are
// registered both under their fully-qualified and their short names.
type NamespaceDeclaration struct {
	Token        token.Token // The NAMESPACE token
	Path         []string
	Declarations []Statement
}

func (nd *NamespaceDeclaration) statementNode()       {}
func (nd *NamespaceDeclaration) TokenLiteral() string { return nd.Token.Literal }
func (nd *NamespaceDeclaration) Pos() token.Position  { return nd.Token.Pos }

func (nd *NamespaceDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("namespace ")
	out.WriteString(strings.Join(nd.Path, "."))
	out.WriteString(" {\n")
	for _, d := range nd.Declarations {
		out.WriteString(indent(d.String()))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ImportDeclaration represents an import or @import clause.
type ImportDeclaration struct {
	Token token.Token // The IMPORT or AT_IMPORT token
	Path  *ImportPath
}

func (id *ImportDeclaration) statementNode()       {}
func (id *ImportDeclaration) TokenLiteral() string { return id.Token.Literal }
func (id *ImportDeclaration) Pos() token.Position  { return id.Token.Pos }

func (id *ImportDeclaration) String() string {
	keyword := "import"
	if id.Path.UserImport {
		keyword = "@import"
	}
	return keyword + " " + id.Path.String()
}

// indent prefixes every line of s with four spaces.
func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "    " + line
		}
	}
	return strings.Join(lines, "\n")
}
