package parser

import (
	"strconv"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/pkg/token"
)

// parseObjectDeclaration parses:
//
//	Object Name [: Protocol] '{' (property | method | @external method | constructor)* '}'
func (p *Parser) parseObjectDeclaration() ast.Statement {
	objTok := p.cur()
	p.advance() // consume 'Object'

	nameTok, ok := p.expect(token.IDENT, "after 'Object'")
	if !ok {
		return nil
	}

	decl := &ast.ObjectDeclaration{Token: objTok, Name: nameTok.Literal}

	if p.cur().Type == token.COLON {
		p.advance()
		protoTok, ok := p.expect(token.IDENT, "as protocol name")
		if !ok {
			return nil
		}
		decl.ProtocolName = protoTok.Literal
	}

	if _, ok := p.expect(token.LBRACE, "to open the object body"); !ok {
		return nil
	}

	seen := map[string]token.Position{}
	for {
		p.skipNewlines()
		switch p.cur().Type {
		case token.RBRACE:
			p.advance()
			return decl
		case token.EOF:
			p.errorf(p.cur().Pos, "unterminated object declaration %q", decl.Name)
			return decl
		case token.PROPERTY:
			if prop := p.parsePropertyDeclaration(); prop != nil {
				decl.Properties = append(decl.Properties, prop)
			}
		case token.METHOD, token.CONSTRUCTOR, token.AT_EXTERNAL:
			method := p.parseMethodDeclaration()
			if method == nil {
				p.synchronizeMember()
				continue
			}
			if prev, dup := seen[method.Name]; dup {
				p.errorf(method.Token.Pos,
					"method %q is already declared in object %q (line %d)",
					method.Name, decl.Name, prev.Line)
				continue
			}
			seen[method.Name] = method.Token.Pos
			decl.Methods = append(decl.Methods, method)
		default:
			p.errorf(p.cur().Pos,
				"expected property, method or constructor in object body, got %q", p.cur().Literal)
			p.synchronizeMember()
		}
	}
}

// parsePropertyDeclaration parses: property name ':' type
func (p *Parser) parsePropertyDeclaration() *ast.PropertyDeclaration {
	propTok := p.cur()
	p.advance() // consume 'property'

	nameTok, ok := p.expect(token.IDENT, "as property name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.COLON, "after property name"); !ok {
		return nil
	}
	typeName := p.parseTypeName()
	if typeName == "" {
		return nil
	}

	return &ast.PropertyDeclaration{Token: propTok, Name: nameTok.Literal, Type: typeName}
}

// parseMethodDeclaration parses a method or constructor, with an optional
// @external modifier. @external applies only to methods.
func (p *Parser) parseMethodDeclaration() *ast.MethodDeclaration {
	startTok := p.cur()
	external := false
	if p.cur().Type == token.AT_EXTERNAL {
		external = true
		p.advance()
		p.skipNewlines()
		if p.cur().Type != token.METHOD {
			p.errorf(p.cur().Pos, "'@external' can only be applied to methods")
			return nil
		}
	}

	decl := &ast.MethodDeclaration{Token: startTok, External: external}

	switch p.cur().Type {
	case token.METHOD:
		p.advance()
		nameTok, ok := p.expect(token.IDENT, "as method name")
		if !ok {
			return nil
		}
		decl.Name = nameTok.Literal
	case token.CONSTRUCTOR:
		p.advance()
		decl.Name = "constructor"
		decl.IsConstructor = true
	default:
		p.errorf(p.cur().Pos, "expected 'method' or 'constructor', got %q", p.cur().Literal)
		return nil
	}

	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}
	decl.Parameters = params

	if p.cur().Type == token.COLON {
		p.advance()
		decl.ReturnType = p.parseTypeName()
		if decl.ReturnType == "" {
			return nil
		}
	} else if !decl.IsConstructor {
		p.errorf(p.cur().Pos, "method %q is missing a return type", decl.Name)
		return nil
	}

	p.skipNewlines()
	decl.Body = p.parseBlockStatement()
	if decl.Body == nil {
		return nil
	}
	return decl
}

// parseParameterList parses '(' (name ':' type (',' name ':' type)*)? ')'.
func (p *Parser) parseParameterList() ([]ast.Parameter, bool) {
	if _, ok := p.expect(token.LPAREN, "to open the parameter list"); !ok {
		return nil, false
	}

	var params []ast.Parameter
	p.skipNewlines()
	for p.cur().Type != token.RPAREN {
		nameTok, ok := p.expect(token.IDENT, "as parameter name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.COLON, "after parameter name"); !ok {
			return nil, false
		}
		typeName := p.parseTypeName()
		if typeName == "" {
			return nil, false
		}
		params = append(params, ast.Parameter{Name: nameTok.Literal, Type: typeName})

		p.skipNewlines()
		if p.cur().Type == token.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RPAREN, "to close the parameter list"); !ok {
		return nil, false
	}
	return params, true
}

// parseProtocolDeclaration parses:
//
//	Protocol Name '{' (method sig)* '}'
func (p *Parser) parseProtocolDeclaration() ast.Statement {
	protoTok := p.cur()
	p.advance() // consume 'Protocol'

	nameTok, ok := p.expect(token.IDENT, "after 'Protocol'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBRACE, "to open the protocol body"); !ok {
		return nil
	}

	decl := &ast.ProtocolDeclaration{Token: protoTok, Name: nameTok.Literal}

	for {
		p.skipNewlines()
		switch p.cur().Type {
		case token.RBRACE:
			p.advance()
			return decl
		case token.EOF:
			p.errorf(p.cur().Pos, "unterminated protocol declaration %q", decl.Name)
			return decl
		case token.METHOD:
			methodTok := p.cur()
			p.advance()
			sigName, ok := p.expect(token.IDENT, "as method name")
			if !ok {
				p.synchronizeMember()
				continue
			}
			params, ok := p.parseParameterList()
			if !ok {
				p.synchronizeMember()
				continue
			}
			if _, ok := p.expect(token.COLON, "before the signature return type"); !ok {
				p.synchronizeMember()
				continue
			}
			retType := p.parseTypeName()
			if retType == "" {
				p.synchronizeMember()
				continue
			}
			decl.Signatures = append(decl.Signatures, &ast.MethodSignature{
				Token:      methodTok,
				Name:       sigName.Literal,
				Parameters: params,
				ReturnType: retType,
			})
		default:
			p.errorf(p.cur().Pos,
				"protocols may only contain method signatures, got %q", p.cur().Literal)
			p.synchronizeMember()
		}
	}
}

// parseRecordDeclaration parses:
//
//	Record Name '{' (field ':' type (',' | newline))* '}'
func (p *Parser) parseRecordDeclaration() ast.Statement {
	recTok := p.cur()
	p.advance() // consume 'Record'

	nameTok, ok := p.expect(token.IDENT, "after 'Record'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBRACE, "to open the record body"); !ok {
		return nil
	}

	decl := &ast.RecordDeclaration{Token: recTok, Name: nameTok.Literal}

	for {
		p.skipNewlines()
		if p.cur().Type == token.RBRACE {
			p.advance()
			return decl
		}
		if p.cur().Type == token.EOF {
			p.errorf(p.cur().Pos, "unterminated record declaration %q", decl.Name)
			return decl
		}

		fieldTok, ok := p.expect(token.IDENT, "as record field name")
		if !ok {
			p.synchronizeMember()
			continue
		}
		if _, ok := p.expect(token.COLON, "after record field name"); !ok {
			p.synchronizeMember()
			continue
		}
		typeName := p.parseTypeName()
		if typeName == "" {
			p.synchronizeMember()
			continue
		}
		decl.Fields = append(decl.Fields, ast.RecordField{Name: fieldTok.Literal, Type: typeName})

		if p.cur().Type == token.COMMA {
			p.advance()
		}
	}
}

// parseEnumDeclaration parses:
//
//	Enum Name '{' (ident ['=' integer] (',' | newline))* '}'
//
// Member values default to consecutive integers from 0; an explicit '= N'
// resets the running counter and subsequent members continue from N+1.
func (p *Parser) parseEnumDeclaration() ast.Statement {
	enumTok := p.cur()
	p.advance() // consume 'Enum'

	nameTok, ok := p.expect(token.IDENT, "after 'Enum'")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LBRACE, "to open the enum body"); !ok {
		return nil
	}

	decl := &ast.EnumDeclaration{Token: enumTok, Name: nameTok.Literal}
	next := int64(0)

	for {
		p.skipNewlines()
		if p.cur().Type == token.RBRACE {
			p.advance()
			return decl
		}
		if p.cur().Type == token.EOF {
			p.errorf(p.cur().Pos, "unterminated enum declaration %q", decl.Name)
			return decl
		}

		memberTok, ok := p.expect(token.IDENT, "as enum member name")
		if !ok {
			p.synchronizeMember()
			continue
		}

		member := ast.EnumMember{Name: memberTok.Literal, Value: next}
		if p.cur().Type == token.ASSIGN {
			p.advance()
			negative := false
			if p.cur().Type == token.MINUS {
				negative = true
				p.advance()
			}
			valTok, ok := p.expect(token.INT, "as enum member value")
			if !ok {
				p.synchronizeMember()
				continue
			}
			val, err := strconv.ParseInt(valTok.Literal, 10, 64)
			if err != nil {
				p.errorf(valTok.Pos, "invalid enum member value %q", valTok.Literal)
				continue
			}
			if negative {
				val = -val
			}
			member.Value = val
			member.Explicit = true
		}
		next = member.Value + 1
		decl.Members = append(decl.Members, member)

		if p.cur().Type == token.COMMA {
			p.advance()
		}
	}
}

// parseNamespaceDeclaration parses:
//
//	namespace dotted.path '{' (Object|Protocol|Record|Enum)* '}'
func (p *Parser) parseNamespaceDeclaration() ast.Statement {
	nsTok := p.cur()
	p.advance() // consume 'namespace'

	var path []string
	for {
		partTok, ok := p.expect(token.IDENT, "in namespace path")
		if !ok {
			return nil
		}
		path = append(path, partTok.Literal)
		if p.cur().Type != token.DOT {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(token.LBRACE, "to open the namespace body"); !ok {
		return nil
	}

	decl := &ast.NamespaceDeclaration{Token: nsTok, Path: path}

	for {
		p.skipNewlines()
		switch p.cur().Type {
		case token.RBRACE:
			p.advance()
			return decl
		case token.EOF:
			p.errorf(p.cur().Pos, "unterminated namespace declaration")
			return decl
		case token.OBJECT, token.PROTOCOL, token.RECORD, token.ENUM:
			if member := p.parseTopLevelDeclaration(); member != nil {
				decl.Declarations = append(decl.Declarations, member)
			}
		default:
			p.errorf(p.cur().Pos,
				"namespaces may only contain Object, Protocol, Record and Enum declarations, got %q",
				p.cur().Literal)
			p.synchronizeMember()
		}
	}
}

// parseImportDeclaration parses import/@import dotted paths, including the
// trailing '.*' wildcard. All parts but the last form the package path; the
// last part is the object name.
func (p *Parser) parseImportDeclaration(userImport bool) ast.Statement {
	impTok := p.cur()
	p.advance() // consume 'import' or '@import'

	path := &ast.ImportPath{UserImport: userImport}
	var parts []string

	for {
		partTok, ok := p.expect(token.IDENT, "in import path")
		if !ok {
			return nil
		}
		parts = append(parts, partTok.Literal)

		if p.cur().Type != token.DOT {
			break
		}
		p.advance() // consume dot

		if p.cur().Type == token.ASTERISK {
			p.advance()
			path.MethodName = "*"
			path.Wildcard = true
			break
		}
	}

	if len(parts) == 1 {
		path.ObjectName = parts[0]
	} else {
		path.Package = parts[:len(parts)-1]
		path.ObjectName = parts[len(parts)-1]
	}

	return &ast.ImportDeclaration{Token: impTok, Path: path}
}

// parseTypeName parses a (possibly dotted, possibly generic) type name into
// its canonical string form, e.g. "Int", "List<Text>", "geometry.Shape".
func (p *Parser) parseTypeName() string {
	var name string

	switch p.cur().Type {
	case token.IDENT, token.RESULT, token.ERROR:
		name = p.cur().Literal
		p.advance()
	default:
		p.errorf(p.cur().Pos, "expected type name, got %q", p.cur().Literal)
		return ""
	}

	// Dotted qualification: namespace.Type
	for p.cur().Type == token.DOT && p.peek(1).Type == token.IDENT {
		p.advance()
		name += "." + p.cur().Literal
		p.advance()
	}

	// Generic suffix: <T, U>
	if p.cur().Type == token.LESS {
		p.advance()
		name += "<"
		for {
			arg := p.parseTypeName()
			if arg == "" {
				return ""
			}
			name += arg
			if p.cur().Type == token.COMMA {
				p.advance()
				name += ", "
				continue
			}
			break
		}
		if _, ok := p.expect(token.GREATER, "to close the type argument list"); !ok {
			return ""
		}
		name += ">"
	}

	return name
}

// synchronizeMember skips to the next newline or closing brace inside a
// declaration body.
func (p *Parser) synchronizeMember() {
	for {
		switch p.cur().Type {
		case token.NEWLINE, token.RBRACE, token.EOF:
			return
		}
		p.advance()
	}
}
