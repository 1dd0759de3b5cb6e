package parser

import (
	"strconv"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/pkg/token"
)

// parseExpression parses an expression at the given precedence level.
// Every parse function consumes its tokens fully: on return, the current
// token is the first token after the expression.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefixFn, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.errorf(p.cur().Pos, "unexpected %q in expression", p.cur().Literal)
		return nil
	}
	left := prefixFn()
	if left == nil {
		return nil
	}

	for {
		next := p.cur()
		// Newlines terminate expressions; bracketed constructs skip them
		// explicitly around their delimiters.
		if next.Type == token.NEWLINE {
			break
		}
		nextPrec := getPrecedence(next.Type)
		if precedence >= nextPrec {
			break
		}
		infixFn, ok := p.infixParseFns[next.Type]
		if !ok {
			break
		}
		left = infixFn(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf(tok.Pos, "could not parse %q as integer", tok.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: tok, Value: value}
}

func (p *Parser) parseLongLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.errorf(tok.Pos, "could not parse %q as long", tok.Literal)
		return nil
	}
	return &ast.LongLiteral{Token: tok, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	value, err := strconv.ParseFloat(tok.Literal, 32)
	if err != nil {
		p.errorf(tok.Pos, "could not parse %q as float", tok.Literal)
		return nil
	}
	return &ast.FloatLiteral{Token: tok, Value: float32(value)}
}

func (p *Parser) parseDoubleLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(tok.Pos, "could not parse %q as double", tok.Literal)
		return nil
	}
	return &ast.DoubleLiteral{Token: tok, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	runes := []rune(tok.Literal)
	if len(runes) != 1 {
		p.errorf(tok.Pos, "character literal must contain exactly one codepoint")
		return nil
	}
	return &ast.CharLiteral{Token: tok, Value: runes[0]}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.BooleanLiteral{Token: tok, Value: tok.Type == token.TRUE}
}

// parseIdentifierExpression parses an identifier, a function call, or a
// record instantiation. Record instantiation is distinguished from a
// function call by the 'ident =' lookahead at the first argument.
func (p *Parser) parseIdentifierExpression() ast.Expression {
	tok := p.cur()

	if p.peek(1).Type == token.LPAREN {
		if p.peek(2).Type == token.IDENT && p.peek(3).Type == token.ASSIGN {
			return p.parseRecordInstantiation()
		}
		p.advance() // move onto '('
		args, ok := p.parseCallArguments()
		if !ok {
			return nil
		}
		return &ast.FunctionCall{Token: tok, Name: tok.Literal, Arguments: args}
	}

	p.advance()
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

// parseRecordInstantiation parses: Type(field=expr, ...).
func (p *Parser) parseRecordInstantiation() ast.Expression {
	tok := p.cur()
	p.advance() // consume type name
	p.advance() // consume '('

	inst := &ast.RecordInstantiation{Token: tok, TypeName: tok.Literal}

	p.skipNewlines()
	for p.cur().Type != token.RPAREN {
		nameTok, ok := p.expect(token.IDENT, "as record field name")
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.ASSIGN, "after record field name"); !ok {
			return nil
		}
		p.skipNewlines()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		inst.Fields = append(inst.Fields, ast.RecordFieldInit{Name: nameTok.Literal, Value: value})

		p.skipNewlines()
		if p.cur().Type == token.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RPAREN, "to close the record instantiation"); !ok {
		return nil
	}
	return inst
}

// parseThisExpression parses 'this', 'this.name' and 'this.name(args)'.
// Method calls through 'this' are internal call sites.
func (p *Parser) parseThisExpression() ast.Expression {
	thisTok := p.cur()

	if p.peek(1).Type == token.DOT && p.peek(2).Type == token.IDENT {
		nameTok := p.peek(2)
		if p.peek(3).Type == token.LPAREN {
			p.advance() // consume 'this'
			p.advance() // consume '.'
			p.advance() // move onto '('
			args, ok := p.parseCallArguments()
			if !ok {
				return nil
			}
			return &ast.MethodCall{
				Token:     thisTok,
				Object:    &ast.ThisExpression{Token: thisTok},
				Method:    nameTok.Literal,
				Arguments: args,
			}
		}
		p.advance() // consume 'this'
		p.advance() // consume '.'
		p.advance() // consume name
		return &ast.PropertyAccess{Token: thisTok, Name: nameTok.Literal}
	}

	p.advance()
	return &ast.ThisExpression{Token: thisTok}
}

// parseNewExpression parses: new Type(args). The type name may be dotted.
func (p *Parser) parseNewExpression() ast.Expression {
	newTok := p.cur()
	p.advance() // consume 'new'

	typeName := p.parseTypeName()
	if typeName == "" {
		return nil
	}
	if p.cur().Type != token.LPAREN {
		p.errorf(p.cur().Pos, "expected '(' after 'new %s'", typeName)
		return nil
	}
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	return &ast.NewExpression{Token: newTok, TypeName: typeName, Arguments: args}
}

// parseResultExpression parses the two static forms Result.success(v) and
// Result.error(v). They are lexically special-cased, matching the original
// implementation.
func (p *Parser) parseResultExpression() ast.Expression {
	resTok := p.cur()
	p.advance() // consume 'Result'

	if _, ok := p.expect(token.DOT, "after 'Result'"); !ok {
		return nil
	}
	methodTok, ok := p.expect(token.IDENT, "after 'Result.'")
	if !ok {
		return nil
	}
	if methodTok.Literal != "success" && methodTok.Literal != "error" {
		p.errorf(methodTok.Pos, "expected 'success' or 'error' after 'Result.', got %q", methodTok.Literal)
		return nil
	}
	if p.cur().Type != token.LPAREN {
		p.errorf(p.cur().Pos, "expected '(' after 'Result.%s'", methodTok.Literal)
		return nil
	}
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	if len(args) != 1 {
		p.errorf(resTok.Pos, "Result.%s takes exactly one argument", methodTok.Literal)
		return nil
	}

	return &ast.FunctionCall{Token: resTok, Name: "Result." + methodTok.Literal, Arguments: args}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	opTok := p.cur()
	p.advance()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.UnaryExpression{Token: opTok, Operator: opTok.Literal, Operand: operand}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // consume '('
	p.skipNewlines()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	p.skipNewlines()
	if _, ok := p.expect(token.RPAREN, "to close the grouped expression"); !ok {
		return nil
	}
	return expr
}

// parseListLiteral parses: [e1, e2, ...].
func (p *Parser) parseListLiteral() ast.Expression {
	brackTok := p.cur()
	p.advance() // consume '['

	lit := &ast.ListLiteral{Token: brackTok}

	p.skipNewlines()
	for p.cur().Type != token.RBRACK {
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, elem)

		p.skipNewlines()
		if p.cur().Type == token.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBRACK, "to close the list literal"); !ok {
		return nil
	}
	return lit
}

// parseMapLiteral parses: { key: value, ... }.
func (p *Parser) parseMapLiteral() ast.Expression {
	braceTok := p.cur()
	p.advance() // consume '{'

	lit := &ast.MapLiteral{Token: braceTok}

	p.skipNewlines()
	for p.cur().Type != token.RBRACE {
		key := p.parseExpression(LOWEST)
		if key == nil {
			return nil
		}
		p.skipNewlines()
		if _, ok := p.expect(token.COLON, "between map key and value"); !ok {
			return nil
		}
		p.skipNewlines()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		lit.Entries = append(lit.Entries, ast.MapEntry{Key: key, Value: value})

		p.skipNewlines()
		if p.cur().Type == token.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBRACE, "to close the map literal"); !ok {
		return nil
	}
	return lit
}

// parseSetLiteral parses: (e1, e2, ...). Reached only from the declared
// Set<T> initializer context.
func (p *Parser) parseSetLiteral() ast.Expression {
	parenTok := p.cur()
	p.advance() // consume '('

	lit := &ast.SetLiteral{Token: parenTok}

	p.skipNewlines()
	for p.cur().Type != token.RPAREN {
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		lit.Elements = append(lit.Elements, elem)

		p.skipNewlines()
		if p.cur().Type == token.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RPAREN, "to close the set literal"); !ok {
		return nil
	}
	return lit
}

// parseBinaryExpression parses a left-associative binary operation.
func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	opTok := p.cur()
	prec := getPrecedence(opTok.Type)
	p.advance()
	p.skipNewlines()

	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.BinaryExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
}

// parseLogicalExpression parses && and || (short-circuit at evaluation).
func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	opTok := p.cur()
	prec := getPrecedence(opTok.Type)
	p.advance()
	p.skipNewlines()

	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.LogicalExpression{Token: opTok, Left: left, Operator: opTok.Literal, Right: right}
}

// parseDotExpression parses member access and method calls after an
// evaluated receiver. Dotted identifier chains without a call become
// QualifiedIdentifiers; a call on a chained qualified name is rejected with
// import guidance.
func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	dotTok := p.cur()
	p.advance() // consume '.'

	memberTok, ok := p.expect(token.IDENT, "after '.'")
	if !ok {
		return nil
	}

	if p.cur().Type == token.LPAREN {
		if qi, isQualified := left.(*ast.QualifiedIdentifier); isQualified {
			p.errorf(dotTok.Pos,
				"cannot call %q as a static method of %q; use 'import %s' and then 'new %s(...)'",
				memberTok.Literal, qi.String(), qi.String(), memberTok.Literal)
			return nil
		}
		args, ok := p.parseCallArguments()
		if !ok {
			return nil
		}
		return &ast.MethodCall{Token: dotTok, Object: left, Method: memberTok.Literal, Arguments: args}
	}

	switch obj := left.(type) {
	case *ast.Identifier:
		return &ast.QualifiedIdentifier{Token: obj.Token, Parts: []string{obj.Value, memberTok.Literal}}
	case *ast.QualifiedIdentifier:
		return &ast.QualifiedIdentifier{Token: obj.Token, Parts: append(append([]string{}, obj.Parts...), memberTok.Literal)}
	}
	return &ast.MemberAccess{Token: dotTok, Object: left, Member: memberTok.Literal}
}

// parseCallArguments parses '(' (expr (',' expr)*)? ')'. The current token
// must be the opening parenthesis.
func (p *Parser) parseCallArguments() ([]ast.Expression, bool) {
	p.advance() // consume '('

	var args []ast.Expression
	p.skipNewlines()
	for p.cur().Type != token.RPAREN {
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)

		p.skipNewlines()
		if p.cur().Type == token.COMMA {
			p.advance()
			p.skipNewlines()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RPAREN, "to close the argument list"); !ok {
		return nil, false
	}
	return args, true
}
