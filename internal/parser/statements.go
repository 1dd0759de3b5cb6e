package parser

import (
	"strings"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/pkg/token"
)

// parseBlockStatement parses '{' statements '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	braceTok, ok := p.expect(token.LBRACE, "to open a block")
	if !ok {
		return nil
	}

	block := &ast.BlockStatement{Token: braceTok}

	for {
		p.skipNewlines()
		switch p.cur().Type {
		case token.RBRACE:
			p.advance()
			return block
		case token.EOF:
			p.errorf(p.cur().Pos, "unterminated block")
			return block
		}

		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronizeMember()
			continue
		}
		block.Statements = append(block.Statements, stmt)

		// Statements are separated by newlines or the closing brace.
		switch p.cur().Type {
		case token.NEWLINE, token.RBRACE, token.EOF:
		default:
			p.errorf(p.cur().Pos, "unexpected %q after statement", p.cur().Literal)
			p.synchronizeMember()
		}
	}
}

// parseStatement parses one statement inside a method or constructor body.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.CONST:
		return p.parseConstDeclaration()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.BREAK:
		tok := p.cur()
		p.advance()
		return &ast.BreakStatement{Token: tok}
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THIS:
		// this.name = expr is a property assignment; anything else starting
		// with 'this' is an expression statement.
		if p.peek(1).Type == token.DOT && p.peek(2).Type == token.IDENT && p.peek(3).Type == token.ASSIGN {
			return p.parsePropertyAssignment()
		}
	case token.IDENT:
		switch p.peek(1).Type {
		case token.COLON:
			return p.parseVariableDeclaration()
		case token.ASSIGN:
			return p.parseAssignmentStatement()
		}
	}

	return p.parseExpressionStatement()
}

// parseVariableDeclaration parses: name ':' type '=' expr.
// When the declared type is a Set, the parenthesized initializer is parsed
// as a set literal.
func (p *Parser) parseVariableDeclaration() ast.Statement {
	nameTok := p.cur()
	p.advance() // consume name
	p.advance() // consume ':'

	typeName := p.parseTypeName()
	if typeName == "" {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN, "in variable declaration"); !ok {
		return nil
	}
	p.skipNewlines()

	var value ast.Expression
	if strings.HasPrefix(typeName, "Set<") && p.cur().Type == token.LPAREN {
		value = p.parseSetLiteral()
	} else {
		value = p.parseExpression(LOWEST)
	}
	if value == nil {
		return nil
	}

	return &ast.VariableDeclaration{
		Token: nameTok,
		Name:  nameTok.Literal,
		Type:  typeName,
		Value: value,
	}
}

// parseConstDeclaration parses: const name ':' type '=' expr.
func (p *Parser) parseConstDeclaration() ast.Statement {
	constTok := p.cur()
	p.advance() // consume 'const'

	nameTok, ok := p.expect(token.IDENT, "as constant name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.COLON, "after constant name"); !ok {
		return nil
	}
	typeName := p.parseTypeName()
	if typeName == "" {
		return nil
	}
	if _, ok := p.expect(token.ASSIGN, "in constant declaration"); !ok {
		return nil
	}
	p.skipNewlines()

	var value ast.Expression
	if strings.HasPrefix(typeName, "Set<") && p.cur().Type == token.LPAREN {
		value = p.parseSetLiteral()
	} else {
		value = p.parseExpression(LOWEST)
	}
	if value == nil {
		return nil
	}

	return &ast.ConstDeclaration{
		Token: constTok,
		Name:  nameTok.Literal,
		Type:  typeName,
		Value: value,
	}
}

// parseAssignmentStatement parses: name '=' expr.
func (p *Parser) parseAssignmentStatement() ast.Statement {
	nameTok := p.cur()
	p.advance() // consume name
	p.advance() // consume '='
	p.skipNewlines()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.AssignmentStatement{Token: nameTok, Name: nameTok.Literal, Value: value}
}

// parsePropertyAssignment parses: this '.' name '=' expr.
func (p *Parser) parsePropertyAssignment() ast.Statement {
	thisTok := p.cur()
	p.advance() // consume 'this'
	p.advance() // consume '.'
	nameTok := p.cur()
	p.advance() // consume name
	p.advance() // consume '='
	p.skipNewlines()

	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	return &ast.PropertyAssignment{Token: thisTok, Name: nameTok.Literal, Value: value}
}

// parseIfStatement parses: if '(' expr ')' block ('else' (if ... | block))?
func (p *Parser) parseIfStatement() ast.Statement {
	ifTok := p.cur()
	p.advance() // consume 'if'

	if _, ok := p.expect(token.LPAREN, "after 'if'"); !ok {
		return nil
	}
	p.skipNewlines()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	p.skipNewlines()
	if _, ok := p.expect(token.RPAREN, "to close the if condition"); !ok {
		return nil
	}
	p.skipNewlines()

	consequence := p.parseBlockStatement()
	if consequence == nil {
		return nil
	}

	stmt := &ast.IfStatement{Token: ifTok, Condition: condition, Consequence: consequence}

	if p.peekPastNewlines().Type == token.ELSE {
		p.skipNewlines()
		p.advance() // consume 'else'
		p.skipNewlines()
		if p.cur().Type == token.IF {
			stmt.Alternative = p.parseIfStatement()
		} else {
			stmt.Alternative = p.parseBlockStatement()
		}
	}

	return stmt
}

// parseWhileStatement parses: while '(' expr ')' block.
func (p *Parser) parseWhileStatement() ast.Statement {
	whileTok := p.cur()
	p.advance() // consume 'while'

	if _, ok := p.expect(token.LPAREN, "after 'while'"); !ok {
		return nil
	}
	p.skipNewlines()
	condition := p.parseExpression(LOWEST)
	if condition == nil {
		return nil
	}
	p.skipNewlines()
	if _, ok := p.expect(token.RPAREN, "to close the while condition"); !ok {
		return nil
	}
	p.skipNewlines()

	body := p.parseBlockStatement()
	if body == nil {
		return nil
	}
	return &ast.WhileStatement{Token: whileTok, Condition: condition, Body: body}
}

// parseReturnStatement parses: return [expr]. A newline or closing brace
// directly after 'return' makes it a bare return.
func (p *Parser) parseReturnStatement() ast.Statement {
	retTok := p.cur()
	p.advance() // consume 'return'

	stmt := &ast.ReturnStatement{Token: retTok}
	switch p.cur().Type {
	case token.NEWLINE, token.RBRACE, token.EOF:
		return stmt
	}

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

// parseThrowStatement parses: throw '(' expr ')'.
func (p *Parser) parseThrowStatement() ast.Statement {
	throwTok := p.cur()
	p.advance() // consume 'throw'

	if _, ok := p.expect(token.LPAREN, "after 'throw'"); !ok {
		return nil
	}
	p.skipNewlines()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	p.skipNewlines()
	if _, ok := p.expect(token.RPAREN, "to close the throw argument"); !ok {
		return nil
	}

	return &ast.ThrowStatement{Token: throwTok, Value: value}
}

// parseTryStatement parses: try block (catch '(' name ')' block)? (finally block)?
// At least one of catch/finally is required.
func (p *Parser) parseTryStatement() ast.Statement {
	tryTok := p.cur()
	p.advance() // consume 'try'
	p.skipNewlines()

	tryBlock := p.parseBlockStatement()
	if tryBlock == nil {
		return nil
	}

	stmt := &ast.TryStatement{Token: tryTok, Try: tryBlock}

	if p.peekPastNewlines().Type == token.CATCH {
		p.skipNewlines()
		p.advance() // consume 'catch'
		if _, ok := p.expect(token.LPAREN, "after 'catch'"); !ok {
			return nil
		}
		varTok, ok := p.expect(token.IDENT, "as catch variable")
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.RPAREN, "to close the catch clause"); !ok {
			return nil
		}
		p.skipNewlines()
		stmt.CatchVariable = varTok.Literal
		stmt.Catch = p.parseBlockStatement()
		if stmt.Catch == nil {
			return nil
		}
	}

	if p.peekPastNewlines().Type == token.FINALLY {
		p.skipNewlines()
		p.advance() // consume 'finally'
		p.skipNewlines()
		stmt.Finally = p.parseBlockStatement()
		if stmt.Finally == nil {
			return nil
		}
	}

	if stmt.Catch == nil && stmt.Finally == nil {
		p.errorf(tryTok.Pos, "try requires at least one catch or finally clause")
		return nil
	}

	return stmt
}

// parseExpressionStatement wraps an expression in statement position.
func (p *Parser) parseExpressionStatement() ast.Statement {
	firstTok := p.cur()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	return &ast.ExpressionStatement{Token: firstTok, Expression: expr}
}
