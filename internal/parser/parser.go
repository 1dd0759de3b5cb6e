// Package parser implements the O²L recursive-descent parser using Pratt
// parsing for expressions.
//
// Key patterns:
//   - The whole input is tokenized up front; the parser walks the token
//     slice with arbitrary lookahead via peek(n).
//   - Newlines are tokens: they terminate statements but are skipped freely
//     inside bracketed constructs and around declaration members.
//   - Expression parsing uses prefixParseFns/infixParseFns keyed by token
//     type with a precedence table.
package parser

import (
	"fmt"

	"github.com/o2lang/go-o2l/internal/ast"
	"github.com/o2lang/go-o2l/internal/lexer"
	"github.com/o2lang/go-o2l/pkg/token"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -x, !x
	MEMBER      // obj.member, obj.method(args)
)

// precedences maps token types to their precedence levels.
var precedences = map[token.TokenType]int{
	token.OR:         OR,
	token.AND:        AND,
	token.EQ:         EQUALS,
	token.NOT_EQ:     EQUALS,
	token.LESS:       LESSGREATER,
	token.GREATER:    LESSGREATER,
	token.LESS_EQ:    LESSGREATER,
	token.GREATER_EQ: LESSGREATER,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
	token.DOT:        MEMBER,
}

func getPrecedence(tt token.TokenType) int {
	if p, ok := precedences[tt]; ok {
		return p
	}
	return LOWEST
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, member access).
type infixParseFn func(ast.Expression) ast.Expression

// Error is a parse failure with its position.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Pos.Line, e.Pos.Column)
}

// Parser parses a token stream into an AST.
type Parser struct {
	tokens          []token.Token
	pos             int
	errors          []*Error
	prefixParseFns  map[token.TokenType]prefixParseFn
	infixParseFns   map[token.TokenType]infixParseFn
	allowNamespaces bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithNamespaces toggles the namespace feature flag. When disabled, a
// top-level namespace declaration fails with a syntax error and a hint.
func WithNamespaces(enabled bool) Option {
	return func(p *Parser) {
		p.allowNamespaces = enabled
	}
}

// New creates a Parser reading from the given lexer.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{
		tokens:          l.Tokenize(),
		allowNamespaces: true,
	}
	for _, err := range l.Errors() {
		p.errors = append(p.errors, &Error{Message: err.Message, Pos: err.Pos})
	}
	for _, opt := range opts {
		opt(p)
	}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.INT:    p.parseIntegerLiteral,
		token.LONG:   p.parseLongLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.DOUBLE: p.parseDoubleLiteral,
		token.STRING: p.parseStringLiteral,
		token.CHAR:   p.parseCharLiteral,
		token.TRUE:   p.parseBooleanLiteral,
		token.FALSE:  p.parseBooleanLiteral,
		token.IDENT:  p.parseIdentifierExpression,
		token.THIS:   p.parseThisExpression,
		token.NEW:    p.parseNewExpression,
		token.RESULT: p.parseResultExpression,
		token.MINUS:  p.parseUnaryExpression,
		token.BANG:   p.parseUnaryExpression,
		token.LPAREN: p.parseGroupedExpression,
		token.LBRACK: p.parseListLiteral,
		token.LBRACE: p.parseMapLiteral,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:       p.parseBinaryExpression,
		token.MINUS:      p.parseBinaryExpression,
		token.ASTERISK:   p.parseBinaryExpression,
		token.SLASH:      p.parseBinaryExpression,
		token.PERCENT:    p.parseBinaryExpression,
		token.EQ:         p.parseBinaryExpression,
		token.NOT_EQ:     p.parseBinaryExpression,
		token.LESS:       p.parseBinaryExpression,
		token.GREATER:    p.parseBinaryExpression,
		token.LESS_EQ:    p.parseBinaryExpression,
		token.GREATER_EQ: p.parseBinaryExpression,
		token.AND:        p.parseLogicalExpression,
		token.OR:         p.parseLogicalExpression,
		token.DOT:        p.parseDotExpression,
	}

	return p
}

// Errors returns the parse errors collected so far.
func (p *Parser) Errors() []*Error {
	return p.errors
}

// ErrorStrings returns the parse errors as formatted strings.
func (p *Parser) ErrorStrings() []string {
	out := make([]string, len(p.errors))
	for i, err := range p.errors {
		out[i] = err.Error()
	}
	return out
}

// cur returns the current token.
func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

// peek returns the token n positions after the current one.
func (p *Parser) peek(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

// advance moves to the next token.
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

// skipNewlines advances past any run of NEWLINE tokens.
func (p *Parser) skipNewlines() {
	for p.cur().Type == token.NEWLINE {
		p.advance()
	}
}

// peekPastNewlines returns the first non-NEWLINE token at or after the
// current position, without advancing.
func (p *Parser) peekPastNewlines() token.Token {
	i := p.pos
	for i < len(p.tokens)-1 && p.tokens[i].Type == token.NEWLINE {
		i++
	}
	return p.tokens[i]
}

// expect consumes the current token if it has the wanted type, recording an
// error otherwise. Returns the consumed token and whether it matched.
func (p *Parser) expect(tt token.TokenType, context string) (token.Token, bool) {
	tok := p.cur()
	if tok.Type != tt {
		p.errorf(tok.Pos, "expected %s %s, got %q", tt, context, tok.Literal)
		return tok, false
	}
	p.advance()
	return tok, true
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &Error{Message: fmt.Sprintf(format, args...), Pos: pos})
}

// ParseProgram parses the whole token stream as a module.
// Only Object, Protocol, Record, Enum, namespace, import and @import are
// accepted at the top level.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for {
		p.skipNewlines()
		if p.cur().Type == token.EOF {
			break
		}

		stmt := p.parseTopLevelDeclaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.synchronizeTopLevel()
		}
	}

	return program
}

// parseTopLevelDeclaration dispatches on the top-level grammar of §4.5.
func (p *Parser) parseTopLevelDeclaration() ast.Statement {
	switch p.cur().Type {
	case token.OBJECT:
		return p.parseObjectDeclaration()
	case token.PROTOCOL:
		return p.parseProtocolDeclaration()
	case token.RECORD:
		return p.parseRecordDeclaration()
	case token.ENUM:
		return p.parseEnumDeclaration()
	case token.NAMESPACE:
		if !p.allowNamespaces {
			p.errorf(p.cur().Pos, "namespace declarations are disabled (enable the namespace feature to use them)")
			p.advance() // consume 'namespace' so recovery can skip the body
			return nil
		}
		return p.parseNamespaceDeclaration()
	case token.IMPORT:
		return p.parseImportDeclaration(false)
	case token.AT_IMPORT:
		return p.parseImportDeclaration(true)
	}

	p.errorf(p.cur().Pos,
		"only Object, Protocol, Record, Enum, namespace and import declarations are allowed at the top level, got %q",
		p.cur().Literal)
	return nil
}

// synchronizeTopLevel skips tokens until the next plausible top-level
// declaration start, so one bad declaration does not cascade.
func (p *Parser) synchronizeTopLevel() {
	depth := 0
	for {
		switch p.cur().Type {
		case token.EOF:
			return
		case token.LBRACE:
			depth++
		case token.RBRACE:
			if depth > 0 {
				depth--
			}
		case token.OBJECT, token.PROTOCOL, token.RECORD, token.ENUM,
			token.NAMESPACE, token.IMPORT, token.AT_IMPORT:
			if depth == 0 {
				return
			}
		}
		p.advance()
	}
}
