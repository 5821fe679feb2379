package parser

import (
	"fmt"

	"github.com/aabha-lang/aabhalint/internal/lang/ast"
	"github.com/aabha-lang/aabhalint/internal/lang/lexer"
)

// Parser transforms a stream of tokens into an Abstract Syntax Tree (AST)
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a new parser for the given token stream
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		current: 0,
		errors:  make([]ParseError, 0),
	}
}

// Parse parses the token stream and returns the AST and any errors
func (p *Parser) Parse() (*ast.Program, []ParseError) {
	program := &ast.Program{
		Imports: make([]*ast.ImportNode, 0),
		Classes: make([]*ast.ClassNode, 0),
	}

	for !p.isAtEnd() {
		switch {
		case p.check(lexer.TOKEN_IMPORT):
			if imp := p.parseImport(); imp != nil {
				program.Imports = append(program.Imports, imp)
			}
		case p.check(lexer.TOKEN_AT) || p.check(lexer.TOKEN_EXPORT) || p.check(lexer.TOKEN_CLASS):
			if class := p.parseClass(); class != nil {
				program.Classes = append(program.Classes, class)
			}
		case p.check(lexer.TOKEN_SEMICOLON):
			p.advance()
		default:
			p.error(p.peek(), fmt.Sprintf("Unexpected token at top level: %s", p.peek().Lexeme))
			p.advance()
		}
	}

	return program, p.errors
}

// parseImport parses an import statement. Imports are recorded but their
// targets are never resolved; the linter works one file at a time.
func (p *Parser) parseImport() *ast.ImportNode {
	importToken := p.advance()

	imp := &ast.ImportNode{
		Names: make([]string, 0),
		Loc:   ast.TokenLocation(importToken),
	}

	switch {
	case p.check(lexer.TOKEN_STRING_LITERAL):
		// import './shared.aabha'
		pathToken := p.advance()
		imp.Path = stringLiteralValue(pathToken)
	case p.match(lexer.TOKEN_LBRACE):
		// import { Customer, Teller } from './actors.aabha'
		for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
			nameToken := p.consume(lexer.TOKEN_IDENTIFIER, "Expected imported name")
			if nameToken.Type == lexer.TOKEN_ERROR {
				p.synchronize()
				return nil
			}
			imp.Names = append(imp.Names, nameToken.Lexeme)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		if !p.match(lexer.TOKEN_RBRACE) {
			p.error(p.peek(), "Expected '}' after import names")
			p.synchronize()
			return nil
		}
		if !p.parseImportPath(imp) {
			return nil
		}
	case p.check(lexer.TOKEN_IDENTIFIER):
		// import Shared from './shared.aabha'
		nameToken := p.advance()
		imp.Names = append(imp.Names, nameToken.Lexeme)
		if !p.parseImportPath(imp) {
			return nil
		}
	default:
		p.error(p.peek(), "Expected import path or import names")
		p.synchronize()
		return nil
	}

	p.match(lexer.TOKEN_SEMICOLON)
	imp.Span = ast.Span{Start: importToken.Offset, End: p.previous().End()}
	return imp
}

// parseImportPath parses the "from '<path>'" tail of an import statement
func (p *Parser) parseImportPath(imp *ast.ImportNode) bool {
	if !p.match(lexer.TOKEN_FROM) {
		p.error(p.peek(), "Expected 'from' after import names")
		p.synchronize()
		return false
	}
	pathToken := p.consume(lexer.TOKEN_STRING_LITERAL, "Expected import path string")
	if pathToken.Type == lexer.TOKEN_ERROR {
		p.synchronize()
		return false
	}
	imp.Path = stringLiteralValue(pathToken)
	return true
}

// parseClass parses a decorated class declaration
func (p *Parser) parseClass() *ast.ClassNode {
	startToken := p.peek()

	// Decorators precede the class keyword
	decorators := make([]*ast.DecoratorNode, 0)
	for p.check(lexer.TOKEN_AT) {
		if decorator := p.parseDecorator(); decorator != nil {
			decorators = append(decorators, decorator)
		} else {
			p.synchronize()
			return nil
		}
	}

	exported := p.match(lexer.TOKEN_EXPORT)

	// Decorators may also follow the export keyword
	for p.check(lexer.TOKEN_AT) {
		if decorator := p.parseDecorator(); decorator != nil {
			decorators = append(decorators, decorator)
		} else {
			p.synchronize()
			return nil
		}
	}

	classToken := p.consume(lexer.TOKEN_CLASS, "Expected 'class' declaration")
	if classToken.Type == lexer.TOKEN_ERROR {
		p.synchronize()
		return nil
	}

	nameToken := p.consume(lexer.TOKEN_IDENTIFIER, "Expected class name")
	if nameToken.Type == lexer.TOKEN_ERROR {
		p.synchronize()
		return nil
	}

	class := &ast.ClassNode{
		Name:       nameToken.Lexeme,
		Exported:   exported,
		Decorators: decorators,
		Loc:        ast.TokenLocation(classToken),
		NameLoc:    ast.TokenLocation(nameToken),
	}

	if p.match(lexer.TOKEN_EXTENDS) {
		parentToken := p.consume(lexer.TOKEN_IDENTIFIER, "Expected parent class name after 'extends'")
		if parentToken.Type == lexer.TOKEN_ERROR {
			p.synchronize()
			return nil
		}
		class.Parent = parentToken.Lexeme
	}

	if !p.match(lexer.TOKEN_LBRACE) {
		p.error(p.peek(), "Expected '{' after class name")
		p.synchronize()
		return nil
	}

	// Class bodies carry behavior the linter does not interpret.
	// Skip to the matching closing brace.
	if !p.skipBalancedBraces() {
		p.error(p.previous(), fmt.Sprintf("Expected '}' to close class '%s'", class.Name))
	}

	class.Span = ast.Span{Start: startToken.Offset, End: p.previous().End()}
	return class
}

// skipBalancedBraces consumes tokens until the brace opened just before the
// call is closed. Returns false if the stream ends first.
func (p *Parser) skipBalancedBraces() bool {
	depth := 1
	for depth > 0 && !p.isAtEnd() {
		switch p.peek().Type {
		case lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RBRACE:
			depth--
		}
		p.advance()
	}
	return depth == 0
}

// parseDecorator parses a single decorator: @Name or @Name(argument)
func (p *Parser) parseDecorator() *ast.DecoratorNode {
	atToken := p.advance()

	nameToken := p.consume(lexer.TOKEN_IDENTIFIER, "Expected decorator name after '@'")
	if nameToken.Type == lexer.TOKEN_ERROR {
		return nil
	}

	decorator := &ast.DecoratorNode{
		Name: nameToken.Lexeme,
		Loc:  ast.TokenLocation(atToken),
	}

	if p.match(lexer.TOKEN_LPAREN) {
		decorator.HasCall = true

		if !p.check(lexer.TOKEN_RPAREN) {
			decorator.Argument = p.parseValue()

			// Extra arguments are tolerated and ignored; only the first
			// is metadata.
			for p.match(lexer.TOKEN_COMMA) {
				if p.check(lexer.TOKEN_RPAREN) {
					break
				}
				p.parseValue()
			}
		}

		if !p.match(lexer.TOKEN_RPAREN) {
			p.error(p.peek(), fmt.Sprintf("Expected ')' to close @%s arguments", decorator.Name))
			return nil
		}
	}

	decorator.Span = ast.Span{Start: atToken.Offset, End: p.previous().End()}
	return decorator
}

// parseValue parses one expression in decorator-argument position. Shapes
// the linter cannot evaluate statically are consumed as a single
// OpaqueExpr instead of failing the parse.
func (p *Parser) parseValue() ast.ExprNode {
	mark := p.current

	if expr := p.parsePrimaryValue(); expr != nil && p.atValueBoundary() {
		return expr
	}

	// Rewind and swallow the whole expression as opaque
	p.current = mark
	return p.parseOpaqueValue()
}

// parsePrimaryValue parses the literal shapes the extractor understands.
// Returns nil when the current token cannot start one.
func (p *Parser) parsePrimaryValue() ast.ExprNode {
	token := p.peek()

	switch token.Type {
	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		return &ast.LiteralExpr{
			Value: stringLiteralValue(token),
			Loc:   ast.TokenLocation(token),
			Span:  ast.TokenSpan(token),
		}
	case lexer.TOKEN_INT_LITERAL, lexer.TOKEN_FLOAT_LITERAL:
		p.advance()
		return &ast.LiteralExpr{
			Value: token.Literal,
			Loc:   ast.TokenLocation(token),
			Span:  ast.TokenSpan(token),
		}
	case lexer.TOKEN_TRUE, lexer.TOKEN_FALSE:
		p.advance()
		return &ast.LiteralExpr{
			Value: token.Literal,
			Loc:   ast.TokenLocation(token),
			Span:  ast.TokenSpan(token),
		}
	case lexer.TOKEN_NULL:
		p.advance()
		return &ast.LiteralExpr{
			Value: nil,
			Loc:   ast.TokenLocation(token),
			Span:  ast.TokenSpan(token),
		}
	case lexer.TOKEN_MINUS:
		return p.parseNegatedNumber()
	case lexer.TOKEN_LBRACKET:
		return p.parseArray()
	case lexer.TOKEN_LBRACE:
		return p.parseObject()
	case lexer.TOKEN_IDENTIFIER:
		return p.parseReference()
	default:
		return nil
	}
}

// parseNegatedNumber parses a numeric literal with a leading minus sign
func (p *Parser) parseNegatedNumber() ast.ExprNode {
	minusToken := p.advance()

	numberToken := p.peek()
	if numberToken.Type != lexer.TOKEN_INT_LITERAL && numberToken.Type != lexer.TOKEN_FLOAT_LITERAL {
		return nil
	}
	p.advance()

	return &ast.UnaryExpr{
		Operator: "-",
		Operand: &ast.LiteralExpr{
			Value: numberToken.Literal,
			Loc:   ast.TokenLocation(numberToken),
			Span:  ast.TokenSpan(numberToken),
		},
		Loc:  ast.TokenLocation(minusToken),
		Span: ast.Span{Start: minusToken.Offset, End: numberToken.End()},
	}
}

// parseArray parses an array literal
func (p *Parser) parseArray() ast.ExprNode {
	openToken := p.advance()

	array := &ast.ArrayLiteralExpr{
		Elements: make([]ast.ExprNode, 0),
		Loc:      ast.TokenLocation(openToken),
	}

	for !p.check(lexer.TOKEN_RBRACKET) && !p.isAtEnd() {
		array.Elements = append(array.Elements, p.parseValue())

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.match(lexer.TOKEN_RBRACKET) {
		p.error(p.peek(), "Expected ']' after array elements")
		return nil
	}

	array.Span = ast.Span{Start: openToken.Offset, End: p.previous().End()}
	return array
}

// parseObject parses an object literal
func (p *Parser) parseObject() ast.ExprNode {
	openToken := p.advance()

	object := &ast.ObjectLiteralExpr{
		Pairs: make([]ast.ObjectPair, 0),
		Loc:   ast.TokenLocation(openToken),
	}

	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		keyToken, ok := p.parseObjectKey()
		if !ok {
			p.error(p.peek(), fmt.Sprintf("Expected field name, got '%s'", p.peek().Lexeme))
			return nil
		}

		if !p.match(lexer.TOKEN_COLON) {
			p.error(p.peek(), fmt.Sprintf("Expected ':' after field name '%s'", objectKeyText(keyToken)))
			return nil
		}

		value := p.parseValue()
		object.Pairs = append(object.Pairs, ast.ObjectPair{
			Key:    objectKeyText(keyToken),
			Value:  value,
			KeyLoc: ast.TokenLocation(keyToken),
			Span:   ast.Span{Start: keyToken.Offset, End: p.previous().End()},
		})

		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}

	if !p.match(lexer.TOKEN_RBRACE) {
		p.error(p.peek(), "Expected '}' after object fields")
		return nil
	}

	object.Span = ast.Span{Start: openToken.Offset, End: p.previous().End()}
	return object
}

// parseObjectKey consumes an object key token. Identifiers, string
// literals, and keywords (an @Interaction commonly has a 'from' field)
// are all valid keys.
func (p *Parser) parseObjectKey() (lexer.Token, bool) {
	token := p.peek()

	switch token.Type {
	case lexer.TOKEN_IDENTIFIER, lexer.TOKEN_STRING_LITERAL,
		lexer.TOKEN_CLASS, lexer.TOKEN_EXTENDS, lexer.TOKEN_IMPORT,
		lexer.TOKEN_EXPORT, lexer.TOKEN_FROM, lexer.TOKEN_TRUE,
		lexer.TOKEN_FALSE, lexer.TOKEN_NULL:
		p.advance()
		return token, true
	default:
		return token, false
	}
}

// objectKeyText returns the key text for an object key token
func objectKeyText(token lexer.Token) string {
	if token.Type == lexer.TOKEN_STRING_LITERAL {
		return stringLiteralValue(token)
	}
	return token.Lexeme
}

// parseReference parses an identifier or enum-like dotted reference
func (p *Parser) parseReference() ast.ExprNode {
	nameToken := p.advance()

	var expr ast.ExprNode = &ast.IdentifierExpr{
		Name: nameToken.Lexeme,
		Loc:  ast.TokenLocation(nameToken),
		Span: ast.TokenSpan(nameToken),
	}

	for p.check(lexer.TOKEN_DOT) {
		p.advance()
		memberToken := p.consume(lexer.TOKEN_IDENTIFIER, "Expected member name after '.'")
		if memberToken.Type == lexer.TOKEN_ERROR {
			return nil
		}
		expr = &ast.MemberAccessExpr{
			Object: expr,
			Member: memberToken.Lexeme,
			Loc:    ast.TokenLocation(nameToken),
			Span:   ast.Span{Start: nameToken.Offset, End: memberToken.End()},
		}
	}

	return expr
}

// parseOpaqueValue consumes one expression's worth of tokens without
// interpreting them. Stops at a comma or closing delimiter at the current
// nesting depth.
func (p *Parser) parseOpaqueValue() ast.ExprNode {
	startToken := p.peek()
	depth := 0

	for !p.isAtEnd() {
		token := p.peek()

		if depth == 0 {
			switch token.Type {
			case lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN,
				lexer.TOKEN_RBRACKET, lexer.TOKEN_RBRACE:
				return p.opaqueExpr(startToken)
			}
		}

		switch token.Type {
		case lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACKET, lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACKET, lexer.TOKEN_RBRACE:
			depth--
		}

		p.advance()
	}

	return p.opaqueExpr(startToken)
}

// opaqueExpr builds the OpaqueExpr node for a consumed token run
func (p *Parser) opaqueExpr(startToken lexer.Token) ast.ExprNode {
	end := startToken.Offset
	if p.current > 0 && p.previous().Offset >= startToken.Offset {
		end = p.previous().End()
	}
	return &ast.OpaqueExpr{
		Loc:  ast.TokenLocation(startToken),
		Span: ast.Span{Start: startToken.Offset, End: end},
	}
}

// atValueBoundary reports whether the current token may legally follow a
// complete value: a separator or a closing delimiter
func (p *Parser) atValueBoundary() bool {
	switch p.peek().Type {
	case lexer.TOKEN_COMMA, lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACKET,
		lexer.TOKEN_RBRACE, lexer.TOKEN_EOF:
		return true
	default:
		return false
	}
}

// stringLiteralValue returns the parsed value of a string literal token
func stringLiteralValue(token lexer.Token) string {
	if str, ok := token.Literal.(string); ok {
		return str
	}
	return token.Lexeme
}

// Helper methods

// peek returns the current token without consuming it
func (p *Parser) peek() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

// previous returns the most recently consumed token
func (p *Parser) previous() lexer.Token {
	if len(p.tokens) == 0 || p.current == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

// advance consumes the current token and returns it
func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check returns true if the current token matches the given type
func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match consumes the token if it matches any of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances if the next token matches, otherwise reports an error
func (p *Parser) consume(tokenType lexer.TokenType, message string) lexer.Token {
	if p.check(tokenType) {
		return p.advance()
	}

	p.error(p.peek(), message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

// isAtEnd returns true if we've reached the end of the token stream
func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// Error handling

// error records a parse error
func (p *Parser) error(token lexer.Token, message string) {
	p.errors = append(p.errors, NewParseError(message, token))
}

// synchronize implements panic mode error recovery
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		// Synchronize on declaration boundaries
		if p.check(lexer.TOKEN_AT) || p.check(lexer.TOKEN_CLASS) ||
			p.check(lexer.TOKEN_EXPORT) || p.check(lexer.TOKEN_IMPORT) {
			return
		}

		p.advance()
	}
}
