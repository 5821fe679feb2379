// Package lexer provides lexical analysis for Aabha source code.
// It tokenizes .aabha files into a stream of tokens for the parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
)

// Lexer tokenizes Aabha source code.
//
// Thread Safety: Lexer instances are NOT thread-safe. Each goroutine must
// create its own Lexer instance via New(). This is the recommended approach
// for parallel lexing in scenarios like LSP diagnostics.
type Lexer struct {
	source  string     // Source code to tokenize
	start   int        // Start position of current token
	current int        // Current position in source
	line    int        // Current line number (1-indexed)
	column  int        // Current column number (1-indexed)
	tokens  []Token    // Collected tokens
	errors  []LexError // Collected errors
}

// New creates a new Lexer for the given source code
func New(source string) *Lexer {
	return &Lexer{
		source:  source,
		start:   0,
		current: 0,
		line:    1,
		column:  1,
		tokens:  make([]Token, 0),
		errors:  make([]LexError, 0),
	}
}

// ScanTokens tokenizes the entire source and returns tokens and errors
func (l *Lexer) ScanTokens() ([]Token, []LexError) {
	for !l.isAtEnd() {
		l.start = l.current
		l.scanToken()
	}

	// Add EOF token
	l.tokens = append(l.tokens, Token{
		Type:   TOKEN_EOF,
		Lexeme: "",
		Offset: l.current,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, l.errors
}

// scanToken processes the next token.
//
//nolint:gocyclo,cyclop // Lexer dispatch function - complexity is inherent to the pattern
func (l *Lexer) scanToken() {
	c := l.advance()

	switch {
	case c == '(' || c == ')' || c == '{' || c == '}' || c == '[' || c == ']':
		l.scanDelimiter(c)
	case c == '@' || c == ':' || c == ',' || c == ';' || c == '+' || c == '*' ||
		c == '%' || c == '?' || c == '|' || c == '&':
		l.scanSimpleOperator(c)
	case c == '=' || c == '!' || c == '<' || c == '>' || c == '-' || c == '.' || c == '/':
		l.scanCompoundOperator(c)
	case c == '\'' || c == '"':
		l.string(c)
	case c == ' ' || c == '\r' || c == '\t':
		// Ignore whitespace
	case c == '\n':
		l.line++
		l.column = 1
	default:
		l.scanDefault(c)
	}
}

// scanDelimiter handles delimiter tokens: ( ) { } [ ]
func (l *Lexer) scanDelimiter(c byte) {
	switch c {
	case '(':
		l.addToken(TOKEN_LPAREN)
	case ')':
		l.addToken(TOKEN_RPAREN)
	case '{':
		l.addToken(TOKEN_LBRACE)
	case '}':
		l.addToken(TOKEN_RBRACE)
	case '[':
		l.addToken(TOKEN_LBRACKET)
	case ']':
		l.addToken(TOKEN_RBRACKET)
	}
}

// scanSimpleOperator handles single-character operators
func (l *Lexer) scanSimpleOperator(c byte) {
	switch c {
	case '@':
		l.addToken(TOKEN_AT)
	case ':':
		l.addToken(TOKEN_COLON)
	case ',':
		l.addToken(TOKEN_COMMA)
	case ';':
		l.addToken(TOKEN_SEMICOLON)
	case '+':
		l.addToken(TOKEN_PLUS)
	case '*':
		l.addToken(TOKEN_STAR)
	case '%':
		l.addToken(TOKEN_PERCENT)
	case '?':
		l.addToken(TOKEN_QUESTION)
	case '|':
		l.addToken(TOKEN_PIPE)
	case '&':
		l.addToken(TOKEN_AMP)
	}
}

// scanCompoundOperator dispatches to specific multi-character operator handlers
func (l *Lexer) scanCompoundOperator(c byte) {
	switch c {
	case '=':
		l.scanEqualsToken()
	case '!':
		l.addToken(TOKEN_BANG)
	case '<':
		l.addToken(TOKEN_LT)
	case '>':
		l.addToken(TOKEN_GT)
	case '-':
		l.addToken(TOKEN_MINUS)
	case '.':
		l.scanDotToken()
	case '/':
		l.scanSlashToken()
	}
}

// scanEqualsToken handles = and =>
func (l *Lexer) scanEqualsToken() {
	if l.match('>') {
		l.addToken(TOKEN_ARROW)
	} else {
		// == and === collapse into repeated EQUALS tokens; the parser
		// only balances braces inside class bodies, so that is enough.
		l.addToken(TOKEN_EQUALS)
	}
}

// scanDotToken handles . and numbers starting with .
func (l *Lexer) scanDotToken() {
	if l.isDigit(l.peek()) {
		l.number()
	} else {
		l.addToken(TOKEN_DOT)
	}
}

// scanSlashToken handles /, // comments, and /* */ comments
func (l *Lexer) scanSlashToken() {
	if l.match('/') {
		l.lineComment()
	} else if l.match('*') {
		l.blockComment()
	} else {
		l.addToken(TOKEN_SLASH)
	}
}

// scanDefault handles the default case: numbers, identifiers, or errors
func (l *Lexer) scanDefault(c byte) {
	if l.isDigit(c) {
		l.number()
	} else if l.isAlpha(c) {
		l.identifier()
	} else {
		l.addError(fmt.Sprintf("Unexpected character: '%c'", c))
	}
}

// lineComment handles single-line comments starting with //
func (l *Lexer) lineComment() {
	for l.peek() != '\n' && !l.isAtEnd() {
		l.advance()
	}
}

// blockComment handles /* ... */ comments, which may span lines
func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance() // *
			l.advance() // /
			return
		}
		if l.peek() == '\n' {
			l.line++
			l.column = 0
		}
		l.advance()
	}

	l.addError("Unterminated block comment")
}

// string handles string literals delimited by ' or " with escape support
func (l *Lexer) string(quote byte) {
	startLine := l.line
	startColumn := l.column - 1
	value := strings.Builder{}

	for !l.isAtEnd() && l.peek() != quote {
		// Handle escape sequences
		if l.peek() == '\\' {
			l.advance() // consume backslash
			if l.isAtEnd() {
				break
			}

			escaped := l.advance()
			switch escaped {
			case 'n':
				value.WriteByte('\n')
			case 't':
				value.WriteByte('\t')
			case 'r':
				value.WriteByte('\r')
			case '\\':
				value.WriteByte('\\')
			case '\'':
				value.WriteByte('\'')
			case '"':
				value.WriteByte('"')
			default:
				// Unknown escape sequence - keep as-is
				value.WriteByte('\\')
				value.WriteByte(escaped)
			}
		} else if l.peek() == '\n' {
			// Strings do not span lines
			break
		} else {
			value.WriteByte(l.advance())
		}
	}

	if l.isAtEnd() || l.peek() == '\n' {
		l.addError(fmt.Sprintf("Unterminated string starting at %d:%d", startLine, startColumn))
		return
	}

	// Consume closing quote
	l.advance()

	token := Token{
		Type:    TOKEN_STRING_LITERAL,
		Lexeme:  l.source[l.start:l.current],
		Literal: value.String(),
		Offset:  l.start,
		Line:    startLine,
		Column:  startColumn,
	}
	l.tokens = append(l.tokens, token)
}

// number handles integer and float literals
func (l *Lexer) number() {
	// Consume digits before decimal point
	for l.isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	// Check for decimal point
	isFloat := false
	if l.peek() == '.' && l.isDigit(l.peekNext()) {
		isFloat = true
		l.advance() // consume .

		// Consume fractional digits
		for l.isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	// Check for scientific notation
	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance() // consume e/E

		// Optional +/- sign
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}

		// Consume exponent digits
		if !l.isDigit(l.peek()) {
			l.addError("Invalid number: expected digits after exponent")
			return
		}

		for l.isDigit(l.peek()) {
			l.advance()
		}
	}

	lexeme := l.source[l.start:l.current]
	// Remove underscores for parsing
	cleanLexeme := strings.ReplaceAll(lexeme, "_", "")

	if isFloat {
		value, err := strconv.ParseFloat(cleanLexeme, 64)
		if err != nil {
			l.addError(fmt.Sprintf("Invalid float literal: %s", lexeme))
			return
		}
		l.addTokenWithLiteral(TOKEN_FLOAT_LITERAL, value)
	} else {
		value, err := strconv.ParseInt(cleanLexeme, 10, 64)
		if err != nil {
			l.addError(fmt.Sprintf("Invalid integer literal: %s", lexeme))
			return
		}
		l.addTokenWithLiteral(TOKEN_INT_LITERAL, value)
	}
}

// identifier handles identifiers and keywords
func (l *Lexer) identifier() {
	for l.isAlphaNumeric(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.current]

	// Check if it's a keyword
	tokenType, isKeyword := Keywords[text]
	if !isKeyword {
		tokenType = TOKEN_IDENTIFIER
	}

	// For boolean literals, set the literal value
	switch tokenType {
	case TOKEN_TRUE:
		l.addTokenWithLiteral(tokenType, true)
	case TOKEN_FALSE:
		l.addTokenWithLiteral(tokenType, false)
	default:
		l.addToken(tokenType)
	}
}

// Helper methods

// isAtEnd checks if we've reached the end of the source
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	c := l.source[l.current]
	l.current++
	l.column++
	return c
}

// match checks if the current character matches expected and consumes it
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() {
		return false
	}
	if l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

// peek returns the current character without consuming it
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext returns the next character without consuming
func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// isDigit checks if a character is a digit
func (l *Lexer) isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha checks if a character is alphabetic, underscore, or dollar sign
func (l *Lexer) isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_' || c == '$'
}

// isAlphaNumeric checks if a character is alphanumeric, underscore, or dollar sign
func (l *Lexer) isAlphaNumeric(c byte) bool {
	return l.isAlpha(c) || l.isDigit(c)
}

// addToken adds a token with the current lexeme
func (l *Lexer) addToken(tokenType TokenType) {
	l.addTokenWithLiteral(tokenType, nil)
}

// addTokenWithLiteral adds a token with a literal value
func (l *Lexer) addTokenWithLiteral(tokenType TokenType, literal interface{}) {
	lexeme := l.source[l.start:l.current]
	token := Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Offset:  l.start,
		Line:    l.line,
		Column:  l.column - (l.current - l.start),
	}
	l.tokens = append(l.tokens, token)
}

// addError records a lexical error
func (l *Lexer) addError(message string) {
	lexeme := ""
	if l.start < len(l.source) {
		end := l.current
		if end > l.start+20 {
			end = l.start + 20
		}
		lexeme = l.source[l.start:end]
	}

	err := LexError{
		Message: message,
		Line:    l.line,
		Column:  l.column - (l.current - l.start),
		Lexeme:  lexeme,
	}
	l.errors = append(l.errors, err)
}

// IsKeyword checks if a string is an Aabha keyword
func IsKeyword(s string) bool {
	_, ok := Keywords[s]
	return ok
}

// IsValidIdentifier checks if a string is a valid Aabha identifier
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	first := s[0]
	if !((first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') ||
		first == '_' || first == '$') {
		return false
	}

	for i := 1; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '_' || c == '$') {
			return false
		}
	}

	return !IsKeyword(s)
}
