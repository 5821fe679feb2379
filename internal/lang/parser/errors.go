// Package parser implements the Aabha parser, transforming token streams into
// Abstract Syntax Trees (ASTs). It uses recursive descent parsing with panic
// mode error recovery to handle syntax errors gracefully.
package parser

import (
	"fmt"

	"github.com/aabha-lang/aabhalint/internal/lang/ast"
	"github.com/aabha-lang/aabhalint/internal/lang/lexer"
)

// ParseError represents an error encountered during parsing. The offending
// token stays out of serialized output: it exists for tooling that needs the
// exact source range, not for reports.
type ParseError struct {
	Message  string             `json:"message"`
	Location ast.SourceLocation `json:"location"`
	Token    lexer.Token        `json:"-"`
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error at %d:%d: %s (near '%s')",
		e.Location.Line, e.Location.Column, e.Message, e.Token.Lexeme)
}

// NewParseError creates a new parse error
func NewParseError(message string, token lexer.Token) ParseError {
	return ParseError{
		Message: message,
		Location: ast.SourceLocation{
			Line:   token.Line,
			Column: token.Column,
		},
		Token: token,
	}
}
