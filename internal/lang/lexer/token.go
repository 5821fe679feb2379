package lexer

import "fmt"

// TokenType represents the type of a token in Aabha source code
type TokenType int

const (
	// TOKEN_EOF marks the end of the token stream.
	TOKEN_EOF TokenType = iota
	// TOKEN_ERROR represents a lexical error encountered during scanning.
	TOKEN_ERROR

	// Keywords
	TOKEN_CLASS   // class
	TOKEN_EXTENDS // extends
	TOKEN_IMPORT  // import
	TOKEN_EXPORT  // export
	TOKEN_FROM    // from

	// Literals
	TOKEN_IDENTIFIER     // RetailBanking, dependsOn, etc.
	TOKEN_INT_LITERAL    // 42, 1000, etc.
	TOKEN_FLOAT_LITERAL  // 3.14, 2.5e10, etc.
	TOKEN_STRING_LITERAL // 'hello', "multi\nline", etc.
	TOKEN_TRUE           // true
	TOKEN_FALSE          // false
	TOKEN_NULL           // null

	// Operators
	TOKEN_AT        // @
	TOKEN_COLON     // :
	TOKEN_COMMA     // ,
	TOKEN_DOT       // .
	TOKEN_SEMICOLON // ;
	TOKEN_EQUALS    // =
	TOKEN_PLUS      // +
	TOKEN_MINUS     // -
	TOKEN_STAR      // *
	TOKEN_SLASH     // /
	TOKEN_PERCENT   // %
	TOKEN_BANG      // !
	TOKEN_QUESTION  // ?
	TOKEN_PIPE      // |
	TOKEN_AMP       // &
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_ARROW     // =>

	// Delimiters
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }
	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
)

// TokenTypeNames maps token types to their string representations
var TokenTypeNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ERROR:          "ERROR",
	TOKEN_CLASS:          "CLASS",
	TOKEN_EXTENDS:        "EXTENDS",
	TOKEN_IMPORT:         "IMPORT",
	TOKEN_EXPORT:         "EXPORT",
	TOKEN_FROM:           "FROM",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_INT_LITERAL:    "INT_LITERAL",
	TOKEN_FLOAT_LITERAL:  "FLOAT_LITERAL",
	TOKEN_STRING_LITERAL: "STRING_LITERAL",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_NULL:           "NULL",
	TOKEN_AT:             "AT",
	TOKEN_COLON:          "COLON",
	TOKEN_COMMA:          "COMMA",
	TOKEN_DOT:            "DOT",
	TOKEN_SEMICOLON:      "SEMICOLON",
	TOKEN_EQUALS:         "EQUALS",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_STAR:           "STAR",
	TOKEN_SLASH:          "SLASH",
	TOKEN_PERCENT:        "PERCENT",
	TOKEN_BANG:           "BANG",
	TOKEN_QUESTION:       "QUESTION",
	TOKEN_PIPE:           "PIPE",
	TOKEN_AMP:            "AMP",
	TOKEN_LT:             "LT",
	TOKEN_GT:             "GT",
	TOKEN_ARROW:          "ARROW",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACKET:       "LBRACKET",
	TOKEN_RBRACKET:       "RBRACKET",
}

// String returns the string representation of a TokenType
func (t TokenType) String() string {
	if name, ok := TokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", t)
}

// Token represents a single lexical token in Aabha source code
type Token struct {
	Type    TokenType   // The type of the token
	Lexeme  string      // The raw text of the token
	Literal interface{} // The parsed value (for literals)
	Offset  int         // Byte offset of the token start in the source
	Line    int         // Line number (1-indexed)
	Column  int         // Column number (1-indexed)
}

// End returns the byte offset one past the last byte of the token.
func (t Token) End() int {
	return t.Offset + len(t.Lexeme)
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s '%s' (%v) at %d:%d",
			t.Type.String(), t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s '%s' at %d:%d",
		t.Type.String(), t.Lexeme, t.Line, t.Column)
}

// Keywords maps reserved words to their token types
var Keywords = map[string]TokenType{
	"class":   TOKEN_CLASS,
	"extends": TOKEN_EXTENDS,
	"import":  TOKEN_IMPORT,
	"export":  TOKEN_EXPORT,
	"from":    TOKEN_FROM,

	// Boolean and null literals
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
	"null":  TOKEN_NULL,
}

// LexError represents an error encountered during lexical analysis
type LexError struct {
	Message string `json:"message"` // Error message
	Line    int    `json:"line"`    // Line number where error occurred
	Column  int    `json:"column"`  // Column number where error occurred
	Lexeme  string `json:"lexeme"`  // The problematic text
}

// Error implements the error interface
func (e LexError) Error() string {
	return fmt.Sprintf("Lexical error at %d:%d: %s (near '%s')",
		e.Line, e.Column, e.Message, e.Lexeme)
}
