// Package ast defines the Abstract Syntax Tree (AST) node types for Aabha
// source files. It provides structures for representing imports, class
// declarations, decorators, and the literal expressions that appear in
// decorator arguments.
package ast

import "github.com/aabha-lang/aabhalint/internal/lang/lexer"

// SourceLocation tracks the position of an AST node in source code
type SourceLocation struct {
	Line   int `json:"line"`   // Line number (1-indexed)
	Column int `json:"column"` // Column number (1-indexed)
}

// Span tracks the byte range of an AST node in the original source.
// Start is inclusive, End is exclusive. Spans anchor text edits.
type Span struct {
	Start int
	End   int
}

// Node is the base interface for all AST nodes
type Node interface {
	Location() SourceLocation
	node()
}

// Program is the root node of the AST
type Program struct {
	Imports []*ImportNode
	Classes []*ClassNode
}

func (p *Program) node() {}

// Location returns the source location of the program node in the AST.
func (p *Program) Location() SourceLocation {
	if len(p.Imports) > 0 {
		return p.Imports[0].Loc
	}
	if len(p.Classes) > 0 {
		return p.Classes[0].Loc
	}
	return SourceLocation{Line: 1, Column: 1}
}

// ImportNode represents an import statement. The linter records imports
// only so that symbol lookups know which names come from other files.
type ImportNode struct {
	Names []string // Imported identifiers
	Path  string   // Module path string
	Loc   SourceLocation
	Span  Span
}

func (i *ImportNode) node() {}

// Location returns the source location of the import node in the AST.
func (i *ImportNode) Location() SourceLocation {
	return i.Loc
}

// ClassNode represents a class declaration with its decorators.
// Class bodies are not interpreted; the linter only reads decorators.
type ClassNode struct {
	Name       string
	Parent     string // extends clause, empty if none
	Exported   bool
	Decorators []*DecoratorNode
	Loc        SourceLocation // at the 'class' keyword
	NameLoc    SourceLocation // at the class name
	Span       Span           // from the first decorator through the closing brace
}

func (c *ClassNode) node() {}

// Location returns the source location of the class node in the AST.
func (c *ClassNode) Location() SourceLocation {
	return c.Loc
}

// DecoratorNode represents a decorator attached to a class declaration,
// e.g. @Context({ name: 'Retail Banking' }).
type DecoratorNode struct {
	Name     string         // Decorator name without the @
	Argument ExprNode       // Sole call argument; nil when absent
	HasCall  bool           // Whether the decorator was written with parentheses
	Loc      SourceLocation // at the @
	Span     Span           // from the @ through the closing parenthesis
}

func (d *DecoratorNode) node() {}

// Location returns the source location of the decorator node in the AST.
func (d *DecoratorNode) Location() SourceLocation {
	return d.Loc
}

// TokenLocation creates a SourceLocation from a lexer token
func TokenLocation(token lexer.Token) SourceLocation {
	return SourceLocation{
		Line:   token.Line,
		Column: token.Column,
	}
}

// TokenSpan creates a Span covering a single lexer token
func TokenSpan(token lexer.Token) Span {
	return Span{
		Start: token.Offset,
		End:   token.End(),
	}
}
