// Package tooling provides a programmatic API for IDE integration via
// LSP. It keeps open documents in memory, re-lints them on change, and
// answers position-based queries without touching the filesystem.
package tooling

import (
	"fmt"
	"sync"

	"github.com/aabha-lang/aabhalint/internal/lang/ast"
	"github.com/aabha-lang/aabhalint/internal/lang/lexer"
	"github.com/aabha-lang/aabhalint/internal/lang/parser"
	"github.com/aabha-lang/aabhalint/internal/lint"
	"github.com/aabha-lang/aabhalint/internal/meta"
)

// API provides thread-safe access to lint results for IDE integration.
// Documents are keyed by URI and re-linted whenever their content changes.
type API struct {
	documents map[string]*Document
	docsMutex sync.RWMutex

	engine *lint.Engine
}

// Document is one open editor buffer with everything derived from it
type Document struct {
	// URI is the document identifier (typically a file URI)
	URI string

	// Content is the raw source code
	Content string

	// Version tracks document changes (incremented on each update)
	Version int

	// AST is the parsed program, complete even when the source has errors
	AST *ast.Program

	// Result holds lex errors, parse errors, and rule diagnostics
	Result *lint.FileResult

	// Records is the extracted metadata for every annotated class
	Records []*meta.Record

	// Symbols is a flattened outline of the document
	Symbols []*Symbol

	lines *lineIndex
}

// Diagnostic is an editor-facing finding with zero-based positions
type Diagnostic struct {
	Range    Range
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Source   string
}

// DiagnosticSeverity mirrors the LSP severity scale
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError is used for syntax errors and problems
	DiagnosticSeverityError DiagnosticSeverity = iota + 1
	// DiagnosticSeverityWarning is unused today but kept for mapping room
	DiagnosticSeverityWarning
	// DiagnosticSeverityInformation is used for suggestions
	DiagnosticSeverityInformation
	// DiagnosticSeverityHint marks fixable findings
	DiagnosticSeverityHint
)

// NewAPI creates a tooling API backed by the given engine
func NewAPI(engine *lint.Engine) *API {
	return &API{
		documents: make(map[string]*Document),
		engine:    engine,
	}
}

// OpenDocument parses and lints a document, replacing any cached state
func (a *API) OpenDocument(uri, content string) *Document {
	doc := a.build(uri, content)
	doc.Version = 1

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc
}

// UpdateDocument re-lints a document with new content. Unchanged content
// only bumps the version.
func (a *API) UpdateDocument(uri, content string, version int) *Document {
	a.docsMutex.RLock()
	old, exists := a.documents[uri]
	a.docsMutex.RUnlock()

	if exists && old.Content == content {
		a.docsMutex.Lock()
		old.Version = version
		a.docsMutex.Unlock()
		return old
	}

	doc := a.build(uri, content)
	doc.Version = version

	a.docsMutex.Lock()
	a.documents[uri] = doc
	a.docsMutex.Unlock()

	return doc
}

// CloseDocument drops a document from the cache
func (a *API) CloseDocument(uri string) {
	a.docsMutex.Lock()
	delete(a.documents, uri)
	a.docsMutex.Unlock()
}

// GetDocument retrieves a cached document
func (a *API) GetDocument(uri string) (*Document, bool) {
	a.docsMutex.RLock()
	defer a.docsMutex.RUnlock()

	doc, exists := a.documents[uri]
	return doc, exists
}

// build runs the full pipeline on one buffer. It holds no locks; callers
// publish the result.
func (a *API) build(uri, content string) *Document {
	tokens, _ := lexer.New(content).ScanTokens()
	program, _ := parser.New(tokens).Parse()

	doc := &Document{
		URI:     uri,
		Content: content,
		AST:     program,
		Result:  a.engine.LintSource(uri, content),
		Records: meta.ExtractProgram(program),
		lines:   newLineIndex(content),
	}
	doc.Symbols = extractSymbols(doc)
	return doc
}

// Diagnostics converts a document's lint result to editor diagnostics
func (a *API) Diagnostics(uri string) []Diagnostic {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil
	}

	diagnostics := make([]Diagnostic, 0,
		len(doc.Result.LexErrors)+len(doc.Result.ParseErrors)+len(doc.Result.Diagnostics))

	for _, lexErr := range doc.Result.LexErrors {
		pos := Position{Line: lexErr.Line - 1, Character: lexErr.Column - 1}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    Range{Start: pos, End: Position{Line: pos.Line, Character: pos.Character + 1}},
			Severity: DiagnosticSeverityError,
			Code:     "syntax",
			Message:  lexErr.Message,
			Source:   "aabhalint",
		})
	}

	for _, parseErr := range doc.Result.ParseErrors {
		start := Position{Line: parseErr.Token.Line - 1, Character: parseErr.Token.Column - 1}
		end := Position{Line: start.Line, Character: start.Character + len(parseErr.Token.Lexeme)}
		if end.Character == start.Character {
			end.Character++
		}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    Range{Start: start, End: end},
			Severity: DiagnosticSeverityError,
			Code:     "syntax",
			Message:  parseErr.Message,
			Source:   "aabhalint",
		})
	}

	for i := range doc.Result.Diagnostics {
		diag := &doc.Result.Diagnostics[i]
		severity := DiagnosticSeverityError
		if diag.Severity == lint.SeveritySuggestion {
			severity = DiagnosticSeverityInformation
		}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    doc.lines.span(diag.Location.Start, diag.Location.End),
			Severity: severity,
			Code:     diag.RuleID,
			Message:  diag.Message,
			Source:   "aabhalint",
		})
	}

	return diagnostics
}

// DocumentSymbols returns the outline of a document
func (a *API) DocumentSymbols(uri string) ([]*Symbol, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}
	return doc.Symbols, nil
}
