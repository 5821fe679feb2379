package tooling

import (
	"fmt"
	"strings"

	"github.com/aabha-lang/aabhalint/internal/meta"
)

// CompletionItem represents a completion suggestion
type CompletionItem struct {
	// Label is the text to display
	Label string

	// Kind categorizes the completion
	Kind CompletionKind

	// Detail provides additional information
	Detail string

	// InsertText is the text to insert (if different from label)
	InsertText string
}

// CompletionKind categorizes completion items
type CompletionKind int

const (
	// CompletionKindDecorator represents an annotation kind completion
	CompletionKindDecorator CompletionKind = iota
	// CompletionKindField represents a field name completion
	CompletionKindField
)

// Completions suggests annotation kinds after an '@' and field names
// inside an annotation argument
func (a *API) Completions(uri string, pos Position) ([]CompletionItem, error) {
	doc, exists := a.GetDocument(uri)
	if !exists {
		return nil, fmt.Errorf("document not found: %s", uri)
	}

	if atDecoratorStart(doc, pos) {
		return decoratorCompletions(), nil
	}

	if record := a.recordAtPosition(doc, pos); record != nil {
		return fieldCompletions(record), nil
	}

	return []CompletionItem{}, nil
}

// atDecoratorStart reports whether the text before the cursor is an '@'
// plus an optional partial name. The client narrows by the partial text.
func atDecoratorStart(doc *Document, pos Position) bool {
	line := lineOf(doc.Content, doc.lines, pos.Line)
	if pos.Character > len(line) {
		return false
	}
	before := line[:pos.Character]

	at := strings.LastIndexByte(before, '@')
	if at < 0 {
		return false
	}
	partial := before[at+1:]
	for i := 0; i < len(partial); i++ {
		c := partial[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}

func decoratorCompletions() []CompletionItem {
	items := make([]CompletionItem, 0, len(meta.Kinds))
	for _, kind := range meta.Kinds {
		items = append(items, CompletionItem{
			Label:      kind,
			Kind:       CompletionKindDecorator,
			Detail:     fmt.Sprintf("@%s annotation", kind),
			InsertText: kind + "({ name: '' })",
		})
	}
	return items
}

// fieldCompletions offers the known fields of the surrounding annotation
// that are not spelled out yet
func fieldCompletions(record *meta.Record) []CompletionItem {
	known := meta.KnownFields(record.Kind)
	items := make([]CompletionItem, 0, len(known))
	for _, field := range known {
		if record.Has(field) {
			continue
		}
		items = append(items, CompletionItem{
			Label:      field,
			Kind:       CompletionKindField,
			Detail:     fmt.Sprintf("@%s field", record.Kind),
			InsertText: field + ": ",
		})
	}
	return items
}
